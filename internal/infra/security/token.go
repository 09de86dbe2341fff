package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// 256 bits of entropy before encoding.
const sessionTokenBytes = 32

// SessionTokens mints opaque bearer tokens for staff sessions.
type SessionTokens struct {
	Bytes int
}

func (g SessionTokens) NewToken() (string, error) {
	n := g.Bytes
	if n <= 0 {
		n = sessionTokenBytes
	}
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
