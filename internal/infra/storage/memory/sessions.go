package memory

import (
	"context"
	"errors"
	"sync"

	"frontdesk/internal/app/auth"
)

// ErrSessionNotFound is returned for unknown or removed tokens.
var ErrSessionNotFound = errors.New("memory: session not found")

// SessionStore keeps staff sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]auth.Session)}
}

func (s *SessionStore) Put(ctx context.Context, session auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (auth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return auth.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
