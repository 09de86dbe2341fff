package ginserver

import (
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/app/auth"
	"frontdesk/internal/app/authz"
	domainstaff "frontdesk/internal/domain/staff"
)

const principalContextKey = "frontdesk.principal"

type principal struct {
	ID    domainstaff.ID
	Email string
	Name  string
	Role  domainstaff.Role
	Token string
}

type AuthMiddleware struct {
	Service *auth.Service
	Logger  *slog.Logger
}

// Handle resolves a bearer token into a principal. Requests without a
// valid token continue unauthenticated; route guards reject them.
func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" || m.Service == nil {
		c.Next()
		return
	}
	member, err := m.Service.Resolve(c.Request.Context(), token)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Debug("token validation failed", "error", err)
		}
		c.Next()
		return
	}
	setPrincipal(c, principal{
		ID:    member.ID,
		Email: member.Email,
		Name:  member.FullName(),
		Role:  member.Role,
		Token: token,
	})
	c.Next()
}

func setPrincipal(c *gin.Context, p principal) {
	c.Set(principalContextKey, p)
}

func currentPrincipal(c *gin.Context) (principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return principal{}, false
	}
	p, ok := val.(principal)
	return p, ok
}

// requireAction enforces the authorization policy for the action and
// returns the acting principal.
func requireAction(c *gin.Context, action authz.Action) (principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return principal{}, false
	}
	if err := authz.Authorize(p.Role, action); err != nil {
		respondError(c, http.StatusForbidden, "insufficient permissions")
		return principal{}, false
	}
	return p, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
