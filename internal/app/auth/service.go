package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/app/uow"
	domainstaff "frontdesk/internal/domain/staff"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrSessionExpired     = errors.New("auth: session expired or unknown")
)

// Hasher hides the password hashing scheme from the service.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Tokens mints opaque session tokens.
type Tokens interface {
	NewToken() (string, error)
}

// Session is an authenticated staff login.
type Session struct {
	Token     string
	StaffID   domainstaff.ID
	ExpiresAt time.Time
}

// Sessions stores live sessions keyed by token.
type Sessions interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

type Service struct {
	UoW      uow.Factory
	Hasher   Hasher
	Tokens   Tokens
	Sessions Sessions
	TTL      time.Duration
	Logger   *slog.Logger
	Clock    func() time.Time
}

func NewService(factory uow.Factory, hasher Hasher, tokens Tokens, sessions Sessions, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{UoW: factory, Hasher: hasher, Tokens: tokens, Sessions: sessions, TTL: ttl, Logger: logger}
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// Login verifies the credentials and opens a session. Unknown email
// and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*domainstaff.Staff, string, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, "", err
	}
	member, err := unit.Staff().ByEmail(uow.Context(ctx, unit), email)
	_ = unit.Rollback(ctx)
	if err != nil {
		if errors.Is(err, domainstaff.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !member.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if err := s.Hasher.Compare(member.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.Tokens.NewToken()
	if err != nil {
		return nil, "", err
	}
	session := Session{Token: token, StaffID: member.ID, ExpiresAt: s.now().Add(s.TTL)}
	if err := s.Sessions.Put(ctx, session); err != nil {
		return nil, "", err
	}
	return member, token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.Sessions.Delete(ctx, token)
}

// Resolve maps a session token back to the staff member, rejecting
// expired sessions and deactivated accounts.
func (s *Service) Resolve(ctx context.Context, token string) (*domainstaff.Staff, error) {
	session, err := s.Sessions.Get(ctx, token)
	if err != nil {
		return nil, ErrSessionExpired
	}
	if s.now().After(session.ExpiresAt) {
		_ = s.Sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = uow.Context(ctx, unit)
	defer unit.Rollback(ctx)

	member, err := unit.Staff().ByID(ctx, session.StaffID)
	if err != nil {
		return nil, ErrSessionExpired
	}
	if !member.IsActive {
		return nil, ErrSessionExpired
	}
	return member, nil
}

type RegisterParams struct {
	EmployeeID string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Password   string
	Role       domainstaff.Role
}

// Register creates a staff account. Only admins reach this path; the
// policy check happens in the transport layer.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*domainstaff.Staff, error) {
	hash, err := s.Hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	ctx = uow.Context(ctx, unit)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	if _, err := unit.Staff().ByEmail(ctx, params.Email); err == nil {
		return nil, domainstaff.ErrEmailTaken
	} else if !errors.Is(err, domainstaff.ErrNotFound) {
		return nil, err
	}

	member, err := domainstaff.New(domainstaff.CreateParams{
		ID:           domainstaff.ID(uuid.NewString()),
		EmployeeID:   params.EmployeeID,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		Phone:        params.Phone,
		PasswordHash: hash,
		Role:         params.Role,
		Now:          s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Staff().Save(ctx, member); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true
	return member, nil
}
