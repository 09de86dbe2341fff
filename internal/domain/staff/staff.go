package staff

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("staff: not found")
	ErrEmailRequired     = errors.New("staff: email is required")
	ErrEmailTaken        = errors.New("staff: email already registered")
	ErrNameRequired      = errors.New("staff: name is required")
	ErrPasswordHashEmpty = errors.New("staff: password hash is required")
	ErrInvalidRole       = errors.New("staff: invalid role")
)

type ID string

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleReceptionist Role = "receptionist"
	RoleHousekeeping Role = "housekeeping"
)

func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleManager:
		return RoleManager, nil
	case RoleReceptionist:
		return RoleReceptionist, nil
	case RoleHousekeeping:
		return RoleHousekeeping, nil
	default:
		return "", ErrInvalidRole
	}
}

type Staff struct {
	ID           ID
	EmployeeID   string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Staff, error)
	ByEmail(ctx context.Context, email string) (*Staff, error)
	Save(ctx context.Context, s *Staff) error
}

type CreateParams struct {
	ID           ID
	EmployeeID   string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Now          time.Time
}

func New(params CreateParams) (*Staff, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	first := strings.TrimSpace(params.FirstName)
	last := strings.TrimSpace(params.LastName)
	if first == "" || last == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(params.PasswordHash) == "" {
		return nil, ErrPasswordHashEmpty
	}
	role, err := ParseRole(string(params.Role))
	if err != nil {
		return nil, err
	}
	now := params.Now.UTC()
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return &Staff{
		ID:           params.ID,
		EmployeeID:   strings.TrimSpace(params.EmployeeID),
		FirstName:    first,
		LastName:     last,
		Email:        email,
		Phone:        strings.TrimSpace(params.Phone),
		PasswordHash: params.PasswordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *Staff) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

func (s *Staff) SetPasswordHash(hash string, now time.Time) error {
	if strings.TrimSpace(hash) == "" {
		return ErrPasswordHashEmpty
	}
	s.PasswordHash = hash
	s.touch(now)
	return nil
}

func (s *Staff) Deactivate(now time.Time) {
	s.IsActive = false
	s.touch(now)
}

func (s *Staff) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	s.UpdatedAt = now.UTC()
}
