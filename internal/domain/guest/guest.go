package guest

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound         = errors.New("guest: not found")
	ErrEmailRequired    = errors.New("guest: email is required")
	ErrEmailTaken       = errors.New("guest: email already registered")
	ErrIDNumberRequired = errors.New("guest: id number is required")
	ErrIDNumberTaken    = errors.New("guest: id number already registered")
	ErrNameRequired     = errors.New("guest: name is required")
)

type ID string

type Guest struct {
	ID        ID
	FirstName string
	LastName  string
	Email     string
	Phone     string

	IDType      string
	IDNumber    string
	Nationality string

	// Cumulative stay stats, mutated only by booking transitions.
	TotalStays      int
	TotalSpentCents int64

	VIP       bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

type ListParams struct {
	Query  string
	Offset int
	Limit  int
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Guest, error)
	ByEmail(ctx context.Context, email string) (*Guest, error)
	ByIDNumber(ctx context.Context, idNumber string) (*Guest, error)
	Save(ctx context.Context, g *Guest) error
	List(ctx context.Context, params ListParams) ([]*Guest, int, error)
}

type CreateParams struct {
	ID          ID
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	IDType      string
	IDNumber    string
	Nationality string
	Now         time.Time
}

func New(params CreateParams) (*Guest, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	idNumber := strings.TrimSpace(params.IDNumber)
	if idNumber == "" {
		return nil, ErrIDNumberRequired
	}
	first := strings.TrimSpace(params.FirstName)
	last := strings.TrimSpace(params.LastName)
	if first == "" || last == "" {
		return nil, ErrNameRequired
	}
	now := params.Now.UTC()
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return &Guest{
		ID:          params.ID,
		FirstName:   first,
		LastName:    last,
		Email:       email,
		Phone:       strings.TrimSpace(params.Phone),
		IDType:      strings.TrimSpace(params.IDType),
		IDNumber:    idNumber,
		Nationality: strings.TrimSpace(params.Nationality),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (g *Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

// RecordStay bumps the stay counter at check-in time.
func (g *Guest) RecordStay(now time.Time) {
	g.TotalStays++
	g.touch(now)
}

// RecordSpend adds the final booking total at check-out time.
func (g *Guest) RecordSpend(amountCents int64, now time.Time) {
	g.TotalSpentCents += amountCents
	g.touch(now)
}

func (g *Guest) Deactivate(now time.Time) {
	g.IsActive = false
	g.touch(now)
}

func (g *Guest) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	g.UpdatedAt = now.UTC()
}
