package room

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("room: not found")
	ErrNumberRequired  = errors.New("room: room number is required")
	ErrNumberTaken     = errors.New("room: room number already in use")
	ErrInvalidCapacity = errors.New("room: capacity must be at least 1")
	ErrNegativeRate    = errors.New("room: nightly rate cannot be negative")
	ErrInvalidStatus   = errors.New("room: invalid status")
	ErrInactive        = errors.New("room: room is inactive")
)

type ID string

type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
	StatusCleaning    Status = "cleaning"
	StatusOutOfOrder  Status = "out-of-order"
)

// ParseStatus maps external input onto a known status value.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusAvailable:
		return StatusAvailable, nil
	case StatusOccupied:
		return StatusOccupied, nil
	case StatusMaintenance:
		return StatusMaintenance, nil
	case StatusCleaning:
		return StatusCleaning, nil
	case StatusOutOfOrder:
		return StatusOutOfOrder, nil
	default:
		return "", ErrInvalidStatus
	}
}

// CapacityBreakdown is presentation metadata only; the canonical
// capacity is the single Capacity integer on the Room.
type CapacityBreakdown struct {
	Adults   int
	Children int
}

type Photo struct {
	URL     string
	Caption string
}

type Room struct {
	ID         ID
	RoomNumber string
	Floor      int
	Type       string
	Category   string

	Capacity  int
	Breakdown *CapacityBreakdown

	PricePerNightCents int64

	Status           Status
	BedConfiguration string
	Description      string
	Photos           []Photo

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

type ListParams struct {
	Status Status
	Type   string
	Floor  int
	Offset int
	Limit  int
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Room, error)
	ByNumber(ctx context.Context, number string) (*Room, error)
	Save(ctx context.Context, r *Room) error
	List(ctx context.Context, params ListParams) ([]*Room, int, error)
}

type CreateParams struct {
	ID         ID
	RoomNumber string
	Floor      int
	Type       string
	Category   string
	Capacity   int
	Breakdown  *CapacityBreakdown
	RateCents  int64

	BedConfiguration string
	Description      string
	Now              time.Time
}

func New(params CreateParams) (*Room, error) {
	number := strings.TrimSpace(params.RoomNumber)
	if number == "" {
		return nil, ErrNumberRequired
	}
	capacity := params.Capacity
	if capacity <= 0 && params.Breakdown != nil {
		capacity = params.Breakdown.Adults + params.Breakdown.Children
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if params.RateCents < 0 {
		return nil, ErrNegativeRate
	}
	now := params.Now.UTC()
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return &Room{
		ID:                 params.ID,
		RoomNumber:         number,
		Floor:              params.Floor,
		Type:               strings.TrimSpace(params.Type),
		Category:           strings.TrimSpace(params.Category),
		Capacity:           capacity,
		Breakdown:          params.Breakdown,
		PricePerNightCents: params.RateCents,
		Status:             StatusAvailable,
		BedConfiguration:   strings.TrimSpace(params.BedConfiguration),
		Description:        strings.TrimSpace(params.Description),
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// SetStatus moves the room into the given occupancy state. Direct
// staff actions and booking transitions both land here.
func (r *Room) SetStatus(status Status, now time.Time) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	if !r.IsActive {
		return ErrInactive
	}
	r.Status = status
	r.touch(now)
	return nil
}

func (r *Room) SetRate(rateCents int64, now time.Time) error {
	if rateCents < 0 {
		return ErrNegativeRate
	}
	r.PricePerNightCents = rateCents
	r.touch(now)
	return nil
}

func (r *Room) AddPhoto(url, caption string, now time.Time) {
	r.Photos = append(r.Photos, Photo{URL: url, Caption: strings.TrimSpace(caption)})
	r.touch(now)
}

// Deactivate soft-deletes the room; rooms are never removed.
func (r *Room) Deactivate(now time.Time) {
	r.IsActive = false
	r.touch(now)
}

func (r *Room) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	r.UpdatedAt = now.UTC()
}
