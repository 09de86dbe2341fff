package rooms

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/app/uow"
	domainroom "frontdesk/internal/domain/room"
	"frontdesk/internal/domain/shared/daterange"
)

// Uploader stores a room photo and returns its public URL.
type Uploader interface {
	UploadRoomPhoto(ctx context.Context, roomID string, filename string, r io.Reader, contentType string) (string, error)
}

type Service struct {
	UoW      uow.Factory
	Uploader Uploader
	Logger   *slog.Logger
	Clock    func() time.Time
}

func NewService(factory uow.Factory, uploader Uploader, logger *slog.Logger) *Service {
	return &Service{UoW: factory, Uploader: uploader, Logger: logger}
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

type CreateParams struct {
	RoomNumber string
	Floor      int
	Type       string
	Category   string
	Capacity   int
	Breakdown  *domainroom.CapacityBreakdown
	RateCents  int64

	BedConfiguration string
	Description      string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*domainroom.Room, error) {
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

	if _, err := unit.Rooms().ByNumber(ctx, params.RoomNumber); err == nil {
		return nil, domainroom.ErrNumberTaken
	} else if !errors.Is(err, domainroom.ErrNotFound) {
		return nil, err
	}

	rm, err := domainroom.New(domainroom.CreateParams{
		ID:               domainroom.ID(uuid.NewString()),
		RoomNumber:       params.RoomNumber,
		Floor:            params.Floor,
		Type:             params.Type,
		Category:         params.Category,
		Capacity:         params.Capacity,
		Breakdown:        params.Breakdown,
		RateCents:        params.RateCents,
		BedConfiguration: params.BedConfiguration,
		Description:      params.Description,
		Now:              s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Rooms().Save(ctx, rm); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true
	return rm, nil
}

type UpdateParams struct {
	Floor            *int
	Type             *string
	Category         *string
	Capacity         *int
	RateCents        *int64
	BedConfiguration *string
	Description      *string
}

func (s *Service) Update(ctx context.Context, id domainroom.ID, params UpdateParams) (*domainroom.Room, error) {
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

	rm, err := unit.Rooms().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if params.Floor != nil {
		rm.Floor = *params.Floor
	}
	if params.Type != nil {
		rm.Type = *params.Type
	}
	if params.Category != nil {
		rm.Category = *params.Category
	}
	if params.Capacity != nil {
		if *params.Capacity <= 0 {
			return nil, domainroom.ErrInvalidCapacity
		}
		rm.Capacity = *params.Capacity
	}
	if params.RateCents != nil {
		if err := rm.SetRate(*params.RateCents, now); err != nil {
			return nil, err
		}
	}
	if params.BedConfiguration != nil {
		rm.BedConfiguration = *params.BedConfiguration
	}
	if params.Description != nil {
		rm.Description = *params.Description
	}
	rm.UpdatedAt = now

	if err := unit.Rooms().Save(ctx, rm); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true
	return rm, nil
}

// SetStatus applies a manual status change, for housekeeping and
// maintenance flows.
func (s *Service) SetStatus(ctx context.Context, id domainroom.ID, status domainroom.Status) (*domainroom.Room, error) {
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

	rm, err := unit.Rooms().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rm.SetStatus(status, s.now()); err != nil {
		return nil, err
	}
	if err := unit.Rooms().Save(ctx, rm); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true
	return rm, nil
}

// Deactivate soft-deletes the room. Rooms with an active booking stay
// bookable history-wise but accept no new stays once inactive.
func (s *Service) Deactivate(ctx context.Context, id domainroom.ID) error {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return err
	}
	ctx = uow.Context(ctx, unit)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	rm, err := unit.Rooms().ByID(ctx, id)
	if err != nil {
		return err
	}
	rm.Deactivate(s.now())
	if err := unit.Rooms().Save(ctx, rm); err != nil {
		return err
	}
	if err := unit.Commit(ctx); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *Service) Get(ctx context.Context, id domainroom.ID) (*domainroom.Room, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = uow.Context(ctx, unit)
	defer unit.Rollback(ctx)
	return unit.Rooms().ByID(ctx, id)
}

func (s *Service) List(ctx context.Context, params domainroom.ListParams) ([]*domainroom.Room, int, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	ctx = uow.Context(ctx, unit)
	defer unit.Rollback(ctx)
	return unit.Rooms().List(ctx, params)
}

// Available returns active rooms with no overlapping active booking in
// the given range, optionally filtered by minimum capacity and type.
func (s *Service) Available(ctx context.Context, checkIn, checkOut time.Time, capacity int, roomType string) ([]*domainroom.Room, error) {
	dr, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = uow.Context(ctx, unit)
	defer unit.Rollback(ctx)

	busy, err := unit.Bookings().ActiveBetween(ctx, dr)
	if err != nil {
		return nil, err
	}
	taken := make(map[domainroom.ID]bool, len(busy))
	for _, bk := range busy {
		taken[bk.RoomID] = true
	}

	all, _, err := unit.Rooms().List(ctx, domainroom.ListParams{Type: roomType})
	if err != nil {
		return nil, err
	}
	available := make([]*domainroom.Room, 0, len(all))
	for _, rm := range all {
		if !rm.IsActive || taken[rm.ID] {
			continue
		}
		if rm.Status == domainroom.StatusMaintenance || rm.Status == domainroom.StatusOutOfOrder {
			continue
		}
		if capacity > 0 && rm.Capacity < capacity {
			continue
		}
		available = append(available, rm)
	}
	return available, nil
}

// AttachPhoto uploads the image to object storage and records its URL
// on the room.
func (s *Service) AttachPhoto(ctx context.Context, id domainroom.ID, filename string, r io.Reader, contentType, caption string) (*domainroom.Room, error) {
	if s.Uploader == nil {
		return nil, errors.New("rooms: photo storage not configured")
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

	rm, err := unit.Rooms().ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.Uploader.UploadRoomPhoto(ctx, string(rm.ID), filename, r, contentType)
	if err != nil {
		return nil, err
	}
	rm.AddPhoto(url, caption, s.now())

	if err := unit.Rooms().Save(ctx, rm); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true
	return rm, nil
}
