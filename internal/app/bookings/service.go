package bookings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"frontdesk/internal/app/uow"
	domainbooking "frontdesk/internal/domain/booking"
	domainguest "frontdesk/internal/domain/guest"
	domainroom "frontdesk/internal/domain/room"
	"frontdesk/internal/domain/shared/daterange"
	"frontdesk/internal/domain/shared/events"
	domainstaff "frontdesk/internal/domain/staff"
)

const bookingSequence = "booking_number"

// Publisher forwards committed domain events to the broker. A nil or
// no-op publisher is valid; publication is best-effort.
type Publisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

// Service owns the booking lifecycle: admission, status transitions,
// and the room/guest side effects that keep occupancy consistent.
type Service struct {
	UoW       uow.Factory
	Publisher Publisher
	Logger    *slog.Logger
	Clock     func() time.Time

	locks roomLocker
}

func NewService(factory uow.Factory, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{UoW: factory, Publisher: publisher, Logger: logger}
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

type CreateParams struct {
	GuestID         domainguest.ID
	RoomID          domainroom.ID
	CheckIn         time.Time
	CheckOut        time.Time
	NumberOfGuests  int
	TaxCents        int64
	DiscountCents   int64
	SpecialRequests string
	Source          string
	ActorID         domainstaff.ID
}

// Create runs the admission algorithm: validate, resolve, overlap
// check, snapshot the room rate, derive totals, allocate a booking
// number, and persist. The per-room lock closes the window between the
// overlap read and the insert.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domainbooking.Booking, error) {
	if params.ActorID == "" {
		return nil, domainbooking.ErrActorRequired
	}
	dr, err := daterange.New(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(params.RoomID)
	defer unlock()

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

	gst, err := unit.Guests().ByID(ctx, params.GuestID)
	if err != nil {
		return nil, err
	}
	rm, err := unit.Rooms().ByID(ctx, params.RoomID)
	if err != nil {
		return nil, err
	}
	if !rm.IsActive {
		return nil, domainroom.ErrNotFound
	}

	conflict, err := s.hasConflict(ctx, unit, rm.ID, dr, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, domainbooking.ErrRoomConflict
	}

	seq, err := unit.Sequences().Next(ctx, bookingSequence)
	if err != nil {
		return nil, err
	}

	now := s.now()
	bk, err := domainbooking.New(domainbooking.CreateParams{
		ID:              domainbooking.ID(uuid.NewString()),
		BookingNumber:   FormatBookingNumber(seq),
		GuestID:         gst.ID,
		RoomID:          rm.ID,
		Range:           dr,
		NumberOfGuests:  params.NumberOfGuests,
		RoomRateCents:   rm.PricePerNightCents,
		TaxCents:        params.TaxCents,
		DiscountCents:   params.DiscountCents,
		SpecialRequests: params.SpecialRequests,
		Source:          params.Source,
		CreatedBy:       params.ActorID,
		Now:             now,
	})
	if err != nil {
		return nil, err
	}

	if err := unit.Bookings().Insert(ctx, bk); err != nil {
		return nil, err
	}

	// A same-day booking occupies the room immediately; future stays
	// leave it untouched until actual check-in.
	if sameDay(dr.CheckIn, now) {
		if err := rm.SetStatus(domainroom.StatusOccupied, now); err != nil {
			return nil, err
		}
		if err := unit.Rooms().Save(ctx, rm); err != nil {
			return nil, err
		}
	}

	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.publish(ctx, bk)
	return bk, nil
}

// CheckIn transitions confirmed → checked-in, marks the room occupied,
// and bumps the guest's stay counter.
func (s *Service) CheckIn(ctx context.Context, id domainbooking.ID, actor domainstaff.ID) (*domainbooking.Booking, error) {
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

	bk, err := unit.Bookings().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := bk.CheckIn(actor, now); err != nil {
		return nil, err
	}

	rm, err := unit.Rooms().ByID(ctx, bk.RoomID)
	if err != nil {
		return nil, err
	}
	if err := rm.SetStatus(domainroom.StatusOccupied, now); err != nil {
		return nil, err
	}

	gst, err := unit.Guests().ByID(ctx, bk.GuestID)
	if err != nil {
		return nil, err
	}
	gst.RecordStay(now)

	if err := unit.Bookings().Update(ctx, bk); err != nil {
		return nil, err
	}
	if err := unit.Rooms().Save(ctx, rm); err != nil {
		return nil, err
	}
	if err := unit.Guests().Save(ctx, gst); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.publish(ctx, bk)
	return bk, nil
}

type ChargeParams struct {
	Description string
	AmountCents int64
}

type CheckOutResult struct {
	Booking           *domainbooking.Booking
	AdditionalCharges int64
}

// CheckOut transitions checked-in → checked-out, folds extra charges
// into the total, sends the room to cleaning, and credits the guest's
// lifetime spend with the final amount.
func (s *Service) CheckOut(ctx context.Context, id domainbooking.ID, charges []ChargeParams, actor domainstaff.ID) (*CheckOutResult, error) {
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

	bk, err := unit.Bookings().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	items := make([]domainbooking.Charge, 0, len(charges))
	for _, c := range charges {
		items = append(items, domainbooking.Charge{Description: c.Description, AmountCents: c.AmountCents, At: now})
	}
	extra, err := bk.CheckOut(items, actor, now)
	if err != nil {
		return nil, err
	}

	rm, err := unit.Rooms().ByID(ctx, bk.RoomID)
	if err != nil {
		return nil, err
	}
	if err := rm.SetStatus(domainroom.StatusCleaning, now); err != nil {
		return nil, err
	}

	gst, err := unit.Guests().ByID(ctx, bk.GuestID)
	if err != nil {
		return nil, err
	}
	gst.RecordSpend(bk.TotalAmountCents, now)

	if err := unit.Bookings().Update(ctx, bk); err != nil {
		return nil, err
	}
	if err := unit.Rooms().Save(ctx, rm); err != nil {
		return nil, err
	}
	if err := unit.Guests().Save(ctx, gst); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.publish(ctx, bk)
	return &CheckOutResult{Booking: bk, AdditionalCharges: extra}, nil
}

// Cancel soft-cancels a confirmed or checked-in booking. The room is
// freed only when no other active stay accounts for its occupancy.
func (s *Service) Cancel(ctx context.Context, id domainbooking.ID, reason string) (*domainbooking.Booking, error) {
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

	bk, err := unit.Bookings().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := bk.Cancel(reason, now); err != nil {
		return nil, err
	}
	if err := unit.Bookings().Update(ctx, bk); err != nil {
		return nil, err
	}
	if err := s.releaseRoomIfVacated(ctx, unit, bk.RoomID, now); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.publish(ctx, bk)
	return bk, nil
}

// MarkNoShow closes a confirmed booking whose guest never arrived. The
// room is freed only when no other active stay accounts for its
// occupancy.
func (s *Service) MarkNoShow(ctx context.Context, id domainbooking.ID) (*domainbooking.Booking, error) {
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

	bk, err := unit.Bookings().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := bk.MarkNoShow(now); err != nil {
		return nil, err
	}
	if err := unit.Bookings().Update(ctx, bk); err != nil {
		return nil, err
	}
	if err := s.releaseRoomIfVacated(ctx, unit, bk.RoomID, now); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.publish(ctx, bk)
	return bk, nil
}

type UpdateParams struct {
	GuestID         *domainguest.ID
	RoomID          *domainroom.ID
	CheckIn         *time.Time
	CheckOut        *time.Time
	NumberOfGuests  *int
	TaxCents        *int64
	DiscountCents   *int64
	PaymentStatus   *domainbooking.PaymentStatus
	SpecialRequests *string
	Notes           *string
}

// Update applies a general edit to a non-terminal booking. Date or
// room changes re-run the overlap check (excluding the booking itself)
// and re-snapshot the room rate.
func (s *Service) Update(ctx context.Context, id domainbooking.ID, params UpdateParams) (*domainbooking.Booking, error) {
	// Peek at the booking outside the lock to learn the target room.
	peekUnit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	existing, err := peekUnit.Bookings().ByID(uow.Context(ctx, peekUnit), id)
	_ = peekUnit.Rollback(ctx)
	if err != nil {
		return nil, err
	}
	if err := existing.EnsureEditable(); err != nil {
		return nil, err
	}

	targetRoom := existing.RoomID
	if params.RoomID != nil {
		targetRoom = *params.RoomID
	}
	datesChanged := params.CheckIn != nil || params.CheckOut != nil
	roomChanged := targetRoom != existing.RoomID

	unlock := s.locks.lock(targetRoom)
	defer unlock()

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

	bk, err := unit.Bookings().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bk.EnsureEditable(); err != nil {
		return nil, err
	}

	now := s.now()

	if params.GuestID != nil {
		gst, err := unit.Guests().ByID(ctx, *params.GuestID)
		if err != nil {
			return nil, err
		}
		bk.GuestID = gst.ID
	}

	if datesChanged || roomChanged {
		checkIn := bk.Range.CheckIn
		checkOut := bk.Range.CheckOut
		if params.CheckIn != nil {
			checkIn = *params.CheckIn
		}
		if params.CheckOut != nil {
			checkOut = *params.CheckOut
		}
		dr, err := daterange.New(checkIn, checkOut)
		if err != nil {
			return nil, err
		}

		rm, err := unit.Rooms().ByID(ctx, targetRoom)
		if err != nil {
			return nil, err
		}
		if !rm.IsActive {
			return nil, domainroom.ErrNotFound
		}

		conflict, err := s.hasConflict(ctx, unit, rm.ID, dr, bk.ID)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, domainbooking.ErrRoomConflict
		}

		tax := bk.TaxCents
		discount := bk.DiscountCents
		if params.TaxCents != nil {
			tax = *params.TaxCents
		}
		if params.DiscountCents != nil {
			discount = *params.DiscountCents
		}
		bk.RoomID = rm.ID
		if err := bk.Reprice(rm.PricePerNightCents, dr, tax, discount, now); err != nil {
			return nil, err
		}
	} else if params.TaxCents != nil || params.DiscountCents != nil {
		tax := bk.TaxCents
		discount := bk.DiscountCents
		if params.TaxCents != nil {
			tax = *params.TaxCents
		}
		if params.DiscountCents != nil {
			discount = *params.DiscountCents
		}
		if err := bk.Reprice(bk.RoomRateCents, bk.Range, tax, discount, now); err != nil {
			return nil, err
		}
	}

	if params.NumberOfGuests != nil {
		if *params.NumberOfGuests <= 0 {
			return nil, domainbooking.ErrInvalidGuestCount
		}
		bk.NumberOfGuests = *params.NumberOfGuests
	}
	if params.PaymentStatus != nil {
		bk.PaymentStatus = *params.PaymentStatus
	}
	if params.SpecialRequests != nil {
		bk.SpecialRequests = *params.SpecialRequests
	}
	if params.Notes != nil {
		bk.Notes = *params.Notes
	}
	bk.Record(domainbooking.Updated{BookingID: bk.ID, RoomID: bk.RoomID, Range: bk.Range, At: now})

	if err := unit.Bookings().Update(ctx, bk); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.publish(ctx, bk)
	return bk, nil
}

// Get returns a single booking.
func (s *Service) Get(ctx context.Context, id domainbooking.ID) (*domainbooking.Booking, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = uow.Context(ctx, unit)
	defer unit.Rollback(ctx)
	return unit.Bookings().ByID(ctx, id)
}

// ByNumber supports the public reservation lookup.
func (s *Service) ByNumber(ctx context.Context, number string) (*domainbooking.Booking, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = uow.Context(ctx, unit)
	defer unit.Rollback(ctx)
	return unit.Bookings().ByNumber(ctx, number)
}

// List returns bookings matching the filter plus the unpaged total.
func (s *Service) List(ctx context.Context, params domainbooking.ListParams) ([]*domainbooking.Booking, int, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	ctx = uow.Context(ctx, unit)
	defer unit.Rollback(ctx)
	return unit.Bookings().List(ctx, params)
}

// Arrivals lists active bookings whose check-in falls on the given day.
func (s *Service) Arrivals(ctx context.Context, day time.Time) ([]*domainbooking.Booking, error) {
	from := startOfDay(day)
	to := from.Add(24 * time.Hour)
	items, _, err := s.List(ctx, domainbooking.ListParams{
		Statuses:    []domainbooking.Status{domainbooking.StatusConfirmed, domainbooking.StatusCheckedIn},
		CheckInFrom: from,
		CheckInTo:   to,
	})
	return items, err
}

// Departures lists checked-in bookings whose check-out falls on the day.
func (s *Service) Departures(ctx context.Context, day time.Time) ([]*domainbooking.Booking, error) {
	from := startOfDay(day)
	to := from.Add(24 * time.Hour)
	items, _, err := s.List(ctx, domainbooking.ListParams{
		Statuses:     []domainbooking.Status{domainbooking.StatusCheckedIn},
		CheckOutFrom: from,
		CheckOutTo:   to,
	})
	return items, err
}

// hasConflict fetches the room's active bookings and tests the
// half-open ranges pairwise against the candidate.
func (s *Service) hasConflict(ctx context.Context, unit uow.UnitOfWork, roomID domainroom.ID, dr daterange.DateRange, exclude domainbooking.ID) (bool, error) {
	active, err := unit.Bookings().ActiveByRoom(ctx, roomID)
	if err != nil {
		return false, err
	}
	for _, other := range active {
		if exclude != "" && other.ID == exclude {
			continue
		}
		if other.Range.Overlaps(dr) {
			return true, nil
		}
	}
	return false, nil
}

// releaseRoomIfVacated frees an occupied room once nothing holds it
// anymore: neither a checked-in stay nor a confirmed stay covering
// today. Rooms in cleaning or maintenance are left alone. The caller
// must persist the terminal booking first so it no longer counts as
// active here.
func (s *Service) releaseRoomIfVacated(ctx context.Context, unit uow.UnitOfWork, roomID domainroom.ID, now time.Time) error {
	rm, err := unit.Rooms().ByID(ctx, roomID)
	if err != nil {
		return err
	}
	if rm.Status != domainroom.StatusOccupied {
		return nil
	}
	active, err := unit.Bookings().ActiveByRoom(ctx, roomID)
	if err != nil {
		return err
	}
	for _, other := range active {
		if other.Status == domainbooking.StatusCheckedIn || other.Range.ContainsDate(now) {
			return nil
		}
	}
	if err := rm.SetStatus(domainroom.StatusAvailable, now); err != nil {
		return err
	}
	return unit.Rooms().Save(ctx, rm)
}

func (s *Service) publish(ctx context.Context, bk *domainbooking.Booking) {
	pending := bk.PendingEvents()
	bk.ClearEvents()
	if s.Publisher == nil {
		return
	}
	for _, ev := range pending {
		if err := s.Publisher.Publish(ctx, ev); err != nil && s.Logger != nil {
			s.Logger.Warn("event publish failed", "event", ev.EventName(), "booking_id", ev.AggregateID(), "error", err)
		}
	}
}

// FormatBookingNumber renders the sequential, human-readable booking
// identifier (BK000001, BK000002, ...).
func FormatBookingNumber(seq int64) string {
	return fmt.Sprintf("BK%06d", seq)
}

func sameDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsValidationError groups the input-shaped failures handlers map to
// 400 responses.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, domainbooking.ErrActorRequired),
		errors.Is(err, domainbooking.ErrInvalidGuestCount),
		errors.Is(err, domainbooking.ErrReasonRequired),
		errors.Is(err, domainbooking.ErrNegativeAdjustment),
		errors.Is(err, domainbooking.ErrChargeAmountInvalid):
		return true
	}
	return false
}
