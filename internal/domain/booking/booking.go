package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"frontdesk/internal/domain/guest"
	"frontdesk/internal/domain/room"
	"frontdesk/internal/domain/shared/daterange"
	"frontdesk/internal/domain/shared/events"
	"frontdesk/internal/domain/staff"
)

var (
	ErrNotFound            = errors.New("booking: not found")
	ErrRoomConflict        = errors.New("booking: room is not available for the selected dates")
	ErrInvalidTransition   = errors.New("booking: invalid status transition")
	ErrTerminal            = errors.New("booking: cannot modify a booking that is checked-out or cancelled")
	ErrReasonRequired      = errors.New("booking: cancellation reason is required")
	ErrActorRequired       = errors.New("booking: acting staff member is required")
	ErrInvalidGuestCount   = errors.New("booking: number of guests must be positive")
	ErrNegativeAdjustment  = errors.New("booking: tax and discount cannot be negative")
	ErrChargeAmountInvalid = errors.New("booking: additional charge amount must be positive")
)

type ID string

type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked-in"
	StatusCheckedOut Status = "checked-out"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no-show"
)

// Terminal reports whether no further transition is defined out of s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCheckedOut, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Active statuses are the ones that occupy a room for overlap purposes.
func (s Status) Active() bool {
	return s == StatusConfirmed || s == StatusCheckedIn
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch PaymentStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case PaymentPending:
		return PaymentPending, nil
	case PaymentPartial:
		return PaymentPartial, nil
	case PaymentPaid:
		return PaymentPaid, nil
	case PaymentRefunded:
		return PaymentRefunded, nil
	default:
		return "", errors.New("booking: invalid payment status")
	}
}

// Charge is an extra line item folded into the total at check-out.
type Charge struct {
	Description string
	AmountCents int64
	At          time.Time
}

type Booking struct {
	ID            ID
	BookingNumber string
	GuestID       guest.ID
	RoomID        room.ID

	Range          daterange.DateRange
	NumberOfGuests int

	ActualCheckIn  *time.Time
	ActualCheckOut *time.Time

	Status        Status
	PaymentStatus PaymentStatus

	// RoomRateCents is snapshotted from the room at booking time and is
	// only re-read when the booking's room or dates are edited.
	RoomRateCents    int64
	NumberOfNights   int
	TaxCents         int64
	DiscountCents    int64
	TotalAmountCents int64

	AdditionalCharges []Charge

	SpecialRequests string
	Notes           string
	Source          string

	CancellationReason string
	CancellationDate   *time.Time

	CreatedBy    staff.ID
	CheckedInBy  staff.ID
	CheckedOutBy staff.ID

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

type ListParams struct {
	Statuses     []Status
	CheckInFrom  time.Time
	CheckInTo    time.Time
	CheckOutFrom time.Time
	CheckOutTo   time.Time
	GuestID      guest.ID
	Offset       int
	Limit        int
}

// Repository is the persistence façade the lifecycle logic talks to;
// it carries no business rules of its own.
type Repository interface {
	ByID(ctx context.Context, id ID) (*Booking, error)
	ByNumber(ctx context.Context, number string) (*Booking, error)
	Insert(ctx context.Context, b *Booking) error
	Update(ctx context.Context, b *Booking) error
	ActiveByRoom(ctx context.Context, roomID room.ID) ([]*Booking, error)
	ActiveBetween(ctx context.Context, r daterange.DateRange) ([]*Booking, error)
	List(ctx context.Context, params ListParams) ([]*Booking, int, error)
	Count(ctx context.Context, params ListParams) (int, error)
}

type CreateParams struct {
	ID              ID
	BookingNumber   string
	GuestID         guest.ID
	RoomID          room.ID
	Range           daterange.DateRange
	NumberOfGuests  int
	RoomRateCents   int64
	TaxCents        int64
	DiscountCents   int64
	SpecialRequests string
	Source          string
	CreatedBy       staff.ID
	Now             time.Time
}

// New builds a confirmed booking with derived pricing fields. Overlap
// checking and rate snapshotting happen in the application layer before
// this constructor runs.
func New(params CreateParams) (*Booking, error) {
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if params.NumberOfGuests <= 0 {
		return nil, ErrInvalidGuestCount
	}
	if params.CreatedBy == "" {
		return nil, ErrActorRequired
	}
	if params.TaxCents < 0 || params.DiscountCents < 0 {
		return nil, ErrNegativeAdjustment
	}
	quote := Derive(params.RoomRateCents, params.Range, params.TaxCents, params.DiscountCents, nil)
	now := params.Now.UTC()
	source := strings.TrimSpace(params.Source)
	if source == "" {
		source = "direct"
	}
	b := &Booking{
		ID:               params.ID,
		BookingNumber:    params.BookingNumber,
		GuestID:          params.GuestID,
		RoomID:           params.RoomID,
		Range:            params.Range,
		NumberOfGuests:   params.NumberOfGuests,
		Status:           StatusConfirmed,
		PaymentStatus:    PaymentPending,
		RoomRateCents:    params.RoomRateCents,
		NumberOfNights:   quote.Nights,
		TaxCents:         params.TaxCents,
		DiscountCents:    params.DiscountCents,
		TotalAmountCents: quote.TotalCents,
		SpecialRequests:  strings.TrimSpace(params.SpecialRequests),
		Source:           source,
		CreatedBy:        params.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	b.Record(Created{BookingID: b.ID, BookingNumber: b.BookingNumber, RoomID: b.RoomID, GuestID: b.GuestID, Range: b.Range, TotalCents: b.TotalAmountCents, At: now})
	return b, nil
}

// CheckIn moves confirmed → checked-in and stamps the acting staff.
func (b *Booking) CheckIn(by staff.ID, now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidTransition
	}
	if by == "" {
		return ErrActorRequired
	}
	now = now.UTC()
	b.Status = StatusCheckedIn
	b.ActualCheckIn = &now
	b.CheckedInBy = by
	b.touch(now)
	b.Record(CheckedIn{BookingID: b.ID, RoomID: b.RoomID, At: now})
	return nil
}

// CheckOut moves checked-in → checked-out, folding extra charges into
// the total. It returns the charge sum so callers can report it.
func (b *Booking) CheckOut(charges []Charge, by staff.ID, now time.Time) (int64, error) {
	if b.Status != StatusCheckedIn {
		return 0, ErrInvalidTransition
	}
	if by == "" {
		return 0, ErrActorRequired
	}
	now = now.UTC()
	var extra int64
	for _, c := range charges {
		if c.AmountCents <= 0 {
			return 0, ErrChargeAmountInvalid
		}
		if c.At.IsZero() {
			c.At = now
		}
		extra += c.AmountCents
		b.AdditionalCharges = append(b.AdditionalCharges, c)
	}
	b.TotalAmountCents += extra
	b.Status = StatusCheckedOut
	b.ActualCheckOut = &now
	b.CheckedOutBy = by
	b.touch(now)
	b.Record(CheckedOut{BookingID: b.ID, RoomID: b.RoomID, TotalCents: b.TotalAmountCents, At: now})
	return extra, nil
}

// Cancel is allowed from confirmed or checked-in, never from a
// terminal state. Callers restore room availability when the booking
// had already occupied its room.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.Status == StatusCancelled || b.Status == StatusCheckedOut || b.Status == StatusNoShow {
		return ErrInvalidTransition
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	now = now.UTC()
	b.Status = StatusCancelled
	b.CancellationReason = reason
	b.CancellationDate = &now
	b.touch(now)
	b.Record(Cancelled{BookingID: b.ID, RoomID: b.RoomID, Reason: reason, At: now})
	return nil
}

// MarkNoShow closes out a confirmed booking whose guest never arrived.
func (b *Booking) MarkNoShow(now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidTransition
	}
	now = now.UTC()
	b.Status = StatusNoShow
	b.touch(now)
	b.Record(NoShowRecorded{BookingID: b.ID, RoomID: b.RoomID, At: now})
	return nil
}

// Reprice re-snapshots the rate and re-derives nights and total after
// a date or room edit. Charges already accrued stay in the total.
func (b *Booking) Reprice(rateCents int64, dr daterange.DateRange, taxCents, discountCents int64, now time.Time) error {
	if b.Status.Terminal() {
		return ErrTerminal
	}
	if err := dr.Validate(); err != nil {
		return err
	}
	if taxCents < 0 || discountCents < 0 {
		return ErrNegativeAdjustment
	}
	quote := Derive(rateCents, dr, taxCents, discountCents, b.AdditionalCharges)
	b.Range = dr
	b.RoomRateCents = rateCents
	b.TaxCents = taxCents
	b.DiscountCents = discountCents
	b.NumberOfNights = quote.Nights
	b.TotalAmountCents = quote.TotalCents
	b.touch(now)
	return nil
}

// EnsureEditable guards general edits against terminal bookings.
func (b *Booking) EnsureEditable() error {
	if b.Status.Terminal() {
		return ErrTerminal
	}
	return nil
}

func (b *Booking) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	b.UpdatedAt = now.UTC()
}
