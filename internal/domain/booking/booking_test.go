package booking

import (
	"errors"
	"testing"
	"time"

	"frontdesk/internal/domain/shared/daterange"
)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	dr, err := daterange.New(
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	b, err := New(CreateParams{
		ID:             "bk-1",
		BookingNumber:  "BK000001",
		GuestID:        "guest-1",
		RoomID:         "room-1",
		Range:          dr,
		NumberOfGuests: 2,
		RoomRateCents:  10000,
		TaxCents:       1000,
		DiscountCents:  500,
		CreatedBy:      "staff-1",
		Now:            testNow,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestNewStartsConfirmedWithDerivedTotal(t *testing.T) {
	b := newTestBooking(t)
	if b.Status != StatusConfirmed {
		t.Fatalf("Status = %q, want confirmed", b.Status)
	}
	if b.PaymentStatus != PaymentPending {
		t.Fatalf("PaymentStatus = %q, want pending", b.PaymentStatus)
	}
	if b.NumberOfNights != 3 || b.TotalAmountCents != 30500 {
		t.Fatalf("nights=%d total=%d, want 3/30500", b.NumberOfNights, b.TotalAmountCents)
	}
	events := b.PendingEvents()
	if len(events) != 1 || events[0].EventName() != "booking.created" {
		t.Fatalf("pending events = %v", events)
	}
}

func TestNewValidation(t *testing.T) {
	dr, _ := daterange.New(testNow, testNow.AddDate(0, 0, 2))
	base := CreateParams{
		ID: "bk-2", BookingNumber: "BK000002", GuestID: "g", RoomID: "r",
		Range: dr, NumberOfGuests: 1, RoomRateCents: 5000, CreatedBy: "s", Now: testNow,
	}

	noGuests := base
	noGuests.NumberOfGuests = 0
	if _, err := New(noGuests); !errors.Is(err, ErrInvalidGuestCount) {
		t.Fatalf("zero guests: got %v", err)
	}

	noActor := base
	noActor.CreatedBy = ""
	if _, err := New(noActor); !errors.Is(err, ErrActorRequired) {
		t.Fatalf("missing actor: got %v", err)
	}

	negative := base
	negative.DiscountCents = -1
	if _, err := New(negative); !errors.Is(err, ErrNegativeAdjustment) {
		t.Fatalf("negative discount: got %v", err)
	}
}

func TestLifecycleHappyPath(t *testing.T) {
	b := newTestBooking(t)
	b.ClearEvents()

	if err := b.CheckIn("staff-2", testNow); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if b.Status != StatusCheckedIn || b.ActualCheckIn == nil || b.CheckedInBy != "staff-2" {
		t.Fatalf("after check-in: %+v", b)
	}

	extra, err := b.CheckOut([]Charge{{Description: "minibar", AmountCents: 1500}}, "staff-3", testNow.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if extra != 1500 {
		t.Fatalf("extra = %d, want 1500", extra)
	}
	if b.Status != StatusCheckedOut || b.TotalAmountCents != 32000 {
		t.Fatalf("after check-out: status=%q total=%d", b.Status, b.TotalAmountCents)
	}

	names := make([]string, 0, 2)
	for _, e := range b.PendingEvents() {
		names = append(names, e.EventName())
	}
	if len(names) != 2 || names[0] != "booking.checked_in" || names[1] != "booking.checked_out" {
		t.Fatalf("event names = %v", names)
	}
}

func TestCheckInRequiresConfirmed(t *testing.T) {
	b := newTestBooking(t)
	if err := b.Cancel("plans changed", testNow); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := b.CheckIn("staff-2", testNow); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("check-in after cancel: got %v", err)
	}
}

func TestCheckOutRequiresCheckedIn(t *testing.T) {
	b := newTestBooking(t)
	if _, err := b.CheckOut(nil, "staff-2", testNow); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("check-out while confirmed: got %v", err)
	}
}

func TestCheckOutRejectsNonPositiveCharges(t *testing.T) {
	b := newTestBooking(t)
	if err := b.CheckIn("staff-2", testNow); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if _, err := b.CheckOut([]Charge{{Description: "bad", AmountCents: 0}}, "staff-2", testNow); !errors.Is(err, ErrChargeAmountInvalid) {
		t.Fatalf("zero charge: got %v", err)
	}
}

func TestCancelRules(t *testing.T) {
	b := newTestBooking(t)
	if err := b.Cancel("  ", testNow); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("blank reason: got %v", err)
	}
	if err := b.Cancel("plans changed", testNow); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if b.CancellationReason != "plans changed" || b.CancellationDate == nil {
		t.Fatalf("cancellation fields: %+v", b)
	}
	if err := b.Cancel("again", testNow); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("double cancel: got %v", err)
	}
}

func TestCancelAllowedFromCheckedIn(t *testing.T) {
	b := newTestBooking(t)
	if err := b.CheckIn("staff-2", testNow); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if err := b.Cancel("emergency", testNow); err != nil {
		t.Fatalf("cancel from checked-in: %v", err)
	}
}

func TestCancelForbiddenAfterCheckOut(t *testing.T) {
	b := newTestBooking(t)
	if err := b.CheckIn("staff-2", testNow); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if _, err := b.CheckOut(nil, "staff-2", testNow); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if err := b.Cancel("too late", testNow); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancel after check-out: got %v", err)
	}
}

func TestMarkNoShowOnlyFromConfirmed(t *testing.T) {
	b := newTestBooking(t)
	if err := b.MarkNoShow(testNow); err != nil {
		t.Fatalf("MarkNoShow: %v", err)
	}
	if b.Status != StatusNoShow {
		t.Fatalf("Status = %q, want no-show", b.Status)
	}

	b2 := newTestBooking(t)
	if err := b2.CheckIn("staff-2", testNow); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if err := b2.MarkNoShow(testNow); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("no-show after check-in: got %v", err)
	}
}

func TestEnsureEditableRejectsTerminalStates(t *testing.T) {
	b := newTestBooking(t)
	if err := b.EnsureEditable(); err != nil {
		t.Fatalf("confirmed should be editable: %v", err)
	}
	if err := b.Cancel("done", testNow); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := b.EnsureEditable(); !errors.Is(err, ErrTerminal) {
		t.Fatalf("cancelled should be frozen: got %v", err)
	}
}

func TestRepriceKeepsAccruedCharges(t *testing.T) {
	b := newTestBooking(t)
	b.AdditionalCharges = []Charge{{Description: "minibar", AmountCents: 1500, At: testNow}}

	dr, _ := daterange.New(
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
	)
	if err := b.Reprice(12000, dr, 0, 0, testNow); err != nil {
		t.Fatalf("Reprice: %v", err)
	}
	if b.NumberOfNights != 2 {
		t.Fatalf("nights = %d, want 2", b.NumberOfNights)
	}
	if b.TotalAmountCents != 25500 {
		t.Fatalf("total = %d, want 25500", b.TotalAmountCents)
	}
}
