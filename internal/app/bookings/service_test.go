package bookings_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appbookings "frontdesk/internal/app/bookings"
	domainbooking "frontdesk/internal/domain/booking"
	domainguest "frontdesk/internal/domain/guest"
	domainroom "frontdesk/internal/domain/room"
	"frontdesk/internal/domain/shared/events"
	"frontdesk/internal/infra/storage/memory"
)

var clock = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

type capturingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, e events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventName())
	}
	return out
}

type fixture struct {
	service   *appbookings.Service
	factory   memory.Factory
	publisher *capturingPublisher
	guestID   domainguest.ID
	roomID    domainroom.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	factory := memory.NewFactory()
	publisher := &capturingPublisher{}

	service := appbookings.NewService(factory, publisher, nil)
	service.Clock = func() time.Time { return clock }

	g, err := domainguest.New(domainguest.CreateParams{
		ID: "guest-1", FirstName: "Maria", LastName: "Silva",
		Email: "maria@example.com", IDNumber: "P123456", Now: clock,
	})
	if err != nil {
		t.Fatalf("guest.New: %v", err)
	}
	if err := factory.GuestRepo.Save(ctx, g); err != nil {
		t.Fatalf("seed guest: %v", err)
	}

	rm, err := domainroom.New(domainroom.CreateParams{
		ID: "room-101", RoomNumber: "101", Floor: 1, Type: "double",
		Capacity: 2, RateCents: 10000, Now: clock,
	})
	if err != nil {
		t.Fatalf("room.New: %v", err)
	}
	if err := factory.RoomRepo.Save(ctx, rm); err != nil {
		t.Fatalf("seed room: %v", err)
	}

	return &fixture{service: service, factory: factory, publisher: publisher, guestID: g.ID, roomID: rm.ID}
}

func (f *fixture) createParams(checkIn, checkOut time.Time) appbookings.CreateParams {
	return appbookings.CreateParams{
		GuestID:        f.guestID,
		RoomID:         f.roomID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: 2,
		TaxCents:       1000,
		DiscountCents:  500,
		ActorID:        "staff-1",
	}
}

func (f *fixture) room(t *testing.T) *domainroom.Room {
	t.Helper()
	rm, err := f.factory.RoomRepo.ByID(context.Background(), f.roomID)
	if err != nil {
		t.Fatalf("load room: %v", err)
	}
	return rm
}

func (f *fixture) guest(t *testing.T) *domainguest.Guest {
	t.Helper()
	g, err := f.factory.GuestRepo.ByID(context.Background(), f.guestID)
	if err != nil {
		t.Fatalf("load guest: %v", err)
	}
	return g
}

func date(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateDerivesPricingAndNumber(t *testing.T) {
	f := newFixture(t)
	bk, err := f.service.Create(context.Background(), f.createParams(date(10), date(13)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if bk.BookingNumber != "BK000001" {
		t.Fatalf("BookingNumber = %q, want BK000001", bk.BookingNumber)
	}
	if bk.NumberOfNights != 3 || bk.TotalAmountCents != 30500 {
		t.Fatalf("nights=%d total=%d, want 3/30500", bk.NumberOfNights, bk.TotalAmountCents)
	}
	if bk.RoomRateCents != 10000 {
		t.Fatalf("rate snapshot = %d, want 10000", bk.RoomRateCents)
	}
	if got := f.publisher.names(); len(got) != 1 || got[0] != "booking.created" {
		t.Fatalf("published events = %v", got)
	}

	second, err := f.service.Create(context.Background(), f.createParams(date(20), date(22)))
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if second.BookingNumber != "BK000002" {
		t.Fatalf("second BookingNumber = %q, want BK000002", second.BookingNumber)
	}
}

func TestCreateRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	if _, err := f.service.Create(context.Background(), f.createParams(date(10), date(13))); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := f.service.Create(context.Background(), f.createParams(date(12), date(15)))
	if !errors.Is(err, domainbooking.ErrRoomConflict) {
		t.Fatalf("overlapping Create: got %v, want ErrRoomConflict", err)
	}
}

func TestCreateAllowsBackToBackStays(t *testing.T) {
	f := newFixture(t)
	if _, err := f.service.Create(context.Background(), f.createParams(date(10), date(13))); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := f.service.Create(context.Background(), f.createParams(date(13), date(15))); err != nil {
		t.Fatalf("back-to-back Create: %v", err)
	}
}

func TestCreateIgnoresCancelledBookings(t *testing.T) {
	f := newFixture(t)
	first, err := f.service.Create(context.Background(), f.createParams(date(10), date(13)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.service.Cancel(context.Background(), first.ID, "plans changed"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := f.service.Create(context.Background(), f.createParams(date(10), date(13))); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestCreateSameDayOccupiesRoom(t *testing.T) {
	f := newFixture(t)
	if _, err := f.service.Create(context.Background(), f.createParams(date(1), date(3))); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := f.room(t).Status; got != domainroom.StatusOccupied {
		t.Fatalf("room status = %q, want occupied", got)
	}
}

func TestCreateConcurrentRequestsOneWins(t *testing.T) {
	f := newFixture(t)
	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Create(context.Background(), f.createParams(date(10), date(13)))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, domainbooking.ErrRoomConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Fatalf("created = %d, want exactly 1", created)
	}
}

func TestCheckInUpdatesRoomAndGuest(t *testing.T) {
	f := newFixture(t)
	bk, err := f.service.Create(context.Background(), f.createParams(date(10), date(13)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.service.CheckIn(context.Background(), bk.ID, "staff-2"); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if got := f.room(t).Status; got != domainroom.StatusOccupied {
		t.Fatalf("room status = %q, want occupied", got)
	}
	if got := f.guest(t).TotalStays; got != 1 {
		t.Fatalf("TotalStays = %d, want 1", got)
	}
}

func TestCheckOutFoldsChargesAndCreditsGuest(t *testing.T) {
	f := newFixture(t)
	bk, err := f.service.Create(context.Background(), f.createParams(date(10), date(13)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.service.CheckIn(context.Background(), bk.ID, "staff-2"); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	result, err := f.service.CheckOut(context.Background(), bk.ID, []appbookings.ChargeParams{
		{Description: "minibar", AmountCents: 1500},
	}, "staff-2")
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if result.AdditionalCharges != 1500 {
		t.Fatalf("AdditionalCharges = %d, want 1500", result.AdditionalCharges)
	}
	if result.Booking.TotalAmountCents != 32000 {
		t.Fatalf("total = %d, want 32000", result.Booking.TotalAmountCents)
	}
	if got := f.room(t).Status; got != domainroom.StatusCleaning {
		t.Fatalf("room status = %q, want cleaning", got)
	}
	if got := f.guest(t).TotalSpentCents; got != 32000 {
		t.Fatalf("TotalSpentCents = %d, want 32000", got)
	}
}

type failingGuestRepo struct {
	domainguest.Repository
	saveErr error
}

func (r *failingGuestRepo) Save(ctx context.Context, g *domainguest.Guest) error {
	return r.saveErr
}

func TestCheckInRollsBackOnGuestSaveFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bk, err := f.service.Create(ctx, f.createParams(date(10), date(13)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	saveErr := errors.New("guest store offline")
	broken := f.factory
	broken.GuestRepo = &failingGuestRepo{Repository: f.factory.GuestRepo, saveErr: saveErr}
	svc := appbookings.NewService(broken, f.publisher, nil)
	svc.Clock = func() time.Time { return clock }

	if _, err := svc.CheckIn(ctx, bk.ID, "staff-2"); !errors.Is(err, saveErr) {
		t.Fatalf("CheckIn: got %v, want %v", err, saveErr)
	}

	// The failed unit must leave no trace: booking, room, and guest all
	// keep their pre-check-in state.
	stored, err := f.factory.BookingRepo.ByID(ctx, bk.ID)
	if err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if stored.Status != domainbooking.StatusConfirmed {
		t.Fatalf("booking status = %q, want confirmed", stored.Status)
	}
	if got := f.room(t).Status; got != domainroom.StatusAvailable {
		t.Fatalf("room status = %q, want available", got)
	}
	if got := f.guest(t).TotalStays; got != 0 {
		t.Fatalf("TotalStays = %d, want 0", got)
	}
}

func TestCancelFromCheckedInFreesRoom(t *testing.T) {
	f := newFixture(t)
	bk, err := f.service.Create(context.Background(), f.createParams(date(10), date(13)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.service.CheckIn(context.Background(), bk.ID, "staff-2"); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if _, err := f.service.Cancel(context.Background(), bk.ID, "emergency"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got := f.room(t).Status; got != domainroom.StatusAvailable {
		t.Fatalf("room status = %q, want available", got)
	}
}

func TestCancelSameDayConfirmedFreesRoom(t *testing.T) {
	f := newFixture(t)
	bk, err := f.service.Create(context.Background(), f.createParams(date(1), date(3)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := f.room(t).Status; got != domainroom.StatusOccupied {
		t.Fatalf("precondition: room status = %q", got)
	}
	if _, err := f.service.Cancel(context.Background(), bk.ID, "plans changed"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got := f.room(t).Status; got != domainroom.StatusAvailable {
		t.Fatalf("room status = %q, want available", got)
	}
}

func TestMarkNoShowReleasesOccupiedRoom(t *testing.T) {
	f := newFixture(t)
	bk, err := f.service.Create(context.Background(), f.createParams(date(1), date(3)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := f.room(t).Status; got != domainroom.StatusOccupied {
		t.Fatalf("precondition: room status = %q", got)
	}
	if _, err := f.service.MarkNoShow(context.Background(), bk.ID); err != nil {
		t.Fatalf("MarkNoShow: %v", err)
	}
	if got := f.room(t).Status; got != domainroom.StatusAvailable {
		t.Fatalf("room status = %q, want available", got)
	}
}

func TestMarkNoShowKeepsRoomHeldByCurrentStay(t *testing.T) {
	f := newFixture(t)
	current, err := f.service.Create(context.Background(), f.createParams(date(1), date(3)))
	if err != nil {
		t.Fatalf("Create current: %v", err)
	}
	if _, err := f.service.CheckIn(context.Background(), current.ID, "staff-2"); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	future, err := f.service.Create(context.Background(), f.createParams(date(10), date(13)))
	if err != nil {
		t.Fatalf("Create future: %v", err)
	}

	if _, err := f.service.MarkNoShow(context.Background(), future.ID); err != nil {
		t.Fatalf("MarkNoShow: %v", err)
	}
	// The checked-in stay still holds the room.
	if got := f.room(t).Status; got != domainroom.StatusOccupied {
		t.Fatalf("room status = %q, want occupied", got)
	}
}

func TestUpdateRepricesOnDateChange(t *testing.T) {
	f := newFixture(t)
	bk, err := f.service.Create(context.Background(), f.createParams(date(10), date(13)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newOut := date(12)
	updated, err := f.service.Update(context.Background(), bk.ID, appbookings.UpdateParams{CheckOut: &newOut})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.NumberOfNights != 2 {
		t.Fatalf("nights = %d, want 2", updated.NumberOfNights)
	}
	if updated.TotalAmountCents != 20500 {
		t.Fatalf("total = %d, want 20500", updated.TotalAmountCents)
	}
}

func TestUpdateRejectsConflictingDates(t *testing.T) {
	f := newFixture(t)
	if _, err := f.service.Create(context.Background(), f.createParams(date(10), date(13))); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second, err := f.service.Create(context.Background(), f.createParams(date(13), date(15)))
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}

	newIn := date(12)
	_, err = f.service.Update(context.Background(), second.ID, appbookings.UpdateParams{CheckIn: &newIn})
	if !errors.Is(err, domainbooking.ErrRoomConflict) {
		t.Fatalf("conflicting update: got %v, want ErrRoomConflict", err)
	}
}

func TestUpdateRejectsTerminalBookings(t *testing.T) {
	f := newFixture(t)
	bk, err := f.service.Create(context.Background(), f.createParams(date(10), date(13)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.service.Cancel(context.Background(), bk.ID, "plans changed"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	notes := "late arrival"
	_, err = f.service.Update(context.Background(), bk.ID, appbookings.UpdateParams{Notes: &notes})
	if !errors.Is(err, domainbooking.ErrTerminal) {
		t.Fatalf("update after cancel: got %v, want ErrTerminal", err)
	}
}

func TestArrivalsAndDepartures(t *testing.T) {
	f := newFixture(t)
	arriving, err := f.service.Create(context.Background(), f.createParams(date(10), date(13)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.service.Create(context.Background(), f.createParams(date(20), date(22))); err != nil {
		t.Fatalf("Create: %v", err)
	}

	arrivals, err := f.service.Arrivals(context.Background(), date(10))
	if err != nil {
		t.Fatalf("Arrivals: %v", err)
	}
	if len(arrivals) != 1 || arrivals[0].ID != arriving.ID {
		t.Fatalf("arrivals = %v", arrivals)
	}

	if _, err := f.service.CheckIn(context.Background(), arriving.ID, "staff-2"); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	departures, err := f.service.Departures(context.Background(), date(13))
	if err != nil {
		t.Fatalf("Departures: %v", err)
	}
	if len(departures) != 1 || departures[0].ID != arriving.ID {
		t.Fatalf("departures = %v", departures)
	}
}

func TestByNumberLookup(t *testing.T) {
	f := newFixture(t)
	bk, err := f.service.Create(context.Background(), f.createParams(date(10), date(13)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	found, err := f.service.ByNumber(context.Background(), bk.BookingNumber)
	if err != nil {
		t.Fatalf("ByNumber: %v", err)
	}
	if found.ID != bk.ID {
		t.Fatalf("ByNumber returned %q, want %q", found.ID, bk.ID)
	}
	if _, err := f.service.ByNumber(context.Background(), "BK999999"); !errors.Is(err, domainbooking.ErrNotFound) {
		t.Fatalf("unknown number: got %v", err)
	}
}

func TestLifecycleEventsPublished(t *testing.T) {
	f := newFixture(t)
	bk, err := f.service.Create(context.Background(), f.createParams(date(10), date(13)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.service.CheckIn(context.Background(), bk.ID, "staff-2"); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if _, err := f.service.CheckOut(context.Background(), bk.ID, nil, "staff-2"); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	want := []string{"booking.created", "booking.checked_in", "booking.checked_out"}
	got := f.publisher.names()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFormatBookingNumber(t *testing.T) {
	if got := appbookings.FormatBookingNumber(1); got != "BK000001" {
		t.Fatalf("FormatBookingNumber(1) = %q", got)
	}
	if got := appbookings.FormatBookingNumber(1234567); got != "BK1234567" {
		t.Fatalf("FormatBookingNumber(1234567) = %q", got)
	}
}
