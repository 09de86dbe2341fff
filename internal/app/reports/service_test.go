package reports_test

import (
	"context"
	"testing"
	"time"

	appbookings "frontdesk/internal/app/bookings"
	"frontdesk/internal/app/reports"
	domainbooking "frontdesk/internal/domain/booking"
	domainguest "frontdesk/internal/domain/guest"
	domainroom "frontdesk/internal/domain/room"
	"frontdesk/internal/infra/storage/memory"
)

var clock = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func date(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T) (*reports.Service, *appbookings.Service, memory.Factory) {
	t.Helper()
	factory := memory.NewFactory()

	g, err := domainguest.New(domainguest.CreateParams{
		ID: "guest-1", FirstName: "Maria", LastName: "Silva",
		Email: "maria@example.com", IDNumber: "P123456", Now: clock,
	})
	if err != nil {
		t.Fatalf("guest.New: %v", err)
	}
	if err := factory.GuestRepo.Save(context.Background(), g); err != nil {
		t.Fatalf("seed guest: %v", err)
	}
	for _, number := range []string{"101", "102", "103"} {
		rm, err := domainroom.New(domainroom.CreateParams{
			ID:         domainroom.ID("room-" + number),
			RoomNumber: number,
			Capacity:   2,
			RateCents:  10000,
			Now:        clock,
		})
		if err != nil {
			t.Fatalf("room.New: %v", err)
		}
		if err := factory.RoomRepo.Save(context.Background(), rm); err != nil {
			t.Fatalf("seed room: %v", err)
		}
	}

	bookings := appbookings.NewService(factory, nil, nil)
	bookings.Clock = func() time.Time { return clock }
	return reports.NewService(factory, nil), bookings, factory
}

func createBooking(t *testing.T, service *appbookings.Service, room string, in, out int) *domainbooking.Booking {
	t.Helper()
	bk, err := service.Create(context.Background(), appbookings.CreateParams{
		GuestID:        "guest-1",
		RoomID:         domainroom.ID(room),
		CheckIn:        date(in),
		CheckOut:       date(out),
		NumberOfGuests: 2,
		ActorID:        "staff-1",
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return bk
}

func TestOccupancyCountsActiveBookings(t *testing.T) {
	service, bookings, _ := newFixture(t)
	createBooking(t, bookings, "room-101", 10, 13)
	createBooking(t, bookings, "room-102", 12, 14)
	cancelled := createBooking(t, bookings, "room-103", 10, 13)
	if _, err := bookings.Cancel(context.Background(), cancelled.ID, "plans changed"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	report, err := service.OccupancyFor(context.Background(), date(12))
	if err != nil {
		t.Fatalf("OccupancyFor: %v", err)
	}
	if report.TotalRooms != 3 || report.OccupiedRooms != 2 || report.AvailableRooms != 1 {
		t.Fatalf("occupancy = %+v", report)
	}
	if report.OccupancyRate < 0.66 || report.OccupancyRate > 0.67 {
		t.Fatalf("OccupancyRate = %f", report.OccupancyRate)
	}

	// Night 13 only room-102 is still occupied; room-101 checks out that day.
	report, err = service.OccupancyFor(context.Background(), date(13))
	if err != nil {
		t.Fatalf("OccupancyFor: %v", err)
	}
	if report.OccupiedRooms != 1 {
		t.Fatalf("night 13 occupied = %d, want 1", report.OccupiedRooms)
	}
}

func TestOccupancyEmptyHotel(t *testing.T) {
	service, _, _ := newFixture(t)
	report, err := service.OccupancyFor(context.Background(), date(12))
	if err != nil {
		t.Fatalf("OccupancyFor: %v", err)
	}
	if report.OccupiedRooms != 0 || report.OccupancyRate != 0 {
		t.Fatalf("occupancy = %+v", report)
	}
}

func TestRevenueSumsCompletedStays(t *testing.T) {
	service, bookings, _ := newFixture(t)

	// 3 nights at 10000, plus a 1500 minibar charge on check-out.
	first := createBooking(t, bookings, "room-101", 1, 4)
	if _, err := bookings.CheckIn(context.Background(), first.ID, "staff-1"); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if _, err := bookings.CheckOut(context.Background(), first.ID, []appbookings.ChargeParams{
		{Description: "minibar", AmountCents: 1500},
	}, "staff-1"); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}

	// 2 nights, no extras.
	second := createBooking(t, bookings, "room-102", 2, 4)
	if _, err := bookings.CheckIn(context.Background(), second.ID, "staff-1"); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if _, err := bookings.CheckOut(context.Background(), second.ID, nil, "staff-1"); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}

	// Still in house, excluded from revenue.
	createBooking(t, bookings, "room-103", 2, 6)

	report, err := service.RevenueFor(context.Background(), date(1), date(31))
	if err != nil {
		t.Fatalf("RevenueFor: %v", err)
	}
	if report.CompletedStays != 2 {
		t.Fatalf("CompletedStays = %d, want 2", report.CompletedStays)
	}
	if report.NightsSold != 5 {
		t.Fatalf("NightsSold = %d, want 5", report.NightsSold)
	}
	if report.RoomRevenueCents != 50000 {
		t.Fatalf("RoomRevenueCents = %d, want 50000", report.RoomRevenueCents)
	}
	if report.ExtraChargesCents != 1500 {
		t.Fatalf("ExtraChargesCents = %d, want 1500", report.ExtraChargesCents)
	}
	if report.TotalRevenueCents != 51500 {
		t.Fatalf("TotalRevenueCents = %d, want 51500", report.TotalRevenueCents)
	}

	// Window that misses both check-outs.
	report, err = service.RevenueFor(context.Background(), date(20), date(25))
	if err != nil {
		t.Fatalf("RevenueFor: %v", err)
	}
	if report.CompletedStays != 0 || report.TotalRevenueCents != 0 {
		t.Fatalf("empty window = %+v", report)
	}
}
