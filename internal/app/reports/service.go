package reports

import (
	"context"
	"log/slog"
	"time"

	"frontdesk/internal/app/uow"
	domainbooking "frontdesk/internal/domain/booking"
	domainroom "frontdesk/internal/domain/room"
	"frontdesk/internal/domain/shared/daterange"
)

type Service struct {
	UoW    uow.Factory
	Logger *slog.Logger
}

func NewService(factory uow.Factory, logger *slog.Logger) *Service {
	return &Service{UoW: factory, Logger: logger}
}

// Occupancy summarizes room usage for a single night.
type Occupancy struct {
	Date           time.Time `json:"date"`
	TotalRooms     int       `json:"totalRooms"`
	OccupiedRooms  int       `json:"occupiedRooms"`
	AvailableRooms int       `json:"availableRooms"`
	OccupancyRate  float64   `json:"occupancyRate"`
}

// OccupancyFor computes the share of active rooms holding an active
// booking on the given night.
func (s *Service) OccupancyFor(ctx context.Context, day time.Time) (*Occupancy, error) {
	night, err := daterange.New(startOfDay(day), startOfDay(day).Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = uow.Context(ctx, unit)
	defer unit.Rollback(ctx)

	rooms, _, err := unit.Rooms().List(ctx, domainroom.ListParams{})
	if err != nil {
		return nil, err
	}
	total := 0
	for _, rm := range rooms {
		if rm.IsActive {
			total++
		}
	}

	busy, err := unit.Bookings().ActiveBetween(ctx, night)
	if err != nil {
		return nil, err
	}
	occupied := make(map[domainroom.ID]bool, len(busy))
	for _, bk := range busy {
		occupied[bk.RoomID] = true
	}

	report := &Occupancy{
		Date:           startOfDay(day),
		TotalRooms:     total,
		OccupiedRooms:  len(occupied),
		AvailableRooms: total - len(occupied),
	}
	if total > 0 {
		report.OccupancyRate = float64(len(occupied)) / float64(total)
	}
	return report, nil
}

// Revenue aggregates completed stays over a period.
type Revenue struct {
	From              time.Time `json:"from"`
	To                time.Time `json:"to"`
	CompletedStays    int       `json:"completedStays"`
	RoomRevenueCents  int64     `json:"roomRevenueCents"`
	ExtraChargesCents int64     `json:"extraChargesCents"`
	TotalRevenueCents int64     `json:"totalRevenueCents"`
	NightsSold        int       `json:"nightsSold"`
}

// RevenueFor sums the totals of bookings checked out inside the
// period.
func (s *Service) RevenueFor(ctx context.Context, from, to time.Time) (*Revenue, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = uow.Context(ctx, unit)
	defer unit.Rollback(ctx)

	completed, _, err := unit.Bookings().List(ctx, domainbooking.ListParams{
		Statuses:     []domainbooking.Status{domainbooking.StatusCheckedOut},
		CheckOutFrom: startOfDay(from),
		CheckOutTo:   startOfDay(to).Add(24 * time.Hour),
	})
	if err != nil {
		return nil, err
	}

	report := &Revenue{From: startOfDay(from), To: startOfDay(to)}
	for _, bk := range completed {
		var extras int64
		for _, c := range bk.AdditionalCharges {
			extras += c.AmountCents
		}
		report.CompletedStays++
		report.ExtraChargesCents += extras
		report.RoomRevenueCents += bk.TotalAmountCents - extras
		report.TotalRevenueCents += bk.TotalAmountCents
		report.NightsSold += bk.NumberOfNights
	}
	return report, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
