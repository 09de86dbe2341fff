package memory

import (
	"context"
	"errors"
	"testing"

	"frontdesk/internal/app/uow"
	domainbooking "frontdesk/internal/domain/booking"
)

func TestUnitRollbackRestoresStores(t *testing.T) {
	f := NewFactory()
	ctx := context.Background()

	bk := fixtureBooking(t, "bk-1", 10, 13)
	if err := f.BookingRepo.Insert(ctx, bk); err != nil {
		t.Fatalf("seed: %v", err)
	}

	unit, err := f.Begin(ctx, uow.TxOptions{})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	loaded, err := unit.Bookings().ByID(ctx, bk.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if err := loaded.CheckIn("staff-1", testNow); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if err := unit.Bookings().Update(ctx, loaded); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := unit.Bookings().Insert(ctx, fixtureBooking(t, "bk-2", 20, 22)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := unit.Rollback(ctx); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	stored, err := f.BookingRepo.ByID(ctx, bk.ID)
	if err != nil {
		t.Fatalf("ByID after rollback: %v", err)
	}
	if stored.Status != domainbooking.StatusConfirmed {
		t.Fatalf("Status = %q, want confirmed", stored.Status)
	}
	if _, err := f.BookingRepo.ByID(ctx, "bk-2"); !errors.Is(err, domainbooking.ErrNotFound) {
		t.Fatalf("rolled-back insert still visible: %v", err)
	}
}

func TestUnitCommitKeepsWrites(t *testing.T) {
	f := NewFactory()
	ctx := context.Background()

	bk := fixtureBooking(t, "bk-1", 10, 13)
	if err := f.BookingRepo.Insert(ctx, bk); err != nil {
		t.Fatalf("seed: %v", err)
	}

	unit, err := f.Begin(ctx, uow.TxOptions{})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	loaded, err := unit.Bookings().ByID(ctx, bk.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if err := loaded.CheckIn("staff-1", testNow); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if err := unit.Bookings().Update(ctx, loaded); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := unit.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	// Rollback after commit is a no-op.
	if err := unit.Rollback(ctx); err != nil {
		t.Fatalf("Rollback after commit: %v", err)
	}

	stored, err := f.BookingRepo.ByID(ctx, bk.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.Status != domainbooking.StatusCheckedIn {
		t.Fatalf("Status = %q, want checked-in", stored.Status)
	}
}
