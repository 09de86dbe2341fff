package booking

import (
	"testing"
	"time"

	"frontdesk/internal/domain/shared/daterange"
)

func stay(t *testing.T, nights int) daterange.DateRange {
	t.Helper()
	in := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	dr, err := daterange.New(in, in.AddDate(0, 0, nights))
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	return dr
}

func TestDeriveRateTimesNightsPlusAdjustments(t *testing.T) {
	// 3 nights at 100.00 + 10.00 tax - 5.00 discount = 305.00
	quote := Derive(10000, stay(t, 3), 1000, 500, nil)
	if quote.Nights != 3 {
		t.Fatalf("Nights = %d, want 3", quote.Nights)
	}
	if quote.TotalCents != 30500 {
		t.Fatalf("TotalCents = %d, want 30500", quote.TotalCents)
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	dr := stay(t, 3)
	first := Derive(10000, dr, 1000, 500, nil)
	for i := 0; i < 5; i++ {
		if got := Derive(10000, dr, 1000, 500, nil); got != first {
			t.Fatalf("run %d: %+v != %+v", i, got, first)
		}
	}
}

func TestDeriveClampsNegativeTotals(t *testing.T) {
	quote := Derive(10000, stay(t, 1), 0, 99999, nil)
	if quote.TotalCents != 0 {
		t.Fatalf("TotalCents = %d, want 0", quote.TotalCents)
	}
}

func TestDeriveIncludesCharges(t *testing.T) {
	charges := []Charge{
		{Description: "minibar", AmountCents: 1500},
		{Description: "late checkout", AmountCents: 2500},
	}
	quote := Derive(10000, stay(t, 2), 0, 0, charges)
	if quote.TotalCents != 24000 {
		t.Fatalf("TotalCents = %d, want 24000", quote.TotalCents)
	}
}

func TestDerivePartialDayBillsExtraNight(t *testing.T) {
	in := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC)
	out := in.Add(25 * time.Hour)
	dr, err := daterange.New(in, out)
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	quote := Derive(10000, dr, 0, 0, nil)
	if quote.Nights != 2 {
		t.Fatalf("Nights = %d, want 2", quote.Nights)
	}
	if quote.TotalCents != 20000 {
		t.Fatalf("TotalCents = %d, want 20000", quote.TotalCents)
	}
}
