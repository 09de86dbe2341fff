package daterange

import (
	"errors"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, in, out time.Time) DateRange {
	t.Helper()
	dr, err := New(in, out)
	if err != nil {
		t.Fatalf("New(%v, %v): %v", in, out, err)
	}
	return dr
}

func TestNewRejectsInvertedAndEqualDates(t *testing.T) {
	if _, err := New(day(10), day(10)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("equal dates: got %v, want ErrInvalidRange", err)
	}
	if _, err := New(day(12), day(10)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("inverted dates: got %v, want ErrInvalidRange", err)
	}
	if _, err := New(time.Time{}, day(10)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("zero check-in: got %v, want ErrInvalidRange", err)
	}
}

func TestNightsWholeDays(t *testing.T) {
	dr := mustRange(t, day(10), day(13))
	if got := dr.Nights(); got != 3 {
		t.Fatalf("Nights() = %d, want 3", got)
	}
}

func TestNightsRoundsPartialDaysUp(t *testing.T) {
	in := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC)
	out := time.Date(2026, time.March, 11, 15, 0, 0, 0, time.UTC)
	dr := mustRange(t, in, out)
	if got := dr.Nights(); got != 2 {
		t.Fatalf("25h stay: Nights() = %d, want 2", got)
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	a := mustRange(t, day(10), day(13))

	cases := []struct {
		name string
		b    DateRange
		want bool
	}{
		{"identical", mustRange(t, day(10), day(13)), true},
		{"contained", mustRange(t, day(11), day(12)), true},
		{"straddles start", mustRange(t, day(8), day(11)), true},
		{"straddles end", mustRange(t, day(12), day(15)), true},
		{"back to back after", mustRange(t, day(13), day(15)), false},
		{"back to back before", mustRange(t, day(8), day(10)), false},
		{"disjoint", mustRange(t, day(20), day(22)), false},
	}
	for _, tc := range cases {
		if got := a.Overlaps(tc.b); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		if got := tc.b.Overlaps(a); got != tc.want {
			t.Errorf("%s (reversed): Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestContainsDate(t *testing.T) {
	dr := mustRange(t, day(10), day(13))
	if !dr.ContainsDate(day(10)) {
		t.Fatal("check-in day should be contained")
	}
	if dr.ContainsDate(day(13)) {
		t.Fatal("check-out day should not be contained")
	}
}

func TestAdjacent(t *testing.T) {
	a := mustRange(t, day(10), day(13))
	b := mustRange(t, day(13), day(15))
	if !a.Adjacent(b) || !b.Adjacent(a) {
		t.Fatal("back-to-back ranges should be adjacent")
	}
	if a.Overlaps(b) {
		t.Fatal("adjacent ranges must not overlap")
	}
}
