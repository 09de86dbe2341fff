package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: check-out must be after check-in")
)

const nightMillis = 24 * 60 * 60 * 1000

// DateRange represents a half-open stay interval [checkIn, checkOut).
// The half-open convention is what makes same-day room turnover legal:
// a stay ending on day N never collides with a stay starting on day N.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: checkIn.UTC(), CheckOut: checkOut.UTC()}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts billable nights, rounding partial days up so a
// timezone-skewed 25h range still bills two nights.
func (dr DateRange) Nights() int {
	diff := dr.CheckOut.UnixMilli() - dr.CheckIn.UnixMilli()
	if diff <= 0 {
		return 0
	}
	nights := diff / nightMillis
	if diff%nightMillis != 0 {
		nights++
	}
	return int(nights)
}

// Overlaps reports whether two half-open ranges intersect. Strict
// inequality on both sides keeps adjacent ranges disjoint.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = t.UTC()
	return !t.Before(dr.CheckIn) && t.Before(dr.CheckOut)
}

func (dr DateRange) Adjacent(other DateRange) bool {
	return dr.CheckOut.Equal(other.CheckIn) || dr.CheckIn.Equal(other.CheckOut)
}
