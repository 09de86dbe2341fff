package booking

import "frontdesk/internal/domain/shared/daterange"

// Quote holds the derived billing fields for a stay.
type Quote struct {
	Nights     int
	TotalCents int64
}

// Derive computes nights and total from the rate snapshot, the stay
// range, and the booking's adjustments. Pure and deterministic; the
// total never goes below zero even when the discount exceeds the
// subtotal.
func Derive(rateCents int64, dr daterange.DateRange, taxCents, discountCents int64, charges []Charge) Quote {
	nights := dr.Nights()
	total := rateCents*int64(nights) + taxCents - discountCents
	for _, c := range charges {
		total += c.AmountCents
	}
	if total < 0 {
		total = 0
	}
	return Quote{Nights: nights, TotalCents: total}
}
