package dto

import (
	"time"

	domainbooking "frontdesk/internal/domain/booking"
)

type ChargeDTO struct {
	Description string    `json:"description"`
	AmountCents int64     `json:"amountCents"`
	At          time.Time `json:"at"`
}

type BookingView struct {
	ID            string `json:"id"`
	BookingNumber string `json:"bookingNumber"`
	GuestID       string `json:"guestId"`
	RoomID        string `json:"roomId"`

	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`

	NumberOfGuests int    `json:"numberOfGuests"`
	Status         string `json:"status"`
	PaymentStatus  string `json:"paymentStatus"`

	ActualCheckIn  *time.Time `json:"actualCheckIn,omitempty"`
	ActualCheckOut *time.Time `json:"actualCheckOut,omitempty"`

	RoomRateCents    int64 `json:"roomRateCents"`
	NumberOfNights   int   `json:"numberOfNights"`
	TaxCents         int64 `json:"taxCents"`
	DiscountCents    int64 `json:"discountCents"`
	TotalAmountCents int64 `json:"totalAmountCents"`

	AdditionalCharges []ChargeDTO `json:"additionalCharges,omitempty"`

	SpecialRequests string `json:"specialRequests,omitempty"`
	Notes           string `json:"notes,omitempty"`
	Source          string `json:"source,omitempty"`

	CancellationReason string     `json:"cancellationReason,omitempty"`
	CancellationDate   *time.Time `json:"cancellationDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromBooking(b *domainbooking.Booking) BookingView {
	view := BookingView{
		ID:                 string(b.ID),
		BookingNumber:      b.BookingNumber,
		GuestID:            string(b.GuestID),
		RoomID:             string(b.RoomID),
		CheckInDate:        b.Range.CheckIn,
		CheckOutDate:       b.Range.CheckOut,
		NumberOfGuests:     b.NumberOfGuests,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		ActualCheckIn:      b.ActualCheckIn,
		ActualCheckOut:     b.ActualCheckOut,
		RoomRateCents:      b.RoomRateCents,
		NumberOfNights:     b.NumberOfNights,
		TaxCents:           b.TaxCents,
		DiscountCents:      b.DiscountCents,
		TotalAmountCents:   b.TotalAmountCents,
		SpecialRequests:    b.SpecialRequests,
		Notes:              b.Notes,
		Source:             b.Source,
		CancellationReason: b.CancellationReason,
		CancellationDate:   b.CancellationDate,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	for _, c := range b.AdditionalCharges {
		view.AdditionalCharges = append(view.AdditionalCharges, ChargeDTO{
			Description: c.Description,
			AmountCents: c.AmountCents,
			At:          c.At,
		})
	}
	return view
}

func FromBookings(items []*domainbooking.Booking) []BookingView {
	out := make([]BookingView, 0, len(items))
	for _, b := range items {
		out = append(out, FromBooking(b))
	}
	return out
}

// PublicBookingView is the redacted shape served to unauthenticated
// reservation lookups.
type PublicBookingView struct {
	BookingNumber  string    `json:"bookingNumber"`
	Status         string    `json:"status"`
	CheckInDate    time.Time `json:"checkInDate"`
	CheckOutDate   time.Time `json:"checkOutDate"`
	NumberOfNights int       `json:"numberOfNights"`
	NumberOfGuests int       `json:"numberOfGuests"`
}

func PublicFromBooking(b *domainbooking.Booking) PublicBookingView {
	return PublicBookingView{
		BookingNumber:  b.BookingNumber,
		Status:         string(b.Status),
		CheckInDate:    b.Range.CheckIn,
		CheckOutDate:   b.Range.CheckOut,
		NumberOfNights: b.NumberOfNights,
		NumberOfGuests: b.NumberOfGuests,
	}
}

type BookingCollection struct {
	Items []BookingView `json:"items"`
	Total int           `json:"total"`
}
