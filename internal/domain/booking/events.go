package booking

import (
	"time"

	"frontdesk/internal/domain/guest"
	"frontdesk/internal/domain/room"
	"frontdesk/internal/domain/shared/daterange"
)

type Created struct {
	BookingID     ID
	BookingNumber string
	RoomID        room.ID
	GuestID       guest.ID
	Range         daterange.DateRange
	TotalCents    int64
	At            time.Time
}

func (e Created) EventName() string     { return "booking.created" }
func (e Created) AggregateID() string   { return string(e.BookingID) }
func (e Created) OccurredAt() time.Time { return e.At }

type CheckedIn struct {
	BookingID ID
	RoomID    room.ID
	At        time.Time
}

func (e CheckedIn) EventName() string     { return "booking.checked_in" }
func (e CheckedIn) AggregateID() string   { return string(e.BookingID) }
func (e CheckedIn) OccurredAt() time.Time { return e.At }

type CheckedOut struct {
	BookingID  ID
	RoomID     room.ID
	TotalCents int64
	At         time.Time
}

func (e CheckedOut) EventName() string     { return "booking.checked_out" }
func (e CheckedOut) AggregateID() string   { return string(e.BookingID) }
func (e CheckedOut) OccurredAt() time.Time { return e.At }

type Cancelled struct {
	BookingID ID
	RoomID    room.ID
	Reason    string
	At        time.Time
}

func (e Cancelled) EventName() string     { return "booking.cancelled" }
func (e Cancelled) AggregateID() string   { return string(e.BookingID) }
func (e Cancelled) OccurredAt() time.Time { return e.At }

type NoShowRecorded struct {
	BookingID ID
	RoomID    room.ID
	At        time.Time
}

func (e NoShowRecorded) EventName() string     { return "booking.no_show" }
func (e NoShowRecorded) AggregateID() string   { return string(e.BookingID) }
func (e NoShowRecorded) OccurredAt() time.Time { return e.At }

type Updated struct {
	BookingID ID
	RoomID    room.ID
	Range     daterange.DateRange
	At        time.Time
}

func (e Updated) EventName() string     { return "booking.updated" }
func (e Updated) AggregateID() string   { return string(e.BookingID) }
func (e Updated) OccurredAt() time.Time { return e.At }
