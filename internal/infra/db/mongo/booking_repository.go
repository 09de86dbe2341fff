package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "frontdesk/internal/domain/booking"
	domainguest "frontdesk/internal/domain/guest"
	domainroom "frontdesk/internal/domain/room"
	"frontdesk/internal/domain/shared/daterange"
	domainstaff "frontdesk/internal/domain/staff"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("bookings")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.ID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) ByNumber(ctx context.Context, number string) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"booking_number": number}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ActiveByRoom(ctx context.Context, roomID domainroom.ID) ([]*domainbooking.Booking, error) {
	filter := bson.M{
		"room_id": string(roomID),
		"status":  bson.M{"$in": activeStatuses()},
	}
	return r.find(ctx, filter, nil)
}

func (r *BookingRepository) ActiveBetween(ctx context.Context, dr daterange.DateRange) ([]*domainbooking.Booking, error) {
	// Half-open overlap: existing.check_in < candidate.check_out AND
	// existing.check_out > candidate.check_in.
	filter := bson.M{
		"status":    bson.M{"$in": activeStatuses()},
		"check_in":  bson.M{"$lt": dr.CheckOut.UnixMilli()},
		"check_out": bson.M{"$gt": dr.CheckIn.UnixMilli()},
	}
	return r.find(ctx, filter, nil)
}

func (r *BookingRepository) List(ctx context.Context, params domainbooking.ListParams) ([]*domainbooking.Booking, int, error) {
	filter := listFilter(params)
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}, {Key: "booking_number", Value: 1}})
	if params.Offset > 0 {
		opts = opts.SetSkip(int64(params.Offset))
	}
	if params.Limit > 0 {
		opts = opts.SetLimit(int64(params.Limit))
	}
	items, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, int(total), nil
}

func (r *BookingRepository) Count(ctx context.Context, params domainbooking.ListParams) (int, error) {
	total, err := r.col.CountDocuments(ctx, listFilter(params))
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domainbooking.Booking, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.col.Find(ctx, filter, opts)
	} else {
		cursor, err = r.col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func listFilter(params domainbooking.ListParams) bson.M {
	filter := bson.M{}
	if len(params.Statuses) > 0 {
		values := make([]string, 0, len(params.Statuses))
		for _, st := range params.Statuses {
			values = append(values, string(st))
		}
		filter["status"] = bson.M{"$in": values}
	}
	if params.GuestID != "" {
		filter["guest_id"] = string(params.GuestID)
	}
	checkIn := bson.M{}
	if !params.CheckInFrom.IsZero() {
		checkIn["$gte"] = params.CheckInFrom.UnixMilli()
	}
	if !params.CheckInTo.IsZero() {
		checkIn["$lt"] = params.CheckInTo.UnixMilli()
	}
	if len(checkIn) > 0 {
		filter["check_in"] = checkIn
	}
	checkOut := bson.M{}
	if !params.CheckOutFrom.IsZero() {
		checkOut["$gte"] = params.CheckOutFrom.UnixMilli()
	}
	if !params.CheckOutTo.IsZero() {
		checkOut["$lt"] = params.CheckOutTo.UnixMilli()
	}
	if len(checkOut) > 0 {
		filter["check_out"] = checkOut
	}
	return filter
}

func activeStatuses() []string {
	return []string{string(domainbooking.StatusConfirmed), string(domainbooking.StatusCheckedIn)}
}

type chargeDocument struct {
	Description string `bson:"description"`
	AmountCents int64  `bson:"amount_cents"`
	At          int64  `bson:"at"`
}

type bookingDocument struct {
	ID            string `bson:"_id"`
	BookingNumber string `bson:"booking_number"`
	GuestID       string `bson:"guest_id"`
	RoomID        string `bson:"room_id"`

	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`

	NumberOfGuests int    `bson:"number_of_guests"`
	Status         string `bson:"status"`
	PaymentStatus  string `bson:"payment_status"`

	ActualCheckIn  *int64 `bson:"actual_check_in,omitempty"`
	ActualCheckOut *int64 `bson:"actual_check_out,omitempty"`

	RoomRateCents    int64 `bson:"room_rate_cents"`
	NumberOfNights   int   `bson:"number_of_nights"`
	TaxCents         int64 `bson:"tax_cents"`
	DiscountCents    int64 `bson:"discount_cents"`
	TotalAmountCents int64 `bson:"total_amount_cents"`

	AdditionalCharges []chargeDocument `bson:"additional_charges,omitempty"`

	SpecialRequests string `bson:"special_requests,omitempty"`
	Notes           string `bson:"notes,omitempty"`
	Source          string `bson:"source,omitempty"`

	CancellationReason string `bson:"cancellation_reason,omitempty"`
	CancellationDate   *int64 `bson:"cancellation_date,omitempty"`

	CreatedBy    string `bson:"created_by,omitempty"`
	CheckedInBy  string `bson:"checked_in_by,omitempty"`
	CheckedOutBy string `bson:"checked_out_by,omitempty"`

	CreatedAt int64 `bson:"created_at"`
	UpdatedAt int64 `bson:"updated_at"`
	Version   int64 `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	doc := bookingDocument{
		ID:                 string(b.ID),
		BookingNumber:      b.BookingNumber,
		GuestID:            string(b.GuestID),
		RoomID:             string(b.RoomID),
		CheckIn:            b.Range.CheckIn.UnixMilli(),
		CheckOut:           b.Range.CheckOut.UnixMilli(),
		NumberOfGuests:     b.NumberOfGuests,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		RoomRateCents:      b.RoomRateCents,
		NumberOfNights:     b.NumberOfNights,
		TaxCents:           b.TaxCents,
		DiscountCents:      b.DiscountCents,
		TotalAmountCents:   b.TotalAmountCents,
		SpecialRequests:    b.SpecialRequests,
		Notes:              b.Notes,
		Source:             b.Source,
		CancellationReason: b.CancellationReason,
		CreatedBy:          string(b.CreatedBy),
		CheckedInBy:        string(b.CheckedInBy),
		CheckedOutBy:       string(b.CheckedOutBy),
		CreatedAt:          b.CreatedAt.UnixMilli(),
		UpdatedAt:          b.UpdatedAt.UnixMilli(),
		Version:            b.Version,
	}
	doc.ActualCheckIn = timePtrToMillis(b.ActualCheckIn)
	doc.ActualCheckOut = timePtrToMillis(b.ActualCheckOut)
	doc.CancellationDate = timePtrToMillis(b.CancellationDate)
	for _, c := range b.AdditionalCharges {
		doc.AdditionalCharges = append(doc.AdditionalCharges, chargeDocument{
			Description: c.Description,
			AmountCents: c.AmountCents,
			At:          c.At.UnixMilli(),
		})
	}
	return doc
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	b := &domainbooking.Booking{
		ID:            domainbooking.ID(d.ID),
		BookingNumber: d.BookingNumber,
		GuestID:       domainguest.ID(d.GuestID),
		RoomID:        domainroom.ID(d.RoomID),
		Range: daterange.DateRange{
			CheckIn:  timestampToTime(d.CheckIn),
			CheckOut: timestampToTime(d.CheckOut),
		},
		NumberOfGuests:     d.NumberOfGuests,
		Status:             domainbooking.Status(d.Status),
		PaymentStatus:      domainbooking.PaymentStatus(d.PaymentStatus),
		RoomRateCents:      d.RoomRateCents,
		NumberOfNights:     d.NumberOfNights,
		TaxCents:           d.TaxCents,
		DiscountCents:      d.DiscountCents,
		TotalAmountCents:   d.TotalAmountCents,
		SpecialRequests:    d.SpecialRequests,
		Notes:              d.Notes,
		Source:             d.Source,
		CancellationReason: d.CancellationReason,
		CreatedBy:          domainstaff.ID(d.CreatedBy),
		CheckedInBy:        domainstaff.ID(d.CheckedInBy),
		CheckedOutBy:       domainstaff.ID(d.CheckedOutBy),
		CreatedAt:          timestampToTime(d.CreatedAt),
		UpdatedAt:          timestampToTime(d.UpdatedAt),
		Version:            d.Version,
	}
	b.ActualCheckIn = millisToTimePtr(d.ActualCheckIn)
	b.ActualCheckOut = millisToTimePtr(d.ActualCheckOut)
	b.CancellationDate = millisToTimePtr(d.CancellationDate)
	for _, c := range d.AdditionalCharges {
		b.AdditionalCharges = append(b.AdditionalCharges, domainbooking.Charge{
			Description: c.Description,
			AmountCents: c.AmountCents,
			At:          timestampToTime(c.At),
		})
	}
	return b
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func timePtrToMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func millisToTimePtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}
