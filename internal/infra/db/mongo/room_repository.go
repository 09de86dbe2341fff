package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainroom "frontdesk/internal/domain/room"
)

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection("rooms")}
}

func (r *RoomRepository) ByID(ctx context.Context, id domainroom.ID) (*domainroom.Room, error) {
	var doc roomDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainroom.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RoomRepository) ByNumber(ctx context.Context, number string) (*domainroom.Room, error) {
	var doc roomDocument
	if err := r.col.FindOne(ctx, bson.M{"room_number": number}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainroom.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RoomRepository) Save(ctx context.Context, rm *domainroom.Room) error {
	doc := newRoomDocument(rm)
	filter := bson.M{"_id": doc.ID, "version": rm.Version}
	doc.Version = rm.Version + 1
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	rm.Version = doc.Version
	return nil
}

func (r *RoomRepository) List(ctx context.Context, params domainroom.ListParams) ([]*domainroom.Room, int, error) {
	filter := bson.M{}
	if params.Status != "" {
		filter["status"] = string(params.Status)
	}
	if params.Type != "" {
		filter["type"] = params.Type
	}
	if params.Floor != 0 {
		filter["floor"] = params.Floor
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "room_number", Value: 1}})
	if params.Offset > 0 {
		opts = opts.SetSkip(int64(params.Offset))
	}
	if params.Limit > 0 {
		opts = opts.SetLimit(int64(params.Limit))
	}
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var out []*domainroom.Room
	for cursor.Next(ctx) {
		var doc roomDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, int(total), cursor.Err()
}

type photoDocument struct {
	URL     string `bson:"url"`
	Caption string `bson:"caption,omitempty"`
}

type breakdownDocument struct {
	Adults   int `bson:"adults"`
	Children int `bson:"children"`
}

type roomDocument struct {
	ID         string `bson:"_id"`
	RoomNumber string `bson:"room_number"`
	Floor      int    `bson:"floor"`
	Type       string `bson:"type,omitempty"`
	Category   string `bson:"category,omitempty"`

	Capacity  int                `bson:"capacity"`
	Breakdown *breakdownDocument `bson:"capacity_breakdown,omitempty"`

	PricePerNightCents int64 `bson:"price_per_night_cents"`

	Status           string          `bson:"status"`
	BedConfiguration string          `bson:"bed_configuration,omitempty"`
	Description      string          `bson:"description,omitempty"`
	Photos           []photoDocument `bson:"photos,omitempty"`

	IsActive  bool  `bson:"is_active"`
	CreatedAt int64 `bson:"created_at"`
	UpdatedAt int64 `bson:"updated_at"`
	Version   int64 `bson:"version"`
}

func newRoomDocument(rm *domainroom.Room) roomDocument {
	doc := roomDocument{
		ID:                 string(rm.ID),
		RoomNumber:         rm.RoomNumber,
		Floor:              rm.Floor,
		Type:               rm.Type,
		Category:           rm.Category,
		Capacity:           rm.Capacity,
		PricePerNightCents: rm.PricePerNightCents,
		Status:             string(rm.Status),
		BedConfiguration:   rm.BedConfiguration,
		Description:        rm.Description,
		IsActive:           rm.IsActive,
		CreatedAt:          rm.CreatedAt.UnixMilli(),
		UpdatedAt:          rm.UpdatedAt.UnixMilli(),
		Version:            rm.Version,
	}
	if rm.Breakdown != nil {
		doc.Breakdown = &breakdownDocument{Adults: rm.Breakdown.Adults, Children: rm.Breakdown.Children}
	}
	for _, p := range rm.Photos {
		doc.Photos = append(doc.Photos, photoDocument{URL: p.URL, Caption: p.Caption})
	}
	return doc
}

func (d roomDocument) toAggregate() *domainroom.Room {
	rm := &domainroom.Room{
		ID:                 domainroom.ID(d.ID),
		RoomNumber:         d.RoomNumber,
		Floor:              d.Floor,
		Type:               d.Type,
		Category:           d.Category,
		Capacity:           d.Capacity,
		PricePerNightCents: d.PricePerNightCents,
		Status:             domainroom.Status(d.Status),
		BedConfiguration:   d.BedConfiguration,
		Description:        d.Description,
		IsActive:           d.IsActive,
		CreatedAt:          timestampToTime(d.CreatedAt),
		UpdatedAt:          timestampToTime(d.UpdatedAt),
		Version:            d.Version,
	}
	if d.Breakdown != nil {
		rm.Breakdown = &domainroom.CapacityBreakdown{Adults: d.Breakdown.Adults, Children: d.Breakdown.Children}
	}
	for _, p := range d.Photos {
		rm.Photos = append(rm.Photos, domainroom.Photo{URL: p.URL, Caption: p.Caption})
	}
	return rm
}
