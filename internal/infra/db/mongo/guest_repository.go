package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainguest "frontdesk/internal/domain/guest"
)

type GuestRepository struct {
	col *mongo.Collection
}

func NewGuestRepository(db *mongo.Database) *GuestRepository {
	return &GuestRepository{col: db.Collection("guests")}
}

func (r *GuestRepository) ByID(ctx context.Context, id domainguest.ID) (*domainguest.Guest, error) {
	var doc guestDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainguest.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *GuestRepository) ByEmail(ctx context.Context, email string) (*domainguest.Guest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var doc guestDocument
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainguest.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *GuestRepository) ByIDNumber(ctx context.Context, idNumber string) (*domainguest.Guest, error) {
	var doc guestDocument
	if err := r.col.FindOne(ctx, bson.M{"id_number": strings.TrimSpace(idNumber)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainguest.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *GuestRepository) Save(ctx context.Context, g *domainguest.Guest) error {
	doc := newGuestDocument(g)
	filter := bson.M{"_id": doc.ID, "version": g.Version}
	doc.Version = g.Version + 1
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
	g.Version = doc.Version
	return nil
}

func (r *GuestRepository) List(ctx context.Context, params domainguest.ListParams) ([]*domainguest.Guest, int, error) {
	filter := bson.M{}
	if q := strings.TrimSpace(params.Query); q != "" {
		pattern := primitiveRegex(q)
		filter["$or"] = bson.A{
			bson.M{"first_name": pattern},
			bson.M{"last_name": pattern},
			bson.M{"email": pattern},
			bson.M{"phone": pattern},
			bson.M{"id_number": pattern},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}})
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

	var out []*domainguest.Guest
	for cursor.Next(ctx) {
		var doc guestDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, int(total), cursor.Err()
}

func primitiveRegex(q string) bson.M {
	return bson.M{"$regex": q, "$options": "i"}
}

type guestDocument struct {
	ID        string `bson:"_id"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Email     string `bson:"email"`
	Phone     string `bson:"phone,omitempty"`

	IDType      string `bson:"id_type,omitempty"`
	IDNumber    string `bson:"id_number"`
	Nationality string `bson:"nationality,omitempty"`

	TotalStays      int   `bson:"total_stays"`
	TotalSpentCents int64 `bson:"total_spent_cents"`

	VIP       bool  `bson:"vip"`
	IsActive  bool  `bson:"is_active"`
	CreatedAt int64 `bson:"created_at"`
	UpdatedAt int64 `bson:"updated_at"`
	Version   int64 `bson:"version"`
}

func newGuestDocument(g *domainguest.Guest) guestDocument {
	return guestDocument{
		ID:              string(g.ID),
		FirstName:       g.FirstName,
		LastName:        g.LastName,
		Email:           g.Email,
		Phone:           g.Phone,
		IDType:          g.IDType,
		IDNumber:        g.IDNumber,
		Nationality:     g.Nationality,
		TotalStays:      g.TotalStays,
		TotalSpentCents: g.TotalSpentCents,
		VIP:             g.VIP,
		IsActive:        g.IsActive,
		CreatedAt:       g.CreatedAt.UnixMilli(),
		UpdatedAt:       g.UpdatedAt.UnixMilli(),
		Version:         g.Version,
	}
}

func (d guestDocument) toAggregate() *domainguest.Guest {
	return &domainguest.Guest{
		ID:              domainguest.ID(d.ID),
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Email:           d.Email,
		Phone:           d.Phone,
		IDType:          d.IDType,
		IDNumber:        d.IDNumber,
		Nationality:     d.Nationality,
		TotalStays:      d.TotalStays,
		TotalSpentCents: d.TotalSpentCents,
		VIP:             d.VIP,
		IsActive:        d.IsActive,
		CreatedAt:       timestampToTime(d.CreatedAt),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
		Version:         d.Version,
	}
}
