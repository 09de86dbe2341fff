package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainstaff "frontdesk/internal/domain/staff"
)

type StaffRepository struct {
	col *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) *StaffRepository {
	return &StaffRepository{col: db.Collection("staff")}
}

func (r *StaffRepository) ByID(ctx context.Context, id domainstaff.ID) (*domainstaff.Staff, error) {
	var doc staffDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainstaff.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *StaffRepository) ByEmail(ctx context.Context, email string) (*domainstaff.Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var doc staffDocument
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainstaff.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *StaffRepository) Save(ctx context.Context, member *domainstaff.Staff) error {
	doc := newStaffDocument(member)
	filter := bson.M{"_id": doc.ID, "version": member.Version}
	doc.Version = member.Version + 1
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
	member.Version = doc.Version
	return nil
}

type staffDocument struct {
	ID           string `bson:"_id"`
	EmployeeID   string `bson:"employee_id,omitempty"`
	FirstName    string `bson:"first_name"`
	LastName     string `bson:"last_name"`
	Email        string `bson:"email"`
	Phone        string `bson:"phone,omitempty"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`

	IsActive  bool  `bson:"is_active"`
	CreatedAt int64 `bson:"created_at"`
	UpdatedAt int64 `bson:"updated_at"`
	Version   int64 `bson:"version"`
}

func newStaffDocument(member *domainstaff.Staff) staffDocument {
	return staffDocument{
		ID:           string(member.ID),
		EmployeeID:   member.EmployeeID,
		FirstName:    member.FirstName,
		LastName:     member.LastName,
		Email:        member.Email,
		Phone:        member.Phone,
		PasswordHash: member.PasswordHash,
		Role:         string(member.Role),
		IsActive:     member.IsActive,
		CreatedAt:    member.CreatedAt.UnixMilli(),
		UpdatedAt:    member.UpdatedAt.UnixMilli(),
		Version:      member.Version,
	}
}

func (d staffDocument) toAggregate() *domainstaff.Staff {
	return &domainstaff.Staff{
		ID:           domainstaff.ID(d.ID),
		EmployeeID:   d.EmployeeID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		Phone:        d.Phone,
		PasswordHash: d.PasswordHash,
		Role:         domainstaff.Role(d.Role),
		IsActive:     d.IsActive,
		CreatedAt:    timestampToTime(d.CreatedAt),
		UpdatedAt:    timestampToTime(d.UpdatedAt),
		Version:      d.Version,
	}
}
