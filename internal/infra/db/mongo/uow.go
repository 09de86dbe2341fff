package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"frontdesk/internal/app/uow"
	domainbooking "frontdesk/internal/domain/booking"
	domainguest "frontdesk/internal/domain/guest"
	domainroom "frontdesk/internal/domain/room"
	domainstaff "frontdesk/internal/domain/staff"
)

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	BookingRepo domainbooking.Repository
	RoomRepo    domainroom.Repository
	GuestRepo   domainguest.Repository
	StaffRepo   domainstaff.Repository
	Seq         uow.Sequences
}

// NewFactory builds repositories over the database and assembles a factory.
func NewFactory(db *mongo.Database) Factory {
	return Factory{
		DB:          db,
		BookingRepo: NewBookingRepository(db),
		RoomRepo:    NewRoomRepository(db),
		GuestRepo:   NewGuestRepository(db),
		StaffRepo:   NewStaffRepository(db),
		Seq:         NewSequences(db),
	}
}

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		db:       f.DB,
		session:  session,
		bookings: f.BookingRepo,
		rooms:    f.RoomRepo,
		guests:   f.GuestRepo,
		staff:    f.StaffRepo,
		seq:      f.Seq,
	}, nil
}

type Unit struct {
	db      *mongo.Database
	session mongo.Session

	bookings domainbooking.Repository
	rooms    domainroom.Repository
	guests   domainguest.Repository
	staff    domainstaff.Repository
	seq      uow.Sequences
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.bookings
}

func (u *Unit) Rooms() domainroom.Repository {
	return u.rooms
}

func (u *Unit) Guests() domainguest.Repository {
	return u.guests
}

func (u *Unit) Staff() domainstaff.Repository {
	return u.staff
}

func (u *Unit) Sequences() uow.Sequences {
	return u.seq
}

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext ensures Mongo session is available in context for downstream repos.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
