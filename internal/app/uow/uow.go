package uow

import (
	"context"

	"frontdesk/internal/domain/booking"
	"frontdesk/internal/domain/guest"
	"frontdesk/internal/domain/room"
	"frontdesk/internal/domain/staff"
)

// Sequences allocates monotonically increasing numbers for
// human-readable identifiers such as booking numbers.
type Sequences interface {
	Next(ctx context.Context, name string) (int64, error)
}

// UnitOfWork coordinates repositories inside a transaction boundary so
// booking, room, and guest writes land together or not at all.
type UnitOfWork interface {
	Bookings() booking.Repository
	Rooms() room.Repository
	Guests() guest.Repository
	Staff() staff.Repository
	Sequences() Sequences

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory starts unit of work instances.
type Factory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// Context binds the unit's transaction to the context when the backing
// store needs it (Mongo sessions). Every repository call inside the
// unit must use the returned context, or writes escape the transaction.
func Context(ctx context.Context, unit UnitOfWork) context.Context {
	if injector, ok := unit.(interface {
		InjectContext(context.Context) context.Context
	}); ok {
		return injector.InjectContext(ctx)
	}
	return ctx
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
