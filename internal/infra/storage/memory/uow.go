package memory

import (
	"context"
	"errors"
	"sync"

	"frontdesk/internal/app/uow"
	domainbooking "frontdesk/internal/domain/booking"
	domainguest "frontdesk/internal/domain/guest"
	domainroom "frontdesk/internal/domain/room"
	domainstaff "frontdesk/internal/domain/staff"
)

var (
	// ErrConcurrentUpdate is returned when a stale aggregate version is saved.
	ErrConcurrentUpdate = errors.New("memory: concurrent update detected")
	// ErrFactoryMisconfigured indicates missing repositories.
	ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")
)

// stateSaver captures a store's current state and hands back a restore
// closure. The in-memory repositories implement it; test doubles that
// don't are simply left out of rollback.
type stateSaver interface {
	saveState() func()
}

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	BookingRepo domainbooking.Repository
	RoomRepo    domainroom.Repository
	GuestRepo   domainguest.Repository
	StaffRepo   domainstaff.Repository
	Seq         uow.Sequences

	mu *sync.RWMutex
}

// NewFactory builds a factory over fresh empty stores.
func NewFactory() Factory {
	return Factory{
		BookingRepo: NewBookingRepository(),
		RoomRepo:    NewRoomRepository(),
		GuestRepo:   NewGuestRepository(),
		StaffRepo:   NewStaffRepository(),
		Seq:         NewSequences(),
		mu:          &sync.RWMutex{},
	}
}

// Begin starts a transaction boundary. Write units hold the factory
// lock exclusively and snapshot each store, so Rollback restores the
// pre-unit state and writes become visible together at Commit.
// Sequence numbers are not rolled back; gaps are tolerated.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.BookingRepo == nil || f.RoomRepo == nil || f.GuestRepo == nil || f.StaffRepo == nil || f.Seq == nil || f.mu == nil {
		return nil, ErrFactoryMisconfigured
	}
	u := &Unit{
		bookings: f.BookingRepo,
		rooms:    f.RoomRepo,
		guests:   f.GuestRepo,
		staff:    f.StaffRepo,
		seq:      f.Seq,
		mu:       f.mu,
		readOnly: opts.ReadOnly,
	}
	if opts.ReadOnly {
		f.mu.RLock()
		return u, nil
	}
	f.mu.Lock()
	for _, repo := range []any{f.BookingRepo, f.RoomRepo, f.GuestRepo, f.StaffRepo} {
		if s, ok := repo.(stateSaver); ok {
			u.restores = append(u.restores, s.saveState())
		}
	}
	return u, nil
}

// Unit is a uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	bookings domainbooking.Repository
	rooms    domainroom.Repository
	guests   domainguest.Repository
	staff    domainstaff.Repository
	seq      uow.Sequences

	mu       *sync.RWMutex
	readOnly bool
	restores []func()
	closed   bool
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
	if u.closed {
		return nil
	}
	u.closed = true
	u.release()
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	if u.closed {
		return nil
	}
	u.closed = true
	if !u.readOnly {
		for i := len(u.restores) - 1; i >= 0; i-- {
			u.restores[i]()
		}
	}
	u.release()
	return nil
}

func (u *Unit) release() {
	if u.readOnly {
		u.mu.RUnlock()
		return
	}
	u.mu.Unlock()
}

// Sequences hands out monotonically increasing numbers per name.
type Sequences struct {
	mu   sync.Mutex
	next map[string]int64
}

func NewSequences() *Sequences {
	return &Sequences{next: make(map[string]int64)}
}

func (s *Sequences) Next(ctx context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[name]++
	return s.next[name], nil
}
