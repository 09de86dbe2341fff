package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainbooking "frontdesk/internal/domain/booking"
	domainguest "frontdesk/internal/domain/guest"
	domainroom "frontdesk/internal/domain/room"
	"frontdesk/internal/domain/shared/daterange"
	domainstaff "frontdesk/internal/domain/staff"
)

// BookingRepository is an in-memory implementation for tests and demos.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.ID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.ID]*domainbooking.Booking)}
}

func (r *BookingRepository) saveState() func() {
	r.mu.RLock()
	snap := make(map[domainbooking.ID]*domainbooking.Booking, len(r.items))
	for k, v := range r.items {
		snap[k] = v
	}
	r.mu.RUnlock()
	return func() {
		r.mu.Lock()
		r.items = snap
		r.mu.Unlock()
	}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.ID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bk, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	clone := *bk
	return &clone, nil
}

func (r *BookingRepository) ByNumber(ctx context.Context, number string) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, bk := range r.items {
		if strings.EqualFold(bk.BookingNumber, number) {
			clone := *bk
			return &clone, nil
		}
	}
	return nil, domainbooking.ErrNotFound
}

func (r *BookingRepository) Insert(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Pending events belong to the in-flight aggregate, not the store;
	// keeping them on the stored copy would replay them on every later
	// transition.
	clone := *b
	clone.ClearEvents()
	r.items[b.ID] = &clone
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[b.ID]
	if !ok {
		return domainbooking.ErrNotFound
	}
	if current.Version != b.Version {
		return ErrConcurrentUpdate
	}
	b.Version++
	clone := *b
	clone.ClearEvents()
	r.items[b.ID] = &clone
	return nil
}

func (r *BookingRepository) ActiveByRoom(ctx context.Context, roomID domainroom.ID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, bk := range r.items {
		if bk.RoomID != roomID || !bk.Status.Active() {
			continue
		}
		clone := *bk
		out = append(out, &clone)
	}
	return out, nil
}

func (r *BookingRepository) ActiveBetween(ctx context.Context, dr daterange.DateRange) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, bk := range r.items {
		if !bk.Status.Active() || !bk.Range.Overlaps(dr) {
			continue
		}
		clone := *bk
		out = append(out, &clone)
	}
	return out, nil
}

func (r *BookingRepository) List(ctx context.Context, params domainbooking.ListParams) ([]*domainbooking.Booking, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*domainbooking.Booking, 0, len(r.items))
	for _, bk := range r.items {
		if !matchesBooking(bk, params) {
			continue
		}
		clone := *bk
		matches = append(matches, &clone)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Range.CheckIn.Equal(matches[j].Range.CheckIn) {
			return matches[i].BookingNumber < matches[j].BookingNumber
		}
		return matches[i].Range.CheckIn.Before(matches[j].Range.CheckIn)
	})

	total := len(matches)
	start := params.Offset
	if start > total {
		start = total
	}
	end := total
	if params.Limit > 0 && start+params.Limit < total {
		end = start + params.Limit
	}
	return matches[start:end], total, nil
}

func (r *BookingRepository) Count(ctx context.Context, params domainbooking.ListParams) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, bk := range r.items {
		if matchesBooking(bk, params) {
			count++
		}
	}
	return count, nil
}

func matchesBooking(bk *domainbooking.Booking, params domainbooking.ListParams) bool {
	if len(params.Statuses) > 0 {
		found := false
		for _, st := range params.Statuses {
			if bk.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if params.GuestID != "" && bk.GuestID != params.GuestID {
		return false
	}
	if !params.CheckInFrom.IsZero() && bk.Range.CheckIn.Before(params.CheckInFrom) {
		return false
	}
	if !params.CheckInTo.IsZero() && !bk.Range.CheckIn.Before(params.CheckInTo) {
		return false
	}
	if !params.CheckOutFrom.IsZero() && bk.Range.CheckOut.Before(params.CheckOutFrom) {
		return false
	}
	if !params.CheckOutTo.IsZero() && !bk.Range.CheckOut.Before(params.CheckOutTo) {
		return false
	}
	return true
}

// RoomRepository keeps rooms in memory.
type RoomRepository struct {
	mu    sync.RWMutex
	items map[domainroom.ID]*domainroom.Room
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{items: make(map[domainroom.ID]*domainroom.Room)}
}

func (r *RoomRepository) saveState() func() {
	r.mu.RLock()
	snap := make(map[domainroom.ID]*domainroom.Room, len(r.items))
	for k, v := range r.items {
		snap[k] = v
	}
	r.mu.RUnlock()
	return func() {
		r.mu.Lock()
		r.items = snap
		r.mu.Unlock()
	}
}

func (r *RoomRepository) ByID(ctx context.Context, id domainroom.ID) (*domainroom.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.items[id]
	if !ok {
		return nil, domainroom.ErrNotFound
	}
	clone := *rm
	return &clone, nil
}

func (r *RoomRepository) ByNumber(ctx context.Context, number string) (*domainroom.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rm := range r.items {
		if strings.EqualFold(rm.RoomNumber, strings.TrimSpace(number)) {
			clone := *rm
			return &clone, nil
		}
	}
	return nil, domainroom.ErrNotFound
}

func (r *RoomRepository) Save(ctx context.Context, rm *domainroom.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.items[rm.ID]; ok {
		if current.Version != rm.Version {
			return ErrConcurrentUpdate
		}
		rm.Version++
	}
	clone := *rm
	r.items[rm.ID] = &clone
	return nil
}

func (r *RoomRepository) List(ctx context.Context, params domainroom.ListParams) ([]*domainroom.Room, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*domainroom.Room, 0, len(r.items))
	for _, rm := range r.items {
		if params.Status != "" && rm.Status != params.Status {
			continue
		}
		if params.Type != "" && !strings.EqualFold(rm.Type, params.Type) {
			continue
		}
		if params.Floor != 0 && rm.Floor != params.Floor {
			continue
		}
		clone := *rm
		matches = append(matches, &clone)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].RoomNumber < matches[j].RoomNumber
	})

	total := len(matches)
	start := params.Offset
	if start > total {
		start = total
	}
	end := total
	if params.Limit > 0 && start+params.Limit < total {
		end = start + params.Limit
	}
	return matches[start:end], total, nil
}

// GuestRepository keeps guest profiles in memory.
type GuestRepository struct {
	mu    sync.RWMutex
	items map[domainguest.ID]*domainguest.Guest
}

func NewGuestRepository() *GuestRepository {
	return &GuestRepository{items: make(map[domainguest.ID]*domainguest.Guest)}
}

func (r *GuestRepository) saveState() func() {
	r.mu.RLock()
	snap := make(map[domainguest.ID]*domainguest.Guest, len(r.items))
	for k, v := range r.items {
		snap[k] = v
	}
	r.mu.RUnlock()
	return func() {
		r.mu.Lock()
		r.items = snap
		r.mu.Unlock()
	}
}

func (r *GuestRepository) ByID(ctx context.Context, id domainguest.ID) (*domainguest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.items[id]
	if !ok {
		return nil, domainguest.ErrNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *GuestRepository) ByEmail(ctx context.Context, email string) (*domainguest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, g := range r.items {
		if g.Email == email {
			clone := *g
			return &clone, nil
		}
	}
	return nil, domainguest.ErrNotFound
}

func (r *GuestRepository) ByIDNumber(ctx context.Context, idNumber string) (*domainguest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idNumber = strings.TrimSpace(idNumber)
	for _, g := range r.items {
		if g.IDNumber == idNumber {
			clone := *g
			return &clone, nil
		}
	}
	return nil, domainguest.ErrNotFound
}

func (r *GuestRepository) Save(ctx context.Context, g *domainguest.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.items[g.ID]; ok {
		if current.Version != g.Version {
			return ErrConcurrentUpdate
		}
		g.Version++
	}
	clone := *g
	r.items[g.ID] = &clone
	return nil
}

func (r *GuestRepository) List(ctx context.Context, params domainguest.ListParams) ([]*domainguest.Guest, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(params.Query))
	matches := make([]*domainguest.Guest, 0, len(r.items))
	for _, g := range r.items {
		if query != "" {
			haystack := strings.ToLower(strings.Join([]string{g.FirstName, g.LastName, g.Email, g.Phone, g.IDNumber}, " "))
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		clone := *g
		matches = append(matches, &clone)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].LastName == matches[j].LastName {
			return matches[i].FirstName < matches[j].FirstName
		}
		return matches[i].LastName < matches[j].LastName
	})

	total := len(matches)
	start := params.Offset
	if start > total {
		start = total
	}
	end := total
	if params.Limit > 0 && start+params.Limit < total {
		end = start + params.Limit
	}
	return matches[start:end], total, nil
}

// StaffRepository keeps staff accounts in memory.
type StaffRepository struct {
	mu    sync.RWMutex
	items map[domainstaff.ID]*domainstaff.Staff
}

func NewStaffRepository() *StaffRepository {
	return &StaffRepository{items: make(map[domainstaff.ID]*domainstaff.Staff)}
}

func (r *StaffRepository) saveState() func() {
	r.mu.RLock()
	snap := make(map[domainstaff.ID]*domainstaff.Staff, len(r.items))
	for k, v := range r.items {
		snap[k] = v
	}
	r.mu.RUnlock()
	return func() {
		r.mu.Lock()
		r.items = snap
		r.mu.Unlock()
	}
}

func (r *StaffRepository) ByID(ctx context.Context, id domainstaff.ID) (*domainstaff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	member, ok := r.items[id]
	if !ok {
		return nil, domainstaff.ErrNotFound
	}
	clone := *member
	return &clone, nil
}

func (r *StaffRepository) ByEmail(ctx context.Context, email string) (*domainstaff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, member := range r.items {
		if member.Email == email {
			clone := *member
			return &clone, nil
		}
	}
	return nil, domainstaff.ErrNotFound
}

func (r *StaffRepository) Save(ctx context.Context, member *domainstaff.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.items[member.ID]; ok {
		if current.Version != member.Version {
			return ErrConcurrentUpdate
		}
		member.Version++
	}
	clone := *member
	r.items[member.ID] = &clone
	return nil
}
