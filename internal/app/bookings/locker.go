package bookings

import (
	"sync"

	domainroom "frontdesk/internal/domain/room"
)

// roomLocker serializes the check-then-act window of Create and the
// date-changing path of Update per room. Without it two concurrent
// requests could both pass the overlap check and both persist.
type roomLocker struct {
	mu    sync.Mutex
	locks map[domainroom.ID]*sync.Mutex
}

func (l *roomLocker) lock(id domainroom.ID) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[domainroom.ID]*sync.Mutex)
	}
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
