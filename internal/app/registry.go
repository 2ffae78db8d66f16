package app

import (
	"errors"
	"sort"
	"sync"

	"thegame/internal/domain"
)

var ErrRoomNotFound = errors.New("room not found")

// table pairs a room with the lock that makes it single-writer.
type table struct {
	mu     sync.Mutex
	room   *domain.Room
	closed bool
}

// Registry is the process-wide room store used by hosts that do not get
// per-room serialization for free. Rooms are created on first use and
// dropped as soon as the last player leaves.
type Registry struct {
	svc *Service

	mu     sync.Mutex
	tables map[string]*table
}

// NewRegistry creates an empty store that builds rooms through svc.
func NewRegistry(svc *Service) *Registry {
	return &Registry{svc: svc, tables: make(map[string]*table)}
}

// With runs fn against the room while holding that room's lock. When create
// is set a missing room is created first. A room left empty by fn is removed
// before the lock is released.
func (r *Registry) With(roomID string, create bool, fn func(room *domain.Room)) error {
	for {
		t, err := r.lookup(roomID, create)
		if err != nil {
			return err
		}

		t.mu.Lock()
		if t.closed {
			// Deleted between lookup and lock; retry against a fresh entry.
			t.mu.Unlock()
			continue
		}
		fn(t.room)
		if t.room.Empty() {
			r.remove(roomID, t)
			t.closed = true
		}
		t.mu.Unlock()
		return nil
	}
}

func (r *Registry) lookup(roomID string, create bool) (*table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[roomID]
	if ok {
		return t, nil
	}
	if !create {
		return nil, ErrRoomNotFound
	}
	t = &table{room: r.svc.NewRoom(roomID)}
	r.tables[roomID] = t
	return t, nil
}

func (r *Registry) remove(roomID string, t *table) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tables[roomID] == t {
		delete(r.tables, roomID)
	}
}

// Len returns the number of live rooms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tables)
}

// RoomIDs returns the live room ids in sorted order.
func (r *Registry) RoomIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.tables))
	for id := range r.tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
