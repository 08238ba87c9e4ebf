package memory

import (
	"sync"

	"github.com/curelink/relay/internal/core/domain"
)

// RoomRegistry tracks room membership in memory. A room exists exactly as
// long as it has members; the last leave removes the entry itself, so a
// "room becomes empty" transition can never race with a join under the
// same lock. Implements port.RoomRegistry.
type RoomRegistry struct {
	mu    sync.Mutex
	rooms map[domain.RoomID]map[domain.ConnectionID]struct{}
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[domain.RoomID]map[domain.ConnectionID]struct{}),
	}
}

// Join adds id to the room, creating it if absent, and returns the members
// that were already present.
func (r *RoomRegistry) Join(room domain.RoomID, id domain.ConnectionID) []domain.ConnectionID {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		members = make(map[domain.ConnectionID]struct{})
		r.rooms[room] = members
	}

	others := make([]domain.ConnectionID, 0, len(members))
	for m := range members {
		if m != id {
			others = append(others, m)
		}
	}
	members[id] = struct{}{}
	return others
}

// Leave removes id from the room and returns the remaining member count.
// The room entry is deleted when it empties; leaving a room that is not
// there is a no-op returning zero.
func (r *RoomRegistry) Leave(room domain.RoomID, id domain.ConnectionID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return 0
	}
	delete(members, id)
	if len(members) == 0 {
		delete(r.rooms, room)
		return 0
	}
	return len(members)
}

func (r *RoomRegistry) Members(room domain.RoomID) ([]domain.ConnectionID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return nil, false
	}
	out := make([]domain.ConnectionID, 0, len(members))
	for m := range members {
		out = append(out, m)
	}
	return out, true
}

func (r *RoomRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}
