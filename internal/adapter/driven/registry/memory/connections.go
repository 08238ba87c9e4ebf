package memory

import (
	"sync"

	"github.com/curelink/relay/internal/core/domain"
)

// ConnectionRegistry keeps per-connection identity in memory for the life
// of the process. Implements port.ConnectionRegistry.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	conns map[domain.ConnectionID]domain.Participant
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		conns: make(map[domain.ConnectionID]domain.Participant),
	}
}

// Register associates identity with a connection id. Idempotent: a repeated
// register replaces the identity and keeps the room association.
func (r *ConnectionRegistry) Register(id domain.ConnectionID, identity domain.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.conns[id]
	p.ConnectionID = id
	p.Identity = identity
	r.conns[id] = p
}

func (r *ConnectionRegistry) SetRoom(id domain.ConnectionID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.conns[id]
	if !ok {
		return
	}
	p.Room = room
	r.conns[id] = p
}

func (r *ConnectionRegistry) Lookup(id domain.ConnectionID) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.conns[id]
	return p, ok
}

func (r *ConnectionRegistry) Remove(id domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
}

func (r *ConnectionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
