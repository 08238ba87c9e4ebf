package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curelink/relay/internal/core/domain"
)

func TestConnectionRegistryLifecycle(t *testing.T) {
	r := NewConnectionRegistry()
	id := domain.NewConnectionID()

	_, ok := r.Lookup(id)
	assert.False(t, ok)

	r.Register(id, domain.Identity{UserID: "1", UserName: "alice", UserRole: domain.RolePatient})
	p, ok := r.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, id, p.ConnectionID)
	assert.Equal(t, "alice", p.UserName)
	assert.Empty(t, p.Room)

	r.SetRoom(id, "consult-42")
	p, ok = r.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, domain.RoomID("consult-42"), p.Room)

	r.Remove(id)
	_, ok = r.Lookup(id)
	assert.False(t, ok)
	assert.Zero(t, r.Len())
}

func TestConnectionRegistryRegisterKeepsRoom(t *testing.T) {
	r := NewConnectionRegistry()
	id := domain.NewConnectionID()

	r.Register(id, domain.Identity{UserID: "1", UserName: "alice"})
	r.SetRoom(id, "consult-42")
	r.Register(id, domain.Identity{UserID: "1", UserName: "alice b"})

	p, ok := r.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, "alice b", p.UserName)
	assert.Equal(t, domain.RoomID("consult-42"), p.Room)
}

func TestConnectionRegistrySetRoomOnMissingIsNoOp(t *testing.T) {
	r := NewConnectionRegistry()
	r.SetRoom(domain.NewConnectionID(), "consult-42")
	assert.Zero(t, r.Len())
}

func TestConnectionRegistryRemoveTwice(t *testing.T) {
	r := NewConnectionRegistry()
	id := domain.NewConnectionID()

	r.Register(id, domain.Identity{UserID: "1"})
	r.Remove(id)
	r.Remove(id)
	assert.Zero(t, r.Len())
}
