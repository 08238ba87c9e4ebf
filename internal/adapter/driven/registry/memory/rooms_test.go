package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curelink/relay/internal/core/domain"
)

func TestRoomRegistryJoinReturnsExistingMembers(t *testing.T) {
	r := NewRoomRegistry()
	a := domain.NewConnectionID()
	b := domain.NewConnectionID()

	assert.Empty(t, r.Join("consult-42", a))

	others := r.Join("consult-42", b)
	require.Len(t, others, 1)
	assert.Equal(t, a, others[0])

	members, ok := r.Members("consult-42")
	require.True(t, ok)
	assert.ElementsMatch(t, []domain.ConnectionID{a, b}, members)
}

func TestRoomRegistryEmptyRoomRemoved(t *testing.T) {
	r := NewRoomRegistry()
	a := domain.NewConnectionID()
	b := domain.NewConnectionID()

	r.Join("consult-42", a)
	r.Join("consult-42", b)

	assert.Equal(t, 1, r.Leave("consult-42", a))
	assert.Equal(t, 0, r.Leave("consult-42", b))

	_, ok := r.Members("consult-42")
	assert.False(t, ok, "an emptied room must not linger")
	assert.Zero(t, r.Len())
}

func TestRoomRegistryLeaveMissingRoom(t *testing.T) {
	r := NewRoomRegistry()
	assert.Zero(t, r.Leave("consult-42", domain.NewConnectionID()))
}

func TestRoomRegistryLeaveTwice(t *testing.T) {
	r := NewRoomRegistry()
	a := domain.NewConnectionID()
	b := domain.NewConnectionID()

	r.Join("consult-42", a)
	r.Join("consult-42", b)

	assert.Equal(t, 1, r.Leave("consult-42", a))
	assert.Equal(t, 1, r.Leave("consult-42", a))

	members, ok := r.Members("consult-42")
	require.True(t, ok)
	assert.Equal(t, []domain.ConnectionID{b}, members)
}

func TestRoomRegistryConcurrentJoinsAllReflected(t *testing.T) {
	r := NewRoomRegistry()

	ids := make([]domain.ConnectionID, 50)
	for i := range ids {
		ids[i] = domain.NewConnectionID()
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Join("consult-42", id)
		}()
	}
	wg.Wait()

	members, ok := r.Members("consult-42")
	require.True(t, ok)
	assert.ElementsMatch(t, ids, members)

	for _, id := range ids {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Leave("consult-42", id)
		}()
	}
	wg.Wait()

	_, ok = r.Members("consult-42")
	assert.False(t, ok)
}
