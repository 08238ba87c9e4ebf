package port

import "github.com/curelink/relay/internal/core/domain"

// ConnectionRegistry owns the connection id -> participant mapping. All
// methods must be safe for concurrent use; a missing id is a benign
// disconnect race, never a fault.
type ConnectionRegistry interface {
	Register(id domain.ConnectionID, identity domain.Identity)
	SetRoom(id domain.ConnectionID, room domain.RoomID)
	Lookup(id domain.ConnectionID) (domain.Participant, bool)
	Remove(id domain.ConnectionID)
}

// RoomRegistry owns room membership. Join creates the room if absent and
// returns the members that were already present. Leave returns how many
// members remain; at zero the room entry itself is gone.
type RoomRegistry interface {
	Join(room domain.RoomID, id domain.ConnectionID) []domain.ConnectionID
	Leave(room domain.RoomID, id domain.ConnectionID) int
	Members(room domain.RoomID) ([]domain.ConnectionID, bool)
}
