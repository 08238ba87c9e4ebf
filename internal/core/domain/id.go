package domain

import (
	"github.com/google/uuid"
)

// ConnectionID identifies a single live client link for its whole lifetime.
// Server-assigned; a user who reconnects gets a fresh one.
type ConnectionID string

func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.New().String())
}

func (id ConnectionID) String() string {
	return string(id)
}

// RoomID is the consultation id the booking system minted. Opaque to the
// relay; rooms are created lazily on the first join for an id.
type RoomID string

func (id RoomID) String() string {
	return string(id)
}
