package service

import (
	"context"

	"github.com/curelink/relay/internal/core/domain"
	"github.com/rs/zerolog/log"
)

// Disconnect handles a transport-level close. From the remaining peer's
// point of view it is identical to an explicit leave-room, and running it
// after a leave already cleaned up is a no-op.
func (s *Relay) Disconnect(ctx context.Context, from domain.ConnectionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handleLeave(ctx, from)
}

// handleLeave is the single departure path for leave-room and disconnect.
// The connection's recorded room is authoritative, not anything the client
// sent. Callers hold s.mu.
func (s *Relay) handleLeave(ctx context.Context, from domain.ConnectionID) {
	p, ok := s.conns.Lookup(from)
	if !ok {
		// Already cleaned up; the double leave/disconnect race ends here.
		return
	}

	if p.Room != "" {
		remaining := s.rooms.Leave(p.Room, from)
		s.broadcast(ctx, p.Room, from, domain.Envelope{
			Event: domain.EventUserLeft,
			Data:  domain.UserLeft{ConnectionID: from, UserID: p.UserID, UserName: p.UserName},
		})
		if remaining == 0 {
			log.Info().Str("room_id", p.Room.String()).Msg("Room empty, removed")
		} else {
			log.Info().Str("conn_id", from.String()).Str("room_id", p.Room.String()).Int("members", remaining).Msg("Left room")
		}
	}

	s.conns.Remove(from)
}
