package service

import (
	"context"
	"sync"
	"time"

	"github.com/curelink/relay/internal/core/domain"
	"github.com/curelink/relay/internal/core/port"
	"github.com/rs/zerolog/log"
)

// Relay is the signaling router. It interprets each inbound event, mutates
// the two registries, and forwards to the right peer(s): WebRTC signaling
// unicast by explicit target connection id, presence/chat/status broadcast
// to the rest of the room.
//
// One mutex serializes whole event handlers, so a membership change and
// the notifications it produces can never interleave with another event's
// on the same room.
type Relay struct {
	mu      sync.Mutex
	conns   port.ConnectionRegistry
	rooms   port.RoomRegistry
	gateway port.Gateway
	archive port.ChatArchive
	now     func() time.Time
}

func NewRelay(conns port.ConnectionRegistry, rooms port.RoomRegistry, gateway port.Gateway, archive port.ChatArchive) *Relay {
	return &Relay{
		conns:   conns,
		rooms:   rooms,
		gateway: gateway,
		archive: archive,
		now:     time.Now,
	}
}

// Dispatch routes one decoded client event. Events that reference a target
// that is gone, or a room the sender is not a member of, are dropped: a
// stale frame from a racing client is not worth tearing the connection
// down for, and the protocol has no error event to answer with.
func (s *Relay) Dispatch(ctx context.Context, from domain.ConnectionID, ev domain.Inbound) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case domain.EventJoinRoom:
		s.handleJoin(ctx, from, ev)
	case domain.EventWebRTCOffer, domain.EventWebRTCAnswer, domain.EventICECandidate:
		s.forwardSignal(ctx, from, ev)
	case domain.EventChatMessage:
		s.handleChat(ctx, from, ev)
	case domain.EventToggleVideo, domain.EventToggleAudio:
		s.handleMediaToggle(ctx, from, ev)
	case domain.EventStartScreenShare, domain.EventStopScreenShare:
		s.handleScreenShare(ctx, from, ev)
	case domain.EventLeaveRoom:
		s.handleLeave(ctx, from)
	default:
		log.Warn().Str("conn_id", from.String()).Str("event", string(ev.Type)).Msg("Unknown event dropped")
	}
}

func (s *Relay) handleJoin(ctx context.Context, from domain.ConnectionID, ev domain.Inbound) {
	if p, ok := s.conns.Lookup(from); ok && p.Room != "" {
		log.Warn().Str("conn_id", from.String()).Str("room_id", p.Room.String()).Msg("Join ignored, connection already in a room")
		return
	}

	s.conns.Register(from, ev.Identity)
	s.conns.SetRoom(from, ev.Room)
	others := s.rooms.Join(ev.Room, from)

	joined := domain.UserJoined{ConnectionID: from, Identity: ev.Identity}
	for _, other := range others {
		s.send(ctx, other, domain.Envelope{Event: domain.EventUserJoined, Data: joined})
	}

	participants := make([]domain.Participant, 0, len(others))
	for _, other := range others {
		if p, ok := s.conns.Lookup(other); ok {
			participants = append(participants, p)
		}
	}
	s.send(ctx, from, domain.Envelope{
		Event: domain.EventRoomParticipants,
		Data:  domain.RoomParticipants{Participants: participants},
	})

	log.Info().
		Str("conn_id", from.String()).
		Str("room_id", ev.Room.String()).
		Str("user", ev.Identity.UserName).
		Str("role", string(ev.Identity.UserRole)).
		Int("members", len(others)+1).
		Msg("Joined room")
}

func (s *Relay) forwardSignal(ctx context.Context, from domain.ConnectionID, ev domain.Inbound) {
	sender, ok := s.conns.Lookup(from)
	if !ok {
		log.Warn().Str("conn_id", from.String()).Str("event", string(ev.Type)).Msg("Signal from unregistered connection dropped")
		return
	}
	if _, ok := s.conns.Lookup(ev.Target); !ok {
		log.Debug().Str("conn_id", from.String()).Str("target", ev.Target.String()).Str("event", string(ev.Type)).Msg("Signal target gone, dropped")
		return
	}

	var data any
	switch ev.Type {
	case domain.EventWebRTCOffer:
		data = domain.OfferRelay{Offer: ev.Signal, SenderConnectionID: from, SenderInfo: sender.Identity}
	case domain.EventWebRTCAnswer:
		data = domain.AnswerRelay{Answer: ev.Signal, SenderConnectionID: from}
	default:
		data = domain.CandidateRelay{Candidate: ev.Signal, SenderConnectionID: from}
	}
	s.send(ctx, ev.Target, domain.Envelope{Event: ev.Type, Data: data})
}

func (s *Relay) handleChat(ctx context.Context, from domain.ConnectionID, ev domain.Inbound) {
	sender, ok := s.memberOf(from, ev.Room)
	if !ok {
		log.Warn().Str("conn_id", from.String()).Str("room_id", ev.Room.String()).Msg("Chat from non-member dropped")
		return
	}

	senderID, senderName := sender.UserID, sender.UserName
	if ev.Identity.UserID != "" {
		senderID = ev.Identity.UserID
	}
	if ev.Identity.UserName != "" {
		senderName = ev.Identity.UserName
	}

	msg, err := domain.NewChatMessage(ev.Room, senderID, senderName, ev.Text, s.now())
	if err != nil {
		log.Warn().Err(err).Str("conn_id", from.String()).Msg("Chat rejected")
		return
	}

	if err := s.archive.Save(ctx, *msg); err != nil {
		log.Error().Err(err).Str("room_id", ev.Room.String()).Msg("Chat archive failed")
	}

	s.broadcast(ctx, ev.Room, from, domain.Envelope{
		Event: domain.EventChatMessage,
		Data: domain.ChatRelay{
			Message:    msg.Body,
			SenderID:   msg.SenderID,
			SenderName: msg.SenderName,
			Timestamp:  msg.SentAt,
		},
	})
}

func (s *Relay) handleMediaToggle(ctx context.Context, from domain.ConnectionID, ev domain.Inbound) {
	sender, ok := s.memberOf(from, ev.Room)
	if !ok {
		log.Warn().Str("conn_id", from.String()).Str("room_id", ev.Room.String()).Str("event", string(ev.Type)).Msg("Toggle from non-member dropped")
		return
	}

	out := domain.EventUserVideoToggle
	if ev.Type == domain.EventToggleAudio {
		out = domain.EventUserAudioToggle
	}
	s.broadcast(ctx, ev.Room, from, domain.Envelope{
		Event: out,
		Data:  domain.MediaToggle{ConnectionID: from, UserID: sender.UserID, Enabled: ev.Enabled},
	})
}

func (s *Relay) handleScreenShare(ctx context.Context, from domain.ConnectionID, ev domain.Inbound) {
	sender, ok := s.memberOf(from, ev.Room)
	if !ok {
		log.Warn().Str("conn_id", from.String()).Str("room_id", ev.Room.String()).Str("event", string(ev.Type)).Msg("Screen share from non-member dropped")
		return
	}

	if ev.Type == domain.EventStartScreenShare {
		s.broadcast(ctx, ev.Room, from, domain.Envelope{
			Event: domain.EventScreenShareStarted,
			Data:  domain.ScreenShare{ConnectionID: from, UserID: sender.UserID, UserName: sender.UserName},
		})
		return
	}
	s.broadcast(ctx, ev.Room, from, domain.Envelope{
		Event: domain.EventScreenShareStopped,
		Data:  domain.ScreenShare{ConnectionID: from, UserID: sender.UserID},
	})
}

// memberOf returns the sender's participant record if the registries agree
// it is a member of room.
func (s *Relay) memberOf(id domain.ConnectionID, room domain.RoomID) (domain.Participant, bool) {
	p, ok := s.conns.Lookup(id)
	if !ok || p.Room != room {
		return domain.Participant{}, false
	}
	members, ok := s.rooms.Members(room)
	if !ok {
		return domain.Participant{}, false
	}
	for _, m := range members {
		if m == id {
			return p, true
		}
	}
	return domain.Participant{}, false
}

// broadcast sends env to every member of room except one.
func (s *Relay) broadcast(ctx context.Context, room domain.RoomID, except domain.ConnectionID, env domain.Envelope) {
	members, ok := s.rooms.Members(room)
	if !ok {
		return
	}
	for _, m := range members {
		if m != except {
			s.send(ctx, m, env)
		}
	}
}

func (s *Relay) send(ctx context.Context, to domain.ConnectionID, env domain.Envelope) {
	if err := s.gateway.Send(ctx, to, env); err != nil {
		log.Error().Err(err).Str("conn_id", to.String()).Str("event", string(env.Event)).Msg("Delivery failed")
	}
}
