package http

import (
	"encoding/json"
	"fmt"

	"github.com/curelink/relay/internal/core/domain"
)

// wireFrame is the envelope every client frame arrives in.
type wireFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// decodeFrame maps one wire frame to the router's tagged event type. The
// offer/answer/candidate payloads stay raw bytes end to end.
func decodeFrame(frame wireFrame) (domain.Inbound, error) {
	ev := domain.Inbound{Type: domain.EventType(frame.Event)}

	switch ev.Type {
	case domain.EventJoinRoom:
		var d struct {
			RoomID   string      `json:"roomId"`
			UserID   string      `json:"userId"`
			UserName string      `json:"userName"`
			UserRole domain.Role `json:"userRole"`
		}
		if err := json.Unmarshal(frame.Data, &d); err != nil {
			return ev, err
		}
		ev.Room = domain.RoomID(d.RoomID)
		ev.Identity = domain.Identity{UserID: d.UserID, UserName: d.UserName, UserRole: d.UserRole}

	case domain.EventWebRTCOffer, domain.EventWebRTCAnswer, domain.EventICECandidate:
		var d struct {
			RoomID    string          `json:"roomId"`
			Target    string          `json:"targetConnectionId"`
			Offer     json.RawMessage `json:"offer"`
			Answer    json.RawMessage `json:"answer"`
			Candidate json.RawMessage `json:"candidate"`
		}
		if err := json.Unmarshal(frame.Data, &d); err != nil {
			return ev, err
		}
		ev.Room = domain.RoomID(d.RoomID)
		ev.Target = domain.ConnectionID(d.Target)
		switch ev.Type {
		case domain.EventWebRTCOffer:
			ev.Signal = d.Offer
		case domain.EventWebRTCAnswer:
			ev.Signal = d.Answer
		default:
			ev.Signal = d.Candidate
		}

	case domain.EventChatMessage:
		var d struct {
			RoomID     string `json:"roomId"`
			Message    string `json:"message"`
			SenderID   string `json:"senderId"`
			SenderName string `json:"senderName"`
		}
		if err := json.Unmarshal(frame.Data, &d); err != nil {
			return ev, err
		}
		ev.Room = domain.RoomID(d.RoomID)
		ev.Text = d.Message
		ev.Identity = domain.Identity{UserID: d.SenderID, UserName: d.SenderName}

	case domain.EventToggleVideo, domain.EventToggleAudio:
		var d struct {
			RoomID  string `json:"roomId"`
			Enabled bool   `json:"enabled"`
		}
		if err := json.Unmarshal(frame.Data, &d); err != nil {
			return ev, err
		}
		ev.Room = domain.RoomID(d.RoomID)
		ev.Enabled = d.Enabled

	case domain.EventStartScreenShare, domain.EventStopScreenShare, domain.EventLeaveRoom:
		// Data may be absent on leave-room; the router uses the recorded
		// room anyway.
		if len(frame.Data) > 0 {
			var d struct {
				RoomID string `json:"roomId"`
			}
			if err := json.Unmarshal(frame.Data, &d); err != nil {
				return ev, err
			}
			ev.Room = domain.RoomID(d.RoomID)
		}

	default:
		return ev, fmt.Errorf("unknown event %q", frame.Event)
	}

	return ev, nil
}
