package domain

import (
	"encoding/json"
	"time"
)

type EventType string

// Client -> server.
const (
	EventJoinRoom         EventType = "join-room"
	EventWebRTCOffer      EventType = "webrtc-offer"
	EventWebRTCAnswer     EventType = "webrtc-answer"
	EventICECandidate     EventType = "ice-candidate"
	EventChatMessage      EventType = "chat-message"
	EventToggleVideo      EventType = "toggle-video"
	EventToggleAudio      EventType = "toggle-audio"
	EventStartScreenShare EventType = "start-screen-share"
	EventStopScreenShare  EventType = "stop-screen-share"
	EventLeaveRoom        EventType = "leave-room"
)

// Server -> client.
const (
	EventRoomParticipants   EventType = "room-participants"
	EventUserJoined         EventType = "user-joined"
	EventUserLeft           EventType = "user-left"
	EventUserVideoToggle    EventType = "user-video-toggle"
	EventUserAudioToggle    EventType = "user-audio-toggle"
	EventScreenShareStarted EventType = "user-screen-share-started"
	EventScreenShareStopped EventType = "user-screen-share-stopped"
)

// Inbound is one decoded client event, tagged by Type. Only the fields the
// tag calls for are set. Signal carries offer/answer/candidate payloads as
// opaque bytes; the relay never looks inside them.
type Inbound struct {
	Type     EventType
	Room     RoomID
	Target   ConnectionID
	Identity Identity
	Signal   json.RawMessage
	Text     string
	Enabled  bool
}

// Envelope is one event on its way out to a client.
type Envelope struct {
	Event EventType `json:"event"`
	Data  any       `json:"data,omitempty"`
}

// RoomParticipants answers a join-room with who is already there.
type RoomParticipants struct {
	Participants []Participant `json:"participants"`
}

// UserJoined announces a newcomer to the members already in the room.
type UserJoined struct {
	ConnectionID ConnectionID `json:"connectionId"`
	Identity
}

// UserLeft announces a departure, graceful or not.
type UserLeft struct {
	ConnectionID ConnectionID `json:"connectionId"`
	UserID       string       `json:"userId"`
	UserName     string       `json:"userName"`
}

// OfferRelay forwards an SDP offer to its addressed peer. The offer bytes
// pass through unmodified; SenderInfo lets the receiver label the caller
// before any other exchange has happened.
type OfferRelay struct {
	Offer              json.RawMessage `json:"offer"`
	SenderConnectionID ConnectionID    `json:"senderConnectionId"`
	SenderInfo         Identity        `json:"senderInfo"`
}

type AnswerRelay struct {
	Answer             json.RawMessage `json:"answer"`
	SenderConnectionID ConnectionID    `json:"senderConnectionId"`
}

type CandidateRelay struct {
	Candidate          json.RawMessage `json:"candidate"`
	SenderConnectionID ConnectionID    `json:"senderConnectionId"`
}

// ChatRelay is a live chat message with the server-stamped time.
type ChatRelay struct {
	Message    string    `json:"message"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Timestamp  time.Time `json:"timestamp"`
}

// MediaToggle reports a peer muting or unmuting camera/microphone.
type MediaToggle struct {
	ConnectionID ConnectionID `json:"connectionId"`
	UserID       string       `json:"userId"`
	Enabled      bool         `json:"enabled"`
}

// ScreenShare reports a peer starting or stopping screen capture. UserName
// is only carried on start.
type ScreenShare struct {
	ConnectionID ConnectionID `json:"connectionId"`
	UserID       string       `json:"userId"`
	UserName     string       `json:"userName,omitempty"`
}
