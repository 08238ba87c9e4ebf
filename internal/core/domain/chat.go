package domain

import (
	"errors"
	"time"
)

var ErrEmptyMessage = errors.New("chat message body cannot be empty")

// ChatMessage is relay-only chat: delivered live to the other room members
// and handed to the history archive, never stored by the relay itself.
type ChatMessage struct {
	Room       RoomID
	SenderID   string
	SenderName string
	Body       string
	SentAt     time.Time
}

func NewChatMessage(room RoomID, senderID, senderName, body string, at time.Time) (*ChatMessage, error) {
	if body == "" {
		return nil, ErrEmptyMessage
	}
	return &ChatMessage{
		Room:       room,
		SenderID:   senderID,
		SenderName: senderName,
		Body:       body,
		SentAt:     at,
	}, nil
}
