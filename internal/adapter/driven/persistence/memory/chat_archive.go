package memory

import (
	"context"
	"sync"

	"github.com/curelink/relay/internal/core/domain"
)

// ChatArchive is the in-memory stand-in for the platform's chat history
// store. Implements port.ChatArchive.
type ChatArchive struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
}

func NewChatArchive() *ChatArchive {
	return &ChatArchive{
		messages: make([]domain.ChatMessage, 0),
	}
}

func (a *ChatArchive) Save(ctx context.Context, msg domain.ChatMessage) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, msg)
	return nil
}

// All returns a snapshot of everything archived so far.
func (a *ChatArchive) All() []domain.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.ChatMessage, len(a.messages))
	copy(out, a.messages)
	return out
}
