package port

import (
	"context"

	"github.com/curelink/relay/internal/core/domain"
)

// ChatArchive receives a copy of every relayed chat message for the
// platform's history store. An archive error must never block or fail
// live delivery.
type ChatArchive interface {
	Save(ctx context.Context, msg domain.ChatMessage) error
}
