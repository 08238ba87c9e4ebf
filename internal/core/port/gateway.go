package port

import (
	"context"

	"github.com/curelink/relay/internal/core/domain"
)

// Gateway delivers envelopes to live connections. Delivery is fire and
// forget: a connection that is gone or slow is not an error the router
// acts on.
type Gateway interface {
	Send(ctx context.Context, to domain.ConnectionID, env domain.Envelope) error
}
