package ws

import "github.com/curelink/relay/internal/core/domain"

// Client is one live connection the hub can deliver envelopes to.
type Client interface {
	ID() domain.ConnectionID
	Deliver(env domain.Envelope) error
	Close() error
}
