package ws

import (
	"context"
	"sync"

	"github.com/curelink/relay/internal/core/domain"
	"github.com/rs/zerolog/log"
)

// Hub tracks live clients by connection id and implements port.Gateway.
type Hub struct {
	mu         sync.RWMutex
	clients    map[domain.ConnectionID]Client
	register   chan Client
	unregister chan Client
	quit       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[domain.ConnectionID]Client),
		register:   make(chan Client),
		unregister: make(chan Client),
		quit:       make(chan struct{}),
	}
}

// Send hands env to the addressed client. A connection that is no longer
// registered is a benign race with disconnect and delivers nowhere.
func (h *Hub) Send(ctx context.Context, to domain.ConnectionID, env domain.Envelope) error {
	h.mu.RLock()
	client, ok := h.clients[to]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	return client.Deliver(env)
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			h.mu.Lock()
			for id, client := range h.clients {
				client.Close()
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID()] = client
			h.mu.Unlock()
			log.Info().Str("conn_id", client.ID().String()).Msg("Client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[client.ID()]
			if ok {
				delete(h.clients, client.ID())
			}
			h.mu.Unlock()
			if ok {
				client.Close()
				log.Info().Str("conn_id", client.ID().String()).Msg("Client unregistered")
			}
		}
	}
}

func (h *Hub) Register(c Client) {
	h.register <- c
}

func (h *Hub) Unregister(c Client) {
	h.unregister <- c
}

func (h *Hub) Stop() {
	close(h.quit)
}
