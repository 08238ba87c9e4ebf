package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/curelink/relay/internal/adapter/driven/gateway/ws"
	"github.com/curelink/relay/internal/config"
	"github.com/curelink/relay/internal/core/service"
)

type Handler struct {
	Relay *service.Relay
	Hub   *ws.Hub
	Cfg   *config.Config
}

func NewHandler(relay *service.Relay, hub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		Relay: relay,
		Hub:   hub,
		Cfg:   cfg,
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Get("/api/ice-servers", h.ICEServers)
	r.Get("/ws", h.ServeWS)

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// ICEServers hands clients the configured STUN/TURN list they need to set
// up their peer connection.
func (h *Handler) ICEServers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{"iceServers": h.Cfg.ICEServers()}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("Failed to write ice servers")
	}
}
