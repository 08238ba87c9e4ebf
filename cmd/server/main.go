package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/curelink/relay/internal/adapter/driven/gateway/ws"
	archive "github.com/curelink/relay/internal/adapter/driven/persistence/memory"
	registry "github.com/curelink/relay/internal/adapter/driven/registry/memory"
	handler "github.com/curelink/relay/internal/adapter/driving/http"
	"github.com/curelink/relay/internal/config"
	"github.com/curelink/relay/internal/core/service"
)

const statsInterval = time.Minute

func main() {
	w := zerolog.ConsoleWriter{Out: os.Stdout}
	l := zerolog.New(w).With().Timestamp().Caller().Logger()

	cfg, err := config.Load()
	if err != nil {
		l.Fatal().Err(err).Msg("Failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	conns := registry.NewConnectionRegistry()
	rooms := registry.NewRoomRegistry()
	chats := archive.NewChatArchive()
	hub := ws.NewHub()

	relay := service.NewRelay(conns, rooms, hub, chats)
	h := handler.NewHandler(relay, hub, cfg)

	go hub.Run()

	stopStats := make(chan struct{})
	go logStats(l, conns, rooms, stopStats)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h.NewRouter(),
	}

	go func() {
		l.Info().Str("addr", cfg.ServerAddr).Msg("Starting signaling relay")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	close(stopStats)
	hub.Stop()
	l.Info().Msg("Server exited")
}

func logStats(l zerolog.Logger, conns *registry.ConnectionRegistry, rooms *registry.RoomRegistry, stop <-chan struct{}) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if conns.Len() > 0 || rooms.Len() > 0 {
				l.Debug().Int("connections", conns.Len()).Int("rooms", rooms.Len()).Msg("Registry stats")
			}
		}
	}
}
