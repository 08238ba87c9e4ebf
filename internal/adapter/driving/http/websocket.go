package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/curelink/relay/internal/core/domain"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// Ping period; must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// 64 KB, comfortable headroom for SDP offers.
	maxMessageSize = 64 * 1024

	sendBuffer = 256
)

// WSClient wraps one websocket connection. All writes go through the send
// channel so the write pump is the connection's only writer.
type WSClient struct {
	id   domain.ConnectionID
	conn *websocket.Conn
	send chan domain.Envelope
	done chan struct{}
	once sync.Once
}

func (c *WSClient) ID() domain.ConnectionID {
	return c.id
}

// Deliver queues an envelope for the write pump. A full queue drops the
// frame rather than blocking the router; the transport is best effort.
func (c *WSClient) Deliver(env domain.Envelope) error {
	select {
	case <-c.done:
		return nil
	default:
	}

	select {
	case c.send <- env:
	default:
		log.Warn().Str("conn_id", c.id.String()).Str("event", string(env.Event)).Msg("Send queue full, dropping frame")
	}
	return nil
}

func (c *WSClient) Close() error {
	c.once.Do(func() {
		close(c.done)
	})
	return c.conn.Close()
}

// writePump drains the send channel onto the socket and keeps the
// connection alive with pings.
func (c *WSClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case env := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(env); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return h.Cfg.OriginAllowed(r.Header.Get("Origin"))
		},
	}
}

// ServeWS upgrades the request and runs the connection's read loop until
// the client goes away. Disconnect cleanup runs exactly once on exit,
// whether the departure was a leave-room, a close frame, or a dead TCP
// connection.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	up := h.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}

	client := &WSClient{
		id:   domain.NewConnectionID(),
		conn: conn,
		send: make(chan domain.Envelope, sendBuffer),
		done: make(chan struct{}),
	}

	l := log.With().Str("conn_id", client.id.String()).Logger()
	l.Info().Msg("Client connected")

	h.Hub.Register(client)
	go client.writePump()

	defer func() {
		h.Relay.Disconnect(r.Context(), client.id)
		h.Hub.Unregister(client)
		l.Info().Msg("Client disconnected")
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close")
			}
			return
		}

		var frame wireFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			l.Warn().Err(err).Msg("Malformed frame skipped")
			continue
		}

		ev, err := decodeFrame(frame)
		if err != nil {
			l.Warn().Err(err).Str("event", frame.Event).Msg("Undecodable frame skipped")
			continue
		}

		h.Relay.Dispatch(r.Context(), client.id, ev)
	}
}
