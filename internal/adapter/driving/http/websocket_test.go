package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curelink/relay/internal/config"
	"github.com/curelink/relay/internal/core/domain"
)

type recvFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func dial(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{"event": event, "data": data}))
}

func readEvent(t *testing.T, conn *websocket.Conn) recvFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame recvFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestWebsocketSignalingRoundTrip(t *testing.T) {
	h, hub := newTestHandler(&config.Config{})
	go hub.Run()
	defer hub.Stop()

	srv := httptest.NewServer(h.NewRouter())
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	alice := dial(t, wsURL)
	sendEvent(t, alice, "join-room", map[string]any{
		"roomId": "consult-42", "userId": "1", "userName": "alice", "userRole": "patient",
	})

	frame := readEvent(t, alice)
	require.Equal(t, "room-participants", frame.Event)
	var first struct {
		Participants []domain.Participant `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(frame.Data, &first))
	assert.Empty(t, first.Participants)

	bob := dial(t, wsURL)
	sendEvent(t, bob, "join-room", map[string]any{
		"roomId": "consult-42", "userId": "2", "userName": "bob", "userRole": "doctor",
	})

	frame = readEvent(t, bob)
	require.Equal(t, "room-participants", frame.Event)
	var second struct {
		Participants []domain.Participant `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(frame.Data, &second))
	require.Len(t, second.Participants, 1)
	assert.Equal(t, "1", second.Participants[0].UserID)
	aliceConn := second.Participants[0].ConnectionID

	frame = readEvent(t, alice)
	require.Equal(t, "user-joined", frame.Event)
	var joined struct {
		ConnectionID domain.ConnectionID `json:"connectionId"`
		UserName     string              `json:"userName"`
	}
	require.NoError(t, json.Unmarshal(frame.Data, &joined))
	assert.Equal(t, "bob", joined.UserName)
	bobConn := joined.ConnectionID

	sendEvent(t, alice, "webrtc-offer", map[string]any{
		"roomId":             "consult-42",
		"targetConnectionId": bobConn.String(),
		"offer":              map[string]any{"type": "offer", "sdp": "v=0"},
	})

	frame = readEvent(t, bob)
	require.Equal(t, "webrtc-offer", frame.Event)
	var offer struct {
		Offer              json.RawMessage     `json:"offer"`
		SenderConnectionID domain.ConnectionID `json:"senderConnectionId"`
		SenderInfo         domain.Identity     `json:"senderInfo"`
	}
	require.NoError(t, json.Unmarshal(frame.Data, &offer))
	assert.Equal(t, aliceConn, offer.SenderConnectionID)
	assert.Equal(t, "alice", offer.SenderInfo.UserName)
	assert.JSONEq(t, `{"type":"offer","sdp":"v=0"}`, string(offer.Offer))

	// Abrupt disconnect, no leave-room frame.
	bob.Close()

	frame = readEvent(t, alice)
	require.Equal(t, "user-left", frame.Event)
	var left struct {
		ConnectionID domain.ConnectionID `json:"connectionId"`
		UserID       string              `json:"userId"`
		UserName     string              `json:"userName"`
	}
	require.NoError(t, json.Unmarshal(frame.Data, &left))
	assert.Equal(t, bobConn, left.ConnectionID)
	assert.Equal(t, "bob", left.UserName)
}

func TestWebsocketMalformedFrameKeepsConnection(t *testing.T) {
	h, hub := newTestHandler(&config.Config{})
	go hub.Run()
	defer hub.Stop()

	srv := httptest.NewServer(h.NewRouter())
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn := dial(t, wsURL)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	sendEvent(t, conn, "join-room", map[string]any{
		"roomId": "consult-42", "userId": "1", "userName": "alice", "userRole": "patient",
	})
	frame := readEvent(t, conn)
	assert.Equal(t, "room-participants", frame.Event)
}

func TestWebsocketOriginRejected(t *testing.T) {
	h, hub := newTestHandler(&config.Config{AllowedOrigins: "https://app.example.com"})
	go hub.Run()
	defer hub.Stop()

	srv := httptest.NewServer(h.NewRouter())
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	header := map[string][]string{"Origin": {"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, 403, resp.StatusCode)
	}
}
