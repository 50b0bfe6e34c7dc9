package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestServer(t *testing.T, cfg Config) (*Server, string) {
	t.Helper()
	srv := NewServer(cfg, testLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		_ = srv.Stop(context.Background())
		ts.Close()
	})
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ MessageType, requestID string, data any) {
	t.Helper()
	msg, err := NewMessage(typ, data)
	require.NoError(t, err)
	msg.RequestID = requestID
	require.NoError(t, conn.WriteJSON(msg))
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func readState(t *testing.T, conn *websocket.Conn, requestID string) game.Snapshot {
	t.Helper()
	msg := read(t, conn)
	require.Equal(t, MessageTypeState, msg.Type, "payload: %s", msg.Data)
	assert.Equal(t, requestID, msg.RequestID)
	var data StateData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	return data.Snapshot
}

func readError(t *testing.T, conn *websocket.Conn, requestID string) ErrorData {
	t.Helper()
	msg := read(t, conn)
	require.Equal(t, MessageTypeError, msg.Type, "payload: %s", msg.Data)
	assert.Equal(t, requestID, msg.RequestID)
	var data ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	return data
}

func TestServerHealth(t *testing.T) {
	srv := NewServer(Config{}, testLogger())
	defer func() { _ = srv.Stop(context.Background()) }()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sessions=0")
}

func TestSessionRoundTrip(t *testing.T) {
	seed := int64(7)
	srv, url := newTestServer(t, Config{Seed: &seed})
	conn := dial(t, url)

	welcome := read(t, conn)
	require.Equal(t, MessageTypeWelcome, welcome.Type)
	var hello WelcomeData
	require.NoError(t, json.Unmarshal(welcome.Data, &hello))
	assert.NotEmpty(t, hello.SessionID)
	assert.Equal(t, 1, srv.Sessions())

	send(t, conn, MessageTypeBattle, "r1", nil)
	assert.Equal(t, CodeInvalidTransition, readError(t, conn, "r1").Code)

	send(t, conn, MessageTypeStart, "r2", nil)
	snap := readState(t, conn, "r2")
	assert.Equal(t, game.PhaseDealt, snap.Phase)
	require.NotNil(t, snap.PlayerHand)
	assert.Nil(t, snap.OpponentHand, "opponent hand is not sent before battle")

	send(t, conn, MessageTypeExchange, "r3", map[string]string{"player": "up", "opponent": "left"})
	assert.Equal(t, CodeInvalidPosition, readError(t, conn, "r3").Code)

	send(t, conn, MessageTypeExchange, "r4", nil)
	assert.Equal(t, CodeInvalidMessage, readError(t, conn, "r4").Code)

	send(t, conn, MessageTypeExchange, "r4a", map[string]string{})
	assert.Equal(t, CodeInvalidMessage, readError(t, conn, "r4a").Code)

	send(t, conn, MessageTypeExchange, "r4b", map[string]string{"player": "right"})
	assert.Equal(t, CodeInvalidMessage, readError(t, conn, "r4b").Code)

	send(t, conn, MessageTypeState, "r4c", nil)
	assert.Equal(t, game.PhaseDealt, readState(t, conn, "r4c").Phase, "incomplete exchanges leave the deal untouched")

	send(t, conn, "fold", "r5", nil)
	assert.Equal(t, CodeUnknownMessageType, readError(t, conn, "r5").Code)

	send(t, conn, MessageTypeExchange, "r6", ExchangeData{Player: card.Left, Opponent: card.Right})
	snap = readState(t, conn, "r6")
	assert.Equal(t, game.PhaseExchanged, snap.Phase)
	require.NotNil(t, snap.Exchange)
	assert.Equal(t, card.Right, snap.Exchange.Opponent)

	send(t, conn, MessageTypeBattle, "r7", nil)
	snap = readState(t, conn, "r7")
	assert.True(t, snap.Phase.Resolved())
	assert.NotNil(t, snap.OpponentHand)
	assert.NotNil(t, snap.Outcome)

	send(t, conn, MessageTypeHistory, "r8", nil)
	msg := read(t, conn)
	require.Equal(t, MessageTypeHistory, msg.Type)
	var history HistoryData
	require.NoError(t, json.Unmarshal(msg.Data, &history))
	assert.Len(t, history.Rounds, 1)
	assert.Equal(t, 1, history.Summary.Played)
	assert.Equal(t, 1, history.Summary.Exchanges)
}

func TestSeededSessionsReplay(t *testing.T) {
	seed := int64(99)
	hands := make([]string, 2)
	for i := range hands {
		_, url := newTestServer(t, Config{Seed: &seed})
		conn := dial(t, url)
		read(t, conn)
		send(t, conn, MessageTypeStart, "s", nil)
		snap := readState(t, conn, "s")
		require.NotNil(t, snap.PlayerHand)
		hands[i] = snap.PlayerHand.Compact()
	}
	assert.Equal(t, hands[0], hands[1])
}

func TestSessionLimit(t *testing.T) {
	srv, url := newTestServer(t, Config{MaxSessions: 1})

	first := dial(t, url)
	assert.Equal(t, MessageTypeWelcome, read(t, first).Type)

	second := dial(t, url)
	assert.Equal(t, CodeSessionLimit, readError(t, second, "").Code)
	assert.Equal(t, 1, srv.Sessions())
}

func TestIdleSessionsAreReaped(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mock := quartz.NewMock(t)
	srv, url := newTestServer(t, Config{IdleTimeout: time.Minute, Clock: mock})

	conn := dial(t, url)
	require.Equal(t, MessageTypeWelcome, read(t, conn).Type)

	mock.Advance(30 * time.Second).MustWait(ctx)
	assert.Equal(t, 1, srv.Sessions(), "half the timeout is not idle yet")

	mock.Advance(30 * time.Second).MustWait(ctx)
	assert.Equal(t, 0, srv.Sessions())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "reaped connections are closed")
}

func TestActivityKeepsSessionAlive(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mock := quartz.NewMock(t)
	srv, url := newTestServer(t, Config{IdleTimeout: time.Minute, Clock: mock})

	conn := dial(t, url)
	read(t, conn)

	mock.Advance(30 * time.Second).MustWait(ctx)
	send(t, conn, MessageTypeState, "ping", nil)
	readState(t, conn, "ping")

	mock.Advance(30 * time.Second).MustWait(ctx)
	assert.Equal(t, 1, srv.Sessions())
}

func TestErrorCodeRoundTrip(t *testing.T) {
	for _, sentinel := range []error{game.ErrInvalidTransition, game.ErrExchangeRequired, card.ErrInvalidPosition, ErrSessionLimit} {
		data := ErrorData{Code: ErrorCode(sentinel), Message: sentinel.Error()}
		assert.ErrorIs(t, data.Err(), sentinel)
	}
	assert.Equal(t, CodeInternal, ErrorCode(io.EOF))
}
