package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lox/xyzbattle/internal/game"
	"github.com/lox/xyzbattle/internal/server" // Reuse message types
)

// ErrDisconnected is returned once the connection to the server is gone.
var ErrDisconnected = errors.New("disconnected from server")

// DefaultRequestTimeout bounds a single command round trip.
const DefaultRequestTimeout = 10 * time.Second

// Client is a game.Driver playing a session held by a websocket server
type Client struct {
	serverURL      string
	conn           *websocket.Conn
	send           chan *server.Message
	logger         *log.Logger
	ctx            context.Context
	cancel         context.CancelFunc
	closeOnce      sync.Once
	requestTimeout time.Duration

	mu            sync.RWMutex
	connected     bool
	sessionID     string
	pending       map[string]chan *server.Message
	eventHandlers map[server.MessageType][]EventHandler
	welcome       chan error
}

var _ game.Driver = (*Client)(nil)

// EventHandler is a function that handles messages that answer no request
type EventHandler func(*server.Message)

// NewClient creates a new WebSocket client
func NewClient(serverURL string, logger *log.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		serverURL:      serverURL,
		send:           make(chan *server.Message, 256),
		logger:         logger.WithPrefix("client"),
		ctx:            ctx,
		cancel:         cancel,
		requestTimeout: DefaultRequestTimeout,
		pending:        make(map[string]chan *server.Message),
		eventHandlers:  make(map[server.MessageType][]EventHandler),
		welcome:        make(chan error, 1),
	}
}

// SetRequestTimeout changes how long a command waits for its reply
func (c *Client) SetRequestTimeout(d time.Duration) {
	c.requestTimeout = d
}

// websocketURL accepts http(s), ws(s) or a bare host:port and points it at
// the /ws endpoint.
func websocketURL(raw string) (string, error) {
	if !strings.Contains(raw, "://") {
		raw = "ws://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid server URL scheme %q", u.Scheme)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}

// Connect dials the server and waits until it has opened a session
func (c *Client) Connect(ctx context.Context) error {
	target, err := websocketURL(c.serverURL)
	if err != nil {
		return err
	}
	c.logger.Info("Connecting to server", "url", target)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	go c.readPump()
	go c.writePump()

	select {
	case err := <-c.welcome:
		if err != nil {
			_ = c.Close()
			return fmt.Errorf("server refused session: %w", err)
		}
	case <-ctx.Done():
		_ = c.Close()
		return ctx.Err()
	case <-c.ctx.Done():
		// A refusal arrives just before the server hangs up
		select {
		case err := <-c.welcome:
			if err != nil {
				return fmt.Errorf("server refused session: %w", err)
			}
		default:
		}
		return ErrDisconnected
	}

	c.logger.Info("Connected to server", "session", c.SessionID())
	return nil
}

// Close closes the WebSocket connection
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()

		c.mu.Lock()
		defer c.mu.Unlock()

		if c.conn != nil {
			_ = c.conn.Close() // Ignore close errors during shutdown
			c.connected = false
		}
		c.logger.Info("Disconnected from server")
	})
	return nil
}

// IsConnected returns whether the client is connected
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// SessionID returns the id the server gave this session
func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// SendMessage queues a message for the server
func (c *Client) SendMessage(msg *server.Message) error {
	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrDisconnected
	default:
		return fmt.Errorf("send buffer full")
	}
}

// readPump handles incoming messages from the server
func (c *Client) readPump() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		c.cancel()
	}()

	for {
		var msg server.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)
		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the server
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second) // Ping interval
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(time.Second))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// handleMessage routes replies to their waiting request and everything
// else to the registered handlers
func (c *Client) handleMessage(msg *server.Message) {
	c.mu.Lock()
	if ch, ok := c.pending[msg.RequestID]; ok && msg.RequestID != "" {
		delete(c.pending, msg.RequestID)
		c.mu.Unlock()
		ch <- msg
		return
	}
	handlers := c.eventHandlers[msg.Type]
	c.mu.Unlock()

	switch msg.Type {
	case server.MessageTypeWelcome:
		var data server.WelcomeData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.signalWelcome(fmt.Errorf("invalid welcome: %w", err))
			return
		}
		c.mu.Lock()
		c.sessionID = data.SessionID
		c.mu.Unlock()
		c.signalWelcome(nil)
	case server.MessageTypeError:
		var data server.ErrorData
		if err := json.Unmarshal(msg.Data, &data); err == nil {
			c.logger.Warn("Server error", "code", data.Code, "message", data.Message)
			c.signalWelcome(data.Err())
		}
	}

	for _, handler := range handlers {
		go handler(msg) // Handle asynchronously
	}
}

func (c *Client) signalWelcome(err error) {
	select {
	case c.welcome <- err:
	default:
	}
}

// AddEventHandler adds a handler for messages that answer no request
func (c *Client) AddEventHandler(messageType server.MessageType, handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eventHandlers[messageType] = append(c.eventHandlers[messageType], handler)
}

// request sends a message and waits for the reply carrying its request id.
// Error replies are returned as errors.
func (c *Client) request(ctx context.Context, messageType server.MessageType, data any) (*server.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	msg, err := server.NewMessage(messageType, data)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", messageType, err)
	}
	msg.RequestID = uuid.NewString()

	reply := make(chan *server.Message, 1)
	c.mu.Lock()
	c.pending[msg.RequestID] = reply
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, msg.RequestID)
		c.mu.Unlock()
	}()

	if err := c.SendMessage(msg); err != nil {
		return nil, err
	}

	timeout := time.NewTimer(c.requestTimeout)
	defer timeout.Stop()

	select {
	case resp := <-reply:
		if resp.Type == server.MessageTypeError {
			var data server.ErrorData
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return nil, fmt.Errorf("decode error reply: %w", err)
			}
			return nil, data.Err()
		}
		return resp, nil
	case <-timeout.C:
		return nil, fmt.Errorf("timeout waiting for reply to %s", messageType)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.ctx.Done():
		return nil, ErrDisconnected
	}
}

// Do sends a session command and returns the server's snapshot
func (c *Client) Do(ctx context.Context, cmd game.Command) (game.Snapshot, error) {
	var data any
	if cmd.Op == game.OpExchange {
		data = server.ExchangeData{Player: cmd.Player, Opponent: cmd.Opponent}
	}

	resp, err := c.request(ctx, server.MessageType(cmd.Op), data)
	if err != nil {
		return game.Snapshot{}, err
	}
	if resp.Type != server.MessageTypeState {
		return game.Snapshot{}, fmt.Errorf("unexpected reply %s to %s", resp.Type, cmd.Op)
	}

	var state server.StateData
	if err := json.Unmarshal(resp.Data, &state); err != nil {
		return game.Snapshot{}, fmt.Errorf("decode state: %w", err)
	}
	return state.Snapshot, nil
}

// History returns the battled rounds of the remote session
func (c *Client) History(ctx context.Context) ([]game.RoundRecord, error) {
	resp, err := c.request(ctx, server.MessageTypeHistory, nil)
	if err != nil {
		return nil, err
	}

	var data server.HistoryData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return data.Rounds, nil
}
