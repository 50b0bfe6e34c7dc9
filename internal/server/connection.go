package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/xyzbattle/internal/game"
)

// Connection represents a WebSocket connection playing one game session
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	hub       *Hub
	session   *sessionEntry
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, hub *Hub, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		hub:    hub,
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start binds the connection to a session and begins handling it
func (c *Connection) Start(session *sessionEntry) {
	c.session = session
	c.logger = c.logger.With("session", session.id)
	go c.writePump()
	go c.readPump()
}

// SessionID returns the id of the session played on this connection
func (c *Connection) SessionID() string {
	if c.session == nil {
		return ""
	}
	return c.session.id
}

// Done is closed once the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)
	c.hub.Touch(c.session.id)

	if msg.Type == MessageTypeHistory {
		c.handleHistory(msg.RequestID)
		return
	}

	op, err := game.ParseOp(msg.Type.String())
	if err != nil {
		c.sendError(msg.RequestID, CodeUnknownMessageType, "Unknown message type: "+msg.Type.String())
		return
	}

	cmd := game.Command{Op: op}
	if op == game.OpExchange {
		var data ExchangeData
		if len(msg.Data) == 0 {
			c.sendError(msg.RequestID, CodeInvalidMessage, "Exchange requires player and opponent positions")
			return
		}
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			code := ErrorCode(err)
			if code == CodeInternal {
				code = CodeInvalidMessage
			}
			c.sendError(msg.RequestID, code, fmt.Sprintf("Failed to parse exchange data: %v", err))
			return
		}
		cmd.Player, cmd.Opponent = data.Player, data.Opponent
	}

	snap, err := c.session.driver.Do(c.ctx, cmd)
	if err != nil {
		c.logger.Debug("Command rejected", "op", op, "error", err)
		c.sendError(msg.RequestID, ErrorCode(err), err.Error())
		return
	}

	c.reply(msg.RequestID, MessageTypeState, StateData{SessionID: c.session.id, Snapshot: snap})
}

func (c *Connection) handleHistory(requestID string) {
	rounds, err := c.session.driver.History(c.ctx)
	if err != nil {
		c.sendError(requestID, ErrorCode(err), err.Error())
		return
	}

	c.reply(requestID, MessageTypeHistory, HistoryData{
		SessionID: c.session.id,
		Rounds:    rounds,
		Summary:   game.Summarize(rounds),
	})
}

func (c *Connection) reply(requestID string, messageType MessageType, data any) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("Failed to create message", "type", messageType, "error", err)
		c.sendError(requestID, CodeInternal, "Failed to encode reply")
		return
	}
	msg.RequestID = requestID
	_ = c.SendMessage(msg) // Ignore send errors
}

// sendError sends an error message to the client
func (c *Connection) sendError(requestID, code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	errorMsg.RequestID = requestID

	_ = c.SendMessage(errorMsg) // Ignore send errors during error handling
}
