package server

import "github.com/lox/xyzbattle/internal/game"

// MessageType represents a WebSocket message type with type safety
type MessageType string

// Command messages share their names with game.Op so a request type maps
// straight onto a session command.
const (
	// Client to server messages
	MessageTypeStart    = MessageType(game.OpStart)
	MessageTypeExchange = MessageType(game.OpExchange)
	MessageTypeBattle   = MessageType(game.OpBattle)
	MessageTypeRedeal   = MessageType(game.OpRedeal)
	MessageTypeContinue = MessageType(game.OpContinue)
	MessageTypeStop     = MessageType(game.OpStop)
	MessageTypeRestart  = MessageType(game.OpRestart)
	MessageTypeHistory  MessageType = "history"

	// MessageTypeState is sent by clients to ask for a snapshot and by the
	// server as the reply to every command.
	MessageTypeState = MessageType(game.OpState)

	// Server to client messages
	MessageTypeWelcome MessageType = "welcome"
	MessageTypeError   MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
