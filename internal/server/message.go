package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	msg := &Message{
		Type:      messageType,
		Timestamp: time.Now(),
	}
	if data != nil {
		dataBytes, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = dataBytes
	}
	return msg, nil
}

// Client → Server Messages

// ExchangeData names the player's card and the opponent's card to swap.
// Positions travel as strings: "left", "middle" or "right".
type ExchangeData struct {
	Player   card.Position `json:"player"`
	Opponent card.Position `json:"opponent"`
}

// errMissingPosition rejects an exchange that leaves a position out, which
// would otherwise decode as the zero position.
var errMissingPosition = errors.New("exchange requires player and opponent positions")

// UnmarshalJSON requires both positions to be present.
func (d *ExchangeData) UnmarshalJSON(b []byte) error {
	var raw struct {
		Player   *card.Position `json:"player"`
		Opponent *card.Position `json:"opponent"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Player == nil || raw.Opponent == nil {
		return errMissingPosition
	}
	d.Player, d.Opponent = *raw.Player, *raw.Opponent
	return nil
}

// Server → Client Messages

type WelcomeData struct {
	SessionID string `json:"sessionId"`
}

type StateData struct {
	SessionID string        `json:"sessionId"`
	Snapshot  game.Snapshot `json:"snapshot"`
}

type HistoryData struct {
	SessionID string             `json:"sessionId"`
	Rounds    []game.RoundRecord `json:"rounds"`
	Summary   game.Summary       `json:"summary"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes carried by ErrorData.
const (
	CodeInvalidMessage     = "invalid_message"
	CodeUnknownMessageType = "unknown_message_type"
	CodeInvalidTransition  = "invalid_transition"
	CodeExchangeRequired   = "exchange_required"
	CodeInvalidPosition    = "invalid_position"
	CodeSessionLimit       = "session_limit"
	CodeInternal           = "internal_error"
)

// ErrSessionLimit is reported when the server holds its maximum number of
// sessions.
var ErrSessionLimit = errors.New("session limit reached")

var codeErrors = map[string]error{
	CodeUnknownMessageType: game.ErrUnknownCommand,
	CodeInvalidTransition:  game.ErrInvalidTransition,
	CodeExchangeRequired:   game.ErrExchangeRequired,
	CodeInvalidPosition:    card.ErrInvalidPosition,
	CodeSessionLimit:       ErrSessionLimit,
}

// ErrorCode classifies err for the wire.
func ErrorCode(err error) string {
	for code, target := range codeErrors {
		if errors.Is(err, target) {
			return code
		}
	}
	return CodeInternal
}

// RemoteError is an error reported by the server. It unwraps to the
// matching sentinel so callers can use errors.Is as they would locally.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return codeErrors[e.Code]
}

// Err converts the payload back into an error.
func (d ErrorData) Err() error {
	return &RemoteError{Code: d.Code, Message: d.Message}
}
