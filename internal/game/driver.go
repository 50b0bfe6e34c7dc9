package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lox/xyzbattle/internal/card"
)

// ErrUnknownCommand is returned for an Op a driver does not understand.
var ErrUnknownCommand = errors.New("unknown command")

// Op names a session command. The same names are used on the wire.
type Op string

const (
	OpStart    Op = "start"
	OpExchange Op = "exchange"
	OpBattle   Op = "battle"
	OpRedeal   Op = "redeal"
	OpContinue Op = "continue"
	OpStop     Op = "stop"
	OpRestart  Op = "restart"
	OpState    Op = "state"
)

// Ops lists every command.
var Ops = []Op{OpStart, OpExchange, OpBattle, OpRedeal, OpContinue, OpStop, OpRestart, OpState}

// ParseOp parses a command name.
func ParseOp(s string) (Op, error) {
	op := Op(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Ops {
		if op == known {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// Command is one step of a session. Positions are only read by OpExchange.
type Command struct {
	Op       Op
	Player   card.Position
	Opponent card.Position
}

// Driver runs a session one command at a time. Local drives an in-process
// session; the websocket client drives one held by a server.
type Driver interface {
	Do(ctx context.Context, cmd Command) (Snapshot, error)
	History(ctx context.Context) ([]RoundRecord, error)
	Close() error
}

// Local is a Driver over an in-process Session. It serialises access so
// one session can be shared between goroutines.
type Local struct {
	mu      sync.Mutex
	session *Session
}

// NewLocal wraps a session.
func NewLocal(session *Session) *Local {
	return &Local{session: session}
}

// Do applies cmd and returns the resulting snapshot. On error the snapshot
// reflects the unchanged session.
func (l *Local) Do(ctx context.Context, cmd Command) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var err error
	switch cmd.Op {
	case OpStart:
		err = l.session.Start()
	case OpExchange:
		err = l.session.Exchange(cmd.Player, cmd.Opponent)
	case OpBattle:
		err = l.session.Battle()
	case OpRedeal:
		err = l.session.Redeal()
	case OpContinue:
		err = l.session.Continue()
	case OpStop:
		err = l.session.Stop()
	case OpRestart:
		err = l.session.Restart()
	case OpState:
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Op)
	}
	return l.session.Snapshot(), err
}

// History returns the battled rounds, oldest first.
func (l *Local) History(ctx context.Context) ([]RoundRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.History().Rounds(), nil
}

// Close is a no-op for local sessions.
func (l *Local) Close() error { return nil }
