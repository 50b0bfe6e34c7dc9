package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed in
	// the current phase.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrExchangeRequired is returned when battling without an exchange at
	// a tier that makes exchanging mandatory.
	ErrExchangeRequired = errors.New("exchange required")
)

// Phase is where a session stands in the round flow.
type Phase int

const (
	PhaseTitle Phase = iota
	PhaseDealt
	PhaseExchanged
	PhaseWon
	PhaseLost
	PhaseDrawn
	PhaseFinished
)

var phaseNames = [...]string{
	PhaseTitle:     "title",
	PhaseDealt:     "dealt",
	PhaseExchanged: "exchanged",
	PhaseWon:       "won",
	PhaseLost:      "lost",
	PhaseDrawn:     "drawn",
	PhaseFinished:  "finished",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Resolved reports whether the round has been battled.
func (p Phase) Resolved() bool {
	return p == PhaseWon || p == PhaseLost || p == PhaseDrawn
}

// Playing reports whether hands are on the table and not yet battled.
func (p Phase) Playing() bool {
	return p == PhaseDealt || p == PhaseExchanged
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

func transitionError(op string, from Phase) error {
	return fmt.Errorf("%w: cannot %s in phase %s", ErrInvalidTransition, op, from)
}
