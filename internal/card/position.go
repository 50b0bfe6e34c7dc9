package card

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPosition is returned for positions outside Left..Right.
var ErrInvalidPosition = errors.New("invalid position")

// Position addresses one of the three slots of a hand.
type Position int

const (
	Left Position = iota
	Middle
	Right
)

// Positions lists the slots from left to right.
var Positions = [HandSize]Position{Left, Middle, Right}

func (p Position) String() string {
	switch p {
	case Left:
		return "left"
	case Middle:
		return "middle"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("position(%d)", int(p))
	}
}

// Valid reports whether p is Left, Middle or Right.
func (p Position) Valid() bool {
	return p >= Left && p <= Right
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPosition, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePosition accepts the English names and their abbreviations, the
// digits 0-2 and the Japanese labels used by the original console game.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l", "0", "左":
		return Left, nil
	case "middle", "mid", "m", "center", "centre", "c", "1", "まん中", "真ん中":
		return Middle, nil
	case "right", "r", "2", "右":
		return Right, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
}
