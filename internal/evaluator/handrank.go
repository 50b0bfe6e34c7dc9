package evaluator

import (
	"fmt"
	"strings"
)

// Rank classifies a hand. Higher values are stronger hands.
type Rank int

const (
	TwoPlusOne Rank = iota + 1
	AllDifferent
	AllSame
)

// Ranks lists every rank from weakest to strongest.
var Ranks = [...]Rank{TwoPlusOne, AllDifferent, AllSame}

// String returns the readable name of the rank
func (r Rank) String() string {
	switch r {
	case TwoPlusOne:
		return "two-plus-one"
	case AllDifferent:
		return "all-different"
	case AllSame:
		return "all-same"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the three ranks.
func (r Rank) Valid() bool {
	return r >= TwoPlusOne && r <= AllSame
}

// Compare returns 1 if r is stronger, -1 if other is stronger, 0 if equal
func (r Rank) Compare(other Rank) int {
	switch {
	case r > other:
		return 1
	case r < other:
		return -1
	}
	return 0
}

// MarshalText implements encoding.TextMarshaler.
func (r Rank) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid rank %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rank) UnmarshalText(text []byte) error {
	parsed, err := ParseRank(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRank parses the names produced by Rank.String.
func ParseRank(s string) (Rank, error) {
	for _, r := range Ranks {
		if strings.EqualFold(s, r.String()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("invalid rank: %q", s)
}

// Outcome is the result of comparing the player's hand with the opponent's.
type Outcome int

const (
	Draw Outcome = iota
	PlayerWins
	OpponentWins
)

func (o Outcome) String() string {
	switch o {
	case Draw:
		return "draw"
	case PlayerWins:
		return "player-wins"
	case OpponentWins:
		return "opponent-wins"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	for _, candidate := range []Outcome{Draw, PlayerWins, OpponentWins} {
		if string(text) == candidate.String() {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("invalid outcome: %q", string(text))
}
