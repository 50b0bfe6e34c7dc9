package card

import (
	"fmt"
	"strings"
)

// Symbol is one of the three card faces. The set is closed.
type Symbol int

const (
	X Symbol = iota
	Y
	Z
)

// noSymbol is returned where no card exists.
const noSymbol Symbol = -1

// NumSymbols is the size of the alphabet.
const NumSymbols = 3

// Symbols lists the alphabet in its canonical order.
var Symbols = [NumSymbols]Symbol{X, Y, Z}

// String returns the string representation of a symbol
func (s Symbol) String() string {
	switch s {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "?"
	}
}

// Valid reports whether s is one of X, Y or Z.
func (s Symbol) Valid() bool {
	return s >= X && s <= Z
}

// Beats reports whether s dominates other: X beats Y, Y beats Z, Z beats X.
func (s Symbol) Beats(other Symbol) bool {
	return (s+1)%NumSymbols == other
}

// MarshalText implements encoding.TextMarshaler.
func (s Symbol) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid symbol %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symbol) UnmarshalText(text []byte) error {
	parsed, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSymbol parses "x", "y" or "z" (any case).
func ParseSymbol(s string) (Symbol, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return X, nil
	case "Y":
		return Y, nil
	case "Z":
		return Z, nil
	default:
		return 0, fmt.Errorf("invalid symbol: %q", s)
	}
}
