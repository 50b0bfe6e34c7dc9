package card

import (
	"fmt"
	"strings"

	rand "math/rand/v2"
)

// HandSize is the number of cards held by each side.
const HandSize = 3

// Hand is an ordered set of three symbols, addressed by Position.
type Hand [HandSize]Symbol

// NewHand creates a hand from left, middle and right symbols.
func NewHand(left, middle, right Symbol) Hand {
	return Hand{left, middle, right}
}

// Deal draws three symbols independently and uniformly, with replacement.
func Deal(rng *rand.Rand) Hand {
	var h Hand
	for i := range h {
		h[i] = Symbols[rng.IntN(NumSymbols)]
	}
	return h
}

// At returns the symbol at position p. An invalid position yields a symbol
// that is not Valid.
func (h Hand) At(p Position) Symbol {
	if !p.Valid() {
		return noSymbol
	}
	return h[p]
}

// Counts returns how many times each symbol occurs, indexed by Symbol.
func (h Hand) Counts() [NumSymbols]int {
	var counts [NumSymbols]int
	for _, s := range h {
		counts[s]++
	}
	return counts
}

// Distinct returns the number of different symbols in the hand.
func (h Hand) Distinct() int {
	n := 0
	for _, c := range h.Counts() {
		if c > 0 {
			n++
		}
	}
	return n
}

// Index encodes the hand as a base-3 number in [0, 27).
func (h Hand) Index() int {
	return int(h[0])*NumSymbols*NumSymbols + int(h[1])*NumSymbols + int(h[2])
}

// HandFromIndex is the inverse of Index.
func HandFromIndex(i int) Hand {
	return Hand{
		Symbol(i / (NumSymbols * NumSymbols) % NumSymbols),
		Symbol(i / NumSymbols % NumSymbols),
		Symbol(i % NumSymbols),
	}
}

// NumHands is the number of distinct ordered hands.
const NumHands = NumSymbols * NumSymbols * NumSymbols

// AllHands returns every possible ordered hand, in Index order.
func AllHands() []Hand {
	hands := make([]Hand, NumHands)
	for i := range hands {
		hands[i] = HandFromIndex(i)
	}
	return hands
}

// String renders the hand as "[X] [Y] [Z]".
func (h Hand) String() string {
	return fmt.Sprintf("[%s] [%s] [%s]", h[0], h[1], h[2])
}

// Compact renders the hand as "XYZ".
func (h Hand) Compact() string {
	return h[0].String() + h[1].String() + h[2].String()
}

// MarshalText implements encoding.TextMarshaler using the compact form.
func (h Hand) MarshalText() ([]byte, error) {
	for _, s := range h {
		if !s.Valid() {
			return nil, fmt.Errorf("invalid symbol %d in hand", int(s))
		}
	}
	return []byte(h.Compact()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hand) UnmarshalText(text []byte) error {
	parsed, err := ParseHand(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHand parses a compact hand such as "XXY". Whitespace, brackets and
// commas are ignored so "[X] [X] [Y]" parses as well.
func ParseHand(s string) (Hand, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '[', ']', ',', '\t':
			return -1
		}
		return r
	}, s)

	if len(cleaned) != HandSize {
		return Hand{}, fmt.Errorf("hand must have %d cards, got %q", HandSize, s)
	}

	var h Hand
	for i := range h {
		sym, err := ParseSymbol(cleaned[i : i+1])
		if err != nil {
			return Hand{}, fmt.Errorf("parse hand %q: %w", s, err)
		}
		h[i] = sym
	}
	return h, nil
}

// MustParseHand is like ParseHand but panics on error. Intended for tests.
func MustParseHand(s string) Hand {
	h, err := ParseHand(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Exchange swaps player[p] with opponent[q] in place.
func Exchange(player *Hand, p Position, opponent *Hand, q Position) error {
	if !p.Valid() {
		return fmt.Errorf("player %w: %d", ErrInvalidPosition, int(p))
	}
	if !q.Valid() {
		return fmt.Errorf("opponent %w: %d", ErrInvalidPosition, int(q))
	}
	player[p], opponent[q] = opponent[q], player[p]
	return nil
}
