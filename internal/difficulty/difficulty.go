// Package difficulty maps a win streak to the tier that shapes how much the
// opponent gives away.
//
// The ladder is fixed:
//
//	Streak   Tier          Reveal        Hint     Exchange   Lies
//	0-9      Easy          left, right   exact    optional   never
//	10-29    Challenging   left          exact    optional   never
//	30-49    Hard          none          exact    optional   never
//	50-99    Oni           none          blurred  optional   never
//	100-199  Hell          none          blurred  mandatory  never
//	200+     Endless Hell  none          blurred  mandatory  30%
package difficulty

import (
	"fmt"

	"github.com/lox/xyzbattle/internal/card"
)

// Precision controls how much rank information the opponent's comment
// carries.
type Precision int

const (
	// Exact names every rank with its own phrase.
	Exact Precision = iota
	// Blurred uses one phrase for both all-same and all-different.
	Blurred
)

func (p Precision) String() string {
	if p == Blurred {
		return "blurred"
	}
	return "exact"
}

// MarshalText implements encoding.TextMarshaler.
func (p Precision) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Precision) UnmarshalText(text []byte) error {
	switch string(text) {
	case "exact":
		*p = Exact
	case "blurred":
		*p = Blurred
	default:
		return fmt.Errorf("unknown precision %q", text)
	}
	return nil
}

// Level identifies a tier, lowest first.
type Level int

const (
	Easy Level = iota
	Challenging
	Hard
	Oni
	Hell
	EndlessHell
)

// Tier is one step of the ladder.
type Tier struct {
	Level                Level           `json:"level"`
	Name                 string          `json:"name"`
	Icon                 string          `json:"icon"`
	MinStreak            int             `json:"minStreak"`
	Reveal               []card.Position `json:"reveal"`
	Precision            Precision       `json:"precision"`
	ExchangeMandatory    bool            `json:"exchangeMandatory"`
	DeceptionProbability float64         `json:"deceptionProbability"`
}

// RevealCount is the number of opponent cards shown at this tier.
func (t Tier) RevealCount() int {
	return len(t.Reveal)
}

// Deceptive reports whether the opponent may lie at this tier.
func (t Tier) Deceptive() bool {
	return t.DeceptionProbability > 0
}

var ladder = []Tier{
	{
		Level:     Easy,
		Name:      "Easy",
		Icon:      "🟢",
		MinStreak: 0,
		Reveal:    []card.Position{card.Left, card.Right},
		Precision: Exact,
	},
	{
		Level:     Challenging,
		Name:      "Challenging",
		Icon:      "🟡",
		MinStreak: 10,
		Reveal:    []card.Position{card.Left},
		Precision: Exact,
	},
	{
		Level:     Hard,
		Name:      "Hard",
		Icon:      "🟠",
		MinStreak: 30,
		Precision: Exact,
	},
	{
		Level:     Oni,
		Name:      "Oni",
		Icon:      "🔴",
		MinStreak: 50,
		Precision: Blurred,
	},
	{
		Level:             Hell,
		Name:              "Hell",
		Icon:              "💀",
		MinStreak:         100,
		Precision:         Blurred,
		ExchangeMandatory: true,
	},
	{
		Level:                EndlessHell,
		Name:                 "Endless Hell",
		Icon:                 "👹",
		MinStreak:            200,
		Precision:            Blurred,
		ExchangeMandatory:    true,
		DeceptionProbability: 0.3,
	},
}

// Ladder returns a copy of every tier, lowest first.
func Ladder() []Tier {
	out := make([]Tier, len(ladder))
	for i, t := range ladder {
		out[i] = t.clone()
	}
	return out
}

// Thresholds returns the streaks at which a new tier starts, excluding the
// implicit zero of the first tier.
func Thresholds() []int {
	out := make([]int, 0, len(ladder)-1)
	for _, t := range ladder[1:] {
		out = append(out, t.MinStreak)
	}
	return out
}

// For returns the tier whose lower bound is the greatest threshold not
// exceeding streak. Negative streaks map to the lowest tier.
func For(streak int) Tier {
	current := ladder[0]
	for _, t := range ladder[1:] {
		if streak < t.MinStreak {
			break
		}
		current = t
	}
	return current.clone()
}

// ByLevel returns the tier at the given level.
func ByLevel(level Level) (Tier, bool) {
	if level < Easy || int(level) >= len(ladder) {
		return Tier{}, false
	}
	return ladder[level].clone(), true
}

// Top returns the highest tier.
func Top() Tier {
	return ladder[len(ladder)-1].clone()
}

// Crossed reports the tier entered when the streak moves from before to
// after, if that move crosses one or more thresholds upwards.
func Crossed(before, after int) (Tier, bool) {
	from, to := For(before), For(after)
	if to.Level > from.Level {
		return to, true
	}
	return Tier{}, false
}

func (t Tier) clone() Tier {
	if t.Reveal != nil {
		t.Reveal = append([]card.Position(nil), t.Reveal...)
	}
	return t
}
