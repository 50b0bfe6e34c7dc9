// Package opponent produces what the opponent lets slip before a battle: a
// comment whose laugh hints at its majority symbol and whose mood hints at
// its rank, plus a truthful reveal of some of its cards.
package opponent

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/difficulty"
	"github.com/lox/xyzbattle/internal/evaluator"
	"github.com/lox/xyzbattle/internal/randutil"
)

// Condition is the mood part of a comment.
type Condition int

const (
	// Perfect is said for an all-same hand when hints are exact.
	Perfect Condition = iota
	// NotBad is said for an all-different hand when hints are exact.
	NotBad
	// FeelingGood covers both all-same and all-different when blurred.
	FeelingGood
	// Whatever is said for a two-plus-one hand.
	Whatever
)

func (c Condition) String() string {
	switch c {
	case Perfect:
		return "perfect"
	case NotBad:
		return "not-bad"
	case FeelingGood:
		return "feeling-good"
	case Whatever:
		return "whatever"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Condition) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Condition) UnmarshalText(text []byte) error {
	for _, candidate := range []Condition{Perfect, NotBad, FeelingGood, Whatever} {
		if candidate.String() == string(text) {
			*c = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown condition %q", text)
}

// ConditionFor maps a rank to the mood phrase used at the given precision.
func ConditionFor(rank evaluator.Rank, precision difficulty.Precision) Condition {
	switch rank {
	case evaluator.AllSame:
		if precision == difficulty.Blurred {
			return FeelingGood
		}
		return Perfect
	case evaluator.AllDifferent:
		if precision == difficulty.Blurred {
			return FeelingGood
		}
		return NotBad
	default:
		return Whatever
	}
}

// Comment is what the opponent says about its own hand. Laugh and Condition
// are what the player hears; the True fields are kept for bookkeeping and
// are never shown before the battle.
type Comment struct {
	Laugh        card.Symbol    `json:"laugh"`
	Condition    Condition      `json:"condition"`
	ReportedRank evaluator.Rank `json:"-"`
	TrueRank     evaluator.Rank `json:"-"`
	TrueMajority card.Symbol    `json:"-"`
	Deceptive    bool           `json:"-"`
}

// Commenter generates comments. Its random source drives the lies told at
// deceptive tiers.
type Commenter struct {
	rng *rand.Rand
}

// NewCommenter creates a commenter drawing from rng.
func NewCommenter(rng *rand.Rand) *Commenter {
	return &Commenter{rng: rng}
}

// Comment describes hand at the given tier. With the tier's deception
// probability both the reported rank and the reported majority are replaced
// by uniformly chosen different values. The hand itself is never touched.
func (c *Commenter) Comment(hand card.Hand, tier difficulty.Tier) Comment {
	truth := evaluator.Evaluate(hand)
	rank, majority := truth.Rank, truth.Majority

	lie := randutil.Chance(c.rng, tier.DeceptionProbability)
	if lie {
		rank = otherRank(c.rng, rank)
		majority = otherSymbol(c.rng, majority)
	}

	return Comment{
		Laugh:        majority,
		Condition:    ConditionFor(rank, tier.Precision),
		ReportedRank: rank,
		TrueRank:     truth.Rank,
		TrueMajority: truth.Majority,
		Deceptive:    lie,
	}
}

func otherRank(rng *rand.Rand, not evaluator.Rank) evaluator.Rank {
	choices := make([]evaluator.Rank, 0, len(evaluator.Ranks)-1)
	for _, r := range evaluator.Ranks {
		if r != not {
			choices = append(choices, r)
		}
	}
	return choices[rng.IntN(len(choices))]
}

func otherSymbol(rng *rand.Rand, not card.Symbol) card.Symbol {
	choices := make([]card.Symbol, 0, card.NumSymbols-1)
	for _, s := range card.Symbols {
		if s != not {
			choices = append(choices, s)
		}
	}
	return choices[rng.IntN(len(choices))]
}

// Likelihood returns the probability that a candidate opponent hand would
// produce the observed comment at the given tier.
func Likelihood(candidate card.Hand, observed Comment, tier difficulty.Tier) float64 {
	truth := evaluator.Evaluate(candidate)
	p := tier.DeceptionProbability

	honest := 0.0
	if truth.Majority == observed.Laugh && ConditionFor(truth.Rank, tier.Precision) == observed.Condition {
		honest = 1
	}
	if p <= 0 {
		return honest
	}

	// A lie picks one of two other ranks and one of two other symbols.
	if truth.Majority == observed.Laugh {
		return (1 - p) * honest
	}
	rankHits := 0
	for _, r := range evaluator.Ranks {
		if r != truth.Rank && ConditionFor(r, tier.Precision) == observed.Condition {
			rankHits++
		}
	}
	lied := p * (float64(rankHits) / 2) * 0.5
	return (1-p)*honest + lied
}
