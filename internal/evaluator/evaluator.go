package evaluator

// Hands are evaluated from a table covering all 27 ordered hands, built once
// at init. Lookups are total: every well-typed hand has an entry.

import (
	"github.com/lox/xyzbattle/internal/card"
)

// Evaluation is the derived classification of a hand.
type Evaluation struct {
	Rank     Rank        `json:"rank"`
	Majority card.Symbol `json:"majority"`
}

var table [card.NumHands]Evaluation

func init() {
	for i := range table {
		h := card.HandFromIndex(i)
		table[i] = Evaluation{
			Rank:     rankFromDistinct(h.Distinct()),
			Majority: majority(h),
		}
	}
}

func rankFromDistinct(n int) Rank {
	switch n {
	case 1:
		return AllSame
	case 3:
		return AllDifferent
	default:
		return TwoPlusOne
	}
}

// majority returns the most frequent symbol. Ties are broken by alphabet
// order, so an all-different hand always reports X.
func majority(h card.Hand) card.Symbol {
	counts := h.Counts()
	best := card.X
	for _, s := range card.Symbols {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}

// Evaluate returns the rank and majority of h.
func Evaluate(h card.Hand) Evaluation {
	return table[h.Index()]
}

// RankOf classifies h by the number of distinct symbols it holds.
func RankOf(h card.Hand) Rank {
	return Evaluate(h).Rank
}

// MajorityOf returns the symbol occurring most often in h.
func MajorityOf(h card.Hand) card.Symbol {
	return Evaluate(h).Majority
}

// Compare settles a battle between two hands:
//  1. a higher rank wins outright;
//  2. two all-different hands draw;
//  3. otherwise the majority symbols meet under X>Y>Z>X.
func Compare(player, opponent card.Hand) Outcome {
	pe, oe := Evaluate(player), Evaluate(opponent)

	switch pe.Rank.Compare(oe.Rank) {
	case 1:
		return PlayerWins
	case -1:
		return OpponentWins
	}

	if pe.Rank == AllDifferent {
		return Draw
	}

	switch {
	case pe.Majority == oe.Majority:
		return Draw
	case pe.Majority.Beats(oe.Majority):
		return PlayerWins
	default:
		return OpponentWins
	}
}
