package opponent

import (
	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/difficulty"
)

// RevealedCard is one opponent card shown face up.
type RevealedCard struct {
	Position card.Position `json:"position"`
	Symbol   card.Symbol   `json:"symbol"`
}

// Reveal is the truthful part of the hint. It is empty from the Hard tier
// upwards.
type Reveal struct {
	Level difficulty.Level `json:"level"`
	Cards []RevealedCard   `json:"cards"`
}

// RevealFor shows the opponent's real cards at the tier's reveal positions.
// Reveals are never subject to deception.
func RevealFor(hand card.Hand, tier difficulty.Tier) Reveal {
	r := Reveal{Level: tier.Level, Cards: make([]RevealedCard, 0, len(tier.Reveal))}
	for _, p := range tier.Reveal {
		r.Cards = append(r.Cards, RevealedCard{Position: p, Symbol: hand.At(p)})
	}
	return r
}

// Consistent reports whether candidate agrees with every revealed card.
func (r Reveal) Consistent(candidate card.Hand) bool {
	for _, c := range r.Cards {
		if candidate.At(c.Position) != c.Symbol {
			return false
		}
	}
	return true
}
