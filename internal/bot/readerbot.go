package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/evaluator"
	"github.com/lox/xyzbattle/internal/game"
	"github.com/lox/xyzbattle/internal/opponent"
)

// ReaderBot reads the hints. It weights each of the 27 possible opponent
// hands by how well it explains the reveal and the comment, then takes the
// decision with the best expected score (win 1, draw 0, loss -1).
type ReaderBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewReaderBot creates a ReaderBot. The RNG is only used when the hints are
// inconsistent with every hand.
func NewReaderBot(rng *rand.Rand, logger *log.Logger) *ReaderBot {
	return &ReaderBot{rng: rng, logger: logger}
}

func (b *ReaderBot) Name() string { return "reader" }

// Belief is the posterior probability of one opponent hand.
type Belief struct {
	Hand        card.Hand
	Probability float64
}

// Posterior weights every opponent hand by the hints in snap. Deals are
// uniform, so the prior is flat. Hands with zero weight are omitted.
func Posterior(snap game.Snapshot) []Belief {
	if snap.Comment == nil || snap.Reveal == nil {
		return nil
	}
	observed := opponent.Comment{Laugh: snap.Comment.Laugh, Condition: snap.Comment.Condition}

	out := make([]Belief, 0, card.NumHands)
	total := 0.0
	for _, h := range card.AllHands() {
		if !snap.Reveal.Consistent(h) {
			continue
		}
		w := opponent.Likelihood(h, observed, snap.Tier)
		if w <= 0 {
			continue
		}
		out = append(out, Belief{Hand: h, Probability: w})
		total += w
	}
	for i := range out {
		out[i].Probability /= total
	}
	return out
}

// ExpectedScore is the expected result of d against the given beliefs.
func ExpectedScore(player card.Hand, d Decision, beliefs []Belief) float64 {
	ev := 0.0
	for _, belief := range beliefs {
		mine, theirs := player, belief.Hand
		if d.Exchange {
			_ = card.Exchange(&mine, d.Player, &theirs, d.Opponent)
		}
		switch evaluator.Compare(mine, theirs) {
		case evaluator.PlayerWins:
			ev += belief.Probability
		case evaluator.OpponentWins:
			ev -= belief.Probability
		}
	}
	return ev
}

func (b *ReaderBot) Decide(snap game.Snapshot) Decision {
	choices := Choices(snap)
	if len(choices) == 0 || snap.PlayerHand == nil {
		return Decision{Reasoning: "reader: nothing to decide"}
	}

	beliefs := Posterior(snap)
	if len(beliefs) == 0 {
		d := choices[b.rng.IntN(len(choices))]
		d.Reasoning = "reader: hints explain no hand, guessing"
		return d
	}

	best, bestEV := choices[0], ExpectedScore(*snap.PlayerHand, choices[0], beliefs)
	for _, d := range choices[1:] {
		if ev := ExpectedScore(*snap.PlayerHand, d, beliefs); ev > bestEV+1e-12 {
			best, bestEV = d, ev
		}
	}

	best.Reasoning = fmt.Sprintf("reader: %d candidate hands, expected %+.3f", len(beliefs), bestEV)
	b.logger.Debug("Bot decision", "decision", best, "candidates", len(beliefs), "ev", bestEV)
	return best
}
