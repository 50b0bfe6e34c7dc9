package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/xyzbattle/internal/game"
)

// RandomBot picks uniformly among the legal decisions.
type RandomBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandomBot creates a RandomBot.
func NewRandomBot(rng *rand.Rand, logger *log.Logger) *RandomBot {
	return &RandomBot{rng: rng, logger: logger}
}

func (b *RandomBot) Name() string { return "random" }

func (b *RandomBot) Decide(snap game.Snapshot) Decision {
	choices := Choices(snap)
	if len(choices) == 0 {
		return Decision{Reasoning: "random: nothing to decide"}
	}
	d := choices[b.rng.IntN(len(choices))]
	d.Reasoning = "random: uniform pick"
	b.logger.Debug("Bot decision", "decision", d)
	return d
}

// StandBot never exchanges unless the tier forces it, then swaps at random.
type StandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewStandBot creates a StandBot.
func NewStandBot(rng *rand.Rand, logger *log.Logger) *StandBot {
	return &StandBot{rng: rng, logger: logger}
}

func (b *StandBot) Name() string { return "stand" }

func (b *StandBot) Decide(snap game.Snapshot) Decision {
	if snap.CanSkip {
		return Decision{Reasoning: "stand: keep the dealt hand"}
	}
	all := swaps()
	d := all[b.rng.IntN(len(all))]
	d.Reasoning = "stand: exchange forced"
	b.logger.Debug("Bot decision", "decision", d)
	return d
}
