// Package bot provides automated players. Bots see exactly what a human
// sees in a snapshot: their own hand, the opponent's comment and the reveal.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/game"
)

// Decision is what a bot does with a dealt round.
type Decision struct {
	Exchange  bool
	Player    card.Position
	Opponent  card.Position
	Reasoning string
}

func (d Decision) String() string {
	if !d.Exchange {
		return "skip"
	}
	return fmt.Sprintf("swap %s %s", d.Player, d.Opponent)
}

// Bot decides a dealt round.
type Bot interface {
	Name() string
	Decide(snap game.Snapshot) Decision
}

type factory func(rng *rand.Rand, logger *log.Logger) Bot

var registry = map[string]factory{
	"random": func(rng *rand.Rand, logger *log.Logger) Bot { return NewRandomBot(rng, logger) },
	"stand":  func(rng *rand.Rand, logger *log.Logger) Bot { return NewStandBot(rng, logger) },
	"reader": func(rng *rand.Rand, logger *log.Logger) Bot { return NewReaderBot(rng, logger) },
}

// Names lists the available strategies.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a bot by strategy name.
func New(name string, rng *rand.Rand, logger *log.Logger) (Bot, error) {
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return f(rng, logger.WithPrefix("bot").With("strategy", name)), nil
}

// Play applies a decision to a dealt session and battles.
func Play(s *game.Session, d Decision) error {
	if d.Exchange {
		if err := s.Exchange(d.Player, d.Opponent); err != nil {
			return err
		}
	}
	return s.Battle()
}

// swaps lists the nine possible exchanges in a fixed order.
func swaps() []Decision {
	out := make([]Decision, 0, card.HandSize*card.HandSize)
	for _, p := range card.Positions {
		for _, q := range card.Positions {
			out = append(out, Decision{Exchange: true, Player: p, Opponent: q})
		}
	}
	return out
}

// Choices lists the legal decisions for a snapshot, skip first when allowed.
func Choices(snap game.Snapshot) []Decision {
	if !snap.CanExchange {
		return nil
	}
	out := make([]Decision, 0, 10)
	if snap.CanSkip {
		out = append(out, Decision{})
	}
	return append(out, swaps()...)
}
