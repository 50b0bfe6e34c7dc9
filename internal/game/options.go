package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/xyzbattle/internal/card"
)

// Option configures a Session during creation.
type Option func(*sessionConfig)

type sessionConfig struct {
	clock        quartz.Clock
	logger       *log.Logger
	historyLimit int
	subscribers  []EventSubscriber
	dealer       Dealer
}

// Dealer produces the two hands of a deal.
type Dealer func(rng *rand.Rand) (player, opponent card.Hand)

// RandomDealer deals the player first, then the opponent.
func RandomDealer(rng *rand.Rand) (player, opponent card.Hand) {
	return card.Deal(rng), card.Deal(rng)
}

// WithDealer replaces how hands are dealt. Comments and lies still draw
// from the session's RNG.
func WithDealer(dealer Dealer) Option {
	return func(c *sessionConfig) {
		c.dealer = dealer
	}
}

// WithClock sets the clock used to timestamp events and history.
func WithClock(clock quartz.Clock) Option {
	return func(c *sessionConfig) {
		c.clock = clock
	}
}

// WithLogger sets the logger. Sessions log at debug level only.
func WithLogger(logger *log.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithHistoryLimit keeps only the most recent n rounds.
func WithHistoryLimit(n int) Option {
	return func(c *sessionConfig) {
		c.historyLimit = n
	}
}

// WithSubscriber subscribes to the session's events from creation.
func WithSubscriber(subscriber EventSubscriber) Option {
	return func(c *sessionConfig) {
		c.subscribers = append(c.subscribers, subscriber)
	}
}

func defaultConfig() *sessionConfig {
	return &sessionConfig{
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
		dealer: RandomDealer,
	}
}
