package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/difficulty"
	"github.com/lox/xyzbattle/internal/evaluator"
	"github.com/lox/xyzbattle/internal/opponent"
)

// Session owns the win streak and both hands of one player's game.
type Session struct {
	rng       *rand.Rand
	commenter *opponent.Commenter
	clock     quartz.Clock
	logger    *log.Logger
	dealer    Dealer
	bus       EventBus
	history   *History

	phase  Phase
	streak int
	best   int
	deals  int

	// per deal
	roundStreak int
	tier        difficulty.Tier
	player      card.Hand
	opponent    card.Hand
	comment     opponent.Comment
	reveal      opponent.Reveal
	exchange    *Exchange

	// per battle
	outcome     evaluator.Outcome
	milestone   *difficulty.Tier
	finalStreak int
}

// NewSession creates a session on the title screen. The RNG is required so
// that every deal and every lie can be replayed from a seed.
func NewSession(rng *rand.Rand, opts ...Option) *Session {
	if rng == nil {
		panic("rng is required for session creation")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Session{
		rng:       rng,
		commenter: opponent.NewCommenter(rng),
		clock:     cfg.clock,
		dealer:    cfg.dealer,
		logger:    cfg.logger.WithPrefix("game"),
		history:   NewHistory(cfg.historyLimit),
		phase:     PhaseTitle,
		tier:      difficulty.For(0),
	}
	for _, sub := range cfg.subscribers {
		s.bus.Subscribe(sub)
	}
	return s
}

// Subscribe adds an event subscriber.
func (s *Session) Subscribe(subscriber EventSubscriber) {
	s.bus.Subscribe(subscriber)
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Streak returns the current win streak.
func (s *Session) Streak() int { return s.streak }

// BestStreak returns the best streak reached in this session.
func (s *Session) BestStreak() int { return s.best }

// Tier returns the tier of the current deal.
func (s *Session) Tier() difficulty.Tier { return s.tier }

// History returns the session's round history.
func (s *Session) History() *History { return s.history }

// Start leaves the title screen and deals the first round.
func (s *Session) Start() error {
	if s.phase != PhaseTitle {
		return transitionError("start", s.phase)
	}
	s.deal()
	return nil
}

// Exchange swaps the player's card at p with the opponent's card at q. Only
// one exchange is allowed per deal.
func (s *Session) Exchange(p, q card.Position) error {
	if s.phase != PhaseDealt {
		return transitionError("exchange", s.phase)
	}

	if err := card.Exchange(&s.player, p, &s.opponent, q); err != nil {
		return fmt.Errorf("exchange: %w", err)
	}
	gave, took := s.opponent.At(q), s.player.At(p)

	s.exchange = &Exchange{Player: p, Opponent: q, Gave: gave, Took: took}
	s.phase = PhaseExchanged
	s.logger.Debug("Cards exchanged", "player", p, "opponent", q, "hand", s.player.Compact())
	s.bus.Publish(CardsExchangedEvent{Exchange: *s.exchange, timestamp: s.clock.Now()})
	return nil
}

// Battle compares the hands. Called straight after a deal it skips the
// exchange, which the tier may forbid.
func (s *Session) Battle() error {
	if !s.phase.Playing() {
		return transitionError("battle", s.phase)
	}
	if s.phase == PhaseDealt && s.tier.ExchangeMandatory {
		return fmt.Errorf("%w at %s", ErrExchangeRequired, s.tier.Name)
	}

	before := s.streak
	s.outcome = evaluator.Compare(s.player, s.opponent)
	s.milestone = nil

	switch s.outcome {
	case evaluator.PlayerWins:
		s.streak++
		s.best = max(s.best, s.streak)
		s.phase = PhaseWon
	case evaluator.OpponentWins:
		s.finalStreak = s.streak
		s.streak = 0
		s.phase = PhaseLost
	default:
		s.phase = PhaseDrawn
	}

	now := s.clock.Now()
	record := RoundRecord{
		Deal:         s.deals,
		Level:        s.tier.Level,
		StreakBefore: before,
		StreakAfter:  s.streak,
		Player:       s.player,
		Opponent:     s.opponent,
		Comment:      s.comment,
		Deceptive:    s.comment.Deceptive,
		Exchange:     s.exchange,
		Outcome:      s.outcome,
		At:           now,
	}
	s.history.Add(record)

	s.logger.Debug("Round resolved", "deal", s.deals, "outcome", s.outcome, "streak", s.streak)
	s.bus.Publish(RoundResolvedEvent{Record: record, timestamp: now})

	if tier, ok := difficulty.Crossed(before, s.streak); ok {
		s.milestone = &tier
		s.logger.Debug("Milestone reached", "tier", tier.Name, "streak", s.streak)
		s.bus.Publish(MilestoneReachedEvent{Streak: s.streak, Tier: tier, timestamp: now})
	}
	return nil
}

// Redeal deals fresh hands after a draw. The streak is unchanged.
func (s *Session) Redeal() error {
	if s.phase != PhaseDrawn {
		return transitionError("redeal", s.phase)
	}
	s.deal()
	return nil
}

// Continue plays the next round after a win.
func (s *Session) Continue() error {
	if s.phase != PhaseWon {
		return transitionError("continue", s.phase)
	}
	s.deal()
	return nil
}

// Stop ends the game after a win, keeping the streak as the final result.
func (s *Session) Stop() error {
	if s.phase != PhaseWon {
		return transitionError("stop", s.phase)
	}
	s.finalStreak = s.streak
	s.phase = PhaseFinished
	return nil
}

// Restart returns to the title screen with a zero streak.
func (s *Session) Restart() error {
	if s.phase != PhaseLost && s.phase != PhaseFinished {
		return transitionError("restart", s.phase)
	}

	final, outcome := s.finalStreak, s.outcome
	s.phase = PhaseTitle
	s.streak = 0
	s.finalStreak = 0
	s.milestone = nil
	s.exchange = nil
	s.tier = difficulty.For(0)

	s.bus.Publish(SessionResetEvent{FinalStreak: final, Outcome: outcome, timestamp: s.clock.Now()})
	return nil
}

func (s *Session) deal() {
	s.deals++
	s.roundStreak = s.streak
	s.tier = difficulty.For(s.streak)
	s.player, s.opponent = s.dealer(s.rng)
	s.comment = s.commenter.Comment(s.opponent, s.tier)
	s.reveal = opponent.RevealFor(s.opponent, s.tier)
	s.exchange = nil
	s.milestone = nil
	s.phase = PhaseDealt

	s.logger.Debug("Round dealt",
		"deal", s.deals,
		"streak", s.streak,
		"tier", s.tier.Name,
		"player", s.player.Compact(),
		"opponent", s.opponent.Compact(),
		"deceptive", s.comment.Deceptive)
	s.bus.Publish(RoundDealtEvent{
		Deal:      s.deals,
		Streak:    s.streak,
		Tier:      s.tier,
		Player:    s.player,
		timestamp: s.clock.Now(),
	})
}
