package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/xyzbattle/internal/bot"
	"github.com/lox/xyzbattle/internal/game"
	"github.com/lox/xyzbattle/internal/randutil"
	"github.com/lox/xyzbattle/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxRounds caps a session that never loses.
const DefaultMaxRounds = 1000

// Config holds configuration for running simulations
type Config struct {
	Sessions  int
	Bot       string
	Seed      int64
	Workers   int
	MaxRounds int
	Timeout   time.Duration
	Logger    *log.Logger
}

// Simulator plays headless sessions with a bot
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.MaxRounds <= 0 {
		config.MaxRounds = DefaultMaxRounds
	}
	if config.Bot == "" {
		config.Bot = "reader"
	}
	return &Simulator{config: config}
}

// Run plays every session and aggregates the results. Session i is always
// seeded with randutil.Derive(Seed, i), so the statistics do not depend on
// the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Sessions <= 0 {
		return nil, fmt.Errorf("sessions must be positive, got %d", s.config.Sessions)
	}
	if _, err := bot.New(s.config.Bot, randutil.New(0), s.logger()); err != nil {
		return nil, err
	}
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	workers := min(s.config.Workers, s.config.Sessions)
	results := make([]statistics.SessionResult, s.config.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			for i := w; i < s.config.Sessions; i += workers {
				result, err := s.playSession(ctx, i)
				if err != nil {
					return err
				}
				results[i] = result
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

func (s *Simulator) logger() *log.Logger {
	if s.config.Logger != nil {
		return s.config.Logger
	}
	return log.New(io.Discard)
}

// playSession plays until the first loss or the round cap.
func (s *Simulator) playSession(ctx context.Context, index int) (statistics.SessionResult, error) {
	seed := randutil.Derive(s.config.Seed, index)
	logger := s.logger().With("session", index, "seed", seed)

	player, err := bot.New(s.config.Bot, randutil.New(randutil.Derive(seed, 0)), logger)
	if err != nil {
		return statistics.SessionResult{}, err
	}
	session := game.NewSession(randutil.New(seed), game.WithLogger(logger), game.WithHistoryLimit(1))
	if err := session.Start(); err != nil {
		return statistics.SessionResult{}, err
	}

	res := statistics.SessionResult{Seed: seed}
	for res.Rounds < s.config.MaxRounds {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("session %d (seed %d) interrupted: %w", index, seed, err)
		}

		snap := session.Snapshot()
		res.TopLevel = max(res.TopLevel, snap.Tier.Level)
		if snap.Tier.Deceptive() {
			res.Deceptive++
			if snap.Comment.Deceptive {
				res.Lies++
			}
		}

		decision := player.Decide(snap)
		if decision.Exchange {
			res.Exchanges++
		}
		if err := bot.Play(session, decision); err != nil {
			return res, fmt.Errorf("session %d (seed %d): %w", index, seed, err)
		}
		res.Rounds++

		switch session.Phase() {
		case game.PhaseWon:
			res.Wins++
			err = session.Continue()
		case game.PhaseDrawn:
			res.Draws++
			err = session.Redeal()
		case game.PhaseLost:
			res.Losses++
			res.FinalStreak = session.Snapshot().FinalStreak
			logger.Debug("Session lost", "streak", res.FinalStreak, "rounds", res.Rounds)
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("session %d (seed %d): %w", index, seed, err)
		}
	}

	res.Capped = true
	res.FinalStreak = session.Streak()
	return res, nil
}

// RunSimulation is a convenience function to run a simulation
func RunSimulation(ctx context.Context, sessions int, botName string, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{
		Sessions: sessions,
		Bot:      botName,
		Seed:     seed,
		Logger:   logger,
	}).Run(ctx)
}
