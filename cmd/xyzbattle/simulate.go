package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lox/xyzbattle/cmd/xyzbattle/shared"
	"github.com/lox/xyzbattle/internal/config"
	"github.com/lox/xyzbattle/internal/difficulty"
	"github.com/lox/xyzbattle/internal/randutil"
	"github.com/lox/xyzbattle/internal/simulator"
	"github.com/lox/xyzbattle/internal/statistics"
)

// SimulateCmd plays headless sessions with a bot
type SimulateCmd struct {
	Sessions  int           `default:"10000" help:"Number of sessions to simulate"`
	Bot       string        `default:"reader" enum:"random,stand,reader" help:"Bot strategy: random, stand or reader"`
	Seed      *int64        `help:"Run seed (overrides config; random when unset)"`
	Workers   int           `help:"Parallel workers (defaults to GOMAXPROCS)"`
	MaxRounds int           `default:"1000" help:"Round cap for a session that never loses"`
	Timeout   time.Duration `help:"Abort the run after this long"`
	Verbose   bool          `short:"V" help:"Verbose logging"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load(func(cfg *config.Config) {
		if c.Seed != nil {
			cfg.Game.Seed = c.Seed
		}
	})
	if err != nil {
		return err
	}

	level := "warn"
	if c.Verbose {
		level = "debug"
	}
	logger, err := shared.SetupLogger(os.Stderr, level)
	if err != nil {
		return err
	}

	seed, _ := randutil.Seed(cfg.Game.Seed)
	fmt.Printf("Starting simulation: %d sessions with %s bot (seed: %d)\n", c.Sessions, c.Bot, seed)

	ctx := shared.SetupSignalHandler(logger)
	start := time.Now()
	stats, err := simulator.New(simulator.Config{
		Sessions:  c.Sessions,
		Bot:       c.Bot,
		Seed:      seed,
		Workers:   c.Workers,
		MaxRounds: c.MaxRounds,
		Timeout:   c.Timeout,
		Logger:    logger,
	}).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	printResults(os.Stdout, stats, c.Bot, time.Since(start))
	return nil
}

func printResults(w io.Writer, stats *statistics.Statistics, botName string, duration time.Duration) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== SIMULATION RESULTS (%s bot) ===\n", botName)
	fmt.Fprintf(w, "Sessions: %d in %s (%.0f sessions/sec)\n",
		stats.Sessions, duration.Round(time.Millisecond), float64(stats.Sessions)/max(duration.Seconds(), 1e-9))
	fmt.Fprintf(w, "Final streak: %.3f ± %.3f SE\n", stats.Mean(), stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.3f, %.3f]\n", low, high)
	fmt.Fprintf(w, "Median: %.1f  p90: %.1f  p99: %.1f  best: %d (seed %d)\n",
		stats.Median(), stats.Percentile(0.9), stats.Percentile(0.99), stats.BestStreak, stats.BestSeed)

	fmt.Fprintf(w, "\nRounds: %d  won: %d  lost: %d  drawn: %d\n", stats.Rounds, stats.Wins, stats.Losses, stats.Draws)
	fmt.Fprintf(w, "Win rate (decided rounds): %.1f%%\n", stats.WinRate()*100)
	fmt.Fprintf(w, "Exchanges: %d (%.1f%% of rounds)\n", stats.Exchanges, percent(stats.Exchanges, stats.Rounds))
	if stats.Deceptive > 0 {
		fmt.Fprintf(w, "Lies: %d of %d comments (%.1f%%)\n", stats.Lies, stats.Deceptive, stats.LieRate()*100)
	}
	if stats.Capped > 0 {
		fmt.Fprintf(w, "Capped sessions: %d\n", stats.Capped)
	}

	fmt.Fprintf(w, "\nHighest tier reached:\n")
	for _, tier := range difficulty.Ladder() {
		n := stats.TopLevels[tier.Level]
		bar := strings.Repeat("█", int(percent(n, stats.Sessions)/2))
		fmt.Fprintf(w, "  %s %-13s %6d  %5.1f%% %s\n", tier.Icon, tier.Name, n, percent(n, stats.Sessions), bar)
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
