package main

import (
	"github.com/lox/xyzbattle/cmd/xyzbattle/shared"
	"github.com/lox/xyzbattle/internal/config"
	"github.com/lox/xyzbattle/internal/game"
	"github.com/lox/xyzbattle/internal/locale"
	"github.com/lox/xyzbattle/internal/randutil"
	"github.com/lox/xyzbattle/internal/tui"
)

// PlayCmd plays a local session in the terminal
type PlayCmd struct {
	Seed     *int64 `help:"Deterministic RNG seed (overrides config)"`
	LogFile  string `help:"Debug log file (overrides config)"`
	LogLevel string `help:"Log level: debug, info, warn or error (overrides config)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load(func(cfg *config.Config) {
		if c.Seed != nil {
			cfg.Game.Seed = c.Seed
		}
		if c.LogFile != "" {
			cfg.UI.LogFile = c.LogFile
		}
		if c.LogLevel != "" {
			cfg.UI.LogLevel = c.LogLevel
		}
	})
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs go to a file
	logFile, err := shared.OpenLogFile(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	logger, err := shared.SetupLogger(logFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}

	seed, fixed := randutil.Seed(cfg.Game.Seed)
	logger.Info("Starting local session", "seed", seed, "deterministic", fixed, "language", cfg.Language())

	driver := game.NewLocal(game.NewSession(randutil.New(seed), game.WithLogger(logger)))
	defer func() { _ = driver.Close() }()

	ctx := shared.SetupSignalHandler(logger)
	return tui.Run(ctx, driver, locale.For(cfg.Language()), logger)
}
