package main

import (
	"context"
	"errors"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/lox/xyzbattle/cmd/xyzbattle/shared"
	"github.com/lox/xyzbattle/internal/config"
	"github.com/lox/xyzbattle/internal/server"
)

// ServeCmd runs the websocket server
type ServeCmd struct {
	Addr        string        `help:"Server address (overrides config)"`
	Seed        *int64        `help:"Deterministic RNG seed for session deals (overrides config)"`
	IdleTimeout time.Duration `help:"Close sessions idle for this long (overrides config)"`
	MaxSessions int           `help:"Maximum concurrent sessions (overrides config)"`
	Debug       bool          `help:"Enable debug logging"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load(func(cfg *config.Config) {
		if c.Addr != "" {
			cfg.Server.Address = c.Addr
		}
		if c.Seed != nil {
			cfg.Game.Seed = c.Seed
		}
		if c.IdleTimeout > 0 {
			cfg.Server.IdleTimeoutSeconds = idleSeconds(c.IdleTimeout)
		}
		if c.MaxSessions > 0 {
			cfg.Server.MaxSessions = c.MaxSessions
		}
		if c.Debug {
			cfg.Server.LogLevel = "debug"
		}
	})
	if err != nil {
		return err
	}

	logger, err := shared.SetupLogger(os.Stderr, cfg.Server.LogLevel)
	if err != nil {
		return err
	}

	s := server.NewServer(server.Config{
		Address:     cfg.Server.Address,
		IdleTimeout: cfg.IdleTimeout(),
		MaxSessions: cfg.Server.MaxSessions,
		Seed:        cfg.Game.Seed,
	}, logger)

	logger.Info("Starting X/Y/Z Card Battle server",
		"address", cfg.Server.Address,
		"idle_timeout", cfg.IdleTimeout(),
		"max_sessions", cfg.Server.MaxSessions,
		"deterministic", cfg.Game.Seed != nil)

	// Setup graceful shutdown
	ctx := shared.SetupSignalHandler(logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

// idleSeconds rounds a flag duration up to whole seconds so sub-second
// values still mean a positive timeout.
func idleSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
