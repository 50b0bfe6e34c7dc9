package main

import (
	"context"
	"time"

	"github.com/lox/xyzbattle/cmd/xyzbattle/shared"
	"github.com/lox/xyzbattle/internal/client"
	"github.com/lox/xyzbattle/internal/config"
	"github.com/lox/xyzbattle/internal/locale"
	"github.com/lox/xyzbattle/internal/tui"
)

// ClientCmd plays a remote session through the terminal UI
type ClientCmd struct {
	Server   string `short:"s" help:"Server URL or host:port (defaults to the configured address)"`
	LogFile  string `help:"Debug log file (overrides config)"`
	LogLevel string `help:"Log level: debug, info, warn or error (overrides config)"`
}

func (c *ClientCmd) Run(g *Globals) error {
	cfg, err := g.load(func(cfg *config.Config) {
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

	logFile, err := shared.OpenLogFile(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	logger, err := shared.SetupLogger(logFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}

	target := c.Server
	if target == "" {
		target = cfg.Server.Address
	}

	ctx := shared.SetupSignalHandler(logger)

	remote := client.NewClient(target, logger)
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := remote.Connect(connectCtx); err != nil {
		return err
	}
	defer func() { _ = remote.Close() }()

	return tui.Run(ctx, remote, locale.For(cfg.Language()), logger)
}
