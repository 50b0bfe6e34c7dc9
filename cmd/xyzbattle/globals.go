package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/xyzbattle/internal/config"
	"github.com/muesli/termenv"
)

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"xyzbattle.hcl" help:"HCL config file (missing file means defaults)"`
	Language string `short:"l" help:"Language: en, ja or auto (overrides config)"`
	NoColor  bool   `help:"Disable colour output"`
}

// load reads the config file, applies overrides and validates the result.
// The colour profile is set here so every command renders the same way.
func (g *Globals) load(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if g.Language != "" {
		cfg.Game.Language = g.Language
	}
	if g.NoColor {
		off := false
		cfg.UI.Color = &off
	}
	for _, apply := range overrides {
		apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}

	if !cfg.ColorEnabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return cfg, nil
}
