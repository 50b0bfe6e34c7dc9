package main

import (
	"fmt"

	"github.com/lox/xyzbattle/internal/locale"
	"github.com/lox/xyzbattle/internal/tui"
)

// RulesCmd prints the rules in the configured language
type RulesCmd struct{}

func (c *RulesCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	phrases := locale.For(cfg.Language())
	fmt.Println(tui.HeaderStyle.Render(" " + phrases.Title + " "))
	fmt.Println()
	fmt.Println(phrases.Rules())
	return nil
}
