package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/game"
)

// processInput turns one line typed by the player into a driver command.
func (m *TUIModel) processInput(input string) tea.Cmd {
	if m.busy {
		// A pending remote command must not trap the player
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "quit", "exit", "q":
			return m.quit()
		}
		return nil
	}
	if m.pick != pickNone {
		return m.processPick(input)
	}

	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return m.defaultAction()
	}
	m.AddLogEntry("> " + input)

	switch fields[0] {
	case "start", "s", "スタート":
		return m.do(game.Command{Op: game.OpStart})
	case "swap", "exchange", "x", "交換":
		return m.processSwap(fields[1:])
	case "battle", "skip", "勝負":
		return m.do(game.Command{Op: game.OpBattle})
	case "redeal":
		return m.do(game.Command{Op: game.OpRedeal})
	case "next", "y", "yes", "continue", "はい":
		return m.do(game.Command{Op: game.OpContinue})
	case "stop", "n", "no", "いいえ":
		return m.do(game.Command{Op: game.OpStop})
	case "restart", "again":
		return m.do(game.Command{Op: game.OpRestart})
	case "rules", "help", "?", "ルール":
		for _, line := range strings.Split(m.phrases.Rules(), "\n") {
			m.AddLogEntry(line)
		}
		return nil
	case "history", "履歴":
		return m.fetchHistory()
	case "quit", "exit", "q":
		return m.quit()
	default:
		m.addStyled(WarningStyle, fmt.Sprintf(m.phrases.Labels.Unknown, input))
		return nil
	}
}

// defaultAction is what a bare Enter does in the current phase.
func (m *TUIModel) defaultAction() tea.Cmd {
	l := m.phrases.Labels
	switch m.snap.Phase {
	case game.PhaseTitle:
		return m.do(game.Command{Op: game.OpStart})
	case game.PhaseDealt:
		if !m.snap.CanSkip {
			m.addStyled(WarningStyle, l.ExchangeRequired)
		}
		m.addStyled(InfoStyle, l.ExchangeHint)
	case game.PhaseExchanged:
		return m.do(game.Command{Op: game.OpBattle})
	case game.PhaseWon:
		m.addStyled(PromptStyle, l.ContinuePrompt)
	default:
		m.addStyled(PromptStyle, l.RestartPrompt)
	}
	return nil
}

// processSwap handles "swap <yours> <cpu>" or starts the step-by-step
// selection when no positions are given.
func (m *TUIModel) processSwap(args []string) tea.Cmd {
	if len(args) == 0 {
		if !m.snap.CanExchange {
			m.addStyled(WarningStyle, m.phrases.Labels.NotNow)
			return nil
		}
		m.pick = pickOpponent
		m.addStyled(PromptStyle, m.phrases.Labels.PickOpponent)
		return nil
	}
	if len(args) != 2 {
		m.addStyled(InfoStyle, m.phrases.Labels.ExchangeHint)
		return nil
	}

	yours, err := card.ParsePosition(args[0])
	if err != nil {
		m.addStyled(ErrorStyle, err.Error())
		return nil
	}
	cpu, err := card.ParsePosition(args[1])
	if err != nil {
		m.addStyled(ErrorStyle, err.Error())
		return nil
	}
	return m.do(game.Command{Op: game.OpExchange, Player: yours, Opponent: cpu})
}

// processPick advances the step-by-step selection: the CPU card first, then
// one of the player's own, with a way back to the first step.
func (m *TUIModel) processPick(input string) tea.Cmd {
	l := m.phrases.Labels
	m.AddLogEntry("> " + input)

	if m.pick == pickYours {
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "back", "b", "戻る":
			m.addStyled(InfoStyle, l.Back)
			m.pick = pickOpponent
			m.addStyled(PromptStyle, l.PickOpponent)
			return nil
		}
	}

	pos, err := card.ParsePosition(input)
	if err != nil {
		if m.pick == pickOpponent {
			m.addStyled(PromptStyle, l.PickOpponent)
		} else {
			m.addStyled(PromptStyle, l.PickYours)
		}
		return nil
	}

	if m.pick == pickOpponent {
		m.pickedCPU = pos
		m.pick = pickYours
		m.addStyled(PromptStyle, l.PickYours)
		return nil
	}

	m.pick = pickNone
	return m.do(game.Command{Op: game.OpExchange, Player: pos, Opponent: m.pickedCPU})
}

// handleResult renders what a driver command did. A draw is redealt
// straight away.
func (m *TUIModel) handleResult(msg resultMsg) tea.Cmd {
	if msg.err != nil {
		if msg.snap.Round > 0 {
			m.snap = msg.snap
		}
		m.renderError(msg.err)
		return nil
	}
	m.snap = msg.snap

	switch msg.cmd.Op {
	case game.OpState:
		if m.snap.Phase.Playing() {
			m.renderDeal()
		}
	case game.OpStart, game.OpRedeal, game.OpContinue:
		m.renderDeal()
	case game.OpExchange:
		m.renderExchange()
	case game.OpBattle:
		m.renderBattle()
		if m.snap.Phase == game.PhaseDrawn {
			m.addStyled(InfoStyle, m.phrases.Labels.Redealing)
			return m.do(game.Command{Op: game.OpRedeal})
		}
	case game.OpStop:
		m.addStyled(WarningStyle, m.phrases.Labels.GameOver)
		m.addStyled(SuccessStyle, m.phrases.Wins(m.snap.FinalStreak))
	case game.OpRestart:
		m.AddLogEntry("")
		m.renderTitle()
	}
	return nil
}

func (m *TUIModel) handleHistory(msg historyMsg) {
	l := m.phrases.Labels
	if msg.err != nil {
		m.renderError(msg.err)
		return
	}
	if len(msg.rounds) == 0 {
		m.addStyled(InfoStyle, l.NoHistory)
		return
	}

	m.AddBoldLogEntry(l.History)
	for _, r := range msg.rounds {
		line := fmt.Sprintf("#%d  %s  %s vs %s  %s",
			r.Deal, m.phrases.TierName(tierOf(r)), r.Player.Compact(), r.Opponent.Compact(), m.phrases.Outcome(r.Outcome))
		m.AddLogEntry(line)
	}
	s := game.Summarize(msg.rounds)
	m.addStyled(InfoStyle, fmt.Sprintf(l.Summary, s.Played, s.Wins, s.Losses, s.Draws))
}

func (m *TUIModel) renderError(err error) {
	l := m.phrases.Labels
	switch {
	case errors.Is(err, game.ErrExchangeRequired):
		m.addStyled(WarningStyle, l.ExchangeRequired)
	case errors.Is(err, game.ErrInvalidTransition):
		m.addStyled(WarningStyle, l.NotNow)
	default:
		m.logger.Error("Command failed", "error", err)
		m.addStyled(ErrorStyle, err.Error())
	}
}
