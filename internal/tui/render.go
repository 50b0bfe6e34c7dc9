package tui

import (
	"fmt"
	"strings"

	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/difficulty"
	"github.com/lox/xyzbattle/internal/evaluator"
	"github.com/lox/xyzbattle/internal/game"
)

func (m *TUIModel) renderTitle() {
	m.addLine(m.phrases.Title, HeaderStyle.Render(m.phrases.Title))
	m.addStyled(PromptStyle, m.phrases.Labels.PressStart)
}

// renderDeal shows a freshly dealt round: tier, hand, comment and reveal.
func (m *TUIModel) renderDeal() {
	p, l, snap := m.phrases, m.phrases.Labels, m.snap

	m.AddLogEntry("")
	heading := fmt.Sprintf("%s  %s", p.Round(snap.Round-1), p.Tier(snap.Tier))
	m.AddBoldLogEntry(heading)

	if snap.PlayerHand != nil {
		m.addHand(l.YourHand, *snap.PlayerHand, *snap.PlayerRank)
	}
	if snap.Comment != nil {
		line := fmt.Sprintf("%s: %s", l.OpponentComment, p.Comment(*snap.Comment))
		m.addStyled(CommentStyle, line)
	}
	if snap.Reveal != nil {
		m.addStyled(CommentStyle, p.Reveal(*snap.Reveal))
	}

	if snap.CanExchange && !snap.CanSkip {
		m.addStyled(WarningStyle, l.ExchangeRequired)
	}
	m.addStyled(InfoStyle, l.ExchangeHint)
}

func (m *TUIModel) renderExchange() {
	l, snap := m.phrases.Labels, m.snap

	m.addStyled(SuccessStyle, l.Exchanged)
	if ex := snap.Exchange; ex != nil {
		m.AddLogEntry(fmt.Sprintf(l.Swapped, ex.Gave, ex.Took))
	}
	if snap.PlayerHand != nil {
		m.addHand(l.YourHand, *snap.PlayerHand, *snap.PlayerRank)
	}
}

// renderBattle shows both hands and what the result means for the streak.
func (m *TUIModel) renderBattle() {
	p, l, snap := m.phrases, m.phrases.Labels, m.snap

	if snap.Exchange == nil {
		m.addStyled(InfoStyle, l.NoExchange)
	}
	if snap.OpponentHand != nil {
		m.addHand(l.OpponentHand, *snap.OpponentHand, *snap.OpponentRank)
	}
	if snap.Outcome == nil {
		return
	}

	banner := p.Outcome(*snap.Outcome)
	switch *snap.Outcome {
	case evaluator.PlayerWins:
		m.addStyled(SuccessStyle, banner)
		m.addStyled(SuccessStyle, p.Wins(snap.Streak))
		if snap.Milestone != nil {
			m.addStyled(WarningStyle, p.Milestone(*snap.Milestone))
		}
		m.addStyled(PromptStyle, l.ContinuePrompt)
	case evaluator.OpponentWins:
		m.addStyled(ErrorStyle, banner)
		m.addStyled(WarningStyle, l.GameOver)
		m.addStyled(SuccessStyle, p.Wins(snap.FinalStreak))
		m.addStyled(PromptStyle, l.RestartPrompt)
	default:
		m.addStyled(WarningStyle, banner)
	}
}

// addHand logs a labelled hand with coloured symbols and its rank.
func (m *TUIModel) addHand(label string, hand card.Hand, rank evaluator.Rank) {
	plain := fmt.Sprintf("%s: %s  %s", label, hand, m.phrases.Rank(rank))
	styled := fmt.Sprintf("%s: %s  %s",
		HandInfoStyle.Render(label), m.styledHand(hand), HandInfoStyle.Render(m.phrases.Rank(rank)))
	m.addLine(plain, styled)
}

func (m *TUIModel) styledHand(hand card.Hand) string {
	parts := make([]string, 0, card.HandSize)
	for _, s := range hand {
		parts = append(parts, SymbolStyle(s).Render("["+s.String()+"]"))
	}
	return strings.Join(parts, " ")
}

// tierOf looks up the tier a recorded round was played at.
func tierOf(r game.RoundRecord) difficulty.Tier {
	if t, ok := difficulty.ByLevel(r.Level); ok {
		return t
	}
	return difficulty.For(r.StreakBefore)
}
