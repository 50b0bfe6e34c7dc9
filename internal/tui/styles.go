package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/xyzbattle/internal/card"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	HandInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	CommentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)
)

// symbolStyles colours each card symbol.
var symbolStyles = [card.NumSymbols]lipgloss.Style{
	card.X: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	card.Y: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
	card.Z: lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")).Bold(true),
}

// SymbolStyle returns the style of a card symbol.
func SymbolStyle(s card.Symbol) lipgloss.Style {
	if !s.Valid() {
		return InfoStyle
	}
	return symbolStyles[s]
}
