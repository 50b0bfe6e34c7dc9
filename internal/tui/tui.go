package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/game"
	"github.com/lox/xyzbattle/internal/locale"
)

// commandTimeout bounds one driver call, which may cross the network.
const commandTimeout = 15 * time.Second

// TUIModel represents the Bubble Tea model for the card battle
type TUIModel struct {
	driver  game.Driver
	phrases *locale.Phrasebook
	logger  *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog     []string
	snap        game.Snapshot
	pick        pickStep
	pickedCPU   card.Position
	busy        bool
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool // Track if viewport has been properly sized

	// Test mode
	testMode    bool
	capturedLog []string // For test assertions
}

// pickStep tracks the step-by-step exchange started by a bare "swap".
type pickStep int

const (
	pickNone pickStep = iota
	pickOpponent
	pickYours
)

// resultMsg carries the outcome of a driver command back to Update.
type resultMsg struct {
	cmd  game.Command
	snap game.Snapshot
	err  error
}

// historyMsg carries the rounds fetched for the history command.
type historyMsg struct {
	rounds []game.RoundRecord
	err    error
}

// NewTUIModel creates a new TUI model playing through driver
func NewTUIModel(driver game.Driver, phrases *locale.Phrasebook, logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(driver, phrases, logger, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(driver game.Driver, phrases *locale.Phrasebook, logger *log.Logger, testMode bool) *TUIModel {
	// Sized properly when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = PromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &TUIModel{
		driver:      driver,
		phrases:     phrases,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		focusedPane: 1, // Start with input focused
		testMode:    testMode,
	}
	m.renderTitle()
	return m
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.do(game.Command{Op: game.OpState}))
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case resultMsg:
		m.busy = false
		return m, m.handleResult(msg)

	case historyMsg:
		m.busy = false
		m.handleHistory(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.quit()
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				return m, m.processInput(input)
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *TUIModel) quit() tea.Cmd {
	m.quitting = true
	m.addStyled(InfoStyle, m.phrases.Labels.Goodbye)
	return tea.Quit
}

// do runs a driver command off the UI goroutine.
func (m *TUIModel) do(cmd game.Command) tea.Cmd {
	m.busy = true
	driver := m.driver
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		snap, err := driver.Do(ctx, cmd)
		return resultMsg{cmd: cmd, snap: snap, err: err}
	}
}

func (m *TUIModel) fetchHistory() tea.Cmd {
	m.busy = true
	driver := m.driver
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		rounds, err := driver.History(ctx)
		return historyMsg{rounds: rounds, err: err}
	}
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1))
	if m.focusedPane == 1 {
		actionStyle = actionStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	actionPane := actionStyle.Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	paneHeight := max(m.height-actionHeight-4, 1) // borders of both rows

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	// On first proper sizing, show the newest lines
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderSidebarPane creates the sidebar content
func (m *TUIModel) renderSidebarPane() string {
	p := m.phrases
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(p.Title))
	content.WriteString("\n\n")
	content.WriteString(WarningStyle.Render(fmt.Sprintf(p.Labels.Round, m.snap.Round)))
	content.WriteString("\n")
	fmt.Fprintf(&content, "%s: %s\n", p.Labels.Tier, p.Tier(m.snap.Tier))
	fmt.Fprintf(&content, "%s: %d\n", p.Labels.Streak, m.snap.Streak)
	fmt.Fprintf(&content, "%s: %d\n", p.Labels.Best, m.snap.BestStreak)
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render(p.Footer))

	return content.String()
}

// renderActionPane renders the action input pane
func (m *TUIModel) renderActionPane() string {
	p := m.phrases
	var content strings.Builder

	if m.snap.PlayerHand != nil && m.snap.Phase.Playing() {
		content.WriteString(HandInfoStyle.Render(p.Labels.YourHand + ": "))
		content.WriteString(m.styledHand(*m.snap.PlayerHand))
		content.WriteString("  ")
		content.WriteString(HandInfoStyle.Render(p.Rank(*m.snap.PlayerRank)))
		content.WriteString("\n")
	}

	m.actionInput.Placeholder = m.prompt()
	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	}
	content.WriteString(InfoStyle.Render(help))

	return content.String()
}

// prompt is the input placeholder for the current state
func (m *TUIModel) prompt() string {
	l := m.phrases.Labels
	switch {
	case m.pick == pickOpponent:
		return l.PickOpponent
	case m.pick == pickYours:
		return l.PickYours
	}

	switch m.snap.Phase {
	case game.PhaseTitle:
		return l.PressStart
	case game.PhaseDealt:
		if !m.snap.CanSkip {
			return l.ExchangeRequired
		}
		return l.ExchangeHint
	case game.PhaseExchanged:
		return "battle"
	case game.PhaseWon:
		return l.ContinuePrompt
	case game.PhaseDrawn:
		return l.Redealing
	default:
		return l.RestartPrompt
	}
}

// AddLogEntry adds a plain entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.addLine(entry, entry)
}

// AddBoldLogEntry adds a bold entry to the game log
func (m *TUIModel) AddBoldLogEntry(entry string) {
	m.addLine(entry, lipgloss.NewStyle().Bold(true).Render(entry))
}

func (m *TUIModel) addStyled(style lipgloss.Style, entry string) {
	m.addLine(entry, style.Render(entry))
}

// addLine appends one entry; plain is what test mode captures.
func (m *TUIModel) addLine(plain, styled string) {
	m.gameLog = append(m.gameLog, styled)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, plain)
		return // Skip UI updates in test mode
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// ClearLog clears the game log
func (m *TUIModel) ClearLog() {
	m.gameLog = nil
	m.capturedLog = nil
	m.logViewport.SetContent("")
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}

// Snapshot returns the last state reported by the driver
func (m *TUIModel) Snapshot() game.Snapshot {
	return m.snap
}

// Run plays an interactive game on the terminal until the player quits
func Run(ctx context.Context, driver game.Driver, phrases *locale.Phrasebook, logger *log.Logger) error {
	program := tea.NewProgram(
		NewTUIModel(driver, phrases, logger),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := program.Run()
	return err
}
