// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-rigel/internal/state"
	"github.com/litescript/ls-rigel/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewSky ViewMode = iota
	ViewBodies
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers a periodic sky rebuild.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg signals a new sky snapshot is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a failed rebuild.
	ErrorMsg struct {
		Error error
	}

	// rebuiltMsg carries the result of a rebuild outside the tick cycle.
	rebuiltMsg struct {
		snapshot state.Snapshot
		err      error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.Manager

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int // Animation tick for shimmer effects

	// Sub-models
	skyView SkyViewModel
	bodies  BodiesModel

	// Data snapshot (updated on DataUpdateMsg)
	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager) Model {
	return Model{
		state:    stateMgr,
		viewMode: ViewSky,
		skyView:  NewSkyViewModel(),
		bodies:   NewBodiesModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshCmd(),
		animTickCmd(),
		m.skyView.Init(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "s":
			m.viewMode = ViewSky
		case "2", "b":
			m.viewMode = ViewBodies

		case "tab":
			// Cycle through views
			m.viewMode = (m.viewMode + 1) % 2

		default:
			// Pass to active view
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~10 lines, footer ~2 lines
		contentHeight := msg.Height - 13
		m.skyView = m.skyView.SetSize(msg.Width, contentHeight)
		m.bodies = m.bodies.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, m.refreshCmd())

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case animTickMsg:
		// Camera animation runs whichever view is shown
		var cmd tea.Cmd
		m.skyView, cmd = m.skyView.Update(msg)
		cmds = append(cmds, cmd)

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		m.skyView = m.skyView.UpdateData(m.snapshot)
		m.bodies = m.bodies.UpdateData(m.snapshot)
		cmds = append(cmds, tickCmd(m.state.RefreshInterval()))

	case ErrorMsg:
		m.bodies = m.bodies.SetError(msg.Error)
		cmds = append(cmds, tickCmd(m.state.RefreshInterval()))

	case rebuiltMsg:
		if msg.err != nil {
			m.bodies = m.bodies.SetError(msg.err)
			break
		}
		m.snapshot = msg.snapshot
		m.skyView = m.skyView.UpdateData(m.snapshot)
		m.bodies = m.bodies.UpdateData(m.snapshot)

	case CenterChangedMsg:
		m.state.SetCenter(msg.Center)
		cmds = append(cmds, m.rebuildCmd())

	case TimeShiftMsg:
		m.state.Shift(msg.Delta)
		cmds = append(cmds, m.rebuildCmd())

	case TimeResetMsg:
		m.state.ResetTime()
		cmds = append(cmds, m.rebuildCmd())

	case FocusBodyMsg:
		m.viewMode = ViewSky
		var cmd tea.Cmd
		m.skyView, cmd = m.skyView.FocusBody(msg.Name)
		cmds = append(cmds, cmd)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewSky:
		m.skyView, cmd = m.skyView.Update(msg)
	case ViewBodies:
		m.bodies, cmd = m.bodies.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewSky:
		content = m.skyView.View()
	case ViewBodies:
		content = m.bodies.View()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + "\n" + content + "\n" + footer
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	// ASCII art with smooth truecolor gradient
	logo := []string{
		`  ██╗     ███████╗      ██████╗ ██╗ ██████╗ ███████╗██╗     `,
		`  ██║     ██╔════╝      ██╔══██╗██║██╔════╝ ██╔════╝██║     `,
		`  ██║     ███████╗█████╗██████╔╝██║██║  ███╗█████╗  ██║     `,
		`  ██║     ╚════██║╚════╝██╔══██╗██║██║   ██║██╔══╝  ██║     `,
		`  ███████╗███████║      ██║  ██║██║╚██████╔╝███████╗███████╗`,
		`  ╚══════╝╚══════╝      ╚═╝  ╚═╝╚═╝ ╚═════╝ ╚══════╝╚══════╝`,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		lineLen := len(runes)

		for col, r := range runes {
			color := gradientColor(col, row, lineLen, len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Sun · Moon · Planets · Stars from where you stand"))
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("  (c) 2025 litescript.net | v%s", version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient:
// blue -> purple -> magenta -> pink, darker toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Blue (#3B82F6) -> Purple (#8B5CF6) -> Magenta (#D946EF) -> Pink (#EC4899)
	var r, g, b float64
	switch {
	case xRatio < 0.33:
		t := xRatio / 0.33
		r, g, b = lerp(59, 139, t), lerp(130, 92, t), 246
	case xRatio < 0.66:
		t := (xRatio - 0.33) / 0.33
		r, g, b = lerp(139, 217, t), lerp(92, 70, t), lerp(246, 239, t)
	default:
		t := (xRatio - 0.66) / 0.34
		r, g, b = lerp(217, 236, t), lerp(70, 72, t), lerp(239, 153, t)
	}

	brightness := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X",
		clampByte(r*brightness), clampByte(g*brightness), clampByte(b*brightness))
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Sky", "[2] Bodies"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.snapshot.Sky != nil:
		status = accentStyle.Render(spinner) + dimStyle.Render(
			fmt.Sprintf(" built in %s", m.snapshot.BuildDuration.Round(time.Microsecond)))
	default:
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Computing sky...")
	}

	var help string
	switch m.viewMode {
	case ViewSky:
		help = dimStyle.Render("arrows: pan | +/-: zoom | j/k: focus | l: labels | a: asterisms | [/]: ±10m | {/}: ±1d | 0: now")
	default:
		help = dimStyle.Render("↑↓: navigate | enter: show in sky | tab: switch view")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// refreshCmd rebuilds the sky off the UI goroutine.
func (m Model) refreshCmd() tea.Cmd {
	mgr := m.state
	return func() tea.Msg {
		if err := mgr.Update(); err != nil {
			return ErrorMsg{Error: err}
		}
		return DataUpdateMsg{Snapshot: mgr.Snapshot()}
	}
}

// rebuildCmd is refreshCmd for user-driven changes; its result does not
// schedule another tick.
func (m Model) rebuildCmd() tea.Cmd {
	mgr := m.state
	return func() tea.Msg {
		if err := mgr.Update(); err != nil {
			return rebuiltMsg{err: err}
		}
		return rebuiltMsg{snapshot: mgr.Snapshot()}
	}
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	// Shimmer sweeps across with some padding for smooth entry and exit
	pos := m.animTick % (textLen + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		hexColor := fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
