package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-rigel/internal/astro"
	"github.com/litescript/ls-rigel/internal/sky"
	"github.com/litescript/ls-rigel/internal/state"
)

// Styles for the bodies table
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	belowHorizonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// FocusBodyMsg asks the sky view to focus the named body.
type FocusBodyMsg struct {
	Name string
}

// BodiesModel lists the Sun, the Moon and the planets with their positions.
type BodiesModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
	lastErr  error
}

// NewBodiesModel creates a new bodies model.
func NewBodiesModel() BodiesModel {
	return BodiesModel{}
}

// Init implements the Bubble Tea model interface.
func (m BodiesModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m BodiesModel) SetSize(width, height int) BodiesModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m BodiesModel) UpdateData(snapshot state.Snapshot) BodiesModel {
	m.snapshot = snapshot
	m.lastErr = snapshot.LastError
	return m
}

// SetError sets the last error for display.
func (m BodiesModel) SetError(err error) BodiesModel {
	m.lastErr = err
	return m
}

// rows returns the listed bodies in display order.
func (m BodiesModel) rows() []sky.Object {
	s := m.snapshot.Sky
	if s == nil {
		return nil
	}
	out := []sky.Object{s.Sun(), s.Moon()}
	for _, p := range s.Planets() {
		out = append(out, p)
	}
	return out
}

// Update handles messages.
func (m BodiesModel) Update(msg tea.Msg) (BodiesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		rows := m.rows()

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(rows)-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if len(rows) > 0 {
				m.cursor = len(rows) - 1
			}
		case "enter":
			if b := m.Selected(); b != nil {
				name := b.Name()
				return m, func() tea.Msg { return FocusBodyMsg{Name: name} }
			}
		}
	}

	return m, nil
}

// Selected returns the body under the cursor, if any.
func (m BodiesModel) Selected() sky.Object {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor]
}

// View renders the bodies table.
func (m BodiesModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	if m.snapshot.Sky == nil && m.lastErr == nil {
		b.WriteString("Computing sky...\n")
		return b.String()
	}
	if m.snapshot.Sky == nil {
		return b.String()
	}

	b.WriteString(m.renderBodiesTable())
	b.WriteString("\n")
	b.WriteString(m.renderEvents())

	return b.String()
}

func (m BodiesModel) renderBodiesTable() string {
	var b strings.Builder
	s := m.snapshot.Sky

	where := s.Where()
	b.WriteString(titleStyle.Render(fmt.Sprintf("Sky from %s at %s",
		where, m.snapshot.When.UTC().Format("2006-01-02 15:04:05 UTC"))))
	b.WriteString("\n")

	header := fmt.Sprintf("%-16s %7s %7s %-3s %12s %6s %8s",
		"Body", "Az", "Alt", "Dir", "Altitude", "Mag", "Size")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for i, o := range m.rows() {
		h := s.Horizontal(o)
		row := fmt.Sprintf("%-16s %6.1f° %6.1f° %-3s %s %6.2f %7.1f'",
			truncate(o.Info(), 16),
			h.AzDeg(),
			h.AltDeg(),
			h.AzOctantName("N", "E", "S", "W"),
			altitudeBar(h, 10),
			o.Magnitude(),
			astro.ToDeg(o.AngularSize())*60,
		)

		switch {
		case i == m.cursor:
			b.WriteString(selectedRowStyle.Render(row))
		case h.Alt() < 0:
			b.WriteString(belowHorizonStyle.Render(row))
		default:
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// altitudeBar draws altitude from -90° to +90° as a bar of width cells
// inside brackets; the horizon falls in the middle.
func altitudeBar(h astro.Horizontal, width int) string {
	filled := int((h.AltDeg() + 90) / 180 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func (m BodiesModel) renderEvents() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Horizon Crossings"))
	b.WriteString("\n")

	events := m.snapshot.Events
	if len(events) == 0 {
		b.WriteString("  No rise or set yet\n")
		return b.String()
	}

	maxRows := m.height - len(m.rows()) - 8
	if maxRows < 3 {
		maxRows = 3
	}
	if len(events) > maxRows {
		events = events[len(events)-maxRows:]
	}

	// Newest first
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		b.WriteString(rowStyle.Render(fmt.Sprintf("  %s  %-4s %s",
			e.Timestamp.UTC().Format("2006-01-02 15:04"), e.Type, e.Body)))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
