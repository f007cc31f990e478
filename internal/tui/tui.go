// Package tui shows the board in a terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"riskboard/internal/board"
	"riskboard/internal/risk"
	"riskboard/internal/surface"
)

// cellWidth approximates one terminal column in canvas pixels.
const cellWidth = 8

var (
	classColors = map[string]lipgloss.Color{
		"risk-low":       lipgloss.Color("10"),
		"risk-medium":    lipgloss.Color("11"),
		"risk-high":      lipgloss.Color("208"),
		"risk-critical":  lipgloss.Color("9"),
		"alert-low":      lipgloss.Color("22"),
		"alert-guarded":  lipgloss.Color("18"),
		"alert-elevated": lipgloss.Color("94"),
		"alert-high":     lipgloss.Color("130"),
		"alert-severe":   lipgloss.Color("88"),
	}
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(24)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	board *board.Board
	state board.State
	width int
}

// New returns a bubbletea model reading from b. Terminal resizes are passed on
// as viewport changes.
func New(b *board.Board) tea.Model {
	return model{board: b, state: b.State()}
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.board.SetViewport(msg.Width * cellWidth)
		m.state = m.board.State()
	case tickMsg:
		m.state = m.board.State()
		return m, tick()
	}
	return m, nil
}

func (m model) View() string {
	reg := m.state.Regions
	var b strings.Builder

	total := reg[surface.TotalRisk]
	b.WriteString(titleStyle.Render("TOTAL RISK ") + colored(total.Class, true).Render(orDash(total.Text)))
	alert := reg[surface.AlertLevel]
	if alert.Text != "" {
		b.WriteString("  " + lipgloss.NewStyle().Padding(0, 1).Background(classColors[alert.Class]).Render(alert.Text))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("updated %s · next update in %s · %s",
		orDash(reg[surface.LastUpdated].Text), orDash(reg[surface.Countdown].Text), reg[surface.ElevatedCount].Text)))
	b.WriteString("\n\n")

	perRow := 3
	if m.width > 0 && m.width < 80 {
		perRow = 1
	}
	var row []string
	for _, key := range risk.SignalKeys {
		card := reg[surface.SignalCard(key)]
		body := titleStyle.Render(strings.ToUpper(string(key))) + "\n" +
			colored(card.Class, true).Render(orDash(reg[surface.SignalValue(key)].Text)) + "\n" +
			dimStyle.Render(reg[surface.SignalDetail(key)].Text)
		style := cardStyle
		if c, ok := classColors[card.Class]; ok {
			style = style.BorderForeground(c)
		}
		row = append(row, style.Render(body))
		if len(row) == perRow {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n")
			row = nil
		}
	}
	if len(row) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n")
	}
	b.WriteString(dimStyle.Render("q to quit"))
	return b.String()
}

func colored(class string, bold bool) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(bold)
	if c, ok := classColors[class]; ok {
		s = s.Foreground(c)
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "--"
	}
	return s
}
