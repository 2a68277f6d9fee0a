package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorBorder = lipgloss.Color("240")
	colorMuted  = lipgloss.Color("245")
	colorAccent = lipgloss.Color("63")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	dayStyle   = lipgloss.NewStyle().Bold(true)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)
)

const helpText = "↑/↓ move • enter open • t trainer • q quit"

func planColumns(width int) []table.Column {
	dateW := 12
	nameW := 24
	descW := width - nameW - 2*dateW - 8
	if descW < 16 {
		descW = 16
	}
	return []table.Column{
		{Title: "Name", Width: nameW},
		{Title: "Description", Width: descW},
		{Title: "Start Date", Width: dateW},
		{Title: "End Date", Width: dateW},
	}
}

func tableStyles() table.Styles {
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(colorAccent).
		Bold(false)
	return st
}

func (m Model) View() string {
	if m.overlayVisible() {
		return m.overlayView()
	}

	var b strings.Builder
	title := "Workout plans"
	if m.state.TrainerID != "" {
		title += " · trainer " + m.state.TrainerID
	}
	fmt.Fprintln(&b, titleStyle.Render(title))
	fmt.Fprintln(&b)

	if len(m.state.Plans) == 0 {
		fmt.Fprintln(&b, mutedStyle.Render("No workout plans."))
	} else {
		fmt.Fprintln(&b, m.table.View())
	}
	fmt.Fprintln(&b)

	switch {
	case m.editingTrainer:
		fmt.Fprintln(&b, m.input.View())
	case m.state.Loading:
		fmt.Fprintln(&b, mutedStyle.Render("Loading plan…"))
	default:
		fmt.Fprintln(&b, mutedStyle.Render(helpText))
	}
	return b.String()
}

// overlayPanel renders the detail panel without placement.
func (m Model) overlayPanel() string {
	d := m.state.Selected
	var b strings.Builder

	fmt.Fprintln(&b, titleStyle.Render(d.Name))
	if d.Description != "" {
		fmt.Fprintln(&b, mutedStyle.Render(d.Description))
	}
	fmt.Fprintln(&b, mutedStyle.Render("From: "+d.FromDate.String()))
	fmt.Fprintln(&b, mutedStyle.Render("To: "+d.ToDate.String()))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, dayStyle.Render("Exercises by Day"))

	g := m.state.Grouped
	if g.IsEmpty() {
		fmt.Fprintln(&b, mutedStyle.Render("No exercises"))
	}
	for _, day := range g.Days() {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, dayStyle.Render(day))
		for _, e := range g.Exercises(day) {
			fmt.Fprintln(&b, "  • "+e.Label())
		}
	}
	fmt.Fprintln(&b)
	b.WriteString(mutedStyle.Render("esc/enter close"))

	width := 60
	if m.width > 0 {
		width = min(max(m.width*11/12, 30), 100)
	}
	return panelStyle.Width(width).Render(b.String())
}

func (m Model) overlayView() string {
	panel := m.overlayPanel()
	if m.width == 0 || m.height == 0 {
		return panel
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

// overlayContains reports whether screen cell (x, y) falls on the overlay panel.
func (m Model) overlayContains(x, y int) bool {
	panel := m.overlayPanel()
	w, h := lipgloss.Width(panel), lipgloss.Height(panel)
	if m.width == 0 || m.height == 0 {
		return x < w && y < h
	}
	// lipgloss.Place puts the smaller half of an odd gap before the panel.
	left := max(0, (m.width-w)/2)
	top := max(0, (m.height-h)/2)
	return x >= left && x < left+w && y >= top && y < top+h
}
