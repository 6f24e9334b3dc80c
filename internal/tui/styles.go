package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/claude/gymmate/internal/display"
	"github.com/claude/gymmate/internal/models"
)

// styles maps the app palette onto terminal styles.
type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	card     lipgloss.Style
	selected lipgloss.Style
	disabled lipgloss.Style
	button   lipgloss.Style
	green    lipgloss.Style
	danger   lipgloss.Style
	label    lipgloss.Style
	readOnly lipgloss.Style
	barFill  lipgloss.Style
	barEmpty lipgloss.Style
	status   lipgloss.Style
	help     lipgloss.Style
	navBar   lipgloss.Style
}

func newStyles() styles {
	darkBlue := lipgloss.Color(display.DarkBlue)
	lightBlue := lipgloss.Color(display.LightBlue)
	white := lipgloss.Color(display.TextWhite)
	gray := lipgloss.Color(display.Gray)

	card := lipgloss.NewStyle().
		Background(darkBlue).
		Foreground(white).
		Padding(0, 1)

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(display.LightBlue)).MarginBottom(1),
		subtitle: lipgloss.NewStyle().Foreground(gray),
		card:     card,
		selected: card.Background(lightBlue).Bold(true),
		disabled: lipgloss.NewStyle().Background(lipgloss.Color(display.BackgroundGray)).Foreground(gray).Padding(0, 1),
		button:   lipgloss.NewStyle().Background(darkBlue).Foreground(white).Bold(true).Padding(0, 2),
		green:    lipgloss.NewStyle().Background(lipgloss.Color(display.CustomGreen)).Foreground(white).Bold(true).Padding(0, 2),
		danger:   lipgloss.NewStyle().Foreground(lipgloss.Color(display.DangerRed)),
		label:    lipgloss.NewStyle().Bold(true),
		readOnly: lipgloss.NewStyle().Foreground(gray),
		barFill:  lipgloss.NewStyle().Foreground(lightBlue),
		barEmpty: lipgloss.NewStyle().Foreground(gray),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color(display.DangerRed)).Bold(true),
		help:     lipgloss.NewStyle().Foreground(gray),
		navBar:   lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).BorderForeground(gray),
	}
}

// dot renders a quick-schedule status dot.
func (s styles) dot(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

// genderButton renders one of the registration gender toggles.
func (s styles) genderButton(g, selected models.Gender) string {
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(display.TextWhite)).Padding(0, 2)
	if g == selected {
		return st.Background(lipgloss.Color(display.GenderColor(g))).Bold(true).Render(string(g))
	}
	return st.Background(lipgloss.Color(display.Gray)).Render(string(g))
}
