package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/claude/gymmate/internal/display"
	"github.com/claude/gymmate/internal/models"
	"github.com/claude/gymmate/internal/nav"
)

const barWidth = 24

func (m Model) View() string {
	var body string
	switch m.nav.Current().Name {
	case nav.Register:
		body = m.viewRegister()
	case nav.Home:
		body = m.viewHome()
	case nav.Tracker:
		body = m.viewTracker()
	case nav.Schedule:
		body = m.viewSchedule()
	case nav.CustomProgram:
		body = m.viewCustom()
	case nav.AddProgram:
		body = m.viewProgramForm("Add New Program", "SAVE PROGRAM")
	case nav.EditForm:
		body = m.viewProgramForm("Edit Program", "SAVE CHANGES")
	case nav.EditProfile:
		body = m.viewEditProfile()
	}

	var b strings.Builder
	b.WriteString(body)
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.st.status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.st.help.Render(m.help()))
	// Forms own every printable key, so the bottom bar only shows elsewhere.
	if !m.form.active() {
		b.WriteString("\n")
		b.WriteString(m.st.navBar.Render("[h] Home    [p] Profile"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) help() string {
	switch m.nav.Current().Name {
	case nav.Register:
		return "tab next field • ctrl+g switch gender • ctrl+s create • ctrl+c quit"
	case nav.AddProgram, nav.EditForm, nav.EditProfile:
		return "tab next field • ctrl+s save • esc back"
	case nav.Home:
		return "↑/↓ select • enter open • t tracker • s schedule • q quit"
	case nav.Tracker:
		return "↑/↓ select • +/- progress • esc back"
	case nav.Schedule:
		return "enter custom program • esc back"
	case nav.CustomProgram:
		return "↑/↓ select • e edit • d delete • a add • esc back"
	}
	return ""
}

func (m Model) viewRegister() string {
	var b strings.Builder
	b.WriteString(m.st.title.Render("Register Now"))
	b.WriteString("\n")
	b.WriteString(m.form.view(m.st))
	b.WriteString(m.st.label.Render("Gender"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.st.genderButton(models.GenderMan, m.gender),
		"  ",
		m.st.genderButton(models.GenderWoman, m.gender),
	))
	b.WriteString("\n\n")
	b.WriteString(m.st.button.Render("CREATE"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewHome() string {
	v := display.Dashboard(m.prof.Get(), m.reg.List(), m.now())

	var b strings.Builder
	b.WriteString(m.st.title.Render(v.Welcome))
	b.WriteString("\n")
	b.WriteString(m.st.subtitle.Render(v.Tagline))
	b.WriteString("\n\n")

	tiles := make([]string, 0, len(homeTiles))
	for i, t := range homeTiles {
		label := t.label
		if t.label == "Today" {
			label = "Today: " + v.Today.Title
		}
		st := m.st.card
		switch {
		case t.disabled:
			st = m.st.disabled
		case i == m.cursor:
			st = m.st.selected
		}
		if i == m.cursor {
			label = "> " + label
		}
		tiles = append(tiles, st.Render(label))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, tiles...))
	b.WriteString("\n\n")

	b.WriteString(m.st.label.Render("Quick Schedule"))
	b.WriteString("\n")
	for _, q := range v.QuickSchedule {
		fmt.Fprintf(&b, "%s %s\n", m.st.dot(q.Color), q.Label)
	}
	return b.String()
}

func (m Model) viewTracker() string {
	var b strings.Builder
	b.WriteString(m.st.title.Render("Weekly Tracker"))
	b.WriteString("\n")
	for i, row := range display.Tracker(m.reg.List()) {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%-28s %s %s\n", cursor, row.Label, m.bar(row.Fill), row.Percent)
	}
	return b.String()
}

func (m Model) bar(fill float64) string {
	n := int(math.Ceil(fill * barWidth))
	if n > barWidth {
		n = barWidth
	}
	return m.st.barFill.Render(strings.Repeat("█", n)) + m.st.barEmpty.Render(strings.Repeat("░", barWidth-n))
}

func (m Model) viewSchedule() string {
	var b strings.Builder
	b.WriteString(m.st.title.Render("Weekly Schedule"))
	b.WriteString("\n")
	for _, row := range display.Schedule(m.reg.List()) {
		b.WriteString(m.st.card.Render(fmt.Sprintf("%-12s %s", row.Day, row.Muscle)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.st.green.Render("CUSTOM PROGRAM"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewCustom() string {
	var b strings.Builder
	b.WriteString(m.st.title.Render("Custom Program"))
	b.WriteString("\n")
	for i, p := range m.reg.List() {
		st := m.st.card
		if i == m.cursor {
			st = m.st.selected
		}
		b.WriteString(st.Render(display.Label(p)))
		b.WriteString("  [e]dit ")
		b.WriteString(m.st.danger.Render("[d]elete"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.st.green.Render("ADD NEW (+)"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewProgramForm(title, button string) string {
	var b strings.Builder
	b.WriteString(m.st.title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.form.view(m.st))
	b.WriteString(m.st.button.Render(button))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewEditProfile() string {
	p := m.prof.Get()

	var b strings.Builder
	b.WriteString(m.st.title.Render("Edit Profile"))
	b.WriteString("\n")
	b.WriteString(m.form.view(m.st))
	for _, ro := range []struct{ label, value string }{
		{"Gender (Read Only)", string(p.Gender)},
		{"Weight (Read Only)", p.Weight},
		{"Height (Read Only)", p.Height},
	} {
		b.WriteString(m.st.label.Render(ro.label))
		b.WriteString("\n")
		b.WriteString(m.st.readOnly.Render(ro.value))
		b.WriteString("\n\n")
	}
	b.WriteString(m.st.button.Render("UPDATE PROFILE"))
	b.WriteString("\n")
	return b.String()
}
