// Package tui is the terminal front end: every screen of the app driven by the
// nav state machine over the in-process registry and profile store.
package tui

import (
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/claude/gymmate/internal/models"
	"github.com/claude/gymmate/internal/nav"
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
)

// progressStep is how much one +/- press moves a tracker bar.
const progressStep = 0.05

// Register form inputs, in display order.
const (
	regName = iota
	regAge
	regWeight
	regHeight
	regTarget
	regLifestyle
	regGoals
)

type tile struct {
	label    string
	to       nav.Name
	disabled bool
}

var homeTiles = []tile{
	{label: "Today", to: nav.Schedule},
	{label: "Tracker", to: nav.Tracker},
	{label: "Start Workout!", to: nav.Schedule},
	{label: "Tutorial", disabled: true},
	{label: "Mates", disabled: true},
}

// Model is the bubbletea model for the whole app.
type Model struct {
	reg  *registry.Registry
	prof *profile.Store
	nav  *nav.Navigator
	log  *slog.Logger
	now  func() time.Time
	st   styles

	cursor int
	form   form
	gender models.Gender
	status string
}

// New starts on registration, or on home when the profile is already registered.
func New(reg *registry.Registry, prof *profile.Store, log *slog.Logger) Model {
	start := nav.To(nav.Register)
	if prof.Get().Registered {
		start = nav.To(nav.Home)
	}
	m := Model{
		reg:  reg,
		prof: prof,
		nav:  nav.New(start),
		log:  log,
		now:  time.Now,
		st:   newStyles(),
	}
	m.enter()
	return m
}

// Route returns the screen currently shown.
func (m Model) Route() nav.Route {
	return m.nav.Current()
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgramsChangedMsg:
		m.clampCursor()
		return m, nil
	case ProfileChangedMsg:
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.nav.Back() {
				m.enter()
			}
			return m, nil
		}
		if m.form.active() {
			return m.updateForm(msg)
		}
		return m.updateScreen(msg)
	}

	if m.form.active() {
		return m, m.form.update(msg)
	}
	return m, nil
}

// enter resets per-screen state after the route changed.
func (m *Model) enter() {
	m.cursor = 0
	m.status = ""
	m.form = form{}

	switch r := m.nav.Current(); r.Name {
	case nav.Register:
		m.gender = models.GenderMan
		m.form = newForm(
			field{label: "Name"},
			field{label: "Age"},
			field{label: "Weight"},
			field{label: "Height"},
			field{label: "Target Weight"},
			field{label: "Lifestyle"},
			field{label: "Goals"},
		)
	case nav.AddProgram:
		m.form = newForm(
			field{label: "Day", placeholder: "e.g. Sunday"},
			field{label: "Muscle", placeholder: "e.g. Cardio"},
		)
	case nav.EditForm:
		// A missing program leaves the fields empty; saving then just returns.
		p, _ := m.reg.Get(r.ID)
		m.form = newForm(
			field{label: "Day", value: p.Day},
			field{label: "Muscle Group", value: p.Muscle},
		)
	case nav.EditProfile:
		p := m.prof.Get()
		m.form = newForm(
			field{label: "Name", value: p.Name},
			field{label: "Age", value: p.Age},
		)
	}
}

func (m *Model) open(to nav.Route) {
	m.nav.Navigate(to)
	m.enter()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form.prev()
		return m, nil
	case "ctrl+g":
		if m.nav.Current().Name == nav.Register {
			if m.gender == models.GenderMan {
				m.gender = models.GenderWoman
			} else {
				m.gender = models.GenderMan
			}
		}
		return m, nil
	case "enter":
		if !m.form.onLast() {
			m.form.next()
			return m, nil
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	}
	return m, m.form.update(msg)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	switch r := m.nav.Current(); r.Name {
	case nav.Register:
		if strings.TrimSpace(m.form.value(regName)) == "" {
			m.status = "Name is required"
			return m, nil
		}
		_, err := m.prof.Register(models.Profile{
			Name:         m.form.value(regName),
			Age:          m.form.value(regAge),
			Gender:       m.gender,
			Weight:       m.form.value(regWeight),
			Height:       m.form.value(regHeight),
			TargetWeight: m.form.value(regTarget),
			Lifestyle:    m.form.value(regLifestyle),
			Goals:        m.form.value(regGoals),
		})
		if err != nil {
			m.fail("register", err)
			return m, nil
		}
		m.nav.Registered()

	case nav.AddProgram:
		day, muscle := m.form.value(0), m.form.value(1)
		if day == "" || muscle == "" {
			m.status = "Day and muscle are required"
			return m, nil
		}
		if _, err := m.reg.Add(day, muscle); err != nil {
			m.fail("add program", err)
			return m, nil
		}
		m.nav.Back()

	case nav.EditForm:
		_, err := m.reg.Update(r.ID, m.form.value(0), m.form.value(1))
		if err != nil && !errors.Is(err, registry.ErrNotFound) {
			m.fail("update program", err)
			return m, nil
		}
		m.nav.Back()

	case nav.EditProfile:
		if _, err := m.prof.UpdateNameAge(m.form.value(0), m.form.value(1)); err != nil {
			m.fail("update profile", err)
			return m, nil
		}
		m.nav.Back()
	}

	m.enter()
	return m, nil
}

// fail shows a rejected save on the status line and logs anything unexpected.
func (m *Model) fail(op string, err error) {
	switch {
	case errors.Is(err, registry.ErrInvalidInput):
		m.status = "Day and muscle must not be blank"
	case errors.Is(err, profile.ErrInvalidInput):
		m.status = "Name is required"
	default:
		m.log.Error("tui "+op, "error", err)
		m.status = "Something went wrong: " + err.Error()
	}
}

func (m Model) updateScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.clampCursor()
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "h":
		m.nav.GoHome()
		m.enter()
		return m, nil
	case "p":
		m.nav.GoProfile()
		m.enter()
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < m.items()-1 {
			m.cursor++
		}
		return m, nil
	}

	switch m.nav.Current().Name {
	case nav.Home:
		switch key {
		case "enter":
			t := homeTiles[m.cursor]
			if t.disabled {
				m.status = t.label + " is coming soon"
				return m, nil
			}
			m.open(nav.To(t.to))
		case "t":
			m.open(nav.To(nav.Tracker))
		case "s":
			m.open(nav.To(nav.Schedule))
		}

	case nav.Tracker:
		switch key {
		case "+", "=", "right", "l":
			m.nudge(progressStep)
		case "-", "left":
			m.nudge(-progressStep)
		}

	case nav.Schedule:
		if key == "enter" || key == "c" {
			m.open(nav.To(nav.CustomProgram))
		}

	case nav.CustomProgram:
		programs := m.reg.List()
		switch key {
		case "a":
			m.open(nav.To(nav.AddProgram))
		case "enter", "e":
			if len(programs) > 0 {
				m.open(nav.Edit(programs[m.cursor].ID))
			}
		case "d", "delete", "x":
			if len(programs) == 0 {
				return m, nil
			}
			if err := m.reg.Delete(programs[m.cursor].ID); err != nil && !errors.Is(err, registry.ErrNotFound) {
				m.fail("delete program", err)
			}
			m.clampCursor()
		}
	}
	return m, nil
}

// nudge moves the selected tracker bar by delta, staying within [0, 1].
func (m *Model) nudge(delta float64) {
	programs := m.reg.List()
	if len(programs) == 0 {
		return
	}
	p := programs[m.cursor]
	next := math.Round((p.Progress+delta)*100) / 100
	next = math.Max(0, math.Min(1, next))
	if next == p.Progress {
		return
	}
	if _, err := m.reg.SetProgress(p.ID, next); err != nil && !errors.Is(err, registry.ErrNotFound) {
		m.fail("set progress", err)
	}
}

// items is the number of selectable rows on the current screen.
func (m Model) items() int {
	switch m.nav.Current().Name {
	case nav.Home:
		return len(homeTiles)
	case nav.Tracker, nav.CustomProgram:
		return m.reg.Len()
	default:
		return 0
	}
}

func (m *Model) clampCursor() {
	if n := m.items(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
