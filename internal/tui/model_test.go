package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/claude/gymmate/internal/models"
	"github.com/claude/gymmate/internal/nav"
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
)

func newTestModel(t *testing.T, registered bool) (Model, *registry.Registry, *profile.Store) {
	t.Helper()
	reg := registry.NewSeeded()
	prof := profile.New()
	if registered {
		if _, err := prof.Register(models.Profile{Name: "Alex", Age: "29", Gender: models.GenderMan, Weight: "80"}); err != nil {
			t.Fatal(err)
		}
	}
	m := New(reg, prof, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.now = func() time.Time { return time.Date(2026, 10, 12, 7, 0, 0, 0, time.UTC) } // Monday
	return m, reg, prof
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func keys(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyClear = tea.KeyMsg{Type: tea.KeyCtrlU}
)

// TestStartRoute verifies registration is skipped once a profile exists.
func TestStartRoute(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	if got := m.Route(); got != nav.To(nav.Register) {
		t.Errorf("unregistered start = %v, want register", got)
	}
	m, _, _ = newTestModel(t, true)
	if got := m.Route(); got != nav.To(nav.Home) {
		t.Errorf("registered start = %v, want home", got)
	}
}

// TestRegisterFlow verifies CREATE stores the profile and replaces
// registration with home.
func TestRegisterFlow(t *testing.T) {
	m, _, prof := newTestModel(t, false)

	m = send(t, m, keySave)
	if m.Route().Name != nav.Register || m.status != "Name is required" {
		t.Fatalf("blank name: route %v status %q, want to stay with an error", m.Route(), m.status)
	}

	m = send(t, m, keys("Dana")...)
	m = send(t, m, keyTab)
	m = send(t, m, keys("30")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlG}, keySave)

	if m.Route() != nav.To(nav.Home) {
		t.Fatalf("route = %v, want home", m.Route())
	}
	if m.nav.Depth() != 1 {
		t.Errorf("depth = %d, want 1 (register popped)", m.nav.Depth())
	}
	p := prof.Get()
	if p.Name != "Dana" || p.Age != "30" || p.Gender != models.GenderWoman || !p.Registered {
		t.Errorf("profile = %+v, want registered Dana/30/Woman", p)
	}
	if v := m.View(); !strings.Contains(v, "Welcome Dana") {
		t.Errorf("home view missing welcome line:\n%s", v)
	}
}

// TestHomeShowsToday verifies the today card follows the clock.
func TestHomeShowsToday(t *testing.T) {
	m, _, _ := newTestModel(t, true)
	v := m.View()
	for _, want := range []string{"Today: Chest Day", "Quick Schedule", "Monday: Chest", "Saturday: Rest"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}

// TestHomeDisabledTile verifies placeholder tiles do not navigate.
func TestHomeDisabledTile(t *testing.T) {
	m, _, _ := newTestModel(t, true)
	m = send(t, m, keyDown, keyDown, keyDown, keyEnter)
	if m.Route() != nav.To(nav.Home) {
		t.Errorf("route = %v, want home", m.Route())
	}
	if m.status != "Tutorial is coming soon" {
		t.Errorf("status = %q, want coming soon", m.status)
	}
}

// TestAddProgramFlow walks home, schedule, custom program and the add form.
func TestAddProgramFlow(t *testing.T) {
	m, reg, _ := newTestModel(t, true)

	m = send(t, m, keys("s")...)
	m = send(t, m, keys("c")...)
	m = send(t, m, keys("a")...)
	if m.Route() != nav.To(nav.AddProgram) {
		t.Fatalf("route = %v, want add_program", m.Route())
	}

	m = send(t, m, keys("Sunday")...)
	m = send(t, m, keyEnter)
	if reg.Len() != 6 {
		t.Fatal("enter on the first field saved the form")
	}
	m = send(t, m, keys("Arms")...)
	m = send(t, m, keyEnter)

	if m.Route() != nav.To(nav.CustomProgram) {
		t.Fatalf("route = %v, want custom_program", m.Route())
	}
	got, err := reg.Get(7)
	if err != nil {
		t.Fatalf("Get(7): %v", err)
	}
	if got.Day != "Sunday" || got.Muscle != "Arms" {
		t.Errorf("program = %+v, want Sunday/Arms", got)
	}
	if v := m.View(); !strings.Contains(v, "Sunday - Arms") {
		t.Errorf("custom view missing new program:\n%s", v)
	}
}

// TestAddProgramRequiresBoth verifies an incomplete add keeps the form open.
func TestAddProgramRequiresBoth(t *testing.T) {
	m, reg, _ := newTestModel(t, true)
	m.nav.Navigate(nav.To(nav.AddProgram))
	m.enter()

	m = send(t, m, keys("Sunday")...)
	m = send(t, m, keySave)
	if m.Route() != nav.To(nav.AddProgram) {
		t.Errorf("route = %v, want add_program", m.Route())
	}
	if reg.Len() != 6 {
		t.Errorf("Len = %d, want 6", reg.Len())
	}
}

// TestEditProgramFlow verifies the edit form is prefilled and rejects blanks.
func TestEditProgramFlow(t *testing.T) {
	m, reg, _ := newTestModel(t, true)
	m.nav.Navigate(nav.To(nav.CustomProgram))
	m.enter()

	m = send(t, m, keyDown, keys("e")[0])
	if m.Route() != nav.Edit(2) {
		t.Fatalf("route = %v, want edit_form/2", m.Route())
	}
	if m.form.value(0) != "Tuesday" || m.form.value(1) != "Back" {
		t.Fatalf("form = %q/%q, want Tuesday/Back", m.form.value(0), m.form.value(1))
	}

	m = send(t, m, keyClear, keySave)
	if m.Route() != nav.Edit(2) {
		t.Fatalf("blank save left the form: route = %v", m.Route())
	}
	if !strings.Contains(m.status, "blank") {
		t.Errorf("status = %q, want a blank field error", m.status)
	}

	m = send(t, m, keys("Tue")...)
	m = send(t, m, keySave)
	if m.Route() != nav.To(nav.CustomProgram) {
		t.Fatalf("route = %v, want custom_program", m.Route())
	}
	want := models.Program{ID: 2, Day: "Tue", Muscle: "Back", Progress: 0.65}
	if got, _ := reg.Get(2); got != want {
		t.Errorf("program = %+v, want %+v", got, want)
	}
}

// TestEditMissingProgram verifies saving a vanished program just goes back.
func TestEditMissingProgram(t *testing.T) {
	m, reg, _ := newTestModel(t, true)
	m.nav.Navigate(nav.To(nav.CustomProgram))
	m.nav.Navigate(nav.Edit(99))
	m.enter()

	m = send(t, m, keys("Sunday")...)
	m = send(t, m, keyTab)
	m = send(t, m, keys("Arms")...)
	m = send(t, m, keySave)

	if m.Route() != nav.To(nav.CustomProgram) {
		t.Errorf("route = %v, want custom_program", m.Route())
	}
	if m.status != "" {
		t.Errorf("status = %q, want empty", m.status)
	}
	if reg.Len() != 6 {
		t.Errorf("Len = %d, want 6", reg.Len())
	}
}

// TestDeleteProgram verifies delete removes the selected row and keeps the
// cursor in range.
func TestDeleteProgram(t *testing.T) {
	m, reg, _ := newTestModel(t, true)
	m.nav.Navigate(nav.To(nav.CustomProgram))
	m.enter()

	for range 5 {
		m = send(t, m, keyDown)
	}
	m = send(t, m, keys("d")...)
	if reg.Len() != 5 {
		t.Fatalf("Len = %d, want 5", reg.Len())
	}
	if _, err := reg.Get(6); err == nil {
		t.Error("program 6 still present")
	}
	if m.cursor != 4 {
		t.Errorf("cursor = %d, want 4", m.cursor)
	}
}

// TestProgramsChangedClampsCursor verifies outside deletions keep the cursor valid.
func TestProgramsChangedClampsCursor(t *testing.T) {
	m, reg, _ := newTestModel(t, true)
	m.nav.Navigate(nav.To(nav.Tracker))
	m.enter()
	m.cursor = 5

	if err := reg.Delete(6); err != nil {
		t.Fatal(err)
	}
	m = send(t, m, ProgramsChangedMsg{})
	if m.cursor != 4 {
		t.Errorf("cursor = %d, want 4", m.cursor)
	}
}

// TestTrackerNudge verifies +/- move progress in steps and stop at the bounds.
func TestTrackerNudge(t *testing.T) {
	m, reg, _ := newTestModel(t, true)
	m = send(t, m, keys("t")...)
	if m.Route() != nav.To(nav.Tracker) {
		t.Fatalf("route = %v, want tracker", m.Route())
	}

	m = send(t, m, keys("+")...)
	if got, _ := reg.Get(1); got.Progress != 0.85 {
		t.Errorf("progress = %v, want 0.85", got.Progress)
	}

	for range 5 {
		m = send(t, m, keyDown)
	}
	m = send(t, m, keys("-")...)
	if got, _ := reg.Get(6); got.Progress != 0 {
		t.Errorf("progress = %v, want 0", got.Progress)
	}
	if m.status != "" {
		t.Errorf("status = %q, want empty", m.status)
	}

	v := m.View()
	if !strings.Contains(v, "Monday - Chest") || !strings.Contains(v, "85%") {
		t.Errorf("tracker view missing updated row:\n%s", v)
	}
}

// TestEditProfileFlow verifies only name and age change and the form pops back.
func TestEditProfileFlow(t *testing.T) {
	m, _, prof := newTestModel(t, true)

	m = send(t, m, keys("p")...)
	if m.Route() != nav.To(nav.EditProfile) {
		t.Fatalf("route = %v, want edit_profile", m.Route())
	}
	if v := m.View(); !strings.Contains(v, "Weight (Read Only)") {
		t.Errorf("edit profile view missing read-only fields:\n%s", v)
	}

	m = send(t, m, keyClear)
	m = send(t, m, keys("Max")...)
	m = send(t, m, keySave)

	if m.Route() != nav.To(nav.Home) {
		t.Fatalf("route = %v, want home", m.Route())
	}
	p := prof.Get()
	if p.Name != "Max" || p.Age != "29" || p.Weight != "80" {
		t.Errorf("profile = %+v, want Max with age and weight kept", p)
	}
}

// TestBackAtRoot verifies esc does nothing on the root screen.
func TestBackAtRoot(t *testing.T) {
	m, _, _ := newTestModel(t, true)
	m = send(t, m, keyEsc)
	if m.Route() != nav.To(nav.Home) || m.nav.Depth() != 1 {
		t.Errorf("route = %v depth = %d, want home at depth 1", m.Route(), m.nav.Depth())
	}

	m = send(t, m, keys("t")...)
	m = send(t, m, keyEsc)
	if m.Route() != nav.To(nav.Home) {
		t.Errorf("route = %v, want home", m.Route())
	}
}

// TestQuit verifies q quits outside forms and is typed inside them.
func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t, true)
	if _, cmd := m.Update(keys("q")[0]); cmd == nil {
		t.Error("q on home returned no command, want tea.Quit")
	}

	m.nav.Navigate(nav.To(nav.AddProgram))
	m.enter()
	m = send(t, m, keys("q")...)
	if m.form.value(0) != "q" {
		t.Errorf("day = %q, want q", m.form.value(0))
	}
}
