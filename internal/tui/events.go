package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
)

// ProgramsChangedMsg reports a registry mutation to the event loop.
type ProgramsChangedMsg struct {
	Event registry.Event
}

// ProfileChangedMsg reports a profile mutation to the event loop.
type ProfileChangedMsg struct {
	Event profile.Event
}

// Forward delivers store events to p until stop is called. Subscribers run on
// the mutating goroutine, which is usually p's own Update, so each Send gets
// its own goroutine.
func Forward(p *tea.Program, reg *registry.Registry, prof *profile.Store) (stop func()) {
	stopPrograms := reg.Subscribe(func(e registry.Event) {
		go p.Send(ProgramsChangedMsg{Event: e})
	})
	stopProfile := prof.Subscribe(func(e profile.Event) {
		go p.Send(ProfileChangedMsg{Event: e})
	})
	return func() {
		stopPrograms()
		stopProfile()
	}
}
