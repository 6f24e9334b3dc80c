// Package nav is the screen navigation state machine: a current route on top
// of a back stack, with push, pop and pop-up-to.
package nav

import (
	"fmt"
	"strconv"
	"strings"
)

// Name identifies a screen.
type Name string

const (
	Register      Name = "register"
	Home          Name = "home"
	Tracker       Name = "tracker"
	Schedule      Name = "schedule"
	CustomProgram Name = "custom_program"
	AddProgram    Name = "add_program"
	EditForm      Name = "edit_form"
	EditProfile   Name = "edit_profile"
)

var known = map[Name]bool{
	Register: true, Home: true, Tracker: true, Schedule: true,
	CustomProgram: true, AddProgram: true, EditForm: true, EditProfile: true,
}

// Route is a destination. ID is only meaningful for EditForm.
type Route struct {
	Name Name
	ID   int
}

// To returns a route without arguments.
func To(name Name) Route { return Route{Name: name} }

// Edit returns the edit form route for a program.
func Edit(id int) Route { return Route{Name: EditForm, ID: id} }

// String renders the route path, e.g. "edit_form/7".
func (r Route) String() string {
	if r.Name == EditForm {
		return fmt.Sprintf("%s/%d", r.Name, r.ID)
	}
	return string(r.Name)
}

// ParseRoute parses a route path produced by Route.String.
func ParseRoute(s string) (Route, error) {
	name, arg, hasArg := strings.Cut(s, "/")
	n := Name(name)
	if !known[n] {
		return Route{}, fmt.Errorf("unknown route %q", s)
	}
	if n != EditForm {
		if hasArg {
			return Route{}, fmt.Errorf("route %q takes no argument", name)
		}
		return To(n), nil
	}
	if !hasArg {
		return Route{}, fmt.Errorf("route %q requires an id", name)
	}
	id, err := strconv.Atoi(arg)
	if err != nil {
		return Route{}, fmt.Errorf("route %q: invalid id: %w", s, err)
	}
	return Edit(id), nil
}

// Option adjusts a navigation.
type Option func(*navOpts)

type navOpts struct {
	popUpTo   Name
	inclusive bool
	pop       bool
}

// PopUpTo pops the stack down to the most recent entry named name before
// pushing; inclusive also pops that entry.
func PopUpTo(name Name, inclusive bool) Option {
	return func(o *navOpts) {
		o.popUpTo = name
		o.inclusive = inclusive
		o.pop = true
	}
}

// Navigator is not safe for concurrent use; it belongs to one UI event loop.
type Navigator struct {
	stack []Route
}

// New starts navigation at start.
func New(start Route) *Navigator {
	return &Navigator{stack: []Route{start}}
}

// Current returns the route on top of the stack.
func (n *Navigator) Current() Route {
	return n.stack[len(n.stack)-1]
}

// Depth returns the number of entries on the stack.
func (n *Navigator) Depth() int {
	return len(n.stack)
}

// Stack returns a copy of the stack, bottom first.
func (n *Navigator) Stack() []Route {
	out := make([]Route, len(n.stack))
	copy(out, n.stack)
	return out
}

// Navigate pushes to. With PopUpTo the stack is first cut back; when the
// named route is not on the stack nothing is popped.
func (n *Navigator) Navigate(to Route, opts ...Option) {
	var o navOpts
	for _, opt := range opts {
		opt(&o)
	}
	if o.pop {
		for i := len(n.stack) - 1; i >= 0; i-- {
			if n.stack[i].Name != o.popUpTo {
				continue
			}
			if o.inclusive {
				n.stack = n.stack[:i]
			} else {
				n.stack = n.stack[:i+1]
			}
			break
		}
	}
	n.stack = append(n.stack, to)
}

// Back pops the current route. It reports false, leaving the stack alone,
// when the current route is the root.
func (n *Navigator) Back() bool {
	if len(n.stack) <= 1 {
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return true
}

// Flow helpers shared by every front end.

// Registered moves from registration to home, dropping registration from history.
func (n *Navigator) Registered() {
	n.Navigate(To(Home), PopUpTo(Register, true))
}

// GoHome is the bottom bar's home button.
func (n *Navigator) GoHome() {
	n.Navigate(To(Home), PopUpTo(Home, true))
}

// GoProfile is the bottom bar's profile button.
func (n *Navigator) GoProfile() {
	n.Navigate(To(EditProfile))
}
