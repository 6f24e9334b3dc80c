package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type field struct {
	label       string
	placeholder string
	value       string
}

// form is a vertical stack of text inputs with one focused at a time.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...field) form {
	f := form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}
	for i, fl := range fields {
		in := textinput.New()
		in.Placeholder = fl.placeholder
		in.SetValue(fl.value)
		f.labels[i] = fl.label
		f.inputs[i] = in
	}
	if len(fields) > 0 {
		f.setFocus(0)
	}
	return f
}

func (f *form) active() bool {
	return len(f.inputs) > 0
}

func (f *form) setFocus(i int) {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	f.inputs[i].Focus()
}

func (f *form) next() {
	f.setFocus((f.focus + 1) % len(f.inputs))
}

func (f *form) prev() {
	f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

func (f *form) onLast() bool {
	return f.focus == len(f.inputs)-1
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view(st styles) string {
	var b strings.Builder
	for i, in := range f.inputs {
		b.WriteString(st.label.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}
	return b.String()
}
