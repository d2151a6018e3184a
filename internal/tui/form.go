package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/lifespan/internal/tui/view"
)

// form is an ordered set of text inputs with one focused field.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(labels []string, placeholders []string) *form {
	f := &form{labels: labels, inputs: make([]textinput.Model, len(labels))}
	for i := range labels {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 48
		in.Width = 24
		if i < len(placeholders) {
			in.Placeholder = placeholders[i]
		}
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) setFocus(i int) {
	n := len(f.inputs)
	i = ((i % n) + n) % n
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

func (f *form) setValue(i int, v string) {
	f.inputs[i].SetValue(v)
	f.inputs[i].CursorEnd()
}

// update feeds msg to the focused input and reports whether its value changed.
func (f *form) update(msg tea.Msg) (tea.Cmd, bool) {
	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, f.inputs[f.focus].Value() != before
}

// fields builds the view rows. errs is indexed like the inputs; nil entries show nothing.
func (f *form) fields(errs []string) []view.FieldState {
	out := make([]view.FieldState, len(f.inputs))
	for i := range f.inputs {
		out[i] = view.FieldState{
			Label:   f.labels[i],
			Input:   f.inputs[i].View(),
			Focused: i == f.focus,
		}
		if i < len(errs) {
			out[i].Err = errs[i]
		}
	}
	return out
}
