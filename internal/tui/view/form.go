package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/lifespan/internal/tui/styles"
)

// FieldState is one rendered form row.
type FieldState struct {
	Label   string
	Input   string // the textinput view
	Focused bool
	Err     string
}

// RenderFields lays out labels in a column aligned to the widest one, with
// field errors under their input.
func RenderFields(st *styles.Styles, fields []FieldState) string {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Label))
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		label := f.Label + strings.Repeat(" ", width-lipgloss.Width(f.Label))
		marker := "  "
		if f.Focused {
			marker = "› "
			label = st.FocusedLabel.Render(label)
		} else {
			label = st.Label.Render(label)
		}
		lines = append(lines, marker+label+"  "+f.Input)
		if f.Err != "" {
			lines = append(lines, strings.Repeat(" ", width+4)+st.Error.Render(f.Err))
		}
	}
	return strings.Join(lines, "\n")
}
