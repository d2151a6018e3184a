package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/lifespan/internal/tui/styles"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

// HeaderState holds what the tab row needs.
type HeaderState struct {
	Current wizard.Step
	// Open reports whether a step may be entered right now.
	Open func(wizard.Step) bool
}

// RenderTabs renders one tab per step. Steps before the current one are done,
// steps that cannot be entered yet are locked.
func RenderTabs(st *styles.Styles, state HeaderState) string {
	tabs := make([]string, 0, len(wizard.Steps))
	for i, step := range wizard.Steps {
		label := fmt.Sprintf("%d %s", i+1, step)
		switch {
		case step == state.Current:
			tabs = append(tabs, st.TabActive.Render(label))
		case step < state.Current:
			tabs = append(tabs, st.TabDone.Render("✓ "+label))
		case state.Open != nil && state.Open(step):
			tabs = append(tabs, st.TabDone.Render(label))
		default:
			tabs = append(tabs, st.TabLocked.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// RenderTitle renders the page heading with an optional subtitle.
func RenderTitle(st *styles.Styles, step wizard.Step, subtitle string) string {
	var b strings.Builder
	b.WriteString(st.Title.Render(step.Title()))
	if subtitle != "" {
		b.WriteString("\n")
		b.WriteString(st.Subtitle.Render(subtitle))
	}
	return b.String()
}
