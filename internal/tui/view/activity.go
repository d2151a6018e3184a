package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/lifespan/internal/chart"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/tui/styles"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

// EntryRow is one activity in edit mode.
type EntryRow struct {
	Label    string
	State    wizard.EntryState
	Hours    float64
	Years    float64
	Selected bool
}

// Badge returns the style of an entry state.
func Badge(st *styles.Styles, state wizard.EntryState) lipgloss.Style {
	switch state {
	case wizard.Saved:
		return st.BadgeSaved
	case wizard.Editing:
		return st.BadgeEditing
	default:
		return st.BadgeUnsaved
	}
}

// RenderEntries renders the activity book. Hours are blank when unknown.
func RenderEntries(st *styles.Styles, rows []EntryRow) string {
	if len(rows) == 0 {
		return st.Muted.Render("No activities yet.")
	}

	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Label))
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		cursor := "  "
		if r.Selected {
			cursor = "› "
		}
		label := r.Label + strings.Repeat(" ", width-lipgloss.Width(r.Label))
		hours := "      "
		if r.Hours > 0 {
			hours = fmt.Sprintf("%4.1f h", r.Hours)
		}
		years := "     "
		if r.Years > 0 {
			years = fmt.Sprintf("%5s", chart.FormatYears(r.Years))
		}
		badge := Badge(st, r.State).Render(r.State.String())
		line := cursor + label + "  " + hours + "/wk  " + years + "  " + badge
		if r.Selected {
			line = st.Value.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderItems renders the server contributions of a category in summary mode.
func RenderItems(st *styles.Styles, title string, items []life.ActivityYears) string {
	var b strings.Builder
	b.WriteString(st.Label.Render(title))
	if len(items) == 0 {
		b.WriteString("\n")
		b.WriteString(st.Muted.Render("  nothing recorded"))
		return b.String()
	}
	var total float64
	for _, it := range items {
		total += it.Years
		fmt.Fprintf(&b, "\n  %s  %s", it.Label, st.Value.Render(chart.FormatYears(it.Years)))
	}
	fmt.Fprintf(&b, "\n  %s  %s", st.Muted.Render("Total"), st.Value.Render(chart.FormatYears(total)))
	return b.String()
}
