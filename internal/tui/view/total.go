package view

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/lifespan/internal/chart"
	"github.com/Iron-Ham/lifespan/internal/tui/styles"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

// RenderSection renders one breakdown section: its items and the total line.
func RenderSection(st *styles.Styles, s wizard.Section) string {
	var b strings.Builder
	b.WriteString(st.Label.Bold(true).Render(s.Title))
	for _, it := range s.Items {
		fmt.Fprintf(&b, "\n  %-24s %8s  %s", it.Label, chart.FormatYears(it.Years), st.Muted.Render(wizard.FormatPercent(it.Percent)))
	}
	fmt.Fprintf(&b, "\n  %s %8s  %s",
		st.Value.Render(fmt.Sprintf("%-24s", s.Total.Label)),
		chart.FormatYears(s.Total.Years),
		st.Value.Render(wizard.FormatPercent(s.Total.Percent)))
	return b.String()
}

// RenderTotals renders every section, separated by blank lines.
func RenderTotals(st *styles.Styles, t wizard.Totals) string {
	parts := make([]string, 0, len(t.Sections))
	for _, s := range t.Sections {
		parts = append(parts, RenderSection(st, s))
	}
	return strings.Join(parts, "\n\n")
}
