package view

import (
	"github.com/Iron-Ham/lifespan/internal/chart"
	"github.com/Iron-Ham/lifespan/internal/tui/styles"
)

// ChartState is a bar chart ready to lay out.
type ChartState struct {
	Segments  []chart.Segment
	Threshold float64
	Width     int
}

// RenderChart lays out and draws a chart in the theme's chart colors.
func RenderChart(st *styles.Styles, c ChartState) string {
	if len(c.Segments) == 0 {
		return ""
	}
	return chart.Render(chart.Layout(c.Segments, c.Threshold), c.Width, st.Chart())
}

// StatusState is the bottom message line. Err wins over Info.
type StatusState struct {
	Info    string
	Err     string
	Loading string // spinner frame while a request is in flight
}

// RenderStatus renders the message line, or "" when there is nothing to say.
func RenderStatus(st *styles.Styles, s StatusState) string {
	switch {
	case s.Err != "":
		return st.Error.Render("✗ " + s.Err)
	case s.Loading != "":
		return s.Loading + " " + st.Muted.Render("Loading…")
	case s.Info != "":
		return st.Success.Render(s.Info)
	default:
		return ""
	}
}
