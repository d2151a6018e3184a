// Package chart lays out and renders proportional bar charts of life years.
//
// Layout is pure arithmetic: widths as percentages of the total, a label
// placement decision per segment, and the center of each segment's span for
// labels drawn outside the bar. Rendering to the terminal lives in render.go
// and never changes those numbers.
package chart

import "fmt"

// Label placement thresholds, in percent of the bar width.
const (
	LevelThreshold = 10.0 // survival/maintenance/leakage charts
	TotalThreshold = 12.0 // total overview chart
)

// Segment is one labeled value of a bar.
type Segment struct {
	Key   string
	Label string
	Value float64
}

// Kind is where a segment's label is drawn.
type Kind int

const (
	// Hidden segments have zero width and no label.
	Hidden Kind = iota
	// Inside segments carry their label on the bar.
	Inside
	// Outside segments are too narrow; their label hangs below the bar at CenterPct.
	Outside
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Inside:
		return "inside"
	case Outside:
		return "outside"
	default:
		return "hidden"
	}
}

// Placement is the computed geometry of one segment.
type Placement struct {
	Segment
	WidthPct  float64
	CenterPct float64
	Kind      Kind
}

// Text returns the display label, e.g. "Sleep: 16.7y".
func (p Placement) Text() string {
	return fmt.Sprintf("%s: %s", p.Label, FormatYears(p.Value))
}

// FormatYears formats a year count with one decimal and a "y" suffix.
func FormatYears(v float64) string {
	return fmt.Sprintf("%.1fy", v)
}

// Total sums the segment values.
func Total(segments []Segment) float64 {
	var total float64
	for _, s := range segments {
		total += s.Value
	}
	return total
}

// Layout computes widths, centers and label placement for segments in order.
// A non-positive total yields zero width for every segment.
func Layout(segments []Segment, threshold float64) []Placement {
	total := Total(segments)
	out := make([]Placement, len(segments))

	var cumulative float64
	for i, s := range segments {
		var width float64
		if total > 0 {
			width = s.Value / total * 100
		}

		p := Placement{
			Segment:   s,
			WidthPct:  width,
			CenterPct: cumulative + width/2,
		}
		switch {
		case width <= 0:
			p.Kind = Hidden
		case width >= threshold:
			p.Kind = Inside
		default:
			p.Kind = Outside
		}

		out[i] = p
		cumulative += width
	}
	return out
}

// OutsideLabels returns only the placements whose label hangs below the bar.
func OutsideLabels(placements []Placement) []Placement {
	var out []Placement
	for _, p := range placements {
		if p.Kind == Outside {
			out = append(out, p)
		}
	}
	return out
}
