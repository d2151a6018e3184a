package chart

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Palette maps segment keys to bar colors.
type Palette map[string]lipgloss.Color

// DefaultPalette mirrors the colors of the web charts.
func DefaultPalette() Palette {
	return Palette{
		KeySleep:       lipgloss.Color("#71717A"),
		KeyWork:        lipgloss.Color("#3F3F46"),
		KeyCommute:     lipgloss.Color("#B45309"),
		KeyRoutine:     lipgloss.Color("#6D28D9"),
		KeyMaintenance: lipgloss.Color("#3B82F6"),
		KeyLeakage:     lipgloss.Color("#DC2626"),
		KeySurvival:    lipgloss.Color("#6366F1"),
		KeyFree:        lipgloss.Color("#10B981"),
	}
}

func (p Palette) color(key string) lipgloss.Color {
	if c, ok := p[key]; ok {
		return c
	}
	return lipgloss.Color("#9CA3AF")
}

// Columns distributes width terminal cells across placements using the
// largest-remainder method. Every visible segment gets at least one cell when
// width allows, and the result always sums to width (or 0 when nothing is visible).
func Columns(placements []Placement, width int) []int {
	cols := make([]int, len(placements))
	if width <= 0 {
		return cols
	}

	type rem struct {
		idx  int
		frac float64
	}
	var rems []rem
	used := 0
	visible := 0
	for i, p := range placements {
		if p.Kind == Hidden {
			continue
		}
		visible++
		exact := p.WidthPct / 100 * float64(width)
		cols[i] = int(math.Floor(exact))
		used += cols[i]
		rems = append(rems, rem{idx: i, frac: exact - float64(cols[i])})
	}
	if visible == 0 {
		return cols
	}

	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; used < width; i = (i + 1) % len(rems) {
		cols[rems[i].idx]++
		used++
	}

	// Steal a cell from the widest segment for each visible segment that rounded to zero.
	for i, p := range placements {
		if p.Kind == Hidden || cols[i] > 0 {
			continue
		}
		widest := 0
		for j := range cols {
			if cols[j] > cols[widest] {
				widest = j
			}
		}
		if cols[widest] > 1 {
			cols[widest]--
			cols[i]++
		}
	}
	return cols
}

// Render draws the bar, the outside-label markers and a legend of the outside
// labels. The result is one to three lines depending on the placements.
func Render(placements []Placement, width int, palette Palette) string {
	if width < 10 {
		width = 10
	}
	if palette == nil {
		palette = DefaultPalette()
	}

	cols := Columns(placements, width)

	var bar strings.Builder
	drawn := 0
	for i, p := range placements {
		if cols[i] == 0 {
			continue
		}
		cell := strings.Repeat(" ", cols[i])
		if p.Kind == Inside {
			cell = fitLabel(p.Text(), cols[i])
		}
		bar.WriteString(lipgloss.NewStyle().
			Background(palette.color(p.Key)).
			Foreground(lipgloss.Color("#F9FAFB")).
			Render(cell))
		drawn += cols[i]
	}
	if drawn == 0 {
		bar.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Render(strings.Repeat("░", width)))
	}

	outside := OutsideLabels(placements)
	if len(outside) == 0 {
		return bar.String()
	}

	markers := make([]rune, width)
	for i := range markers {
		markers[i] = ' '
	}
	markerColors := make(map[int]lipgloss.Color, len(outside))
	for i, col := range markerColumns(outside, width) {
		if col < 0 {
			continue
		}
		markers[col] = '•'
		markerColors[col] = palette.color(outside[i].Key)
	}

	var markerLine strings.Builder
	for i, r := range markers {
		if r == ' ' {
			markerLine.WriteRune(r)
			continue
		}
		markerLine.WriteString(lipgloss.NewStyle().Foreground(markerColors[i]).Render(string(r)))
	}

	legend := make([]string, 0, len(outside))
	for _, p := range outside {
		legend = append(legend, lipgloss.NewStyle().Foreground(palette.color(p.Key)).Render("• ")+p.Text())
	}

	return bar.String() + "\n" + markerLine.String() + "\n" + strings.Join(legend, "  ")
}

// markerColumn maps a center percentage to a cell index within [0, width).
func markerColumn(centerPct float64, width int) int {
	col := int(math.Round(centerPct / 100 * float64(width)))
	return min(max(col, 0), width-1)
}

// markerColumns assigns each outside label a distinct marker cell, starting
// at its center and moving right, then left, past taken cells. A marker with
// no free cell gets -1 and is shown only in the legend.
func markerColumns(outside []Placement, width int) []int {
	cols := make([]int, len(outside))
	taken := make([]bool, width)
	for i, p := range outside {
		cols[i] = -1
		if width <= 0 {
			continue
		}
		start := markerColumn(p.CenterPct, width)
		for col := start; col < width; col++ {
			if !taken[col] {
				cols[i] = col
				break
			}
		}
		if cols[i] < 0 {
			for col := start - 1; col >= 0; col-- {
				if !taken[col] {
					cols[i] = col
					break
				}
			}
		}
		if cols[i] >= 0 {
			taken[cols[i]] = true
		}
	}
	return cols
}

// fitLabel centers label within cols cells, truncating when it does not fit.
func fitLabel(label string, cols int) string {
	w := ansi.StringWidth(label)
	if w > cols {
		return ansi.Truncate(label, cols, "…")
	}
	left := (cols - w) / 2
	return strings.Repeat(" ", left) + label + strings.Repeat(" ", cols-w-left)
}
