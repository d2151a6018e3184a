package chart

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestColumns_SumToWidth(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
	}{
		{"even", []float64{1, 1, 1}, 40},
		{"tiny segment", []float64{0.1, 99.9}, 20},
		{"with hidden", []float64{0, 3, 0, 7}, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := make([]Segment, len(tt.values))
			for i, v := range tt.values {
				segments[i] = Segment{Value: v}
			}
			placements := Layout(segments, LevelThreshold)
			cols := Columns(placements, tt.width)

			sum := 0
			for i, c := range cols {
				sum += c
				if placements[i].Kind == Hidden && c != 0 {
					t.Errorf("hidden segment %d got %d columns", i, c)
				}
				if placements[i].Kind != Hidden && c == 0 {
					t.Errorf("visible segment %d got 0 columns", i)
				}
			}
			if sum != tt.width {
				t.Errorf("columns sum = %d, want %d", sum, tt.width)
			}
		})
	}
}

func TestColumns_AllHidden(t *testing.T) {
	cols := Columns(Layout([]Segment{{}, {}}, LevelThreshold), 30)
	for i, c := range cols {
		if c != 0 {
			t.Errorf("cols[%d] = %d, want 0", i, c)
		}
	}
}

func TestRender_InsideAndOutside(t *testing.T) {
	segments := []Segment{
		{Key: KeySleep, Label: "Sleep", Value: 60},
		{Key: KeyCommute, Label: "Commute", Value: 2},
		{Key: KeyFree, Label: "Free", Value: 38},
	}

	out := ansi.Strip(Render(Layout(segments, LevelThreshold), 60, nil))
	lines := strings.Split(out, "\n")

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Sleep: 60.0y") {
		t.Errorf("bar line missing inside label: %q", lines[0])
	}
	if strings.Contains(lines[0], "Commute") {
		t.Errorf("narrow segment label drawn inside: %q", lines[0])
	}
	if ansi.StringWidth(lines[0]) != 60 {
		t.Errorf("bar width = %d, want 60", ansi.StringWidth(lines[0]))
	}
	if !strings.Contains(lines[1], "•") {
		t.Errorf("marker line missing marker: %q", lines[1])
	}
	if !strings.Contains(lines[2], "Commute: 2.0y") {
		t.Errorf("legend missing outside label: %q", lines[2])
	}
}

func TestRender_Empty(t *testing.T) {
	out := ansi.Strip(Render(Layout([]Segment{{Label: "a"}}, LevelThreshold), 20, nil))
	if strings.Contains(out, "\n") {
		t.Errorf("empty chart should be a single line, got %q", out)
	}
	if ansi.StringWidth(out) != 20 {
		t.Errorf("empty bar width = %d, want 20", ansi.StringWidth(out))
	}
}

func TestMarkerColumn(t *testing.T) {
	tests := []struct {
		center float64
		width  int
		want   int
	}{
		{0, 50, 0},
		{50, 50, 25},
		{100, 50, 49},
		{-5, 50, 0},
	}
	for _, tt := range tests {
		if got := markerColumn(tt.center, tt.width); got != tt.want {
			t.Errorf("markerColumn(%v, %d) = %d, want %d", tt.center, tt.width, got, tt.want)
		}
	}
}

func TestFitLabel(t *testing.T) {
	if got := fitLabel("abc", 7); got != "  abc  " {
		t.Errorf("fitLabel centered = %q", got)
	}
	if got := fitLabel("Maintenance: 3.0y", 6); ansi.StringWidth(got) > 6 {
		t.Errorf("fitLabel truncated width = %d, want <= 6", ansi.StringWidth(got))
	}
}

func TestMarkerColumns_RightEdge(t *testing.T) {
	outside := []Placement{
		{CenterPct: 99, Kind: Outside},
		{CenterPct: 99.5, Kind: Outside},
		{CenterPct: 100, Kind: Outside},
	}

	got := markerColumns(outside, 10)
	want := []int{9, 8, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("markerColumns()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMarkerColumns_NoFreeCell(t *testing.T) {
	outside := []Placement{
		{CenterPct: 10, Kind: Outside},
		{CenterPct: 90, Kind: Outside},
		{CenterPct: 50, Kind: Outside},
	}

	got := markerColumns(outside, 2)
	want := []int{0, 1, -1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("markerColumns()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
