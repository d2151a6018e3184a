package chart

import (
	"math"
	"testing"

	"github.com/Iron-Ham/lifespan/internal/life"
)

const tolerance = 1e-9

func sumWidths(placements []Placement) float64 {
	var sum float64
	for _, p := range placements {
		sum += p.WidthPct
	}
	return sum
}

func TestLayout_WidthsSumTo100(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"single", []float64{3}},
		{"even", []float64{1, 1, 1, 1}},
		{"skewed", []float64{16.7, 11.9, 1.5, 4.2, 15.8}},
		{"with zeros", []float64{0, 5, 0, 0.001, 42}},
		{"thirds", []float64{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := make([]Segment, len(tt.values))
			for i, v := range tt.values {
				segments[i] = Segment{Key: "k", Label: "L", Value: v}
			}
			got := sumWidths(Layout(segments, LevelThreshold))
			if math.Abs(got-100) > tolerance {
				t.Errorf("sum of widths = %v, want 100", got)
			}
		})
	}
}

func TestLayout_ZeroTotal(t *testing.T) {
	segments := []Segment{{Label: "a"}, {Label: "b"}, {Label: "c"}}

	for _, p := range Layout(segments, LevelThreshold) {
		if p.WidthPct != 0 {
			t.Errorf("%s: WidthPct = %v, want 0", p.Label, p.WidthPct)
		}
		if p.Kind != Hidden {
			t.Errorf("%s: Kind = %v, want hidden", p.Label, p.Kind)
		}
		if math.IsNaN(p.CenterPct) {
			t.Errorf("%s: CenterPct is NaN", p.Label)
		}
	}

	if got := Layout(nil, LevelThreshold); len(got) != 0 {
		t.Errorf("Layout(nil) returned %d placements", len(got))
	}
}

func TestLayout_Placement(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		threshold float64
		want      []Kind
	}{
		{
			name:      "exactly at threshold is inside",
			values:    []float64{10, 90},
			threshold: 10,
			want:      []Kind{Inside, Inside},
		},
		{
			name:      "just below threshold is outside",
			values:    []float64{9.99, 90.01},
			threshold: 10,
			want:      []Kind{Outside, Inside},
		},
		{
			name:      "zero is hidden",
			values:    []float64{0, 50, 50},
			threshold: 10,
			want:      []Kind{Hidden, Inside, Inside},
		},
		{
			name:      "total threshold is stricter",
			values:    []float64{11, 89},
			threshold: TotalThreshold,
			want:      []Kind{Outside, Inside},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := make([]Segment, len(tt.values))
			for i, v := range tt.values {
				segments[i] = Segment{Value: v}
			}
			got := Layout(segments, tt.threshold)
			for i, p := range got {
				if p.Kind != tt.want[i] {
					t.Errorf("segment %d (width %.2f): Kind = %v, want %v", i, p.WidthPct, p.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestLayout_CenterPct(t *testing.T) {
	segments := []Segment{
		{Label: "a", Value: 50},
		{Label: "b", Value: 5},
		{Label: "c", Value: 0},
		{Label: "d", Value: 45},
	}

	placements := Layout(segments, LevelThreshold)

	var cumulative float64
	for _, p := range placements {
		want := cumulative + p.WidthPct/2
		if math.Abs(p.CenterPct-want) > tolerance {
			t.Errorf("%s: CenterPct = %v, want %v", p.Label, p.CenterPct, want)
		}
		cumulative += p.WidthPct
	}

	if got := placements[1].CenterPct; math.Abs(got-52.5) > tolerance {
		t.Errorf("b CenterPct = %v, want 52.5", got)
	}
}

func TestFormatYears(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0.0y"},
		{16.6666, "16.7y"},
		{1.25, "1.2y"},
		{50, "50.0y"},
	}

	for _, tt := range tests {
		if got := FormatYears(tt.value); got != tt.want {
			t.Errorf("FormatYears(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestPlacement_Text(t *testing.T) {
	p := Placement{Segment: Segment{Label: "Sleep", Value: 16.666}}
	if got := p.Text(); got != "Sleep: 16.7y" {
		t.Errorf("Text() = %q, want %q", got, "Sleep: 16.7y")
	}
}

func TestLevelSegments_InjectsBeforeFree(t *testing.T) {
	r := life.SurvivalResult{SleepYears: 16, WorkYears: 12, CommuteYears: 0, RoutineYears: 4, FreeYears: 18}
	extras := []Segment{
		{Key: KeyMaintenance, Label: "Exercising", Value: 1.5},
		{Key: KeyMaintenance, Label: "Reading", Value: 0.8},
	}

	segments := LevelSegments(r, extras, "Free")

	wantLabels := []string{"Sleep", "Work", "Commute", "Routine", "Exercising", "Reading", "Free"}
	if len(segments) != len(wantLabels) {
		t.Fatalf("got %d segments, want %d", len(segments), len(wantLabels))
	}
	for i, want := range wantLabels {
		if segments[i].Label != want {
			t.Errorf("segments[%d].Label = %q, want %q", i, segments[i].Label, want)
		}
	}
	// Zero-value commute is retained for per-level charts.
	if segments[2].Value != 0 {
		t.Errorf("commute value = %v, want 0", segments[2].Value)
	}
}

func TestTotalSegments_DropsZero(t *testing.T) {
	segments := TotalSegments(34, 0, 2, 14)

	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}
	for _, s := range segments {
		if s.Key == KeyMaintenance {
			t.Error("zero maintenance segment should be dropped")
		}
	}
	if segments[2].Label != "Remaining Free" {
		t.Errorf("last label = %q, want %q", segments[2].Label, "Remaining Free")
	}
}

func TestItemSegments(t *testing.T) {
	items := []life.ActivityYears{{Label: "Social media", Years: 2.1}}
	got := ItemSegments(KeyLeakage, items)
	if len(got) != 1 || got[0].Key != KeyLeakage || got[0].Value != 2.1 {
		t.Errorf("ItemSegments() = %+v", got)
	}
}

func TestOutsideLabels(t *testing.T) {
	placements := Layout([]Segment{
		{Label: "Sleep", Value: 90},
		{Label: "Commute", Value: 5},
		{Label: "Nothing", Value: 0},
		{Label: "Routine", Value: 5},
	}, LevelThreshold)

	got := OutsideLabels(placements)
	if len(got) != 2 || got[0].Label != "Commute" || got[1].Label != "Routine" {
		t.Errorf("OutsideLabels() = %+v, want Commute and Routine", got)
	}
}
