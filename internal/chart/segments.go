package chart

import "github.com/Iron-Ham/lifespan/internal/life"

// Segment keys used by the palette.
const (
	KeySleep       = "sleep"
	KeyWork        = "work"
	KeyCommute     = "commute"
	KeyRoutine     = "routine"
	KeyFree        = "free"
	KeyMaintenance = "maintenance"
	KeyLeakage     = "leakage"
	KeySurvival    = "survival"
)

// LevelSegments builds the per-level chart: the four survival categories, then
// extras (maintenance or leakage items), then the trailing free segment.
// Zero-value segments are kept; Layout hides them.
func LevelSegments(r life.SurvivalResult, extras []Segment, freeLabel string) []Segment {
	segments := []Segment{
		{Key: KeySleep, Label: "Sleep", Value: r.SleepYears},
		{Key: KeyWork, Label: "Work", Value: r.WorkYears},
		{Key: KeyCommute, Label: "Commute", Value: r.CommuteYears},
		{Key: KeyRoutine, Label: "Routine", Value: r.RoutineYears},
	}
	segments = append(segments, extras...)
	return append(segments, Segment{Key: KeyFree, Label: freeLabel, Value: r.FreeYears})
}

// ItemSegments turns itemized activity years into chart segments under key.
func ItemSegments(key string, items []life.ActivityYears) []Segment {
	out := make([]Segment, 0, len(items))
	for _, it := range items {
		out = append(out, Segment{Key: key, Label: it.Label, Value: it.Years})
	}
	return out
}

// TotalSegments builds the overview chart. Zero-value segments are dropped
// before layout.
func TotalSegments(survival, maintenance, leakage, free float64) []Segment {
	all := []Segment{
		{Key: KeySurvival, Label: "Survival", Value: survival},
		{Key: KeyMaintenance, Label: "Maintenance", Value: maintenance},
		{Key: KeyLeakage, Label: "Leakage", Value: leakage},
		{Key: KeyFree, Label: "Remaining Free", Value: free},
	}
	out := all[:0]
	for _, s := range all {
		if s.Value > 0 {
			out = append(out, s)
		}
	}
	return out
}
