// Package life defines the lifetime allocation model shared by the wizard,
// the remote client and the reference summary service.
//
// All durations are expressed in years of remaining life. Hours are converted
// with the fixed calendar constants below; the same conversion runs on both
// sides of the wire so a locally previewed value matches the committed one.
package life

// UserContext is the life context created at the start of the wizard.
// It is immutable for the rest of the session.
type UserContext struct {
	ID             int64 `json:"id"`
	Age            int   `json:"age"`
	LifeExpectancy int   `json:"life_expectancy"`
}

// RemainingYears returns life expectancy minus current age.
func (u UserContext) RemainingYears() float64 {
	return float64(u.LifeExpectancy - u.Age)
}

// SurvivalInputs are the mandatory daily obligations entered on the survival step.
type SurvivalInputs struct {
	SleepHoursPerDay       float64 `json:"sleep_hours_per_day"`
	WorkHoursPerDay        float64 `json:"work_hours_per_day"`
	WorkDaysPerWeek        float64 `json:"work_days_per_week"`
	CommuteHoursPerWorkday float64 `json:"commute_hours_per_workday"`
	DailyRoutineHours      float64 `json:"daily_routine_hours"`
}

// SurvivalResult is the server-computed allocation of remaining years.
// RemainingYears is optional on the wire.
type SurvivalResult struct {
	SleepYears     float64  `json:"sleep_years"`
	WorkYears      float64  `json:"work_years"`
	CommuteYears   float64  `json:"commute_years"`
	RoutineYears   float64  `json:"routine_years"`
	FreeYears      float64  `json:"free_years"`
	RemainingYears *float64 `json:"remaining_years,omitempty"`
}

// Allocated returns the years taken by the four survival categories.
func (r SurvivalResult) Allocated() float64 {
	return r.SleepYears + r.WorkYears + r.CommuteYears + r.RoutineYears
}

// Remaining returns RemainingYears, or allocated+free when the service omitted it.
func (r SurvivalResult) Remaining() float64 {
	if r.RemainingYears != nil {
		return *r.RemainingYears
	}
	return r.Allocated() + r.FreeYears
}

// Activity sources.
const (
	SourcePreset = "preset"
	SourceUser   = "user"
)

// Activity is a recurring maintenance or leakage activity. Label is the natural
// key within its category.
type Activity struct {
	ID           int64   `json:"id"`
	Label        string  `json:"name"`
	HoursPerWeek float64 `json:"hours_per_week"`
	Source       string  `json:"source,omitempty"`
	IsActive     bool    `json:"is_active"`
}

// ActivityYears is one itemized entry of the summary.
type ActivityYears struct {
	Label string  `json:"label"`
	Years float64 `json:"years"`
}

// LifeSummary is the consolidated read model. It is recomputed by the service on
// every fetch and treated as an immutable snapshot by the client.
type LifeSummary struct {
	Level1           SurvivalResult  `json:"level1"`
	MaintenanceYears float64         `json:"maintenance_years"`
	LeakageYears     float64         `json:"leakage_years"`
	Category2        []ActivityYears `json:"category2"`
	Category3        []ActivityYears `json:"category3"`
	Adjusted         SurvivalResult  `json:"adjusted"`
}

// RemainingYears returns the base used for previews and survival percentages.
func (s LifeSummary) RemainingYears() float64 {
	return s.Level1.Remaining()
}

// SurvivalYears returns the sum of the four level-1 categories.
func (s LifeSummary) SurvivalYears() float64 {
	return s.Level1.Allocated()
}

// UsableFreeYears is free time left after maintenance, clamped at zero.
func (s LifeSummary) UsableFreeYears() float64 {
	return max(s.Level1.FreeYears-s.MaintenanceYears, 0)
}

// YearsFor returns the itemized years for label in items.
func YearsFor(items []ActivityYears, label string) (float64, bool) {
	for _, it := range items {
		if it.Label == label {
			return it.Years, true
		}
	}
	return 0, false
}

// MaintenancePresets are the maintenance activities offered before any custom entry.
var MaintenancePresets = []string{
	"Exercising",
	"Learning / studying",
	"Health care",
	"Relationship care",
}

// IsMaintenancePreset reports whether label is one of MaintenancePresets.
func IsMaintenancePreset(label string) bool {
	for _, p := range MaintenancePresets {
		if p == label {
			return true
		}
	}
	return false
}
