package life

// Calendar constants. The service uses the same values; changing one side only
// breaks preview/commit consistency.
const (
	DaysPerYear  = 365
	WeeksPerYear = 52
	HoursPerDay  = 24
)

// DefaultLifeExpectancy is used when the profile omits life expectancy.
const DefaultLifeExpectancy = 80

const hoursPerYear = HoursPerDay * DaysPerYear

// YearsFromWeeklyHours converts a weekly habit into years of remaining life:
// hours/week × 52 × remaining / (24 × 365).
func YearsFromWeeklyHours(hoursPerWeek, remainingYears float64) float64 {
	return hoursPerWeek * WeeksPerYear * remainingYears / hoursPerYear
}

// YearsFromDailyHours converts a daily habit into years of remaining life.
func YearsFromDailyHours(hoursPerDay, remainingYears float64) float64 {
	return hoursPerDay * DaysPerYear * remainingYears / hoursPerYear
}

// ComputeSurvival allocates remaining years across the survival categories.
// Free years are clamped at zero when obligations exceed a full day.
func ComputeSurvival(user UserContext, in SurvivalInputs) SurvivalResult {
	remaining := user.RemainingYears()

	r := SurvivalResult{
		SleepYears:     YearsFromDailyHours(in.SleepHoursPerDay, remaining),
		WorkYears:      YearsFromWeeklyHours(in.WorkHoursPerDay*in.WorkDaysPerWeek, remaining),
		CommuteYears:   YearsFromWeeklyHours(in.CommuteHoursPerWorkday*in.WorkDaysPerWeek, remaining),
		RoutineYears:   YearsFromDailyHours(in.DailyRoutineHours, remaining),
		RemainingYears: &remaining,
	}
	r.FreeYears = max(remaining-r.Allocated(), 0)
	return r
}

// CappedYears sums the active activities and clamps the total to [0, remaining].
func CappedYears(activities []Activity, remainingYears float64) float64 {
	var hours float64
	for _, a := range activities {
		if a.IsActive {
			hours += a.HoursPerWeek
		}
	}
	years := YearsFromWeeklyHours(hours, remainingYears)
	return min(max(years, 0), remainingYears)
}

// Breakdown itemizes active activities with a positive contribution.
func Breakdown(activities []Activity, remainingYears float64) []ActivityYears {
	out := make([]ActivityYears, 0, len(activities))
	for _, a := range activities {
		if !a.IsActive {
			continue
		}
		if y := YearsFromWeeklyHours(a.HoursPerWeek, remainingYears); y > 0 {
			out = append(out, ActivityYears{Label: a.Label, Years: y})
		}
	}
	return out
}

// Summarize builds the consolidated summary from a level-1 result and the two
// activity categories.
func Summarize(level1 SurvivalResult, maintenance, leakage []Activity) LifeSummary {
	remaining := level1.Remaining()
	maintenanceYears := CappedYears(maintenance, remaining)
	leakageYears := CappedYears(leakage, remaining)

	adjusted := level1
	adjusted.FreeYears = max(level1.FreeYears-maintenanceYears-leakageYears, 0)

	return LifeSummary{
		Level1:           level1,
		MaintenanceYears: maintenanceYears,
		LeakageYears:     leakageYears,
		Category2:        Breakdown(maintenance, remaining),
		Category3:        Breakdown(leakage, remaining),
		Adjusted:         adjusted,
	}
}
