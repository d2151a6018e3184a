package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lifespan/internal/chart"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

var survivalCmd = &cobra.Command{
	Use:   "survival",
	Short: "Manage survival time",
}

var survivalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Compute the years spent on sleep, work, commute and routine",
	Long: `Send the survival inputs and print the resulting allocation.

Unset inputs count as zero. Running the command again replaces the previous
inputs.

Example:
  lifespan survival set --user 1 --sleep 8 --work 8 --work-days 5 --commute 1 --routine 2`,
	Args: cobra.NoArgs,
	RunE: runSurvivalSet,
}

func init() {
	f := survivalSetCmd.Flags()
	f.Int64("user", 0, "user id from 'profile create'")
	f.Float64("sleep", 0, "sleep hours per day")
	f.Float64("work", 0, "work hours per workday")
	f.Float64("work-days", 0, "workdays per week")
	f.Float64("commute", 0, "commute hours per workday")
	f.Float64("routine", 0, "daily routine hours (meals, hygiene, chores)")
	_ = survivalSetCmd.MarkFlagRequired("user")

	survivalCmd.AddCommand(survivalSetCmd)
	rootCmd.AddCommand(survivalCmd)
}

func runSurvivalSet(cmd *cobra.Command, args []string) error {
	cfg, logger, svc, err := setup(cmd)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	userID, _ := f.GetInt64("user")
	var in life.SurvivalInputs
	in.SleepHoursPerDay, _ = f.GetFloat64("sleep")
	in.WorkHoursPerDay, _ = f.GetFloat64("work")
	in.WorkDaysPerWeek, _ = f.GetFloat64("work-days")
	in.CommuteHoursPerWorkday, _ = f.GetFloat64("commute")
	in.DailyRoutineHours, _ = f.GetFloat64("routine")

	step := wizard.NewSurvivalStep(userID, func(life.SurvivalResult) {})
	if _, err := step.SetInputs(in); err != nil {
		return err
	}
	if err := step.Submit(cmd.Context(), svc); err != nil {
		return err
	}
	result, _ := step.Result()
	logger.WithUser(userID).Info("survival computed", "free_years", result.FreeYears)

	p := newPrinter(cmd, cfg)
	p.chart(chart.LevelSegments(result, nil, "Free"), cfg.Chart.LevelThreshold)
	p.line("")
	for _, row := range []struct {
		label string
		years float64
	}{
		{"Sleep", result.SleepYears},
		{"Work", result.WorkYears},
		{"Commute", result.CommuteYears},
		{"Routine", result.RoutineYears},
		{"Free", result.FreeYears},
	} {
		p.line("%-10s %s", row.label, chart.FormatYears(row.years))
	}
	return nil
}
