package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lifespan/internal/tui/view"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

var maintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Manage maintenance activities (the ones you choose)",
}

var leakageCmd = &cobra.Command{
	Use:   "leakage",
	Short: "Manage leakage activities (the ones that happen to you)",
}

var maintenanceDeactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Stop counting a maintenance activity",
	Args:  cobra.NoArgs,
	RunE:  runMaintenanceDeactivate,
}

func init() {
	addActivityCommands(maintenanceCmd, wizard.StepMaintenance, "Exercising")
	addActivityCommands(leakageCmd, wizard.StepLeakage, "Waiting in line")

	maintenanceDeactivateCmd.Flags().Int64("user", 0, "user id from 'profile create'")
	maintenanceDeactivateCmd.Flags().String("label", "", "activity name")
	_ = maintenanceDeactivateCmd.MarkFlagRequired("user")
	_ = maintenanceDeactivateCmd.MarkFlagRequired("label")
	maintenanceCmd.AddCommand(maintenanceDeactivateCmd)

	rootCmd.AddCommand(maintenanceCmd)
	rootCmd.AddCommand(leakageCmd)
}

// addActivityCommands registers add and list under parent for the given page.
func addActivityCommands(parent *cobra.Command, step wizard.Step, example string) {
	add := &cobra.Command{
		Use:     "add",
		Short:   "Add an activity, or overwrite the hours of an existing one",
		Example: "  lifespan " + parent.Name() + " add --user 1 --label \"" + example + "\" --hours 5",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActivityAdd(cmd, step)
		},
	}
	add.Flags().Int64("user", 0, "user id from 'profile create'")
	add.Flags().String("label", "", "activity name")
	add.Flags().Float64("hours", 0, "hours per week")
	for _, name := range []string{"user", "label", "hours"} {
		_ = add.MarkFlagRequired(name)
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List activities with the years they take",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActivityList(cmd, step)
		},
	}
	list.Flags().Int64("user", 0, "user id from 'profile create'")
	_ = list.MarkFlagRequired("user")

	parent.AddCommand(add, list)
}

func newActivityStep(step wizard.Step, userID int64) *wizard.ActivityStep {
	if step == wizard.StepLeakage {
		return wizard.NewLeakageStep(userID).ActivityStep
	}
	return wizard.NewMaintenanceStep(userID).ActivityStep
}

func runActivityAdd(cmd *cobra.Command, step wizard.Step) error {
	cfg, logger, svc, err := setup(cmd)
	if err != nil {
		return err
	}
	userID, _ := cmd.Flags().GetInt64("user")
	label, _ := cmd.Flags().GetString("label")
	hours, _ := cmd.Flags().GetFloat64("hours")

	s := newActivityStep(step, userID)
	if err := s.Save(cmd.Context(), svc, label, hours); err != nil {
		return err
	}
	logger.WithUser(userID).WithStep(step.String()).Info("activity saved", "label", label, "hours_per_week", hours)

	p := newPrinter(cmd, cfg)
	p.line("Saved %s: %g h/week.", label, hours)
	printActivities(p, step, s)
	return nil
}

func runActivityList(cmd *cobra.Command, step wizard.Step) error {
	cfg, _, svc, err := setup(cmd)
	if err != nil {
		return err
	}
	userID, _ := cmd.Flags().GetInt64("user")

	s := newActivityStep(step, userID)
	if err := s.Refresh(cmd.Context(), svc); err != nil {
		return err
	}
	printActivities(newPrinter(cmd, cfg), step, s)
	return nil
}

func runMaintenanceDeactivate(cmd *cobra.Command, args []string) error {
	cfg, logger, svc, err := setup(cmd)
	if err != nil {
		return err
	}
	userID, _ := cmd.Flags().GetInt64("user")
	label, _ := cmd.Flags().GetString("label")

	m := wizard.NewMaintenanceStep(userID)
	if err := m.Refresh(cmd.Context(), svc); err != nil {
		return err
	}
	if err := m.Deactivate(cmd.Context(), svc, label); err != nil {
		return err
	}
	logger.WithUser(userID).Info("activity deactivated", "label", label)

	p := newPrinter(cmd, cfg)
	p.line("Deactivated %s.", label)
	printActivities(p, wizard.StepMaintenance, m.ActivityStep)
	return nil
}

func printActivities(p *printer, step wizard.Step, s *wizard.ActivityStep) {
	if s.Degraded() {
		p.line("%s", p.styles.Warning.Render("Activity details unavailable; showing the summary only."))
	}
	p.line("")
	title := "Maintenance"
	if step == wizard.StepLeakage {
		title = "Leakage"
	}
	p.block(view.RenderItems(p.styles, title, s.Items()))
	if segs := s.ChartSegments(); len(segs) > 0 {
		p.line("")
		p.chart(segs, p.cfg.Chart.LevelThreshold)
	}
}
