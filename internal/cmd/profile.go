package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lifespan/internal/chart"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the profile",
}

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a profile and print its user id",
	Long: `Create a profile from your age and life expectancy.

The printed user id is what the survival, maintenance, leakage and total
commands take with --user. Life expectancy defaults to
wizard.default_life_expectancy.

Example:
  lifespan profile create --age 30 --life-expectancy 85`,
	Args: cobra.NoArgs,
	RunE: runProfileCreate,
}

func init() {
	profileCreateCmd.Flags().Int("age", 0, "your age in years")
	profileCreateCmd.Flags().Int("life-expectancy", 0, "expected age at death (default: wizard.default_life_expectancy)")
	_ = profileCreateCmd.MarkFlagRequired("age")

	profileCmd.AddCommand(profileCreateCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	cfg, logger, svc, err := setup(cmd)
	if err != nil {
		return err
	}

	age, _ := cmd.Flags().GetInt("age")
	expectancy, _ := cmd.Flags().GetInt("life-expectancy")
	expectancyText := ""
	if cmd.Flags().Changed("life-expectancy") {
		expectancyText = strconv.Itoa(expectancy)
	}

	step := wizard.NewProfileStep(wizard.NewController(), cfg.Wizard.DefaultLifeExpectancy)
	user, err := step.Create(cmd.Context(), svc, strconv.Itoa(age), expectancyText)
	if err != nil {
		return err
	}
	logger.WithUser(user.ID).Info("profile created")

	p := newPrinter(cmd, cfg)
	p.line("Created profile %d: age %d, life expectancy %d, %s remaining.",
		user.ID, user.Age, user.LifeExpectancy, chart.FormatYears(user.RemainingYears()))
	p.line("Next: lifespan survival set --user %d --sleep 8 --work 8 --work-days 5", user.ID)
	return nil
}
