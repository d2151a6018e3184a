package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lifespan/internal/tui/view"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Print the breakdown of your remaining life",
	Long: `Print survival, maintenance and leakage with each item's share of its
section, followed by the free time that remains and a bar chart of all four.`,
	Args: cobra.NoArgs,
	RunE: runTotal,
}

func init() {
	totalCmd.Flags().Int64("user", 0, "user id from 'profile create'")
	_ = totalCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(totalCmd)
}

func runTotal(cmd *cobra.Command, args []string) error {
	cfg, _, svc, err := setup(cmd)
	if err != nil {
		return err
	}
	userID, _ := cmd.Flags().GetInt64("user")

	totals, err := wizard.NewTotalStep(userID).Fetch(cmd.Context(), svc)
	if err != nil {
		return err
	}

	p := newPrinter(cmd, cfg)
	p.chart(totals.Segments(), cfg.Chart.TotalThreshold)
	p.line("")
	p.block(view.RenderTotals(p.styles, totals))
	return nil
}
