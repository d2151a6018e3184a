package cmd

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/lifespan/internal/config"
	"github.com/Iron-Ham/lifespan/internal/logging"
	"github.com/Iron-Ham/lifespan/internal/tui"
	"github.com/Iron-Ham/lifespan/internal/tui/styles"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Start the interactive wizard",
	Long: `Start the interactive wizard. It is also what lifespan runs without a subcommand.

The wizard logs to debug.log in the state directory so the terminal stays clean.
Edits to the config file apply to the running wizard (theme, chart width).`,
	Args: cobra.NoArgs,
	RunE: runWizard,
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}

func runWizard(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the wizard needs a terminal; use the profile, survival, maintenance, leakage and total commands to script it")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		if l, err := logging.NewLogger(config.StateDir(), cfg.Logging.Level); err == nil {
			logger = l
			defer func() { _ = l.Close() }()
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: debug log disabled: %v\n", err)
		}
	}

	if _, loadErrs := styles.DiscoverCustomThemes(); len(loadErrs) > 0 {
		for _, err := range loadErrs {
			logger.Warn("custom theme not loaded", "error", err)
		}
	}

	app := tui.New(cmd.Context(), tui.Options{
		Service: newService(cfg, logger),
		Config:  cfg,
		Logger:  logger,
	})

	if viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(e fsnotify.Event) {
			_, _ = styles.DiscoverCustomThemes()
			next, err := config.Load()
			if err != nil {
				logger.Warn("config reload rejected", "file", e.Name, "error", err)
				return
			}
			logger.Info("config reloaded", "file", e.Name, "op", e.Op.String())
			app.Reload(next)
		})
		viper.WatchConfig()
	}

	logger.Info("wizard started", "base_url", cfg.Remote.BaseURL)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
