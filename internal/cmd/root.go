package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/Iron-Ham/lifespan/internal/cmd/config"
	"github.com/Iron-Ham/lifespan/internal/config"
	"github.com/Iron-Ham/lifespan/internal/logging"
	"github.com/Iron-Ham/lifespan/internal/remote"
)

var rootCmd = &cobra.Command{
	Use:   "lifespan",
	Short: "See how the rest of your life is spent",
	Long: `Lifespan walks you through how your remaining lifetime divides into
survival (sleep, work, commute, routine), maintenance (activities you choose)
and leakage (activities that happen to you), and charts what is left.

Without a subcommand it starts the interactive wizard. The other commands
script the same steps against the summary service.`,
	SilenceUsage: true,
	RunE:         runWizard,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version printed by --version.
func SetVersion(v string) {
	rootCmd.Version = v
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/lifespan/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "summary service base URL (overrides remote.base_url)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("remote.base_url", rootCmd.PersistentFlags().Lookup("base-url"))

	configcmd.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	// LIFESPAN_REMOTE_BASE_URL for remote.base_url, and so on
	config.BindEnv()

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// newService builds the summary service client. Tests replace it.
var newService = func(cfg *config.Config, logger *logging.Logger) remote.Service {
	return remote.NewClient(cfg.Remote.BaseURL,
		remote.WithTimeout(cfg.Remote.Timeout()),
		remote.WithLogger(logger),
	)
}

// cliLogger logs to the command's stderr, or nowhere when logging is disabled.
func cliLogger(cmd *cobra.Command, cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}
	return logging.NewWriterLogger(cmd.ErrOrStderr(), cfg.Logging.Level)
}

// setup loads the configuration and connects to the service.
func setup(cmd *cobra.Command) (*config.Config, *logging.Logger, remote.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := cliLogger(cmd, cfg)
	return cfg, logger, newService(cfg, logger), nil
}
