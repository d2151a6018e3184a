// Package config provides CLI commands for managing lifespan configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	appconfig "github.com/Iron-Ham/lifespan/internal/config"
	"github.com/Iron-Ham/lifespan/internal/tui/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify lifespan configuration",
	Long: `View or modify lifespan configuration.

Use 'config show' to print the effective configuration.
Use subcommands to modify settings or create a config file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  lifespan config set remote.base_url http://localhost:8000/api/
  lifespan config set wizard.debounce_ms 250
  lifespan config set tui.theme nord

Valid keys:
  remote.base_url                  - Summary service base URL
  remote.timeout_ms                - Request timeout in milliseconds
  wizard.debounce_ms               - Quiet period before a survival recompute
  wizard.default_life_expectancy   - Life expectancy used when left blank
  chart.width                      - Bar width in cells (0 fits the terminal)
  chart.level_threshold            - Percent below which step chart labels move outside
  chart.total_threshold            - Percent below which total chart labels move outside
  tui.theme                        - Color theme
  logging.enabled                  - Write a debug log (true/false)
  logging.level                    - debug, info, warn or error
  server.addr                      - Listen address of 'lifespan serve'
  server.db_path                   - SQLite file of 'lifespan serve' (empty: in memory)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at $XDG_CONFIG_HOME/lifespan/config.yaml with all available options.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := appconfig.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\nShowing defaults.\n\n", err)
		cfg = appconfig.Default()
	}

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// keyKinds maps every settable key to how its value is parsed.
var keyKinds = map[string]string{
	"remote.base_url":                "string",
	"remote.timeout_ms":              "int",
	"wizard.debounce_ms":             "int",
	"wizard.default_life_expectancy": "int",
	"chart.width":                    "int",
	"chart.level_threshold":          "float",
	"chart.total_threshold":          "float",
	"tui.theme":                      "theme",
	"logging.enabled":                "bool",
	"logging.level":                  "level",
	"server.addr":                    "string",
	"server.db_path":                 "string",
}

// parseValue converts value to the type of key.
func parseValue(key, value string) (any, error) {
	kind, ok := keyKinds[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'lifespan config set --help' to see valid keys", key)
	}

	switch kind {
	case "theme":
		_, _ = styles.DiscoverCustomThemes()
		if !styles.IsValidTheme(value) {
			return nil, fmt.Errorf("invalid theme: %s\nValid options: %s",
				value, strings.Join(styles.ValidThemes(), ", "))
		}
		return value, nil
	case "level":
		if !slices.Contains(appconfig.ValidLogLevels(), strings.ToLower(value)) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidLogLevels(), ", "))
		}
		return strings.ToLower(value), nil
	case "bool":
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case "int":
		v, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return v, nil
	case "float":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected a number", key)
		}
		return v, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	typed, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	prev := viper.Get(key)
	viper.Set(key, typed)
	if _, err := appconfig.Load(); err != nil {
		viper.Set(key, prev)
		return err
	}

	configDir := appconfig.ConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = appconfig.ConfigFile()
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typed)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

const configHeader = `# lifespan configuration
#
# Every key can also be set from the environment with the LIFESPAN_ prefix,
# e.g. LIFESPAN_REMOTE_BASE_URL for remote.base_url.

`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(configFile); err == nil && !force {
		return fmt.Errorf("config file already exists at %s\nUse 'lifespan config set' to modify values, or --force to overwrite", configFile)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(appconfig.Default())
	if err != nil {
		return fmt.Errorf("encoding defaults: %w", err)
	}
	if err := os.WriteFile(configFile, append([]byte(configHeader), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize lifespan; a running wizard picks up changes.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", appconfig.ConfigFile())
	fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	fmt.Fprintf(out, "\nEnvironment variables: %s_* (e.g., %s_REMOTE_BASE_URL)\n", appconfig.EnvPrefix, appconfig.EnvPrefix)
	return nil
}
