package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. LIFESPAN_REMOTE_BASE_URL.
const EnvPrefix = "LIFESPAN"

// Config represents the complete lifespan configuration
type Config struct {
	Remote  RemoteConfig  `mapstructure:"remote" yaml:"remote"`
	Wizard  WizardConfig  `mapstructure:"wizard" yaml:"wizard"`
	Chart   ChartConfig   `mapstructure:"chart" yaml:"chart"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
}

// RemoteConfig controls how the wizard reaches the summary service
type RemoteConfig struct {
	// BaseURL is the API root; every path is resolved under it (default: "http://127.0.0.1:8000/api/")
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// TimeoutMs bounds each request in milliseconds (default: 10000)
	TimeoutMs int `mapstructure:"timeout_ms" yaml:"timeout_ms"`
}

// WizardConfig controls the wizard steps
type WizardConfig struct {
	// DebounceMs is the quiet period after the last survival edit before a
	// recompute is sent (default: 400, 0 sends on every keystroke)
	DebounceMs int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
	// DefaultLifeExpectancy is used when the profile leaves life expectancy blank (default: 80)
	DefaultLifeExpectancy int `mapstructure:"default_life_expectancy" yaml:"default_life_expectancy"`
}

// ChartConfig controls the stacked bar charts
type ChartConfig struct {
	// Width is the bar width in cells (default: 60)
	Width int `mapstructure:"width" yaml:"width"`
	// LevelThreshold is the percentage below which a per-level label moves
	// outside the bar (default: 10)
	LevelThreshold float64 `mapstructure:"level_threshold" yaml:"level_threshold"`
	// TotalThreshold is the same threshold for the Total overview (default: 12)
	TotalThreshold float64 `mapstructure:"total_threshold" yaml:"total_threshold"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is the color theme (default: "default")
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether the TUI writes a debug log (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
}

// ServerConfig controls the reference summary service
type ServerConfig struct {
	// Addr is the listen address (default: "127.0.0.1:8000")
	Addr string `mapstructure:"addr" yaml:"addr"`
	// DBPath is the SQLite database file. Empty keeps data in memory.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Remote: RemoteConfig{
			BaseURL:   "http://127.0.0.1:8000/api/",
			TimeoutMs: 10000,
		},
		Wizard: WizardConfig{
			DebounceMs:            400,
			DefaultLifeExpectancy: 80,
		},
		Chart: ChartConfig{
			Width:          60,
			LevelThreshold: 10,
			TotalThreshold: 12,
		},
		TUI: TUIConfig{
			Theme: "default",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
		Server: ServerConfig{
			Addr:   "127.0.0.1:8000",
			DBPath: "",
		},
	}
}

// Timeout returns the request timeout as a time.Duration
func (c *RemoteConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Debounce returns the survival debounce as a time.Duration
func (c *WizardConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("remote.base_url", defaults.Remote.BaseURL)
	viper.SetDefault("remote.timeout_ms", defaults.Remote.TimeoutMs)

	viper.SetDefault("wizard.debounce_ms", defaults.Wizard.DebounceMs)
	viper.SetDefault("wizard.default_life_expectancy", defaults.Wizard.DefaultLifeExpectancy)

	viper.SetDefault("chart.width", defaults.Chart.Width)
	viper.SetDefault("chart.level_threshold", defaults.Chart.LevelThreshold)
	viper.SetDefault("chart.total_threshold", defaults.Chart.TotalThreshold)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)

	viper.SetDefault("server.addr", defaults.Server.Addr)
	viper.SetDefault("server.db_path", defaults.Server.DBPath)
}

// BindEnv makes every key overridable from LIFESPAN_* environment variables.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lifespan")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lifespan"
	}
	return filepath.Join(home, ".config", "lifespan")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateDir returns where the TUI writes its debug log
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "lifespan")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lifespan"
	}
	return filepath.Join(home, ".local", "state", "lifespan")
}
