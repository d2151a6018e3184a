package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "chart.level_threshold")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateRemote()...)
	errors = append(errors, c.validateWizard()...)
	errors = append(errors, c.validateChart()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateServer()...)

	return errors
}

// validateRemote validates the RemoteConfig
func (c *Config) validateRemote() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Remote.BaseURL) == "" {
		errors = append(errors, ValidationError{
			Field:   "remote.base_url",
			Value:   c.Remote.BaseURL,
			Message: "must not be empty",
		})
	} else if u, err := url.Parse(c.Remote.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "remote.base_url",
			Value:   c.Remote.BaseURL,
			Message: "must be an absolute http(s) URL",
		})
	}

	if c.Remote.TimeoutMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "remote.timeout_ms",
			Value:   c.Remote.TimeoutMs,
			Message: "must be positive",
		})
	}

	const maxTimeoutMs = 300000 // 5 minutes
	if c.Remote.TimeoutMs > maxTimeoutMs {
		errors = append(errors, ValidationError{
			Field:   "remote.timeout_ms",
			Value:   c.Remote.TimeoutMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxTimeoutMs),
		})
	}

	return errors
}

// validateWizard validates the WizardConfig
func (c *Config) validateWizard() []ValidationError {
	var errors []ValidationError

	if c.Wizard.DebounceMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "wizard.debounce_ms",
			Value:   c.Wizard.DebounceMs,
			Message: "must be non-negative",
		})
	}

	const maxDebounceMs = 10000
	if c.Wizard.DebounceMs > maxDebounceMs {
		errors = append(errors, ValidationError{
			Field:   "wizard.debounce_ms",
			Value:   c.Wizard.DebounceMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxDebounceMs),
		})
	}

	if c.Wizard.DefaultLifeExpectancy <= 0 {
		errors = append(errors, ValidationError{
			Field:   "wizard.default_life_expectancy",
			Value:   c.Wizard.DefaultLifeExpectancy,
			Message: "must be positive",
		})
	}

	return errors
}

// validateChart validates the ChartConfig
func (c *Config) validateChart() []ValidationError {
	var errors []ValidationError

	// 0 means use the terminal width
	const minWidth = 20
	switch {
	case c.Chart.Width < 0:
		errors = append(errors, ValidationError{
			Field:   "chart.width",
			Value:   c.Chart.Width,
			Message: "must be non-negative",
		})
	case c.Chart.Width != 0 && c.Chart.Width < minWidth:
		errors = append(errors, ValidationError{
			Field:   "chart.width",
			Value:   c.Chart.Width,
			Message: fmt.Sprintf("must be at least %d columns", minWidth),
		})
	}

	for _, th := range []struct {
		field string
		value float64
	}{
		{"chart.level_threshold", c.Chart.LevelThreshold},
		{"chart.total_threshold", c.Chart.TotalThreshold},
	} {
		if th.value <= 0 || th.value >= 100 {
			errors = append(errors, ValidationError{
				Field:   th.field,
				Value:   th.value,
				Message: "must be between 0 and 100 (exclusive)",
			})
		}
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

// validateServer validates the ServerConfig
func (c *Config) validateServer() []ValidationError {
	var errors []ValidationError

	if c.Server.Addr != "" && !strings.Contains(c.Server.Addr, ":") {
		errors = append(errors, ValidationError{
			Field:   "server.addr",
			Value:   c.Server.Addr,
			Message: "must be host:port",
		})
	}

	return errors
}
