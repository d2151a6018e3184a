package styles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/lifespan/internal/config"
)

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	// Name is the theme's display name (e.g., "Paper")
	Name        string `yaml:"name"`
	Author      string `yaml:"author,omitempty"`
	Description string `yaml:"description,omitempty"`
	// Version is the theme file format version (currently "1")
	Version string      `yaml:"version"`
	Colors  ThemeColors `yaml:"colors"`
}

// ThemeColors contains all color definitions for a theme.
// All colors should be hex format (#RRGGBB or #RGB).
type ThemeColors struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Warning   string `yaml:"warning"`
	Error     string `yaml:"error"`
	Muted     string `yaml:"muted"`
	Surface   string `yaml:"surface"`
	Text      string `yaml:"text"`
	Border    string `yaml:"border"`

	// Chart colors are optional; missing ones fall back to the default chart.
	Chart ThemeChartColors `yaml:"chart,omitempty"`
}

// ThemeChartColors defines the bar color of each chart segment.
type ThemeChartColors struct {
	Sleep       string `yaml:"sleep,omitempty"`
	Work        string `yaml:"work,omitempty"`
	Commute     string `yaml:"commute,omitempty"`
	Routine     string `yaml:"routine,omitempty"`
	Maintenance string `yaml:"maintenance,omitempty"`
	Leakage     string `yaml:"leakage,omitempty"`
	Survival    string `yaml:"survival,omitempty"`
	Free        string `yaml:"free,omitempty"`
}

var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}
	if t.Version == "" {
		return errors.New("theme version is required")
	}
	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %s (supported: 1)", t.Version)
	}

	required := map[string]string{
		"primary":   t.Colors.Primary,
		"secondary": t.Colors.Secondary,
		"warning":   t.Colors.Warning,
		"error":     t.Colors.Error,
		"muted":     t.Colors.Muted,
		"surface":   t.Colors.Surface,
		"text":      t.Colors.Text,
		"border":    t.Colors.Border,
	}
	for name, color := range required {
		if color == "" {
			return fmt.Errorf("color '%s' is required", name)
		}
		if !hexColorRegex.MatchString(color) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", name, color)
		}
	}

	optional := map[string]string{
		"chart.sleep":       t.Colors.Chart.Sleep,
		"chart.work":        t.Colors.Chart.Work,
		"chart.commute":     t.Colors.Chart.Commute,
		"chart.routine":     t.Colors.Chart.Routine,
		"chart.maintenance": t.Colors.Chart.Maintenance,
		"chart.leakage":     t.Colors.Chart.Leakage,
		"chart.survival":    t.Colors.Chart.Survival,
		"chart.free":        t.Colors.Chart.Free,
	}
	for name, color := range optional {
		if color != "" && !hexColorRegex.MatchString(color) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", name, color)
		}
	}

	return nil
}

// ToPalette converts the theme file to a ColorPalette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	def := defaultChart()
	c := t.Colors.Chart
	return &ColorPalette{
		Primary:   lipgloss.Color(t.Colors.Primary),
		Secondary: lipgloss.Color(t.Colors.Secondary),
		Warning:   lipgloss.Color(t.Colors.Warning),
		Error:     lipgloss.Color(t.Colors.Error),
		Muted:     lipgloss.Color(t.Colors.Muted),
		Surface:   lipgloss.Color(t.Colors.Surface),
		Text:      lipgloss.Color(t.Colors.Text),
		Border:    lipgloss.Color(t.Colors.Border),
		Chart: ChartColors{
			Sleep:       colorOr(c.Sleep, def.Sleep),
			Work:        colorOr(c.Work, def.Work),
			Commute:     colorOr(c.Commute, def.Commute),
			Routine:     colorOr(c.Routine, def.Routine),
			Maintenance: colorOr(c.Maintenance, def.Maintenance),
			Leakage:     colorOr(c.Leakage, def.Leakage),
			Survival:    colorOr(c.Survival, def.Survival),
			Free:        colorOr(c.Free, def.Free),
		},
	}
}

func colorOr(color string, fallback lipgloss.Color) lipgloss.Color {
	if color != "" {
		return lipgloss.Color(color)
	}
	return fallback
}

// customThemes stores loaded custom themes. It is written at startup and on
// config reload, both on the UI goroutine.
var customThemes = make(map[ThemeName]*ThemeFile)

// RegisterCustomTheme registers a custom theme by name.
func RegisterCustomTheme(name ThemeName, theme *ThemeFile) {
	customThemes[name] = theme
}

// GetCustomTheme returns a custom theme by name, or nil if not found.
func GetCustomTheme(name ThemeName) *ThemeFile {
	return customThemes[name]
}

// CustomThemeNames returns the sorted names of all registered custom themes.
func CustomThemeNames() []string {
	names := make([]string, 0, len(customThemes))
	for name := range customThemes {
		names = append(names, string(name))
	}
	slices.Sort(names)
	return names
}

// ClearCustomThemes removes all registered custom themes.
func ClearCustomThemes() {
	customThemes = make(map[ThemeName]*ThemeFile)
}

var themesDirFn = func() string {
	return filepath.Join(config.ConfigDir(), "themes")
}

// ThemesDir returns the directory where custom themes are stored.
func ThemesDir() string {
	return themesDirFn()
}

// SetThemesDirFunc overrides the themes directory. Returns the previous function.
func SetThemesDirFunc(fn func() string) func() string {
	prev := themesDirFn
	themesDirFn = fn
	return prev
}

// DiscoverCustomThemes loads every valid *.yaml theme in ThemesDir. A missing
// directory is not an error.
func DiscoverCustomThemes() ([]string, []error) {
	dir := ThemesDir()

	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, []error{fmt.Errorf("reading themes directory: %w", err)}
	}

	var loaded []string
	var errs []error

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		theme, err := LoadThemeFile(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		themeName := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		if slices.Contains(BuiltinThemes(), themeName) {
			errs = append(errs, fmt.Errorf("%s: cannot override built-in theme '%s'", name, themeName))
			continue
		}

		RegisterCustomTheme(ThemeName(themeName), theme)
		loaded = append(loaded, themeName)
	}

	return loaded, errs
}

// IsCustomTheme checks if a theme name is a registered custom theme.
func IsCustomTheme(name string) bool {
	_, ok := customThemes[ThemeName(name)]
	return ok
}

// ExportTheme exports a theme to YAML, as a starting point for a custom theme.
func ExportTheme(name ThemeName) ([]byte, error) {
	if custom := GetCustomTheme(name); custom != nil {
		return yaml.Marshal(custom)
	}

	p := GetPalette(name)
	return yaml.Marshal(&ThemeFile{
		Name:        string(name),
		Description: fmt.Sprintf("Exported from built-in theme '%s'", name),
		Version:     "1",
		Colors: ThemeColors{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Warning:   string(p.Warning),
			Error:     string(p.Error),
			Muted:     string(p.Muted),
			Surface:   string(p.Surface),
			Text:      string(p.Text),
			Border:    string(p.Border),
			Chart: ThemeChartColors{
				Sleep:       string(p.Chart.Sleep),
				Work:        string(p.Chart.Work),
				Commute:     string(p.Chart.Commute),
				Routine:     string(p.Chart.Routine),
				Maintenance: string(p.Chart.Maintenance),
				Leakage:     string(p.Chart.Leakage),
				Survival:    string(p.Chart.Survival),
				Free:        string(p.Chart.Free),
			},
		},
	})
}

// SaveTheme writes theme to <ThemesDir>/<name>.yaml, creating the directory.
func SaveTheme(name string, theme *ThemeFile) error {
	if err := theme.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(theme)
	if err != nil {
		return err
	}
	dir := ThemesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating themes directory: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, name+".yaml"), data, 0o644)
}
