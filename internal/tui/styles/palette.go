package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/lifespan/internal/chart"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault        ThemeName = "default"         // Purple/green dark theme
	ThemeMonokai        ThemeName = "monokai"         // Classic Monokai editor colors
	ThemeDracula        ThemeName = "dracula"         // Dracula theme colors
	ThemeNord           ThemeName = "nord"            // Nord theme - cool blue-gray
	ThemeGruvbox        ThemeName = "gruvbox"         // Gruvbox retro groove
	ThemeSolarizedLight ThemeName = "solarized-light" // Solarized Light variant
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeMonokai),
		string(ThemeDracula),
		string(ThemeNord),
		string(ThemeGruvbox),
		string(ThemeSolarizedLight),
	}
}

// ValidThemes returns all valid theme names (built-in + custom).
func ValidThemes() []string {
	themes := BuiltinThemes()
	themes = append(themes, CustomThemeNames()...)
	return themes
}

// IsValidTheme checks if a theme name is valid (built-in or custom).
func IsValidTheme(name string) bool {
	if slices.Contains(BuiltinThemes(), name) {
		return true
	}
	return IsCustomTheme(name)
}

// ChartColors are the bar colors of the chart segments.
type ChartColors struct {
	Sleep       lipgloss.Color
	Work        lipgloss.Color
	Commute     lipgloss.Color
	Routine     lipgloss.Color
	Maintenance lipgloss.Color
	Leakage     lipgloss.Color
	Survival    lipgloss.Color
	Free        lipgloss.Color
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (used for emphasis, active elements)
	Primary lipgloss.Color
	// Secondary accent color (used for success states and help keys)
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	// Muted color (used for de-emphasized text, hints)
	Muted   lipgloss.Color
	Surface lipgloss.Color
	Text    lipgloss.Color
	Border  lipgloss.Color

	Chart ChartColors
}

// defaultChart mirrors the colors of the web charts. Dark themes share it.
func defaultChart() ChartColors {
	return ChartColors{
		Sleep:       lipgloss.Color("#71717A"),
		Work:        lipgloss.Color("#3F3F46"),
		Commute:     lipgloss.Color("#B45309"),
		Routine:     lipgloss.Color("#6D28D9"),
		Maintenance: lipgloss.Color("#3B82F6"),
		Leakage:     lipgloss.Color("#DC2626"),
		Survival:    lipgloss.Color("#6366F1"),
		Free:        lipgloss.Color("#10B981"),
	}
}

// DefaultPalette returns the default purple/green dark theme palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500
		Chart:     defaultChart(),
	}
}

// MonokaiPalette returns the classic Monokai editor theme palette.
func MonokaiPalette() *ColorPalette {
	c := defaultChart()
	c.Maintenance = lipgloss.Color("#66D9EF")
	c.Leakage = lipgloss.Color("#F92672")
	c.Free = lipgloss.Color("#A6E22E")
	return &ColorPalette{
		Primary:   lipgloss.Color("#F92672"), // Monokai pink/magenta
		Secondary: lipgloss.Color("#A6E22E"), // Monokai green
		Warning:   lipgloss.Color("#E6DB74"), // Monokai yellow
		Error:     lipgloss.Color("#F92672"),
		Muted:     lipgloss.Color("#75715E"), // Monokai comment gray
		Surface:   lipgloss.Color("#272822"),
		Text:      lipgloss.Color("#F8F8F2"),
		Border:    lipgloss.Color("#49483E"),
		Chart:     c,
	}
}

// DraculaPalette returns the Dracula theme palette.
func DraculaPalette() *ColorPalette {
	c := defaultChart()
	c.Routine = lipgloss.Color("#BD93F9")
	c.Maintenance = lipgloss.Color("#8BE9FD")
	c.Leakage = lipgloss.Color("#FF5555")
	c.Free = lipgloss.Color("#50FA7B")
	return &ColorPalette{
		Primary:   lipgloss.Color("#BD93F9"), // Dracula purple
		Secondary: lipgloss.Color("#50FA7B"), // Dracula green
		Warning:   lipgloss.Color("#F1FA8C"),
		Error:     lipgloss.Color("#FF5555"),
		Muted:     lipgloss.Color("#6272A4"),
		Surface:   lipgloss.Color("#282A36"),
		Text:      lipgloss.Color("#F8F8F2"),
		Border:    lipgloss.Color("#44475A"),
		Chart:     c,
	}
}

// NordPalette returns the Nord theme palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#88C0D0"), // Nord frost (cyan)
		Secondary: lipgloss.Color("#A3BE8C"), // Nord aurora green
		Warning:   lipgloss.Color("#EBCB8B"),
		Error:     lipgloss.Color("#BF616A"),
		Muted:     lipgloss.Color("#4C566A"),
		Surface:   lipgloss.Color("#2E3440"),
		Text:      lipgloss.Color("#ECEFF4"),
		Border:    lipgloss.Color("#3B4252"),
		Chart: ChartColors{
			Sleep:       lipgloss.Color("#4C566A"),
			Work:        lipgloss.Color("#3B4252"),
			Commute:     lipgloss.Color("#D08770"),
			Routine:     lipgloss.Color("#B48EAD"),
			Maintenance: lipgloss.Color("#5E81AC"),
			Leakage:     lipgloss.Color("#BF616A"),
			Survival:    lipgloss.Color("#81A1C1"),
			Free:        lipgloss.Color("#A3BE8C"),
		},
	}
}

// GruvboxPalette returns the Gruvbox theme palette.
func GruvboxPalette() *ColorPalette {
	c := defaultChart()
	c.Commute = lipgloss.Color("#FE8019")
	c.Maintenance = lipgloss.Color("#83A598")
	c.Leakage = lipgloss.Color("#FB4934")
	c.Free = lipgloss.Color("#B8BB26")
	return &ColorPalette{
		Primary:   lipgloss.Color("#83A598"), // Gruvbox aqua
		Secondary: lipgloss.Color("#B8BB26"), // Gruvbox green
		Warning:   lipgloss.Color("#FABD2F"),
		Error:     lipgloss.Color("#FB4934"),
		Muted:     lipgloss.Color("#928374"),
		Surface:   lipgloss.Color("#282828"),
		Text:      lipgloss.Color("#EBDBB2"),
		Border:    lipgloss.Color("#3C3836"),
		Chart:     c,
	}
}

// SolarizedLightPalette returns the Solarized Light palette.
func SolarizedLightPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#268BD2"), // Solarized blue
		Secondary: lipgloss.Color("#859900"), // Solarized green
		Warning:   lipgloss.Color("#B58900"),
		Error:     lipgloss.Color("#DC322F"),
		Muted:     lipgloss.Color("#93A1A1"),
		Surface:   lipgloss.Color("#FDF6E3"),
		Text:      lipgloss.Color("#657B83"),
		Border:    lipgloss.Color("#EEE8D5"),
		Chart: ChartColors{
			Sleep:       lipgloss.Color("#93A1A1"),
			Work:        lipgloss.Color("#586E75"),
			Commute:     lipgloss.Color("#CB4B16"),
			Routine:     lipgloss.Color("#6C71C4"),
			Maintenance: lipgloss.Color("#268BD2"),
			Leakage:     lipgloss.Color("#DC322F"),
			Survival:    lipgloss.Color("#2AA198"),
			Free:        lipgloss.Color("#859900"),
		},
	}
}

// GetPalette returns the color palette for the given theme name.
// Checks custom themes first, then falls back to built-in themes.
// Returns the default palette for unknown theme names.
func GetPalette(name ThemeName) *ColorPalette {
	if custom := GetCustomTheme(name); custom != nil {
		return custom.ToPalette()
	}

	switch name {
	case ThemeMonokai:
		return MonokaiPalette()
	case ThemeDracula:
		return DraculaPalette()
	case ThemeNord:
		return NordPalette()
	case ThemeGruvbox:
		return GruvboxPalette()
	case ThemeSolarizedLight:
		return SolarizedLightPalette()
	default:
		return DefaultPalette()
	}
}

// ChartPalette maps the palette onto chart segment keys.
func (p *ColorPalette) ChartPalette() chart.Palette {
	return chart.Palette{
		chart.KeySleep:       p.Chart.Sleep,
		chart.KeyWork:        p.Chart.Work,
		chart.KeyCommute:     p.Chart.Commute,
		chart.KeyRoutine:     p.Chart.Routine,
		chart.KeyMaintenance: p.Chart.Maintenance,
		chart.KeyLeakage:     p.Chart.Leakage,
		chart.KeySurvival:    p.Chart.Survival,
		chart.KeyFree:        p.Chart.Free,
	}
}
