// Package styles holds the lipgloss styles of the wizard, built from a color theme.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/lifespan/internal/chart"
)

// Styles is the set of styles for one palette. Build a new one on theme change.
type Styles struct {
	Palette *ColorPalette

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	TabActive lipgloss.Style
	TabDone   lipgloss.Style
	TabLocked lipgloss.Style

	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Value        lipgloss.Style
	Muted        lipgloss.Style
	Error        lipgloss.Style
	Warning      lipgloss.Style
	Success      lipgloss.Style

	// Entry badges by reconciliation state.
	BadgeUnsaved lipgloss.Style
	BadgeSaved   lipgloss.Style
	BadgeEditing lipgloss.Style

	ContentBox lipgloss.Style
	HelpBar    lipgloss.Style
	HelpKey    lipgloss.Style
	StatusBar  lipgloss.Style
}

// New builds styles from p.
func New(p *ColorPalette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}
	return &Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Primary).
			Padding(0, 2),
		TabDone: lipgloss.NewStyle().
			Foreground(p.Secondary).
			Padding(0, 2),
		TabLocked: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 2),

		Label:        lipgloss.NewStyle().Foreground(p.Text),
		FocusedLabel: lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Value:        lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Muted:        lipgloss.NewStyle().Foreground(p.Muted),
		Error:        lipgloss.NewStyle().Foreground(p.Error),
		Warning:      lipgloss.NewStyle().Foreground(p.Warning),
		Success:      lipgloss.NewStyle().Foreground(p.Secondary),

		BadgeUnsaved: lipgloss.NewStyle().Foreground(p.Muted),
		BadgeSaved:   lipgloss.NewStyle().Foreground(p.Secondary),
		BadgeEditing: lipgloss.NewStyle().Foreground(p.Warning),

		ContentBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),
		HelpBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Padding(0, 1),
	}
}

// ForTheme builds styles for a theme name. Unknown names use the default theme.
func ForTheme(name string) *Styles {
	return New(GetPalette(ThemeName(name)))
}

// Chart returns the chart palette of these styles.
func (s *Styles) Chart() chart.Palette {
	return s.Palette.ChartPalette()
}
