package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lifespan/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the wizard and the chart output.

Custom themes are YAML files in $XDG_CONFIG_HOME/lifespan/themes/. Besides the
interface colors they may set a color per chart segment (sleep, work, commute,
routine, maintenance, leakage, survival, free).`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	Args:  cobra.NoArgs,
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a theme to YAML format for customization or sharing.

If no output file is specified, the YAML is printed to stdout.

Examples:
  lifespan config theme export nord
  lifespan config theme export dracula my-theme.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name>",
	Short: "Show the colors of a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

var themePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the custom themes directory path",
	Args:  cobra.NoArgs,
	RunE:  runThemePath,
}

var themeCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new custom theme from the default template",
	Long: `Create a new custom theme file in your themes directory.

Example:
  lifespan config theme create sepia
  # Creates $XDG_CONFIG_HOME/lifespan/themes/sepia.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeCreate,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	themeCmd.AddCommand(themePathCmd)
	themeCmd.AddCommand(themeCreateCmd)
	configCmd.AddCommand(themeCmd)
}

func isBuiltinTheme(name string) bool {
	return slices.Contains(styles.BuiltinThemes(), name)
}

// lookupTheme discovers custom themes and reports why name is unusable, if it is.
func lookupTheme(name string) error {
	_, loadErrs := styles.DiscoverCustomThemes()
	if styles.IsValidTheme(name) {
		return nil
	}
	for _, err := range loadErrs {
		errStr := err.Error()
		if strings.HasPrefix(errStr, name+".yaml:") || strings.HasPrefix(errStr, name+".yml:") {
			return fmt.Errorf("theme '%s' exists but failed to load: %v\n\nFix the errors in your theme file and try again", name, err)
		}
	}
	return fmt.Errorf("unknown theme: %s\n\nRun 'lifespan config theme list' to see available themes.\nCustom themes should be placed in: %s", name, styles.ThemesDir())
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	_, loadErrs := styles.DiscoverCustomThemes()
	if len(loadErrs) > 0 {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "Warning: Some themes failed to load:")
		for _, err := range loadErrs {
			fmt.Fprintf(errOut, "  - %v\n", err)
		}
		fmt.Fprintln(errOut)
	}

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		fmt.Fprintf(out, "  - %s\n", name)
	}

	if names := styles.CustomThemeNames(); len(names) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Custom themes:")
		for _, name := range names {
			theme := styles.GetCustomTheme(styles.ThemeName(name))
			if theme != nil && theme.Author != "" {
				fmt.Fprintf(out, "  - %s (by %s)\n", name, theme.Author)
			} else {
				fmt.Fprintf(out, "  - %s\n", name)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Custom themes directory: %s\n", styles.ThemesDir())
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := lookupTheme(name); err != nil {
		return err
	}

	data, err := styles.ExportTheme(styles.ThemeName(name))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", outputPath)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := lookupTheme(name); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Theme: %s\n\n", name)
	if isBuiltinTheme(name) {
		fmt.Fprintln(out, "Type: Built-in")
	} else {
		fmt.Fprintln(out, "Type: Custom")
		if theme := styles.GetCustomTheme(styles.ThemeName(name)); theme != nil {
			if theme.Author != "" {
				fmt.Fprintf(out, "Author: %s\n", theme.Author)
			}
			if theme.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", theme.Description)
			}
		}
	}

	p := styles.GetPalette(styles.ThemeName(name))
	fmt.Fprintln(out, "\nBase Colors:")
	for _, c := range []struct{ label, value string }{
		{"Primary", string(p.Primary)},
		{"Secondary", string(p.Secondary)},
		{"Warning", string(p.Warning)},
		{"Error", string(p.Error)},
		{"Muted", string(p.Muted)},
		{"Surface", string(p.Surface)},
		{"Text", string(p.Text)},
		{"Border", string(p.Border)},
	} {
		fmt.Fprintf(out, "  %-12s %s\n", c.label+":", c.value)
	}

	fmt.Fprintln(out, "\nChart Colors:")
	for _, c := range []struct{ label, value string }{
		{"Sleep", string(p.Chart.Sleep)},
		{"Work", string(p.Chart.Work)},
		{"Commute", string(p.Chart.Commute)},
		{"Routine", string(p.Chart.Routine)},
		{"Maintenance", string(p.Chart.Maintenance)},
		{"Leakage", string(p.Chart.Leakage)},
		{"Survival", string(p.Chart.Survival)},
		{"Free", string(p.Chart.Free)},
	} {
		fmt.Fprintf(out, "  %-12s %s\n", c.label+":", c.value)
	}
	return nil
}

func runThemePath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	themesDir := styles.ThemesDir()
	fmt.Fprintln(out, themesDir)

	if _, err := os.Stat(themesDir); os.IsNotExist(err) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Note: This directory does not exist yet.")
		fmt.Fprintln(out, "It will be created when you add your first custom theme.")
	}
	return nil
}

func runThemeCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	if name == "" {
		return fmt.Errorf("theme name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\:*?\"<>|") {
		return fmt.Errorf("theme name contains invalid characters")
	}
	if isBuiltinTheme(name) {
		return fmt.Errorf("cannot create custom theme with built-in name '%s'", name)
	}

	themePath := filepath.Join(styles.ThemesDir(), name+".yaml")
	if _, err := os.Stat(themePath); err == nil {
		return fmt.Errorf("theme '%s' already exists at %s", name, themePath)
	}

	p := styles.DefaultPalette()
	theme := &styles.ThemeFile{
		Name:        capitalizeFirst(name),
		Description: "A custom lifespan theme",
		Version:     "1",
		Colors: styles.ThemeColors{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Warning:   string(p.Warning),
			Error:     string(p.Error),
			Muted:     string(p.Muted),
			Surface:   string(p.Surface),
			Text:      string(p.Text),
			Border:    string(p.Border),
		},
	}
	if err := styles.SaveTheme(name, theme); err != nil {
		return fmt.Errorf("creating theme: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created new theme: %s\n\n", themePath)
	fmt.Fprintln(out, "Edit this file to customize your theme colors.")
	fmt.Fprintf(out, "To use it, run:\n  lifespan config set tui.theme %s\n", name)
	return nil
}

// capitalizeFirst capitalizes the first character of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
