package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lifespan/internal/chart"
	"github.com/Iron-Ham/lifespan/internal/config"
	"github.com/Iron-Ham/lifespan/internal/tui/styles"
	"github.com/Iron-Ham/lifespan/internal/tui/view"
)

// printer writes command output with the configured theme and chart settings.
type printer struct {
	w      io.Writer
	cfg    *config.Config
	styles *styles.Styles
}

func newPrinter(cmd *cobra.Command, cfg *config.Config) *printer {
	return &printer{
		w:      cmd.OutOrStdout(),
		cfg:    cfg,
		styles: styles.ForTheme(cfg.TUI.Theme),
	}
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) block(s string) {
	if s != "" {
		fmt.Fprintln(p.w, s)
	}
}

func (p *printer) chart(segments []chart.Segment, threshold float64) {
	width := p.cfg.Chart.Width
	if width <= 0 {
		width = 60
	}
	p.block(view.RenderChart(p.styles, view.ChartState{
		Segments:  segments,
		Threshold: threshold,
		Width:     width,
	}))
}
