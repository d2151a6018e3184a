package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/lifespan/internal/config"
	tuimsg "github.com/Iron-Ham/lifespan/internal/tui/msg"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
}

// New creates a new TUI application
func New(ctx context.Context, opts Options) *App {
	return &App{model: NewModel(ctx, opts)}
}

// Run starts the TUI application and blocks until the user quits.
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		if _, ok := <-sigChan; ok && a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()
	return err
}

// Send delivers msg to the running program. It is a no-op before Run.
func (a *App) Send(msg tea.Msg) {
	if a.program != nil {
		a.program.Send(msg)
	}
}

// Reload hands a re-read configuration to the running wizard.
func (a *App) Reload(cfg *config.Config) {
	a.Send(tuimsg.ConfigReloadedMsg{Config: cfg})
}
