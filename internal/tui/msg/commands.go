package msg

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/lifespan/internal/remote"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

// Debounce returns a command that sends SurvivalSettleMsg after d. A zero
// delay settles on the next loop iteration.
func Debounce(d time.Duration, token uint64) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return SurvivalSettleMsg{Token: token} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return SurvivalSettleMsg{Token: token}
	})
}

// CreateProfile runs a profile request off the Update goroutine.
func CreateProfile(ctx context.Context, svc remote.Service, req wizard.ProfileRequest) tea.Cmd {
	return func() tea.Msg {
		return ProfileDoneMsg{Resp: req.Run(ctx, svc)}
	}
}

// ComputeSurvival runs a survival request.
func ComputeSurvival(ctx context.Context, svc remote.Service, req wizard.SurvivalRequest) tea.Cmd {
	return func() tea.Msg {
		return SurvivalDoneMsg{Resp: req.Run(ctx, svc)}
	}
}

// Refresh runs an activity page refresh for step.
func Refresh(ctx context.Context, svc remote.Service, step wizard.Step, req wizard.RefreshRequest) tea.Cmd {
	return func() tea.Msg {
		return RefreshDoneMsg{Step: step, Result: req.Run(ctx, svc)}
	}
}

// Mutate runs an activity write for step.
func Mutate(ctx context.Context, svc remote.Service, step wizard.Step, req wizard.MutationRequest) tea.Cmd {
	return func() tea.Msg {
		return MutationDoneMsg{Step: step, Result: req.Run(ctx, svc)}
	}
}

// FetchTotal runs the total overview fetch.
func FetchTotal(ctx context.Context, svc remote.Service, req wizard.TotalRequest) tea.Cmd {
	return func() tea.Msg {
		return TotalDoneMsg{Resp: req.Run(ctx, svc)}
	}
}
