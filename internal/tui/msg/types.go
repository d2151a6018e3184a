package msg

import (
	"github.com/Iron-Ham/lifespan/internal/config"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

// ProfileDoneMsg carries the outcome of profile creation.
type ProfileDoneMsg struct {
	Resp wizard.ProfileResponse
}

// SurvivalSettleMsg fires when a survival debounce window closes. Only the
// newest token turns into a request.
type SurvivalSettleMsg struct {
	Token uint64
}

// SurvivalDoneMsg carries a survival recompute.
type SurvivalDoneMsg struct {
	Resp wizard.SurvivalResponse
}

// RefreshDoneMsg carries an activity page refresh.
type RefreshDoneMsg struct {
	Step   wizard.Step
	Result wizard.RefreshResult
}

// MutationDoneMsg carries an activity write and its follow-up refresh.
type MutationDoneMsg struct {
	Step   wizard.Step
	Result wizard.MutationResult
}

// TotalDoneMsg carries the total overview fetch.
type TotalDoneMsg struct {
	Resp wizard.TotalResponse
}

// ConfigReloadedMsg is sent when the config file changed on disk and validated.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ErrMsg wraps an error to be displayed in the status bar.
type ErrMsg struct {
	Err error
}
