package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/lifespan/internal/config"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/logging"
	"github.com/Iron-Ham/lifespan/internal/remote"
	"github.com/Iron-Ham/lifespan/internal/tui/keymap"
	"github.com/Iron-Ham/lifespan/internal/tui/styles"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

// Options configures a Model.
type Options struct {
	Service remote.Service
	Config  *config.Config
	Logger  *logging.Logger
	Keymap  *keymap.Keymap
}

// activityForm is the edit form of a maintenance or leakage page: a label and
// hours/week, plus the selected row of the activity list.
type activityForm struct {
	*form
	cursor int
	// bound is the label of the list row loaded into the form, if any.
	bound string
}

const (
	fieldLabel = 0
	fieldHours = 1
)

// Model is the bubbletea model of the wizard. View-models are created lazily:
// the step pages after the profile exist only once a user does.
type Model struct {
	ctx    context.Context
	svc    remote.Service
	cfg    *config.Config
	logger *logging.Logger

	keys     *keymap.Keymap
	styles   *styles.Styles
	help     help.Model
	spinner  spinner.Model
	showHelp bool

	ctrl *wizard.Controller
	step wizard.Step

	profile     *wizard.ProfileStep
	profileForm *form

	survival     *wizard.SurvivalStep
	survivalForm *form
	// parseErrs holds survival fields whose text is not a number.
	parseErrs map[wizard.Field]string

	maintenance *wizard.MaintenanceStep
	leakage     *wizard.LeakageStep
	activity    map[wizard.Step]*activityForm

	total *wizard.TotalStep

	width    int
	height   int
	info     string
	err      string
	quitting bool
}

// NewModel creates the wizard on the profile page.
func NewModel(ctx context.Context, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	keys := opts.Keymap
	if keys == nil {
		keys = keymap.DefaultKeymap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ctrl := wizard.NewController()
	profile := wizard.NewProfileStep(ctrl, cfg.Wizard.DefaultLifeExpectancy)

	m := Model{
		ctx:         ctx,
		svc:         opts.Service,
		cfg:         cfg,
		logger:      logger,
		keys:        keys,
		help:        help.New(),
		spinner:     sp,
		ctrl:        ctrl,
		step:        wizard.StepProfile,
		profile:     profile,
		profileForm: newForm([]string{"Age", "Life expectancy"}, []string{"e.g. 25", strconv.Itoa(profile.DefaultExpectancy())}),
		parseErrs:   make(map[wizard.Field]string),
		activity:    make(map[wizard.Step]*activityForm),
	}
	m.applyTheme(cfg.TUI.Theme)
	return m
}

// Init starts the cursor blink and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Step returns the page on screen.
func (m Model) Step() wizard.Step {
	return m.step
}

// Controller returns the session controller.
func (m Model) Controller() *wizard.Controller {
	return m.ctrl
}

func (m *Model) applyTheme(theme string) {
	m.styles = styles.ForTheme(theme)
	m.spinner.Style = m.styles.Muted
	m.help.Styles.ShortKey = m.styles.HelpKey
	m.help.Styles.FullKey = m.styles.HelpKey
	m.help.Styles.ShortDesc = m.styles.Muted
	m.help.Styles.FullDesc = m.styles.Muted
}

// startSession creates the per-user view-models once the profile exists.
func (m *Model) startSession(user life.UserContext) {
	m.logger = m.logger.WithUser(user.ID)
	m.survival = wizard.NewSurvivalStep(user.ID, m.ctrl.PublishSurvival)

	labels := make([]string, len(wizard.Fields))
	placeholders := make([]string, len(wizard.Fields))
	for i, f := range wizard.Fields {
		labels[i] = f.Label()
		placeholders[i] = "0"
	}
	m.survivalForm = newForm(labels, placeholders)

	m.maintenance = wizard.NewMaintenanceStep(user.ID)
	m.leakage = wizard.NewLeakageStep(user.ID)
	m.total = wizard.NewTotalStep(user.ID)

	for _, s := range []wizard.Step{wizard.StepMaintenance, wizard.StepLeakage} {
		m.activity[s] = &activityForm{form: newForm([]string{"Activity", "Hours/week"}, []string{"label", "0"})}
	}
}

// activityStep returns the view-model of a maintenance or leakage page.
func (m Model) activityStep(s wizard.Step) *wizard.ActivityStep {
	switch {
	case s == wizard.StepMaintenance && m.maintenance != nil:
		return m.maintenance.ActivityStep
	case s == wizard.StepLeakage && m.leakage != nil:
		return m.leakage.ActivityStep
	default:
		return nil
	}
}

// currentForm returns the form of the page on screen, or nil on read-only pages.
func (m Model) currentForm() *form {
	switch m.step {
	case wizard.StepProfile:
		return m.profileForm
	case wizard.StepSurvival:
		return m.survivalForm
	case wizard.StepMaintenance, wizard.StepLeakage:
		if af := m.activity[m.step]; af != nil {
			return af.form
		}
	}
	return nil
}

// inputMode selects the key bindings: read-only pages get single-letter keys.
func (m Model) inputMode() keymap.Mode {
	if m.step == wizard.StepTotal {
		return keymap.ModeSummary
	}
	if s := m.activityStep(m.step); s != nil && s.Mode() == wizard.ModeSummary {
		return keymap.ModeSummary
	}
	return keymap.ModeForm
}

// loading reports whether the page on screen waits for the service.
func (m Model) loading() bool {
	switch m.step {
	case wizard.StepProfile:
		return m.profile.Loading()
	case wizard.StepSurvival:
		return m.survival != nil && m.survival.State() == wizard.PendingRecompute
	case wizard.StepTotal:
		return m.total != nil && m.total.Loading()
	default:
		s := m.activityStep(m.step)
		return s != nil && s.Loading()
	}
}

// chartWidth is the configured width, or the terminal width minus the content frame.
func (m Model) chartWidth() int {
	if m.cfg.Chart.Width > 0 {
		return m.cfg.Chart.Width
	}
	return max(m.width-8, 20)
}
