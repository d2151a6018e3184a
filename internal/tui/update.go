package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/tui/keymap"
	tuimsg "github.com/Iron-Ham/lifespan/internal/tui/msg"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

const (
	msgNeedSurvival = "Compute your survival time first."
	msgFrozen       = "Saved. Press ctrl+e to edit it."
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tuimsg.ProfileDoneMsg:
		m.profile.Apply(msg.Resp)
		if msg.Resp.Err != nil {
			m.logger.Warn("profile creation failed", "error", msg.Resp.Err)
			m.err = errors.UserMessage(msg.Resp.Err)
			return m, nil
		}
		m.startSession(msg.Resp.User)
		m.logger.Info("profile created", "age", msg.Resp.User.Age, "life_expectancy", msg.Resp.User.LifeExpectancy)
		m.info = "Profile created."
		return m.enter(wizard.StepSurvival)

	case tuimsg.SurvivalSettleMsg:
		if m.survival == nil {
			return m, nil
		}
		req, ok := m.survival.Settle(msg.Token)
		if !ok {
			return m, nil
		}
		return m, tuimsg.ComputeSurvival(m.ctx, m.svc, req)

	case tuimsg.SurvivalDoneMsg:
		if m.survival == nil {
			return m, nil
		}
		if !m.survival.Complete(msg.Resp) {
			m.logger.Debug("discarded stale survival response", "seq", msg.Resp.Seq, "issued", m.survival.Issued())
			return m, nil
		}
		if msg.Resp.Err != nil {
			m.logger.Warn("survival recompute failed", "error", msg.Resp.Err)
			m.err = errors.UserMessage(msg.Resp.Err)
		} else {
			m.err = ""
		}
		return m, nil

	case tuimsg.RefreshDoneMsg:
		if s := m.activityStep(msg.Step); s != nil {
			s.ApplyRefresh(msg.Result)
			if msg.Result.ListErr != nil {
				m.logger.WithStep(msg.Step.String()).Warn("activity list unavailable", "error", msg.Result.ListErr)
			}
			m.clampCursor(msg.Step)
		}
		return m, nil

	case tuimsg.MutationDoneMsg:
		s := m.activityStep(msg.Step)
		if s == nil {
			return m, nil
		}
		s.ApplyMutation(msg.Result)
		if msg.Result.Err != nil {
			m.logger.WithStep(msg.Step.String()).Warn("activity write failed", "label", msg.Result.Request.Label, "error", msg.Result.Err)
			return m, nil
		}
		m.info = "Saved " + msg.Result.Request.Label + "."
		if af := m.activity[msg.Step]; af != nil {
			af.bound = ""
			af.setValue(fieldLabel, "")
			af.setValue(fieldHours, "")
			af.setFocus(fieldLabel)
		}
		m.clampCursor(msg.Step)
		return m, nil

	case tuimsg.TotalDoneMsg:
		if m.total != nil {
			m.total.Apply(msg.Resp)
		}
		return m, nil

	case tuimsg.ConfigReloadedMsg:
		if msg.Config != nil {
			m.cfg = msg.Config
			m.applyTheme(msg.Config.TUI.Theme)
			m.info = "Configuration reloaded."
		}
		return m, nil

	case tuimsg.ErrMsg:
		m.err = errors.UserMessage(msg.Err)
		return m, nil
	}

	// Cursor blink and anything else the focused input wants.
	if f := m.currentForm(); f != nil {
		cmd, _ := f.update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeypress resolves a key to a command in the current input mode. Keys
// without a binding go to the focused field.
func (m Model) handleKeypress(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keys.GetBinding(k, m.inputMode())
	if !ok {
		return m.handleInput(k)
	}

	switch cmd {
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	m.info = ""
	m.err = ""

	switch cmd {
	case keymap.CmdNextStep:
		return m.goNext()
	case keymap.CmdPrevStep:
		return m.enter(m.ctrl.Prev(m.step))
	case keymap.CmdNextField:
		if f := m.currentForm(); f != nil {
			f.next()
		}
	case keymap.CmdPrevField:
		if f := m.currentForm(); f != nil {
			f.prev()
		}
	case keymap.CmdSelectNext:
		m.moveSelection(1)
	case keymap.CmdSelectPrev:
		m.moveSelection(-1)
	case keymap.CmdSubmit:
		return m.submit()
	case keymap.CmdEdit:
		m.beginEdit()
	case keymap.CmdCancel:
		m.cancelEdit()
	case keymap.CmdToggleMode:
		if s := m.activityStep(m.step); s != nil {
			s.ToggleMode()
		}
	case keymap.CmdDeactivate:
		return m.deactivate()
	case keymap.CmdRetry:
		return m.retry()
	}
	return m, nil
}

// handleInput feeds a key to the focused field and reacts to value changes.
func (m Model) handleInput(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.currentForm()
	if f == nil {
		return m, nil
	}
	if f.focus == fieldHours && m.frozen() {
		m.err = msgFrozen
		return m, nil
	}
	cmd, changed := f.update(k)
	if !changed {
		return m, cmd
	}

	switch m.step {
	case wizard.StepSurvival:
		return m, tea.Batch(cmd, m.editSurvival(f.focus))
	case wizard.StepMaintenance, wizard.StepLeakage:
		m.editActivity()
	}
	return m, cmd
}

// frozen reports whether the activity form holds a saved row picked from the
// list. Its hours stay read-only until the row enters edit mode. A label typed
// into a blank form is a re-add and never frozen.
func (m Model) frozen() bool {
	s := m.activityStep(m.step)
	af := m.activity[m.step]
	if s == nil || af == nil || af.bound == "" {
		return false
	}
	if strings.TrimSpace(af.value(fieldLabel)) != af.bound {
		return false
	}
	e, ok := s.Entry(af.bound)
	return ok && e.State == wizard.Saved
}

// editSurvival records the focused survival field and schedules a debounced
// recompute. Blank counts as zero.
func (m *Model) editSurvival(i int) tea.Cmd {
	field := wizard.Fields[i]
	text := strings.TrimSpace(m.survivalForm.value(i))
	value := 0.0
	if text != "" {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			m.parseErrs[field] = "Enter a number."
			return nil
		}
		value = v
	}
	delete(m.parseErrs, field)

	token, err := m.survival.Edit(field, value)
	if err != nil {
		return nil
	}
	return tuimsg.Debounce(m.cfg.Wizard.Debounce(), token)
}

// editActivity mirrors the hours field into the book when the label names a
// known entry, so the preview and chart follow the typing.
func (m *Model) editActivity() {
	s := m.activityStep(m.step)
	af := m.activity[m.step]
	if s == nil || af == nil {
		return
	}
	if af.focus == fieldLabel {
		af.bound = ""
	}
	if af.focus != fieldHours {
		return
	}
	label := strings.TrimSpace(af.value(fieldLabel))
	e, ok := s.Entry(label)
	if !ok || e.State == wizard.Saved {
		return
	}
	_ = s.SetLocalText(label, strings.TrimSpace(af.value(fieldHours)))
}

// goNext moves forward through the controller's gates.
func (m Model) goNext() (tea.Model, tea.Cmd) {
	to, err := m.ctrl.Next(m.step)
	if err != nil {
		if errors.Is(err, errors.ErrNoSurvivalResult) {
			m.err = msgNeedSurvival
		} else {
			m.err = errors.UserMessage(err)
		}
		return m, nil
	}
	if to == m.step {
		return m, nil
	}
	return m.enter(to)
}

// enter shows step and starts its fetch. Activity pages and the total fetch on
// every entry.
func (m Model) enter(step wizard.Step) (tea.Model, tea.Cmd) {
	if err := m.ctrl.Gate(step); err != nil {
		m.err = errors.UserMessage(err)
		return m, nil
	}
	changed := step != m.step
	m.step = step
	if changed {
		m.logger.WithStep(step.String()).Info("step entered")
	}
	return m, m.fetch()
}

// fetch starts the load of the page on screen, if it has one and none is running.
func (m *Model) fetch() tea.Cmd {
	if s := m.activityStep(m.step); s != nil {
		req, err := s.BeginRefresh()
		if err != nil {
			return nil
		}
		return tuimsg.Refresh(m.ctx, m.svc, m.step, req)
	}
	if m.step == wizard.StepTotal && m.total != nil {
		req, err := m.total.BeginFetch()
		if err != nil {
			return nil
		}
		return tuimsg.FetchTotal(m.ctx, m.svc, req)
	}
	return nil
}

// submit commits the form of the page on screen.
func (m Model) submit() (tea.Model, tea.Cmd) {
	switch m.step {
	case wizard.StepProfile:
		req, err := m.profile.Prepare(m.profileForm.value(0), m.profileForm.value(1))
		if err != nil {
			if !errors.IsValidation(err) {
				m.err = errors.UserMessage(err)
			}
			return m, nil
		}
		return m, tuimsg.CreateProfile(m.ctx, m.svc, req)

	case wizard.StepSurvival:
		if len(m.parseErrs) > 0 {
			return m, nil
		}
		return m, tuimsg.ComputeSurvival(m.ctx, m.svc, m.survival.SubmitNow())

	case wizard.StepMaintenance, wizard.StepLeakage:
		if m.frozen() {
			m.err = msgFrozen
			return m, nil
		}
		s := m.activityStep(m.step)
		af := m.activity[m.step]
		hours, err := strconv.ParseFloat(strings.TrimSpace(af.value(fieldHours)), 64)
		if err != nil {
			hours = 0
		}
		req, err := s.PrepareSave(af.value(fieldLabel), hours)
		if err != nil {
			if !errors.IsValidation(err) {
				m.err = errors.UserMessage(err)
			}
			return m, nil
		}
		return m, tuimsg.Mutate(m.ctx, m.svc, m.step, req)
	}
	return m, nil
}

// retry repeats the last failed load of the page on screen.
func (m Model) retry() (tea.Model, tea.Cmd) {
	if m.step == wizard.StepSurvival && m.survival != nil {
		return m, tuimsg.ComputeSurvival(m.ctx, m.svc, m.survival.SubmitNow())
	}
	return m, m.fetch()
}

// deactivate turns off the selected maintenance activity.
func (m Model) deactivate() (tea.Model, tea.Cmd) {
	if m.step != wizard.StepMaintenance || m.maintenance == nil {
		return m, nil
	}
	e, ok := m.selected()
	if !ok {
		return m, nil
	}
	req, err := m.maintenance.PrepareDeactivate(e.Label)
	if err != nil {
		m.err = errors.UserMessage(err)
		return m, nil
	}
	return m, tuimsg.Mutate(m.ctx, m.svc, m.step, req)
}

// selected returns the highlighted entry of the activity page on screen.
func (m Model) selected() (wizard.Entry, bool) {
	s := m.activityStep(m.step)
	af := m.activity[m.step]
	if s == nil || af == nil {
		return wizard.Entry{}, false
	}
	entries := s.Entries()
	if af.cursor < 0 || af.cursor >= len(entries) {
		return wizard.Entry{}, false
	}
	return entries[af.cursor], true
}

// moveSelection moves the activity cursor and loads the entry into the form.
// Pages without a list move between fields instead.
func (m *Model) moveSelection(delta int) {
	s := m.activityStep(m.step)
	af := m.activity[m.step]
	if s == nil || af == nil {
		if f := m.currentForm(); f != nil {
			f.setFocus(f.focus + delta)
		}
		return
	}
	n := len(s.Entries())
	if n == 0 {
		return
	}
	af.cursor = ((af.cursor+delta)%n + n) % n
	e, _ := m.selected()
	af.bound = e.Label
	af.setValue(fieldLabel, e.Label)
	af.setValue(fieldHours, formatHours(e))
	af.setFocus(fieldHours)
}

// beginEdit unfreezes the selected saved entry.
func (m *Model) beginEdit() {
	s := m.activityStep(m.step)
	e, ok := m.selected()
	if s == nil || !ok {
		return
	}
	if err := s.BeginEdit(e.Label); err != nil {
		m.err = errors.UserMessage(err)
		return
	}
	af := m.activity[m.step]
	af.bound = e.Label
	af.setValue(fieldLabel, e.Label)
	af.setValue(fieldHours, formatHours(e))
	af.setFocus(fieldHours)
}

// cancelEdit refreezes the selected entry and clears the form.
func (m *Model) cancelEdit() {
	s := m.activityStep(m.step)
	e, ok := m.selected()
	if s == nil || !ok {
		return
	}
	if e.State == wizard.Editing {
		s.CancelEdit(e.Label)
	}
	af := m.activity[m.step]
	af.bound = ""
	af.setValue(fieldLabel, "")
	af.setValue(fieldHours, "")
	af.setFocus(fieldLabel)
}

func (m *Model) clampCursor(step wizard.Step) {
	s := m.activityStep(step)
	af := m.activity[step]
	if s == nil || af == nil {
		return
	}
	af.cursor = min(af.cursor, max(len(s.Entries())-1, 0))
}

// formatHours is the hours/week to prefill for an entry, blank when unknown.
func formatHours(e wizard.Entry) string {
	h := e.Server
	if e.State != wizard.Saved && e.Local > 0 {
		h = e.Local
	}
	if h <= 0 {
		return ""
	}
	return strconv.FormatFloat(h, 'f', -1, 64)
}
