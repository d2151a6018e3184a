package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Iron-Ham/lifespan/internal/chart"
	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/tui/view"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

// View renders the wizard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(view.RenderTabs(m.styles, view.HeaderState{
		Current: m.step,
		Open:    func(s wizard.Step) bool { return m.ctrl.Gate(s) == nil },
	}))
	b.WriteString("\n\n")
	b.WriteString(view.RenderTitle(m.styles, m.step, m.subtitle()))
	b.WriteString("\n")
	b.WriteString(m.styles.ContentBox.Render(m.renderBody()))

	status := view.StatusState{Info: m.info, Err: m.err}
	if m.loading() {
		status.Loading = m.spinner.View()
	}
	if line := view.RenderStatus(m.styles, status); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.HelpBar.Render(m.help.View(m.keys.HelpFor(m.inputMode()))))
	return b.String()
}

func (m Model) subtitle() string {
	user, ok := m.ctrl.User()
	if !ok {
		return "How is the rest of your life spent?"
	}
	return fmt.Sprintf("Age %d, expecting %d: %s remaining", user.Age, user.LifeExpectancy, chart.FormatYears(user.RemainingYears()))
}

func (m Model) renderBody() string {
	switch m.step {
	case wizard.StepProfile:
		return m.renderProfile()
	case wizard.StepSurvival:
		return m.renderSurvival()
	case wizard.StepMaintenance, wizard.StepLeakage:
		return m.renderActivity()
	case wizard.StepTotal:
		return m.renderTotal()
	default:
		return ""
	}
}

func (m Model) renderProfile() string {
	errs := make([]string, 2)
	var verr *errors.ValidationError
	if errors.As(m.profile.Err(), &verr) {
		if verr.Field == "age" {
			errs[0] = verr.Message()
		} else {
			errs[1] = verr.Message()
		}
	}
	return view.RenderFields(m.styles, m.profileForm.fields(errs))
}

func (m Model) renderSurvival() string {
	errs := make([]string, len(wizard.Fields))
	for i, f := range wizard.Fields {
		if msg, ok := m.parseErrs[f]; ok {
			errs[i] = msg
		} else if err := m.survival.FieldErr(f); err != nil {
			errs[i] = errors.UserMessage(err)
		}
	}

	var b strings.Builder
	b.WriteString(view.RenderFields(m.styles, m.survivalForm.fields(errs)))

	if result, ok := m.survival.Result(); ok {
		b.WriteString("\n\n")
		b.WriteString(view.RenderChart(m.styles, view.ChartState{
			Segments:  chart.LevelSegments(result, nil, "Free"),
			Threshold: m.cfg.Chart.LevelThreshold,
			Width:     m.chartWidth(),
		}))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Free time: %s", chart.FormatYears(result.FreeYears))))
	} else {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Muted.Render("Fill in your daily hours to see where your time goes."))
	}
	return b.String()
}

func (m Model) renderActivity() string {
	s := m.activityStep(m.step)
	af := m.activity[m.step]
	if s == nil || af == nil {
		return ""
	}

	var b strings.Builder
	if msg := s.PageMessage(); msg != "" {
		b.WriteString(m.styles.Error.Render(msg))
		b.WriteString("\n\n")
	}
	if s.Degraded() {
		b.WriteString(m.styles.Warning.Render("Activity details unavailable; showing the summary only."))
		b.WriteString("\n\n")
	}

	if s.Mode() == wizard.ModeSummary {
		title := "Maintenance"
		if m.step == wizard.StepLeakage {
			title = "Leakage"
		}
		b.WriteString(view.RenderItems(m.styles, title, s.Items()))
	} else {
		entries := s.Entries()
		rows := make([]view.EntryRow, len(entries))
		for i, e := range entries {
			hours := e.Server
			if e.State != wizard.Saved {
				hours = e.Local
			}
			rows[i] = view.EntryRow{
				Label:    e.Label,
				State:    e.State,
				Hours:    hours,
				Years:    s.PreviewYears(e.Label),
				Selected: i == af.cursor,
			}
		}
		b.WriteString(view.RenderEntries(m.styles, rows))
		b.WriteString("\n\n")

		var inline []string
		if err := s.InlineErr(); err != nil {
			inline = []string{"", errors.UserMessage(err)}
		}
		b.WriteString(view.RenderFields(m.styles, af.fields(inline)))
		if preview := m.formPreview(); preview > 0 {
			b.WriteString("\n")
			b.WriteString(m.styles.Muted.Render("≈ " + chart.FormatYears(preview) + " of your remaining life"))
		}
	}

	if segs := s.ChartSegments(); len(segs) > 0 {
		b.WriteString("\n\n")
		b.WriteString(view.RenderChart(m.styles, view.ChartState{
			Segments:  segs,
			Threshold: m.cfg.Chart.LevelThreshold,
			Width:     m.chartWidth(),
		}))
	}
	return b.String()
}

// formPreview estimates the years of the hours typed in the activity form.
func (m Model) formPreview() float64 {
	s := m.activityStep(m.step)
	af := m.activity[m.step]
	summary, ok := s.Summary()
	if !ok {
		return 0
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(af.value(fieldHours)), 64)
	if err != nil || hours <= 0 {
		return 0
	}
	return life.YearsFromWeeklyHours(hours, summary.RemainingYears())
}

func (m Model) renderTotal() string {
	if msg := m.total.PageMessage(); msg != "" {
		return m.styles.Error.Render(msg)
	}
	totals, ok := m.total.Totals()
	if !ok {
		return m.styles.Muted.Render("Loading your overview…")
	}

	var b strings.Builder
	b.WriteString(view.RenderChart(m.styles, view.ChartState{
		Segments:  totals.Segments(),
		Threshold: m.cfg.Chart.TotalThreshold,
		Width:     m.chartWidth(),
	}))
	b.WriteString("\n\n")
	b.WriteString(view.RenderTotals(m.styles, totals))
	return b.String()
}
