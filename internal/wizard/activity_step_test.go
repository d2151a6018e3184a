package wizard

import (
	"context"
	"math"
	"testing"

	"github.com/Iron-Ham/lifespan/internal/chart"
	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/remote"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMaintenanceStep_ValidationSkipsService(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		hours   float64
		field   string
		wantMsg string
	}{
		{name: "blank label", label: "   ", hours: 3, field: "name", wantMsg: "Enter label and hours"},
		{name: "zero hours", label: "Yoga", hours: 0, field: "hours_per_week", wantMsg: "Enter hours/week > 0"},
		{name: "negative hours", label: "Yoga", hours: -2, field: "hours_per_week", wantMsg: "Enter hours/week > 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, user := session(t, 30, 80)
			svc.reset()
			m := NewMaintenanceStep(user.ID)

			err := m.Save(context.Background(), svc, tt.label, tt.hours)

			var v *errors.ValidationError
			if !errors.As(err, &v) {
				t.Fatalf("Save() error = %v, want validation error", err)
			}
			if v.Field != tt.field || v.Message() != tt.wantMsg {
				t.Errorf("error = %q on %q, want %q on %q", v.Message(), v.Field, tt.wantMsg, tt.field)
			}
			if m.InlineErr() == nil {
				t.Error("InlineErr() = nil")
			}
			if m.Loading() {
				t.Error("validation failure left the step loading")
			}
			if svc.Total() != 0 {
				t.Errorf("service saw %d calls, want 0", svc.Total())
			}
		})
	}
}

func TestLeakageStep_ValidationMessage(t *testing.T) {
	l := NewLeakageStep(1)
	_, err := l.PrepareSave("", 3)
	if got := errors.UserMessage(err); got != "Enter activity and hours/week" {
		t.Errorf("message = %q", got)
	}
	_, err = l.PrepareSave("Scrolling", 0)
	if got := errors.UserMessage(err); got != "Enter activity and hours/week" {
		t.Errorf("message = %q", got)
	}
}

func TestMaintenanceStep_SavePreset(t *testing.T) {
	svc, user := session(t, 30, 80)
	ctx := context.Background()
	m := NewMaintenanceStep(user.ID)

	if err := m.Refresh(ctx, svc); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if err := m.SetLocal("Exercising", 5); err != nil {
		t.Fatalf("SetLocal() error = %v", err)
	}
	if err := m.Save(ctx, svc, "Exercising", 5); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	e, _ := m.Entry("Exercising")
	if e.State != Saved || e.Server != 5 || e.ID == 0 || e.Source != life.SourcePreset {
		t.Errorf("entry = %+v, want saved preset with ID", e)
	}
	want := life.YearsFromWeeklyHours(5, 50)
	if !approx(e.Years, want) {
		t.Errorf("Years = %v, want %v", e.Years, want)
	}
	if err := m.SetLocal("Exercising", 7); !errors.Is(err, ErrFrozen) {
		t.Errorf("SetLocal() on saved entry = %v, want ErrFrozen", err)
	}
}

func TestMaintenanceStep_DuplicateLabelOverwrites(t *testing.T) {
	svc, user := session(t, 30, 80)
	ctx := context.Background()
	m := NewMaintenanceStep(user.ID)

	if err := m.Save(ctx, svc, "Reading", 3); err != nil {
		t.Fatalf("Save(3) error = %v", err)
	}
	if err := m.Save(ctx, svc, "  Reading ", 6); err != nil {
		t.Fatalf("Save(6) error = %v", err)
	}

	list, err := svc.ListMaintenance(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListMaintenance() error = %v", err)
	}
	var n int
	for _, a := range list {
		if a.Label == "Reading" {
			n++
			if a.HoursPerWeek != 6 {
				t.Errorf("hours = %v, want 6", a.HoursPerWeek)
			}
		}
	}
	if n != 1 {
		t.Errorf("found %d Reading rows, want 1", n)
	}

	items := m.Items()
	if len(items) != 1 || items[0].Label != "Reading" {
		t.Errorf("items = %+v, want one Reading", items)
	}
}

func TestMaintenanceStep_ToggleKeepsEdits(t *testing.T) {
	svc, user := session(t, 30, 80)
	ctx := context.Background()
	m := NewMaintenanceStep(user.ID)

	if err := m.Save(ctx, svc, "Reading", 3); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.BeginEdit("Reading"); err != nil {
		t.Fatalf("BeginEdit() error = %v", err)
	}
	if err := m.SetLocalText("Reading", "9"); err != nil {
		t.Fatalf("SetLocalText() error = %v", err)
	}
	if err := m.SetLocalText("Health care", "2.5"); err != nil {
		t.Fatalf("SetLocalText() error = %v", err)
	}

	if m.ToggleMode() != ModeSummary {
		t.Fatal("ToggleMode() did not switch to summary")
	}
	if m.ToggleMode() != ModeEdit {
		t.Fatal("ToggleMode() did not switch back to edit")
	}

	if e, _ := m.Entry("Reading"); e.State != Editing || e.Local != 9 {
		t.Errorf("Reading = %+v, want editing at 9", e)
	}
	if e, _ := m.Entry("Health care"); e.State != Unsaved || e.Local != 2.5 {
		t.Errorf("Health care = %+v, want unsaved at 2.5", e)
	}
}

func TestMaintenanceStep_PreviewMatchesCommit(t *testing.T) {
	svc, user := session(t, 25, 85)
	ctx := context.Background()
	m := NewMaintenanceStep(user.ID)

	if err := m.Save(ctx, svc, "Reading", 3); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.BeginEdit("Reading"); err != nil {
		t.Fatalf("BeginEdit() error = %v", err)
	}
	if err := m.SetLocal("Reading", 7.5); err != nil {
		t.Fatalf("SetLocal() error = %v", err)
	}
	preview := m.PreviewYears("Reading")

	if err := m.Save(ctx, svc, "Reading", 7.5); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	committed, ok := life.YearsFor(m.Items(), "Reading")
	if !ok {
		t.Fatal("Reading missing from summary")
	}
	if !approx(preview, committed) {
		t.Errorf("preview %v != committed %v", preview, committed)
	}
	if got := m.PreviewYears("Reading"); !approx(got, committed) {
		t.Errorf("PreviewYears() after commit = %v, want %v", got, committed)
	}
}

func TestMaintenanceStep_ChartSegments(t *testing.T) {
	svc, user := session(t, 30, 80)
	ctx := context.Background()
	m := NewMaintenanceStep(user.ID)

	if m.ChartSegments() != nil {
		t.Error("ChartSegments() before refresh should be nil")
	}
	if err := m.Save(ctx, svc, "Reading", 3); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	segs := m.ChartSegments()
	if len(segs) != 6 {
		t.Fatalf("got %d segments, want 6", len(segs))
	}
	if segs[4].Key != chart.KeyMaintenance || segs[4].Label != "Reading" {
		t.Errorf("segs[4] = %+v, want the Reading item", segs[4])
	}
	last := segs[len(segs)-1]
	if last.Label != "Free" {
		t.Errorf("last label = %q, want Free", last.Label)
	}
	summary, _ := m.Summary()
	if !approx(last.Value, summary.Adjusted.FreeYears) {
		t.Errorf("free = %v, want adjusted %v", last.Value, summary.Adjusted.FreeYears)
	}
}

func TestMaintenanceStep_Deactivate(t *testing.T) {
	svc, user := session(t, 30, 80)
	ctx := context.Background()
	m := NewMaintenanceStep(user.ID)

	if err := m.Deactivate(ctx, svc, "Exercising"); !errors.IsValidation(err) {
		t.Errorf("Deactivate(unsaved) error = %v, want validation error", err)
	}

	if err := m.Save(ctx, svc, "Exercising", 4); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := m.Deactivate(ctx, svc, "Exercising"); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}

	e, _ := m.Entry("Exercising")
	if e.State != Unsaved {
		t.Errorf("state = %v, want unsaved after deactivate", e.State)
	}
	if len(m.Items()) != 0 {
		t.Errorf("items = %+v, want none", m.Items())
	}
	if svc.Calls(remote.OpUpdateMaintenance) != 1 {
		t.Errorf("update calls = %d, want 1", svc.Calls(remote.OpUpdateMaintenance))
	}

	// Adding it again re-activates the same label.
	if err := m.Save(ctx, svc, "Exercising", 2); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if e, _ := m.Entry("Exercising"); e.State != Saved || e.Server != 2 {
		t.Errorf("entry = %+v, want saved at 2", e)
	}
}

func TestMaintenanceStep_ListFailureDegrades(t *testing.T) {
	svc, user := session(t, 30, 80)
	ctx := context.Background()

	if _, err := svc.AddMaintenance(ctx, user.ID, "Reading", 3); err != nil {
		t.Fatalf("AddMaintenance() error = %v", err)
	}
	svc.listErr = errors.NewRemoteError(remote.OpListMaintenance, 500, "")

	m := NewMaintenanceStep(user.ID)
	if err := m.Refresh(ctx, svc); err != nil {
		t.Fatalf("Refresh() error = %v, want summary to load", err)
	}
	if !m.Degraded() {
		t.Error("Degraded() = false after list failure")
	}
	if m.PageMessage() != "" {
		t.Errorf("PageMessage() = %q, want none", m.PageMessage())
	}

	e, _ := m.Entry("Reading")
	if e.State != Saved || e.ID != 0 {
		t.Errorf("entry = %+v, want saved from the summary without ID", e)
	}
	if err := m.Deactivate(ctx, svc, "Reading"); !errors.IsValidation(err) {
		t.Errorf("Deactivate() without ID error = %v, want validation error", err)
	}
}

func TestActivityStep_SummaryFailure(t *testing.T) {
	svc, _ := session(t, 30, 80)
	ctx := context.Background()

	// A fresh user has no survival result yet.
	user, err := svc.CreateProfile(ctx, 40, 80)
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	l := NewLeakageStep(user.ID)
	if err := l.Refresh(ctx, svc); err == nil {
		t.Fatal("Refresh() error = nil, want summary failure")
	}
	if l.PageErr() == nil || l.PageMessage() == "" {
		t.Errorf("PageMessage() = %q, want a page-level message", l.PageMessage())
	}
	if _, ok := l.Summary(); ok {
		t.Error("Summary() reported a summary after failure")
	}
}

func TestActivityStep_PageMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "detail", err: errors.NewRemoteError(remote.OpFetchSummary, 400, "Level1 result not found."), want: "Level1 result not found."},
		{name: "no detail", err: errors.NewRemoteError(remote.OpFetchSummary, 500, ""), want: "Failed to load summary"},
		{name: "transport", err: errors.NewTransportError(remote.OpFetchSummary, context.DeadlineExceeded), want: "Failed to load summary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMaintenanceStep(1)
			m.ApplyRefresh(RefreshResult{SummaryErr: tt.err})
			if got := m.PageMessage(); got != tt.want {
				t.Errorf("PageMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActivityStep_ConcurrentMutationBusy(t *testing.T) {
	l := NewLeakageStep(1)

	req, err := l.PrepareSave("Scrolling", 7)
	if err != nil {
		t.Fatalf("PrepareSave() error = %v", err)
	}
	if _, err := l.PrepareSave("Gaming", 3); !errors.Is(err, errors.ErrBusy) {
		t.Errorf("second PrepareSave() error = %v, want ErrBusy", err)
	}
	if _, err := l.BeginRefresh(); !errors.Is(err, errors.ErrBusy) {
		t.Errorf("BeginRefresh() while saving = %v, want ErrBusy", err)
	}

	l.ApplyMutation(MutationResult{Request: req, Err: errors.NewRemoteError(remote.OpAddLeakage, 400, "bad")})
	if l.Loading() {
		t.Error("step still loading after the mutation applied")
	}
	if got := errors.UserMessage(l.InlineErr()); got != "bad" {
		t.Errorf("InlineErr() = %q, want bad", got)
	}
	if e, ok := l.Entry("Scrolling"); ok && e.State == Saved {
		t.Error("failed save marked the entry saved")
	}
}

func TestLeakageStep_Save(t *testing.T) {
	svc, user := session(t, 30, 80)
	ctx := context.Background()
	l := NewLeakageStep(user.ID)

	if len(l.Entries()) != 0 {
		t.Errorf("leakage starts with %d entries, want none", len(l.Entries()))
	}
	if err := l.Save(ctx, svc, "Scrolling", 10); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	summary, _ := l.Summary()
	want := life.YearsFromWeeklyHours(10, 50)
	if !approx(summary.LeakageYears, want) {
		t.Errorf("LeakageYears = %v, want %v", summary.LeakageYears, want)
	}
	segs := l.ChartSegments()
	if segs[len(segs)-1].Label != "Remaining Free" {
		t.Errorf("free label = %q, want Remaining Free", segs[len(segs)-1].Label)
	}
	if l.Step() != StepLeakage {
		t.Errorf("Step() = %v", l.Step())
	}
}
