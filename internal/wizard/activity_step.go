package wizard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sourcegraph/conc/pool"

	"github.com/Iron-Ham/lifespan/internal/chart"
	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/remote"
)

// Mode selects how an activity step is displayed. Switching never touches
// pending local edits.
type Mode int

const (
	ModeEdit Mode = iota
	ModeSummary
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeSummary {
		return "summary"
	}
	return "edit"
}

// msgSummaryFailed is shown at page level when the summary cannot be loaded.
const msgSummaryFailed = "Failed to load summary"

// activityKind holds what differs between the maintenance and leakage steps.
// It is immutable after construction, so Run methods may read it from any goroutine.
type activityKind struct {
	step       Step
	key        string
	freeLabel  string
	noLabelMsg string
	noHoursMsg string
	add        func(ctx context.Context, svc remote.Service, userID int64, label string, hours float64) (life.Activity, error)
	list       func(ctx context.Context, svc remote.Service, userID int64) ([]life.Activity, error)
	items      func(life.LifeSummary) []life.ActivityYears
}

// RefreshRequest fetches the summary and the activity list concurrently.
type RefreshRequest struct {
	kind   *activityKind
	userID int64
}

// RefreshResult is the outcome of a RefreshRequest. A list failure only
// degrades the result; a summary failure is reported at page level.
type RefreshResult struct {
	Summary    life.LifeSummary
	SummaryErr error
	Activities []life.Activity
	ListErr    error
}

// Run performs both fetches.
func (r RefreshRequest) Run(ctx context.Context, svc remote.Service) RefreshResult {
	var res RefreshResult

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		res.Summary, res.SummaryErr = svc.FetchSummary(ctx, r.userID)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		res.Activities, res.ListErr = r.kind.list(ctx, svc, r.userID)
		return nil
	})
	_ = p.Wait()

	if res.ListErr == nil && res.Activities == nil {
		res.Activities = []life.Activity{}
	}
	return res
}

type mutationKind int

const (
	mutationSave mutationKind = iota
	mutationDeactivate
)

// MutationRequest is a prepared write followed by a refresh.
type MutationRequest struct {
	Label      string
	Hours      float64
	kind       *activityKind
	mutation   mutationKind
	userID     int64
	activityID int64
}

// MutationResult is the outcome of a MutationRequest.
type MutationResult struct {
	Request  MutationRequest
	Activity life.Activity
	Err      error
	Refresh  RefreshResult
}

// Run writes through and, on success, refreshes so the caller sees the
// server's view before the next mutation is allowed.
func (r MutationRequest) Run(ctx context.Context, svc remote.Service) MutationResult {
	res := MutationResult{Request: r}

	switch r.mutation {
	case mutationDeactivate:
		res.Activity, res.Err = svc.UpdateMaintenance(ctx, r.userID, r.activityID, remote.Deactivate())
	default:
		res.Activity, res.Err = r.kind.add(ctx, svc, r.userID, r.Label, r.Hours)
	}
	if res.Err != nil {
		return res
	}

	res.Refresh = RefreshRequest{kind: r.kind, userID: r.userID}.Run(ctx, svc)
	return res
}

// ActivityStep is the shared view-model of the maintenance and leakage steps.
type ActivityStep struct {
	kind    *activityKind
	userID  int64
	book    *ActivityBook
	summary *life.LifeSummary
	mode    Mode

	loading  bool
	pageErr  error
	inline   error
	degraded bool
}

func newActivityStep(kind *activityKind, userID int64, presets ...string) *ActivityStep {
	return &ActivityStep{
		kind:   kind,
		userID: userID,
		book:   NewActivityBook(presets...),
	}
}

// Step returns the wizard page this view-model drives.
func (s *ActivityStep) Step() Step {
	return s.kind.step
}

// BeginRefresh marks the step busy and returns the fetch to run.
func (s *ActivityStep) BeginRefresh() (RefreshRequest, error) {
	if s.loading {
		return RefreshRequest{}, errors.ErrBusy
	}
	s.loading = true
	return RefreshRequest{kind: s.kind, userID: s.userID}, nil
}

// ApplyRefresh overlays a fetch result and clears the busy flag.
func (s *ActivityStep) ApplyRefresh(res RefreshResult) {
	s.loading = false
	s.apply(res)
}

func (s *ActivityStep) apply(res RefreshResult) {
	if res.SummaryErr != nil {
		s.pageErr = res.SummaryErr
		return
	}
	s.pageErr = nil

	summary := res.Summary
	s.summary = &summary
	s.degraded = res.ListErr != nil

	var activities []life.Activity
	if !s.degraded {
		activities = res.Activities
	}
	s.book.Reconcile(s.kind.items(summary), activities)
}

// PrepareSave validates an add, overwrite or edit commit and marks the step busy.
// Validation failures never reach the service.
func (s *ActivityStep) PrepareSave(label string, hours float64) (MutationRequest, error) {
	if s.loading {
		return MutationRequest{}, errors.ErrBusy
	}

	label = life.NormalizeLabel(label)
	switch {
	case label == "":
		s.inline = errors.NewValidationError(s.kind.noLabelMsg).WithField("name")
		return MutationRequest{}, s.inline
	case hours <= 0:
		s.inline = errors.NewValidationError(s.kind.noHoursMsg).WithField("hours_per_week").WithValue(hours)
		return MutationRequest{}, s.inline
	}

	s.inline = nil
	s.loading = true
	return MutationRequest{
		Label:  label,
		Hours:  hours,
		kind:   s.kind,
		userID: s.userID,
	}, nil
}

// ApplyMutation records a write outcome and its refresh, clearing the busy flag.
func (s *ActivityStep) ApplyMutation(res MutationResult) {
	s.loading = false
	if res.Err != nil {
		s.inline = res.Err
		return
	}
	s.inline = nil

	if res.Request.mutation == mutationSave {
		s.book.MarkSaved(res.Request.Label, res.Request.Hours)
	}
	s.apply(res.Refresh)
}

// Save runs PrepareSave, the write and the refresh synchronously.
func (s *ActivityStep) Save(ctx context.Context, svc remote.Service, label string, hours float64) error {
	req, err := s.PrepareSave(label, hours)
	if err != nil {
		return err
	}
	res := req.Run(ctx, svc)
	s.ApplyMutation(res)
	return res.Err
}

// Refresh fetches synchronously.
func (s *ActivityStep) Refresh(ctx context.Context, svc remote.Service) error {
	req, err := s.BeginRefresh()
	if err != nil {
		return err
	}
	res := req.Run(ctx, svc)
	s.ApplyRefresh(res)
	return res.SummaryErr
}

// BeginEdit unfreezes a saved label.
func (s *ActivityStep) BeginEdit(label string) error {
	return s.book.BeginEdit(label)
}

// CancelEdit refreezes an edited label without saving.
func (s *ActivityStep) CancelEdit(label string) {
	s.book.CancelEdit(label)
}

// SetLocal records a locally typed value for label.
func (s *ActivityStep) SetLocal(label string, hours float64) error {
	return s.book.SetLocal(label, hours)
}

// SetLocalText parses text as hours/week and records it. Unparseable text
// records 0 so the preview drops to zero while the user types.
func (s *ActivityStep) SetLocalText(label, text string) error {
	hours, err := strconv.ParseFloat(text, 64)
	if err != nil {
		hours = 0
	}
	return s.book.SetLocal(label, hours)
}

// ToggleMode switches between edit and summary display.
func (s *ActivityStep) ToggleMode() Mode {
	if s.mode == ModeEdit {
		s.mode = ModeSummary
	} else {
		s.mode = ModeEdit
	}
	return s.mode
}

// Mode returns the display mode.
func (s *ActivityStep) Mode() Mode {
	return s.mode
}

// Entries returns the book entries in display order.
func (s *ActivityStep) Entries() []Entry {
	return s.book.Entries()
}

// Entry returns one entry.
func (s *ActivityStep) Entry(label string) (Entry, bool) {
	return s.book.Entry(label)
}

// Summary returns the last fetched summary.
func (s *ActivityStep) Summary() (life.LifeSummary, bool) {
	if s.summary == nil {
		return life.LifeSummary{}, false
	}
	return *s.summary, true
}

// Items returns the itemized server contributions of this step's category.
func (s *ActivityStep) Items() []life.ActivityYears {
	if s.summary == nil {
		return nil
	}
	return s.kind.items(*s.summary)
}

// PreviewYears estimates the years for label. Editing entries use the local
// hours on the remaining-years base of the last fetched summary; others use
// the server value.
func (s *ActivityStep) PreviewYears(label string) float64 {
	e, ok := s.book.Entry(label)
	if !ok {
		return 0
	}
	if e.State == Editing && s.summary != nil {
		return life.YearsFromWeeklyHours(e.Local, s.summary.RemainingYears())
	}
	if y, ok := life.YearsFor(s.Items(), label); ok {
		return y
	}
	return e.Years
}

// ChartSegments builds the level chart: the adjusted survival categories, the
// server items (previewed while editing) and the trailing free segment.
func (s *ActivityStep) ChartSegments() []chart.Segment {
	if s.summary == nil {
		return nil
	}
	items := s.kind.items(*s.summary)
	extras := make([]chart.Segment, 0, len(items))
	for _, it := range items {
		extras = append(extras, chart.Segment{
			Key:   s.kind.key,
			Label: it.Label,
			Value: s.PreviewYears(it.Label),
		})
	}
	return chart.LevelSegments(s.summary.Adjusted, extras, s.kind.freeLabel)
}

// Loading reports whether a fetch or write is in flight.
func (s *ActivityStep) Loading() bool {
	return s.loading
}

// PageErr returns the page-level failure of the last summary fetch.
func (s *ActivityStep) PageErr() error {
	return s.pageErr
}

// PageMessage returns the page-level message to show, or "".
func (s *ActivityStep) PageMessage() string {
	if s.pageErr == nil {
		return ""
	}
	if errors.Is(s.pageErr, errors.ErrSummaryUnavailable) {
		return errors.UserMessage(s.pageErr)
	}
	var remoteErr *errors.RemoteError
	if errors.As(s.pageErr, &remoteErr) && remoteErr.Detail != "" {
		return remoteErr.Detail
	}
	return msgSummaryFailed
}

// InlineErr returns the failure of the last add, save or deactivate.
func (s *ActivityStep) InlineErr() error {
	return s.inline
}

// Degraded reports whether the last refresh lacked the activity list.
func (s *ActivityStep) Degraded() bool {
	return s.degraded
}

// String summarizes the step for logs.
func (s *ActivityStep) String() string {
	return fmt.Sprintf("%s{entries=%d mode=%s loading=%t}", s.kind.step, s.book.Len(), s.mode, s.loading)
}
