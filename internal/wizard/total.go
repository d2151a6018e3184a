package wizard

import (
	"context"
	"fmt"

	"github.com/Iron-Ham/lifespan/internal/chart"
	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/remote"
)

const msgTotalFailed = "Failed to load total summary"

// Percent returns value as a percentage of base, or 0 when base <= 0.
func Percent(value, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return value / base * 100
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// BreakdownItem is one line of a Total section.
type BreakdownItem struct {
	Label   string
	Years   float64
	Percent float64
}

// Section is a titled list of items against a common base, closed by a total line.
type Section struct {
	Title string
	Base  float64
	Items []BreakdownItem
	Total BreakdownItem
}

func newItem(label string, years, base float64) BreakdownItem {
	return BreakdownItem{Label: label, Years: years, Percent: Percent(years, base)}
}

// Totals is the read-only aggregation shown on the Total step.
type Totals struct {
	Survival    float64
	Maintenance float64
	Leakage     float64
	Free        float64

	// Bases of the breakdown sections.
	RemainingBase  float64
	FreeBase       float64
	UsableFreeBase float64

	Sections []Section
}

// BuildTotals aggregates a summary.
func BuildTotals(s life.LifeSummary) Totals {
	t := Totals{
		Survival:       s.SurvivalYears(),
		Maintenance:    s.MaintenanceYears,
		Leakage:        s.LeakageYears,
		Free:           s.Adjusted.FreeYears,
		RemainingBase:  s.RemainingYears(),
		FreeBase:       s.Level1.FreeYears,
		UsableFreeBase: s.UsableFreeYears(),
	}

	survival := Section{
		Title: "Level 1: Survival (of remaining life)",
		Base:  t.RemainingBase,
		Items: []BreakdownItem{
			newItem("Sleep", s.Level1.SleepYears, t.RemainingBase),
			newItem("Work", s.Level1.WorkYears, t.RemainingBase),
			newItem("Commute", s.Level1.CommuteYears, t.RemainingBase),
			newItem("Routine", s.Level1.RoutineYears, t.RemainingBase),
		},
		Total: newItem("Total survival", t.Survival, t.RemainingBase),
	}

	maintenance := Section{
		Title: "Level 2: Maintenance (of free life)",
		Base:  t.FreeBase,
		Total: newItem("Total maintenance", t.Maintenance, t.FreeBase),
	}
	for _, it := range s.Category2 {
		maintenance.Items = append(maintenance.Items, newItem(it.Label, it.Years, t.FreeBase))
	}

	leakage := Section{
		Title: "Level 3: Leakage (of usable free life)",
		Base:  t.UsableFreeBase,
		Total: newItem("Total leakage", t.Leakage, t.UsableFreeBase),
	}
	for _, it := range s.Category3 {
		leakage.Items = append(leakage.Items, newItem(it.Label, it.Years, t.UsableFreeBase))
	}

	final := Section{
		Title: "Final (of remaining life)",
		Base:  t.RemainingBase,
		Total: newItem("Remaining free life", t.Free, t.RemainingBase),
	}

	t.Sections = []Section{survival, maintenance, leakage, final}
	return t
}

// Segments returns the overview chart segments.
func (t Totals) Segments() []chart.Segment {
	return chart.TotalSegments(t.Survival, t.Maintenance, t.Leakage, t.Free)
}

// Section returns the section whose total line is labeled label.
func (t Totals) Section(totalLabel string) (Section, bool) {
	for _, s := range t.Sections {
		if s.Total.Label == totalLabel {
			return s, true
		}
	}
	return Section{}, false
}

// TotalRequest fetches the summary once.
type TotalRequest struct {
	userID int64
}

// TotalResponse is the outcome of a TotalRequest.
type TotalResponse struct {
	Summary life.LifeSummary
	Err     error
}

// Run sends the request.
func (r TotalRequest) Run(ctx context.Context, svc remote.Service) TotalResponse {
	s, err := svc.FetchSummary(ctx, r.userID)
	return TotalResponse{Summary: s, Err: err}
}

// TotalStep is the read-only overview. It has no mutations.
type TotalStep struct {
	userID  int64
	totals  *Totals
	loading bool
	err     error
}

// NewTotalStep creates the step for userID.
func NewTotalStep(userID int64) *TotalStep {
	return &TotalStep{userID: userID}
}

// BeginFetch marks the step loading.
func (t *TotalStep) BeginFetch() (TotalRequest, error) {
	if t.loading {
		return TotalRequest{}, errors.ErrBusy
	}
	t.loading = true
	return TotalRequest{userID: t.userID}, nil
}

// Apply records a fetch outcome.
func (t *TotalStep) Apply(resp TotalResponse) {
	t.loading = false
	if resp.Err != nil {
		t.err = resp.Err
		return
	}
	t.err = nil
	totals := BuildTotals(resp.Summary)
	t.totals = &totals
}

// Fetch runs the step synchronously.
func (t *TotalStep) Fetch(ctx context.Context, svc remote.Service) (Totals, error) {
	req, err := t.BeginFetch()
	if err != nil {
		return Totals{}, err
	}
	resp := req.Run(ctx, svc)
	t.Apply(resp)
	if resp.Err != nil {
		return Totals{}, resp.Err
	}
	return *t.totals, nil
}

// Totals returns the last aggregation.
func (t *TotalStep) Totals() (Totals, bool) {
	if t.totals == nil {
		return Totals{}, false
	}
	return *t.totals, true
}

// Loading reports whether the fetch is in flight.
func (t *TotalStep) Loading() bool {
	return t.loading
}

// Err returns the fetch failure.
func (t *TotalStep) Err() error {
	return t.err
}

// PageMessage returns the page-level message to show, or "".
func (t *TotalStep) PageMessage() string {
	if t.err == nil {
		return ""
	}
	var remoteErr *errors.RemoteError
	if errors.As(t.err, &remoteErr) && remoteErr.Detail != "" {
		return remoteErr.Detail
	}
	return msgTotalFailed
}
