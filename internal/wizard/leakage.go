package wizard

import (
	"context"

	"github.com/Iron-Ham/lifespan/internal/chart"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/remote"
)

var leakageKind = &activityKind{
	step:       StepLeakage,
	key:        chart.KeyLeakage,
	freeLabel:  "Remaining Free",
	noLabelMsg: "Enter activity and hours/week",
	noHoursMsg: "Enter activity and hours/week",
	add: func(ctx context.Context, svc remote.Service, userID int64, label string, hours float64) (life.Activity, error) {
		return svc.AddLeakage(ctx, userID, label, hours)
	},
	list: func(ctx context.Context, svc remote.Service, userID int64) ([]life.Activity, error) {
		return svc.ListLeakage(ctx, userID)
	},
	items: func(s life.LifeSummary) []life.ActivityYears { return s.Category3 },
}

// LeakageStep tracks involuntary recurring activities. It has no presets;
// every entry is a custom label.
type LeakageStep struct {
	*ActivityStep
}

// NewLeakageStep creates the step for userID.
func NewLeakageStep(userID int64) *LeakageStep {
	return &LeakageStep{ActivityStep: newActivityStep(leakageKind, userID)}
}
