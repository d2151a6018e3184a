package wizard

import (
	"context"

	"github.com/Iron-Ham/lifespan/internal/chart"
	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/remote"
)

var maintenanceKind = &activityKind{
	step:       StepMaintenance,
	key:        chart.KeyMaintenance,
	freeLabel:  "Free",
	noLabelMsg: "Enter label and hours",
	noHoursMsg: "Enter hours/week > 0",
	add: func(ctx context.Context, svc remote.Service, userID int64, label string, hours float64) (life.Activity, error) {
		return svc.AddMaintenance(ctx, userID, label, hours)
	},
	list: func(ctx context.Context, svc remote.Service, userID int64) ([]life.Activity, error) {
		return svc.ListMaintenance(ctx, userID)
	},
	items: func(s life.LifeSummary) []life.ActivityYears { return s.Category2 },
}

// MaintenanceStep tracks voluntary recurring activities, seeded with presets.
type MaintenanceStep struct {
	*ActivityStep
}

// NewMaintenanceStep creates the step for userID.
func NewMaintenanceStep(userID int64) *MaintenanceStep {
	return &MaintenanceStep{ActivityStep: newActivityStep(maintenanceKind, userID, life.MaintenancePresets...)}
}

// PrepareDeactivate turns a saved activity off without deleting it. The
// activity ID comes from the list endpoint, so a degraded refresh cannot
// deactivate.
func (m *MaintenanceStep) PrepareDeactivate(label string) (MutationRequest, error) {
	if m.loading {
		return MutationRequest{}, errors.ErrBusy
	}

	e, ok := m.book.Entry(label)
	if !ok || e.State == Unsaved {
		m.inline = errors.NewValidationError("Only added activities can be removed.").WithField("name")
		return MutationRequest{}, m.inline
	}
	if e.ID == 0 {
		m.inline = errors.NewValidationError("Activity list unavailable. Refresh and try again.").WithField("name")
		return MutationRequest{}, m.inline
	}

	m.inline = nil
	m.loading = true
	return MutationRequest{
		Label:      label,
		kind:       m.kind,
		mutation:   mutationDeactivate,
		userID:     m.userID,
		activityID: e.ID,
	}, nil
}

// Deactivate runs PrepareDeactivate, the update and the refresh synchronously.
func (m *MaintenanceStep) Deactivate(ctx context.Context, svc remote.Service, label string) error {
	req, err := m.PrepareDeactivate(label)
	if err != nil {
		return err
	}
	res := req.Run(ctx, svc)
	m.ApplyMutation(res)
	return res.Err
}
