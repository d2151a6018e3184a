// Package remote talks to the life summary service. The service owns persistence
// and the authoritative arithmetic; the wizard only previews.
package remote

import (
	"context"

	"github.com/Iron-Ham/lifespan/internal/life"
)

// Service defines the operations of the life summary service.
type Service interface {
	// CreateProfile creates the user context. It is called once per session.
	CreateProfile(ctx context.Context, age, lifeExpectancy int) (life.UserContext, error)

	// ComputeSurvival stores the survival inputs and returns the computed allocation.
	// Calling it again for the same user overwrites the previous result.
	ComputeSurvival(ctx context.Context, userID int64, in life.SurvivalInputs) (life.SurvivalResult, error)

	// ListMaintenance returns the user's active maintenance activities.
	ListMaintenance(ctx context.Context, userID int64) ([]life.Activity, error)

	// AddMaintenance adds a maintenance activity or overwrites the one with the same label.
	AddMaintenance(ctx context.Context, userID int64, label string, hoursPerWeek float64) (life.Activity, error)

	// UpdateMaintenance applies a partial update to an existing maintenance activity.
	UpdateMaintenance(ctx context.Context, userID, activityID int64, patch ActivityPatch) (life.Activity, error)

	// AddLeakage adds a leakage activity or overwrites the one with the same label.
	AddLeakage(ctx context.Context, userID int64, label string, hoursPerWeek float64) (life.Activity, error)

	// ListLeakage returns the user's active leakage activities.
	ListLeakage(ctx context.Context, userID int64) ([]life.Activity, error)

	// FetchSummary returns the consolidated read model. It fails until survival
	// has been computed for the user.
	FetchSummary(ctx context.Context, userID int64) (life.LifeSummary, error)
}

// ActivityPatch is a partial activity update. Nil fields are left unchanged.
type ActivityPatch struct {
	HoursPerWeek *float64 `json:"hours_per_week,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

// Deactivate returns a patch that turns an activity off without deleting it.
func Deactivate() ActivityPatch {
	off := false
	return ActivityPatch{IsActive: &off}
}

// Operation names used in errors, logs and metrics.
const (
	OpCreateProfile     = "user-profile"
	OpComputeSurvival   = "level1"
	OpListMaintenance   = "category2.list"
	OpAddMaintenance    = "category2.add"
	OpUpdateMaintenance = "category2.update"
	OpAddLeakage        = "category3.add"
	OpListLeakage       = "category3.list"
	OpFetchSummary      = "life-summary"
)

// Wire payloads shared with the reference service.

// ProfileRequest is the body of a profile creation.
type ProfileRequest struct {
	Age            int `json:"age"`
	LifeExpectancy int `json:"life_expectancy,omitempty"`
}

// ActivityRequest is the body of an activity add/overwrite.
type ActivityRequest struct {
	Label        string  `json:"name"`
	HoursPerWeek float64 `json:"hours_per_week"`
}

// ErrorBody is the error envelope for failures that are not tied to a field.
type ErrorBody struct {
	Detail string `json:"detail"`
}
