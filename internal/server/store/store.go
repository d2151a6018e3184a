// Package store persists users, survival results and activities for the
// reference summary service.
package store

import (
	"context"

	"github.com/Iron-Ham/lifespan/internal/life"
)

// Category selects which activity table an operation addresses.
type Category string

const (
	Maintenance Category = "maintenance"
	Leakage     Category = "leakage"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == Maintenance || c == Leakage
}

// Update is a partial activity update. Nil fields are left unchanged.
type Update struct {
	HoursPerWeek *float64
	IsActive     *bool
}

// Store is the persistence boundary of the reference service. Lookups of a
// missing row return an error matching errors.ErrNotFound.
type Store interface {
	CreateUser(ctx context.Context, age, lifeExpectancy int) (life.UserContext, error)
	GetUser(ctx context.Context, id int64) (life.UserContext, error)

	// SaveSurvival stores inputs and result, replacing any previous pair for the user.
	SaveSurvival(ctx context.Context, userID int64, in life.SurvivalInputs, result life.SurvivalResult) error
	GetSurvival(ctx context.Context, userID int64) (life.SurvivalResult, error)

	// UpsertActivity creates the activity or overwrites the hours of the one with
	// the same label. An overwritten activity becomes active again.
	UpsertActivity(ctx context.Context, c Category, userID int64, label string, hoursPerWeek float64, source string) (life.Activity, error)
	UpdateActivity(ctx context.Context, c Category, userID, activityID int64, u Update) (life.Activity, error)
	// ListActivities returns activities in creation order.
	ListActivities(ctx context.Context, c Category, userID int64, activeOnly bool) ([]life.Activity, error)

	Close() error
}

// Open returns a SQLite store at path, or an in-memory store when path is empty.
func Open(ctx context.Context, path string) (Store, error) {
	if path == "" {
		return NewMemory(), nil
	}
	return OpenSQLite(ctx, path)
}
