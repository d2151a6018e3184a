// Package wizard holds the view-models of the lifespan wizard: one per step plus
// the controller that gates navigation between them.
//
// View-models are mutated only from a single goroutine (the bubbletea Update
// loop, or the CLI command). Remote calls are split into a prepare phase that
// validates and marks the step busy, a Run phase that may execute anywhere,
// and an apply phase back on the owning goroutine.
package wizard

import (
	"sync/atomic"

	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
)

// Step identifies a wizard page.
type Step int

const (
	StepProfile Step = iota
	StepSurvival
	StepMaintenance
	StepLeakage
	StepTotal
)

// Steps lists the pages in navigation order.
var Steps = []Step{StepProfile, StepSurvival, StepMaintenance, StepLeakage, StepTotal}

// String returns the step name used in logs and the CLI.
func (s Step) String() string {
	switch s {
	case StepProfile:
		return "profile"
	case StepSurvival:
		return "survival"
	case StepMaintenance:
		return "maintenance"
	case StepLeakage:
		return "leakage"
	case StepTotal:
		return "total"
	default:
		return "unknown"
	}
}

// Title returns the page heading.
func (s Step) Title() string {
	switch s {
	case StepProfile:
		return "Your life"
	case StepSurvival:
		return "Level 1: Survival"
	case StepMaintenance:
		return "Level 2: Maintenance"
	case StepLeakage:
		return "Level 3: Leakage"
	case StepTotal:
		return "Total overview"
	default:
		return "Unknown"
	}
}

// ParseStep resolves a step name.
func ParseStep(name string) (Step, error) {
	for _, s := range Steps {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, errors.ErrUnknownStep
}

// Controller owns the session: the user context and the published survival
// result. The survival step is the single writer of the result; readers get
// snapshots.
type Controller struct {
	user     atomic.Pointer[life.UserContext]
	survival atomic.Pointer[life.SurvivalResult]
}

// NewController creates a controller with no user.
func NewController() *Controller {
	return &Controller{}
}

// SetUser records the created user context. It is set once per session.
func (c *Controller) SetUser(u life.UserContext) {
	c.user.CompareAndSwap(nil, &u)
}

// User returns the user context, if one has been created.
func (c *Controller) User() (life.UserContext, bool) {
	u := c.user.Load()
	if u == nil {
		return life.UserContext{}, false
	}
	return *u, true
}

// PublishSurvival replaces the published survival result.
func (c *Controller) PublishSurvival(r life.SurvivalResult) {
	c.survival.Store(&r)
}

// Survival returns a snapshot of the last published survival result.
func (c *Controller) Survival() (life.SurvivalResult, bool) {
	r := c.survival.Load()
	if r == nil {
		return life.SurvivalResult{}, false
	}
	return *r, true
}

// Gate reports whether step may be shown. Every step but the profile needs a user.
func (c *Controller) Gate(step Step) error {
	if step == StepProfile {
		return nil
	}
	if c.user.Load() == nil {
		return errors.ErrNoUser
	}
	return nil
}

// CanContinueFromSurvival reports whether survival was computed in this session.
// Later steps re-fetch from the service and do not need the cached result;
// only the first move into maintenance is gated on it.
func (c *Controller) CanContinueFromSurvival() error {
	if err := c.Gate(StepSurvival); err != nil {
		return err
	}
	if c.survival.Load() == nil {
		return errors.ErrNoSurvivalResult
	}
	return nil
}

// Next returns the step after from, gated. It returns from unchanged with an
// error when the move is not allowed.
func (c *Controller) Next(from Step) (Step, error) {
	if from == StepTotal {
		return from, nil
	}
	to := from + 1
	if from == StepSurvival {
		if err := c.CanContinueFromSurvival(); err != nil {
			return from, err
		}
	}
	if err := c.Gate(to); err != nil {
		return from, err
	}
	return to, nil
}

// Prev returns the step before from.
func (c *Controller) Prev(from Step) Step {
	if from <= StepSurvival {
		// The profile is created once; there is no way back to it.
		return from
	}
	return from - 1
}
