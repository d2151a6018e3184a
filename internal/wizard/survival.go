package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/remote"
)

// DefaultDebounce is the quiet period after the last edit before a recompute.
const DefaultDebounce = 400 * time.Millisecond

// SurvivalState is the state of the survival step.
type SurvivalState int

const (
	// Idle means nothing has been edited or computed yet.
	Idle SurvivalState = iota
	// PendingRecompute means an edit is settling or a recompute is in flight.
	PendingRecompute
	// Computed means the newest request has been answered.
	Computed
	// Failed means the newest request failed. Inputs are kept.
	Failed
)

// String returns a short name for the state.
func (s SurvivalState) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingRecompute:
		return "pending"
	case Computed:
		return "computed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Field identifies one survival input.
type Field int

const (
	FieldSleep Field = iota
	FieldWork
	FieldWorkDays
	FieldCommute
	FieldRoutine
)

// Fields lists the survival inputs in display order.
var Fields = []Field{FieldSleep, FieldWork, FieldWorkDays, FieldCommute, FieldRoutine}

// Label returns the form label of the field.
func (f Field) Label() string {
	switch f {
	case FieldSleep:
		return "Sleep (hours/day)"
	case FieldWork:
		return "Work (hours/day)"
	case FieldWorkDays:
		return "Work days per week"
	case FieldCommute:
		return "Commute (hours/workday)"
	case FieldRoutine:
		return "Daily routine (hours/day)"
	default:
		return "unknown"
	}
}

// Key returns the wire name of the field.
func (f Field) Key() string {
	switch f {
	case FieldSleep:
		return "sleep_hours_per_day"
	case FieldWork:
		return "work_hours_per_day"
	case FieldWorkDays:
		return "work_days_per_week"
	case FieldCommute:
		return "commute_hours_per_workday"
	case FieldRoutine:
		return "daily_routine_hours"
	default:
		return "unknown"
	}
}

// Get returns the value of f in in.
func (f Field) Get(in life.SurvivalInputs) float64 {
	switch f {
	case FieldSleep:
		return in.SleepHoursPerDay
	case FieldWork:
		return in.WorkHoursPerDay
	case FieldWorkDays:
		return in.WorkDaysPerWeek
	case FieldCommute:
		return in.CommuteHoursPerWorkday
	case FieldRoutine:
		return in.DailyRoutineHours
	default:
		return 0
	}
}

func (f Field) set(in *life.SurvivalInputs, v float64) {
	switch f {
	case FieldSleep:
		in.SleepHoursPerDay = v
	case FieldWork:
		in.WorkHoursPerDay = v
	case FieldWorkDays:
		in.WorkDaysPerWeek = v
	case FieldCommute:
		in.CommuteHoursPerWorkday = v
	case FieldRoutine:
		in.DailyRoutineHours = v
	}
}

// SurvivalRequest is a recompute ready to be sent. Run may execute on any goroutine.
type SurvivalRequest struct {
	Seq    uint64
	UserID int64
	Inputs life.SurvivalInputs
}

// SurvivalResponse is the outcome of a SurvivalRequest.
type SurvivalResponse struct {
	Seq    uint64
	Result life.SurvivalResult
	Err    error
}

// Run sends the request.
func (r SurvivalRequest) Run(ctx context.Context, svc remote.Service) SurvivalResponse {
	result, err := svc.ComputeSurvival(ctx, r.UserID, r.Inputs)
	return SurvivalResponse{Seq: r.Seq, Result: result, Err: err}
}

// SurvivalStep coalesces edits into debounced recomputes and keeps the newest
// answer. Responses to superseded requests are dropped by sequence number.
type SurvivalStep struct {
	userID  int64
	inputs  life.SurvivalInputs
	state   SurvivalState
	result  *life.SurvivalResult
	err     error
	invalid map[Field]error

	generation uint64
	issued     uint64
	issuedGen  uint64

	publish func(life.SurvivalResult)
}

// NewSurvivalStep creates the step for userID. publish receives every applied result.
func NewSurvivalStep(userID int64, publish func(life.SurvivalResult)) *SurvivalStep {
	if publish == nil {
		publish = func(life.SurvivalResult) {}
	}
	return &SurvivalStep{
		userID:  userID,
		invalid: make(map[Field]error),
		publish: publish,
	}
}

// Edit sets a field and starts a new debounce generation, returning its token.
// Negative values are rejected inline; the field keeps its previous value and
// no recompute is scheduled.
func (s *SurvivalStep) Edit(f Field, value float64) (uint64, error) {
	if err := validateField(f, value); err != nil {
		s.invalid[f] = err
		return 0, err
	}
	delete(s.invalid, f)

	f.set(&s.inputs, value)
	s.generation++
	s.state = PendingRecompute
	return s.generation, nil
}

// Settle turns a debounce token into a request if no newer edit arrived.
func (s *SurvivalStep) Settle(token uint64) (SurvivalRequest, bool) {
	if token == 0 || token != s.generation {
		return SurvivalRequest{}, false
	}
	return s.issue(), true
}

// SubmitNow issues a request for the current inputs without waiting for a debounce.
func (s *SurvivalStep) SubmitNow() SurvivalRequest {
	s.generation++
	s.state = PendingRecompute
	return s.issue()
}

func (s *SurvivalStep) issue() SurvivalRequest {
	s.issued++
	s.issuedGen = s.generation
	return SurvivalRequest{Seq: s.issued, UserID: s.userID, Inputs: s.inputs}
}

// Complete applies a response. It reports false when the response was
// superseded by a newer request and discarded. When an edit arrived after the
// request was issued, the step stays PendingRecompute until that edit settles.
func (s *SurvivalStep) Complete(resp SurvivalResponse) bool {
	if resp.Seq != s.issued {
		return false
	}
	settled := s.generation == s.issuedGen
	if resp.Err != nil {
		s.err = resp.Err
		if settled {
			s.state = Failed
		}
		return true
	}

	result := resp.Result
	s.result = &result
	s.err = nil
	if settled {
		s.state = Computed
	}
	s.publish(result)
	return true
}

// Submit computes the current inputs synchronously.
func (s *SurvivalStep) Submit(ctx context.Context, svc remote.Service) error {
	s.Complete(s.SubmitNow().Run(ctx, svc))
	return s.err
}

// State returns the current state.
func (s *SurvivalStep) State() SurvivalState {
	return s.state
}

// Inputs returns the current inputs. They are never rolled back on failure.
func (s *SurvivalStep) Inputs() life.SurvivalInputs {
	return s.inputs
}

// SetInputs replaces all inputs, e.g. from CLI flags, and starts a new generation.
// Nothing changes unless every field is valid.
func (s *SurvivalStep) SetInputs(in life.SurvivalInputs) (uint64, error) {
	for _, f := range Fields {
		if err := validateField(f, f.Get(in)); err != nil {
			s.invalid[f] = err
			return 0, err
		}
	}
	for _, f := range Fields {
		delete(s.invalid, f)
	}
	s.inputs = in
	s.generation++
	s.state = PendingRecompute
	return s.generation, nil
}

func validateField(f Field, value float64) error {
	if value < 0 {
		return errors.NewValidationError(fmt.Sprintf("%s must be 0 or more.", f.Label())).
			WithField(f.Key()).
			WithValue(value)
	}
	return nil
}

// Result returns the last applied result.
func (s *SurvivalStep) Result() (life.SurvivalResult, bool) {
	if s.result == nil {
		return life.SurvivalResult{}, false
	}
	return *s.result, true
}

// Err returns the failure of the newest request, if any.
func (s *SurvivalStep) Err() error {
	return s.err
}

// FieldErr returns the inline validation error for f.
func (s *SurvivalStep) FieldErr(f Field) error {
	return s.invalid[f]
}

// Issued returns the sequence number of the newest request.
func (s *SurvivalStep) Issued() uint64 {
	return s.issued
}
