package wizard

import (
	"context"
	"strconv"
	"strings"

	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/remote"
)

// Profile validation messages.
const (
	msgInvalidAge        = "Enter a valid age."
	msgInvalidExpectancy = "Life expectancy must be greater than your age."
)

// ProfileRequest creates the user context. Run may execute on any goroutine.
type ProfileRequest struct {
	Age            int
	LifeExpectancy int
}

// ProfileResponse is the outcome of a ProfileRequest.
type ProfileResponse struct {
	User life.UserContext
	Err  error
}

// Run sends the request.
func (r ProfileRequest) Run(ctx context.Context, svc remote.Service) ProfileResponse {
	user, err := svc.CreateProfile(ctx, r.Age, r.LifeExpectancy)
	return ProfileResponse{User: user, Err: err}
}

// ValidateProfile checks age > 0 and lifeExpectancy > age.
func ValidateProfile(age, lifeExpectancy int) error {
	if age <= 0 {
		return errors.NewValidationError(msgInvalidAge).WithField("age").WithValue(age)
	}
	if lifeExpectancy <= age {
		return errors.NewValidationError(msgInvalidExpectancy).WithField("life_expectancy").WithValue(lifeExpectancy)
	}
	return nil
}

// ProfileStep collects age and life expectancy and creates the user once.
type ProfileStep struct {
	ctrl              *Controller
	defaultExpectancy int
	loading           bool
	err               error
}

// NewProfileStep creates the step. A non-positive defaultExpectancy falls back
// to life.DefaultLifeExpectancy.
func NewProfileStep(ctrl *Controller, defaultExpectancy int) *ProfileStep {
	if defaultExpectancy <= 0 {
		defaultExpectancy = life.DefaultLifeExpectancy
	}
	return &ProfileStep{ctrl: ctrl, defaultExpectancy: defaultExpectancy}
}

// DefaultExpectancy returns the life expectancy used when the field is blank.
func (p *ProfileStep) DefaultExpectancy() int {
	return p.defaultExpectancy
}

// Prepare parses and validates the form fields. A blank life expectancy uses
// the default.
func (p *ProfileStep) Prepare(ageText, expectancyText string) (ProfileRequest, error) {
	if p.loading {
		return ProfileRequest{}, errors.ErrBusy
	}

	age, err := strconv.Atoi(strings.TrimSpace(ageText))
	if err != nil {
		p.err = errors.NewValidationError(msgInvalidAge).WithField("age").WithValue(ageText)
		return ProfileRequest{}, p.err
	}

	expectancy := p.defaultExpectancy
	if s := strings.TrimSpace(expectancyText); s != "" {
		expectancy, err = strconv.Atoi(s)
		if err != nil {
			p.err = errors.NewValidationError(msgInvalidExpectancy).WithField("life_expectancy").WithValue(expectancyText)
			return ProfileRequest{}, p.err
		}
	}

	if err := ValidateProfile(age, expectancy); err != nil {
		p.err = err
		return ProfileRequest{}, err
	}

	p.err = nil
	p.loading = true
	return ProfileRequest{Age: age, LifeExpectancy: expectancy}, nil
}

// Apply records the outcome. On success the controller receives the user.
func (p *ProfileStep) Apply(resp ProfileResponse) {
	p.loading = false
	if resp.Err != nil {
		p.err = resp.Err
		return
	}
	p.err = nil
	p.ctrl.SetUser(resp.User)
}

// Create runs the whole step synchronously.
func (p *ProfileStep) Create(ctx context.Context, svc remote.Service, ageText, expectancyText string) (life.UserContext, error) {
	req, err := p.Prepare(ageText, expectancyText)
	if err != nil {
		return life.UserContext{}, err
	}
	resp := req.Run(ctx, svc)
	p.Apply(resp)
	if resp.Err != nil {
		return life.UserContext{}, resp.Err
	}
	return resp.User, nil
}

// Loading reports whether creation is in flight.
func (p *ProfileStep) Loading() bool {
	return p.loading
}

// Err returns the last failure.
func (p *ProfileStep) Err() error {
	return p.err
}
