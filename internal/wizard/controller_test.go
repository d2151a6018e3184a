package wizard

import (
	"testing"

	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
)

func TestParseStep(t *testing.T) {
	for _, s := range Steps {
		got, err := ParseStep(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStep(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStep("level4"); !errors.Is(err, errors.ErrUnknownStep) {
		t.Errorf("ParseStep(level4) error = %v, want ErrUnknownStep", err)
	}
}

func TestController_Gating(t *testing.T) {
	tests := []struct {
		name     string
		user     bool
		survival bool
		from     Step
		want     Step
		wantErr  error
	}{
		{name: "no user blocks survival", from: StepProfile, want: StepProfile, wantErr: errors.ErrNoUser},
		{name: "user opens survival", user: true, from: StepProfile, want: StepSurvival},
		{name: "no result blocks maintenance", user: true, from: StepSurvival, want: StepSurvival, wantErr: errors.ErrNoSurvivalResult},
		{name: "result opens maintenance", user: true, survival: true, from: StepSurvival, want: StepMaintenance},
		{name: "maintenance to leakage", user: true, survival: true, from: StepMaintenance, want: StepLeakage},
		{name: "leakage to total", user: true, from: StepLeakage, want: StepTotal},
		{name: "total is last", user: true, from: StepTotal, want: StepTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			if tt.user {
				c.SetUser(life.UserContext{ID: 1, Age: 30, LifeExpectancy: 80})
			}
			if tt.survival {
				c.PublishSurvival(life.SurvivalResult{FreeYears: 10})
			}

			got, err := c.Next(tt.from)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Next(%v) error = %v, want %v", tt.from, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Next(%v) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestController_Gate(t *testing.T) {
	c := NewController()
	if err := c.Gate(StepProfile); err != nil {
		t.Errorf("Gate(profile) = %v, want nil", err)
	}
	for _, s := range Steps[1:] {
		if err := c.Gate(s); !errors.Is(err, errors.ErrNoUser) {
			t.Errorf("Gate(%v) = %v, want ErrNoUser", s, err)
		}
	}
}

func TestController_SetUserOnce(t *testing.T) {
	c := NewController()
	c.SetUser(life.UserContext{ID: 1, Age: 30, LifeExpectancy: 80})
	c.SetUser(life.UserContext{ID: 2, Age: 40, LifeExpectancy: 90})

	u, ok := c.User()
	if !ok || u.ID != 1 {
		t.Errorf("User() = %+v, %v, want the first user", u, ok)
	}
}

func TestController_SurvivalSnapshot(t *testing.T) {
	c := NewController()
	if _, ok := c.Survival(); ok {
		t.Fatal("Survival() reported a result before publish")
	}

	c.PublishSurvival(life.SurvivalResult{FreeYears: 10})
	snap, _ := c.Survival()
	c.PublishSurvival(life.SurvivalResult{FreeYears: 20})

	if snap.FreeYears != 10 {
		t.Errorf("snapshot changed to %v after republish", snap.FreeYears)
	}
	if now, _ := c.Survival(); now.FreeYears != 20 {
		t.Errorf("Survival() = %v, want 20", now.FreeYears)
	}
}

func TestController_Prev(t *testing.T) {
	c := NewController()
	tests := map[Step]Step{
		StepProfile:     StepProfile,
		StepSurvival:    StepSurvival,
		StepMaintenance: StepSurvival,
		StepLeakage:     StepMaintenance,
		StepTotal:       StepLeakage,
	}
	for from, want := range tests {
		if got := c.Prev(from); got != want {
			t.Errorf("Prev(%v) = %v, want %v", from, got, want)
		}
	}
}
