package msg

import (
	"context"
	"testing"
	"time"

	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/testutil"
	"github.com/Iron-Ham/lifespan/internal/wizard"
)

func TestDebounce(t *testing.T) {
	t.Run("waits for the window", func(t *testing.T) {
		start := time.Now()
		got := Debounce(50*time.Millisecond, 7)()
		if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
			t.Errorf("Debounce() fired after %v", elapsed)
		}
		settle, ok := got.(SurvivalSettleMsg)
		if !ok || settle.Token != 7 {
			t.Errorf("Debounce() = %#v, want SurvivalSettleMsg{Token: 7}", got)
		}
	})

	t.Run("zero delay", func(t *testing.T) {
		got := Debounce(0, 3)()
		if settle, ok := got.(SurvivalSettleMsg); !ok || settle.Token != 3 {
			t.Errorf("Debounce(0) = %#v", got)
		}
	})
}

func TestCommands_AgainstServer(t *testing.T) {
	ctx := context.Background()
	svc := testutil.StartServer(t).Client()
	ctrl := wizard.NewController()

	profile := wizard.NewProfileStep(ctrl, 80)
	preq, err := profile.Prepare("30", "80")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	done, ok := CreateProfile(ctx, svc, preq)().(ProfileDoneMsg)
	if !ok || done.Resp.Err != nil {
		t.Fatalf("CreateProfile() = %#v", done)
	}
	profile.Apply(done.Resp)
	user, ok := ctrl.User()
	if !ok || user.Age != 30 {
		t.Fatalf("user = %+v, %v", user, ok)
	}

	survival := wizard.NewSurvivalStep(user.ID, ctrl.PublishSurvival)
	if _, err := survival.SetInputs(life.SurvivalInputs{SleepHoursPerDay: 8, WorkHoursPerDay: 8, WorkDaysPerWeek: 5}); err != nil {
		t.Fatal(err)
	}
	sdone, ok := ComputeSurvival(ctx, svc, survival.SubmitNow())().(SurvivalDoneMsg)
	if !ok || sdone.Resp.Err != nil {
		t.Fatalf("ComputeSurvival() = %#v", sdone)
	}
	if !survival.Complete(sdone.Resp) {
		t.Fatal("newest response was discarded")
	}

	maintenance := wizard.NewMaintenanceStep(user.ID)
	mreq, err := maintenance.PrepareSave("Exercising", 5)
	if err != nil {
		t.Fatal(err)
	}
	mdone, ok := Mutate(ctx, svc, wizard.StepMaintenance, mreq)().(MutationDoneMsg)
	if !ok || mdone.Step != wizard.StepMaintenance || mdone.Result.Err != nil {
		t.Fatalf("Mutate() = %#v", mdone)
	}
	maintenance.ApplyMutation(mdone.Result)

	rreq, err := maintenance.BeginRefresh()
	if err != nil {
		t.Fatal(err)
	}
	rdone, ok := Refresh(ctx, svc, wizard.StepMaintenance, rreq)().(RefreshDoneMsg)
	if !ok || rdone.Result.SummaryErr != nil || len(rdone.Result.Activities) != 1 {
		t.Fatalf("Refresh() = %#v", rdone)
	}

	total := wizard.NewTotalStep(user.ID)
	treq, err := total.BeginFetch()
	if err != nil {
		t.Fatal(err)
	}
	tdone, ok := FetchTotal(ctx, svc, treq)().(TotalDoneMsg)
	if !ok || tdone.Resp.Err != nil {
		t.Fatalf("FetchTotal() = %#v", tdone)
	}
	if got := len(tdone.Resp.Summary.Category2); got != 1 {
		t.Errorf("summary has %d maintenance items, want 1", got)
	}
}
