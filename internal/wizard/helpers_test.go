package wizard

import (
	"context"
	"sync"
	"testing"

	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/remote"
	"github.com/Iron-Ham/lifespan/internal/testutil"
)

// spyService wraps a Service, counting calls and optionally failing the list
// endpoints.
type spyService struct {
	remote.Service

	mu      sync.Mutex
	calls   map[string]int
	listErr error
}

func newSpy(inner remote.Service) *spyService {
	return &spyService{Service: inner, calls: make(map[string]int)}
}

func (s *spyService) count(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
}

func (s *spyService) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *spyService) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func (s *spyService) CreateProfile(ctx context.Context, age, lifeExpectancy int) (life.UserContext, error) {
	s.count(remote.OpCreateProfile)
	return s.Service.CreateProfile(ctx, age, lifeExpectancy)
}

func (s *spyService) UpdateMaintenance(ctx context.Context, userID, activityID int64, patch remote.ActivityPatch) (life.Activity, error) {
	s.count(remote.OpUpdateMaintenance)
	return s.Service.UpdateMaintenance(ctx, userID, activityID, patch)
}

// reset clears the call counts.
func (s *spyService) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = make(map[string]int)
}

func (s *spyService) ComputeSurvival(ctx context.Context, userID int64, in life.SurvivalInputs) (life.SurvivalResult, error) {
	s.count(remote.OpComputeSurvival)
	return s.Service.ComputeSurvival(ctx, userID, in)
}

func (s *spyService) AddMaintenance(ctx context.Context, userID int64, label string, hours float64) (life.Activity, error) {
	s.count(remote.OpAddMaintenance)
	return s.Service.AddMaintenance(ctx, userID, label, hours)
}

func (s *spyService) AddLeakage(ctx context.Context, userID int64, label string, hours float64) (life.Activity, error) {
	s.count(remote.OpAddLeakage)
	return s.Service.AddLeakage(ctx, userID, label, hours)
}

func (s *spyService) ListMaintenance(ctx context.Context, userID int64) ([]life.Activity, error) {
	s.count(remote.OpListMaintenance)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.Service.ListMaintenance(ctx, userID)
}

func (s *spyService) ListLeakage(ctx context.Context, userID int64) ([]life.Activity, error) {
	s.count(remote.OpListLeakage)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.Service.ListLeakage(ctx, userID)
}

func (s *spyService) FetchSummary(ctx context.Context, userID int64) (life.LifeSummary, error) {
	s.count(remote.OpFetchSummary)
	return s.Service.FetchSummary(ctx, userID)
}

// standardInputs is the survival input set used across tests.
var standardInputs = life.SurvivalInputs{
	SleepHoursPerDay:       8,
	WorkHoursPerDay:        8,
	WorkDaysPerWeek:        5,
	CommuteHoursPerWorkday: 1,
	DailyRoutineHours:      2,
}

// session starts a reference service and creates a user with survival computed.
func session(t *testing.T, age, expectancy int) (*spyService, life.UserContext) {
	t.Helper()

	svc := newSpy(testutil.StartServer(t).Client())
	ctx := context.Background()

	user, err := svc.CreateProfile(ctx, age, expectancy)
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}
	if _, err := svc.Service.ComputeSurvival(ctx, user.ID, standardInputs); err != nil {
		t.Fatalf("ComputeSurvival() error = %v", err)
	}
	return svc, user
}
