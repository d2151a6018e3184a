package store

import (
	"context"
	"strconv"
	"sync"

	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
)

type survivalRecord struct {
	inputs life.SurvivalInputs
	result life.SurvivalResult
}

type activityKey struct {
	category Category
	userID   int64
}

// Memory is a mutex-guarded in-memory Store.
type Memory struct {
	mu         sync.RWMutex
	nextUserID int64
	nextActID  int64
	users      map[int64]life.UserContext
	survival   map[int64]survivalRecord
	activities map[activityKey][]life.Activity
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[int64]life.UserContext),
		survival:   make(map[int64]survivalRecord),
		activities: make(map[activityKey][]life.Activity),
	}
}

func (m *Memory) CreateUser(_ context.Context, age, lifeExpectancy int) (life.UserContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextUserID++
	u := life.UserContext{ID: m.nextUserID, Age: age, LifeExpectancy: lifeExpectancy}
	m.users[u.ID] = u
	return u, nil
}

func (m *Memory) GetUser(_ context.Context, id int64) (life.UserContext, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return life.UserContext{}, errors.NewNotFoundError("user", strconv.FormatInt(id, 10))
	}
	return u, nil
}

func (m *Memory) SaveSurvival(_ context.Context, userID int64, in life.SurvivalInputs, result life.SurvivalResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.survival[userID] = survivalRecord{inputs: in, result: result}
	return nil
}

func (m *Memory) GetSurvival(_ context.Context, userID int64) (life.SurvivalResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.survival[userID]
	if !ok {
		return life.SurvivalResult{}, errors.NewNotFoundError("survival result", strconv.FormatInt(userID, 10))
	}
	return rec.result, nil
}

func (m *Memory) UpsertActivity(_ context.Context, c Category, userID int64, label string, hoursPerWeek float64, source string) (life.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := activityKey{category: c, userID: userID}
	list := m.activities[key]
	for i := range list {
		if list[i].Label == label {
			list[i].HoursPerWeek = hoursPerWeek
			list[i].IsActive = true
			return list[i], nil
		}
	}

	m.nextActID++
	a := life.Activity{
		ID:           m.nextActID,
		Label:        label,
		HoursPerWeek: hoursPerWeek,
		Source:       source,
		IsActive:     true,
	}
	m.activities[key] = append(list, a)
	return a, nil
}

func (m *Memory) UpdateActivity(_ context.Context, c Category, userID, activityID int64, u Update) (life.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.activities[activityKey{category: c, userID: userID}]
	for i := range list {
		if list[i].ID != activityID {
			continue
		}
		if u.HoursPerWeek != nil {
			list[i].HoursPerWeek = *u.HoursPerWeek
		}
		if u.IsActive != nil {
			list[i].IsActive = *u.IsActive
		}
		return list[i], nil
	}
	return life.Activity{}, errors.NewNotFoundError("activity", strconv.FormatInt(activityID, 10))
}

func (m *Memory) ListActivities(_ context.Context, c Category, userID int64, activeOnly bool) ([]life.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.activities[activityKey{category: c, userID: userID}]
	out := make([]life.Activity, 0, len(list))
	for _, a := range list {
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
