package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
)

// backends returns one fresh instance of every Store implementation.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "lifespan.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestStore_Users(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			u, err := s.CreateUser(ctx, 30, 80)
			if err != nil {
				t.Fatalf("CreateUser() error = %v", err)
			}
			if u.ID == 0 {
				t.Error("CreateUser() returned zero ID")
			}

			got, err := s.GetUser(ctx, u.ID)
			if err != nil {
				t.Fatalf("GetUser() error = %v", err)
			}
			if got != u {
				t.Errorf("GetUser() = %+v, want %+v", got, u)
			}

			second, err := s.CreateUser(ctx, 40, 90)
			if err != nil {
				t.Fatalf("CreateUser() error = %v", err)
			}
			if second.ID == u.ID {
				t.Error("user IDs should be distinct")
			}

			if _, err := s.GetUser(ctx, 9999); !errors.Is(err, errors.ErrNotFound) {
				t.Errorf("GetUser(missing) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_SurvivalOverwrite(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			u, _ := s.CreateUser(ctx, 30, 80)

			if _, err := s.GetSurvival(ctx, u.ID); !errors.Is(err, errors.ErrNotFound) {
				t.Errorf("GetSurvival() before save error = %v, want ErrNotFound", err)
			}

			first := life.ComputeSurvival(u, life.SurvivalInputs{SleepHoursPerDay: 8})
			if err := s.SaveSurvival(ctx, u.ID, life.SurvivalInputs{SleepHoursPerDay: 8}, first); err != nil {
				t.Fatalf("SaveSurvival() error = %v", err)
			}

			in := life.SurvivalInputs{SleepHoursPerDay: 7, WorkHoursPerDay: 8, WorkDaysPerWeek: 5}
			second := life.ComputeSurvival(u, in)
			if err := s.SaveSurvival(ctx, u.ID, in, second); err != nil {
				t.Fatalf("SaveSurvival() overwrite error = %v", err)
			}

			got, err := s.GetSurvival(ctx, u.ID)
			if err != nil {
				t.Fatalf("GetSurvival() error = %v", err)
			}
			if got.SleepYears != second.SleepYears || got.WorkYears != second.WorkYears {
				t.Errorf("GetSurvival() = %+v, want %+v", got, second)
			}
			if got.Remaining() != 50 {
				t.Errorf("Remaining() = %v, want 50", got.Remaining())
			}
		})
	}
}

func TestStore_UpsertActivity(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			u, _ := s.CreateUser(ctx, 30, 80)

			first, err := s.UpsertActivity(ctx, Maintenance, u.ID, "Exercising", 5, life.SourcePreset)
			if err != nil {
				t.Fatalf("UpsertActivity() error = %v", err)
			}
			if !first.IsActive || first.Source != life.SourcePreset {
				t.Errorf("UpsertActivity() = %+v", first)
			}

			again, err := s.UpsertActivity(ctx, Maintenance, u.ID, "Exercising", 3, life.SourcePreset)
			if err != nil {
				t.Fatalf("UpsertActivity() overwrite error = %v", err)
			}
			if again.ID != first.ID {
				t.Errorf("overwrite changed ID from %d to %d", first.ID, again.ID)
			}
			if again.HoursPerWeek != 3 {
				t.Errorf("HoursPerWeek = %v, want 3", again.HoursPerWeek)
			}

			// Same label in the other category is a separate row.
			if _, err := s.UpsertActivity(ctx, Leakage, u.ID, "Exercising", 1, ""); err != nil {
				t.Fatalf("UpsertActivity(leakage) error = %v", err)
			}

			// Labels are case-sensitive keys.
			if _, err := s.UpsertActivity(ctx, Maintenance, u.ID, "exercising", 1, life.SourceUser); err != nil {
				t.Fatalf("UpsertActivity(lowercase) error = %v", err)
			}

			list, err := s.ListActivities(ctx, Maintenance, u.ID, true)
			if err != nil {
				t.Fatalf("ListActivities() error = %v", err)
			}
			if len(list) != 2 {
				t.Fatalf("ListActivities() returned %d, want 2", len(list))
			}
			if list[0].Label != "Exercising" || list[1].Label != "exercising" {
				t.Errorf("ListActivities() order = [%s %s]", list[0].Label, list[1].Label)
			}
		})
	}
}

func TestStore_UpdateActivity(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			u, _ := s.CreateUser(ctx, 30, 80)
			a, _ := s.UpsertActivity(ctx, Maintenance, u.ID, "Health care", 2, life.SourcePreset)

			off := false
			got, err := s.UpdateActivity(ctx, Maintenance, u.ID, a.ID, Update{IsActive: &off})
			if err != nil {
				t.Fatalf("UpdateActivity() error = %v", err)
			}
			if got.IsActive || got.HoursPerWeek != 2 {
				t.Errorf("UpdateActivity() = %+v", got)
			}

			active, _ := s.ListActivities(ctx, Maintenance, u.ID, true)
			if len(active) != 0 {
				t.Errorf("active list has %d entries, want 0", len(active))
			}
			all, _ := s.ListActivities(ctx, Maintenance, u.ID, false)
			if len(all) != 1 {
				t.Errorf("full list has %d entries, want 1", len(all))
			}

			// Re-adding a deactivated label brings it back.
			back, err := s.UpsertActivity(ctx, Maintenance, u.ID, "Health care", 4, life.SourcePreset)
			if err != nil {
				t.Fatalf("UpsertActivity() error = %v", err)
			}
			if !back.IsActive || back.ID != a.ID {
				t.Errorf("UpsertActivity() after deactivate = %+v", back)
			}

			if _, err := s.UpdateActivity(ctx, Leakage, u.ID, a.ID, Update{IsActive: &off}); !errors.Is(err, errors.ErrNotFound) {
				t.Errorf("UpdateActivity(wrong category) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestOpen_EmptyPathIsMemory(t *testing.T) {
	s, err := Open(context.Background(), "")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Errorf("Open(\"\") = %T, want *Memory", s)
	}
}

func TestCategory_Valid(t *testing.T) {
	tests := []struct {
		c    Category
		want bool
	}{
		{Maintenance, true},
		{Leakage, true},
		{Category("survival"), false},
		{Category(""), false},
	}
	for _, tt := range tests {
		if got := tt.c.Valid(); got != tt.want {
			t.Errorf("Category(%q).Valid() = %v, want %v", tt.c, got, tt.want)
		}
	}
}
