package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/PabloGalante/fillyourcup/internal/adapters/storage/sqlite"
	"github.com/PabloGalante/fillyourcup/internal/domain"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoadMissingState(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.LoadState(context.Background(), "nobody"); !errors.Is(err, domain.ErrStateNotFound) {
		t.Fatalf("err=%v, want ErrStateNotFound", err)
	}
}

func TestSaveAndLoadState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	mood := domain.MoodHappy
	st := &domain.State{
		Tasks:       []domain.Task{{ID: "walk", Title: "Walk", Category: domain.CategoryMovement, Completed: true}},
		Badges:      []domain.Badge{{ID: "b1", Name: "Early Bird", EarnedOn: "2024-03-04"}},
		WeeklyGoals: []domain.WeeklyGoal{{ID: "move", Category: domain.CategoryMovement, Target: 3, Current: 1}},
		CurrentMood: &mood,
		MoodHistory: map[domain.Day]domain.Mood{
			"2024-03-03": domain.MoodSad,
			"2024-03-04": domain.MoodNeutral,
		},
		Streak:             domain.Streak{Count: 2, LastCompleted: "2024-03-04"},
		OnboardingComplete: true,
		Profile:            domain.Profile{DisplayName: "Alex", AvatarInitials: "A"},
	}
	if err := store.SaveState(ctx, "u1", st); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	// A second save overwrites today's mood instead of adding a row.
	st.MoodHistory["2024-03-04"] = domain.MoodHappy
	st.Streak.Count = 3
	if err := store.SaveState(ctx, "u1", st); err != nil {
		t.Fatalf("SaveState again: %v", err)
	}

	got, err := store.LoadState(ctx, "u1")
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if len(got.MoodHistory) != 2 || got.MoodHistory["2024-03-04"] != domain.MoodHappy {
		t.Fatalf("history=%v", got.MoodHistory)
	}
	if got.Streak.Count != 3 || !got.OnboardingComplete || got.Profile.DisplayName != "Alex" {
		t.Fatalf("state=%+v", got)
	}
	if len(got.Badges) != 1 || got.Badges[0].Name != "Early Bird" {
		t.Fatalf("badges=%+v", got.Badges)
	}
	if got.CurrentMood == nil || *got.CurrentMood != domain.MoodHappy {
		t.Fatalf("current mood=%v", got.CurrentMood)
	}
}
