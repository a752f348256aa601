package cup

import "github.com/PabloGalante/fillyourcup/internal/domain"

// Snapshot is a point-in-time copy of the engine state plus derived values.
type Snapshot struct {
	Version            uint64                     `json:"version"`
	Tasks              []domain.Task              `json:"tasks"`
	CompletedCount     int                        `json:"completed_count"`
	TotalCount         int                        `json:"total_count"`
	Progress           float64                    `json:"progress"`
	Badges             []domain.Badge             `json:"badges"`
	RecentBadges       []domain.Badge             `json:"recent_badges"`
	WeeklyGoals        []domain.WeeklyGoal        `json:"weekly_goals"`
	CurrentMood        *domain.Mood               `json:"current_mood"`
	MoodHistory        map[domain.Day]domain.Mood `json:"mood_history"`
	Streak             domain.Streak              `json:"streak"`
	OnboardingComplete bool                       `json:"onboarding_complete"`
	Profile            domain.Profile             `json:"profile"`
	ShowCelebration    bool                       `json:"show_celebration"`
	Suggestion         *string                    `json:"suggestion"`
}

// Snapshot returns the current state and derived values.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

// CompletedCount is the number of completed tasks.
func (e *Engine) CompletedCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return completedCount(e.state.Tasks)
}

// TotalCount is the number of tasks in today's list.
func (e *Engine) TotalCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.state.Tasks)
}

// Progress is the completed fraction of the task list, 0 when the list is empty.
func (e *Engine) Progress() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return progress(e.state.Tasks)
}

// RecentBadges returns up to three most recently earned badges, newest first.
func (e *Engine) RecentBadges() []domain.Badge {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return recentBadges(e.state.Badges)
}

// Suggestion returns the current advisory message, if any.
func (e *Engine) Suggestion() (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.suggestion, e.hasAdvice
}

// ShowCelebration reports whether the completion celebration is showing.
func (e *Engine) ShowCelebration() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.celebrating
}

// Version increases by one with every state change.
func (e *Engine) Version() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

func (e *Engine) commitLocked() Snapshot {
	e.version++
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	st := e.state.Clone()
	snap := Snapshot{
		Version:            e.version,
		Tasks:              st.Tasks,
		CompletedCount:     completedCount(st.Tasks),
		TotalCount:         len(st.Tasks),
		Progress:           progress(st.Tasks),
		Badges:             st.Badges,
		RecentBadges:       recentBadges(st.Badges),
		WeeklyGoals:        st.WeeklyGoals,
		CurrentMood:        st.CurrentMood,
		MoodHistory:        st.MoodHistory,
		Streak:             st.Streak,
		OnboardingComplete: st.OnboardingComplete,
		Profile:            st.Profile,
		ShowCelebration:    e.celebrating,
	}
	if e.hasAdvice {
		s := e.suggestion
		snap.Suggestion = &s
	}
	return snap
}

func completedCount(tasks []domain.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func progress(tasks []domain.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	return float64(completedCount(tasks)) / float64(len(tasks))
}

func recentBadges(badges []domain.Badge) []domain.Badge {
	start := len(badges) - recentBadgeLimit
	if start < 0 {
		start = 0
	}
	out := make([]domain.Badge, 0, len(badges)-start)
	for i := len(badges) - 1; i >= start; i-- {
		out = append(out, badges[i])
	}
	return out
}
