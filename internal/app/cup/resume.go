package cup

import "github.com/PabloGalante/fillyourcup/internal/domain"

// ResumeState prepares a saved state for a session starting on today.
//
// The task list belongs to a single day: if tasks were completed on an
// earlier day they are replaced by fresh copies of seedTasks. Badges,
// streak, weekly goals, mood history and profile carry over.
func ResumeState(saved domain.State, seedTasks []domain.Task, today domain.Day) domain.State {
	st := saved.Clone()
	if completedCount(st.Tasks) == 0 || st.Streak.LastCompleted == today {
		return st
	}

	st.Tasks = make([]domain.Task, len(seedTasks))
	copy(st.Tasks, seedTasks)
	for i := range st.Tasks {
		st.Tasks[i].Completed = false
	}
	return st
}
