package cup

import "github.com/PabloGalante/fillyourcup/internal/domain"

// goalForCategory maps a task category to the weekly goal it feeds.
// Structure tasks do not count toward any goal.
var goalForCategory = map[domain.Category]domain.Category{
	domain.CategoryMovement:   domain.CategoryMovement,
	domain.CategoryConnection: domain.CategoryConnection,
	domain.CategoryCalm:       domain.CategoryCalm,
}

// bumpWeeklyGoals increments every goal matching the task category, capped at
// the goal target, and reports how many goals moved.
func bumpWeeklyGoals(goals []domain.WeeklyGoal, taskCategory domain.Category) int {
	target, ok := goalForCategory[taskCategory]
	if !ok {
		return 0
	}

	bumped := 0
	for i := range goals {
		g := &goals[i]
		if g.Category != target || g.Current >= g.Target {
			continue
		}
		g.Current++
		bumped++
	}
	return bumped
}
