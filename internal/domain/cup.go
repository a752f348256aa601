package domain

// Task is a single self-care action the user can mark complete.
type Task struct {
	ID               TaskID       `json:"id" yaml:"id"`
	Title            string       `json:"title" yaml:"title"`
	Subtitle         string       `json:"subtitle" yaml:"subtitle"`
	Category         Category     `json:"category" yaml:"category"`
	IconName         string       `json:"icon_name" yaml:"icon_name"`
	ExplanationTitle string       `json:"explanation_title" yaml:"explanation_title"`
	ExplanationBody  string       `json:"explanation_body" yaml:"explanation_body"`
	Completed        bool         `json:"completed" yaml:"completed"`
	EnergyImpact     EnergyImpact `json:"energy_impact" yaml:"energy_impact"`
}

// Badge is a named, one-time achievement.
type Badge struct {
	ID       BadgeID `json:"id"`
	Name     string  `json:"name"`
	Subtitle string  `json:"subtitle"`
	Icon     string  `json:"icon"`
	Color    Color   `json:"color"`
	EarnedOn Day     `json:"earned_on"`
}

// WeeklyGoal is a capped counter toward a category-specific target.
type WeeklyGoal struct {
	ID       GoalID   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Icon     string   `json:"icon" yaml:"icon"`
	Color    Color    `json:"color" yaml:"color"`
	Category Category `json:"category" yaml:"category"`
	Target   int      `json:"target" yaml:"target"`
	Current  int      `json:"current" yaml:"current"`
}

func (g WeeklyGoal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	return float64(g.Current) / float64(g.Target)
}

type Streak struct {
	Count         int `json:"count"`
	LastCompleted Day `json:"last_completed,omitempty"`
}

type Profile struct {
	DisplayName    string `json:"display_name"`
	AvatarInitials string `json:"avatar_initials"`
}

// State is everything the engine owns. It is also the unit stores persist.
type State struct {
	Tasks              []Task       `json:"tasks"`
	Badges             []Badge      `json:"badges"`
	WeeklyGoals        []WeeklyGoal `json:"weekly_goals"`
	CurrentMood        *Mood        `json:"current_mood,omitempty"`
	MoodHistory        map[Day]Mood `json:"mood_history"`
	Streak             Streak       `json:"streak"`
	OnboardingComplete bool         `json:"onboarding_complete"`
	Profile            Profile      `json:"profile"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{
		Tasks:              append([]Task(nil), s.Tasks...),
		Badges:             append([]Badge(nil), s.Badges...),
		WeeklyGoals:        append([]WeeklyGoal(nil), s.WeeklyGoals...),
		MoodHistory:        make(map[Day]Mood, len(s.MoodHistory)),
		Streak:             s.Streak,
		OnboardingComplete: s.OnboardingComplete,
		Profile:            s.Profile,
	}
	if s.CurrentMood != nil {
		m := *s.CurrentMood
		out.CurrentMood = &m
	}
	for d, m := range s.MoodHistory {
		out.MoodHistory[d] = m
	}
	return out
}
