package cup

import (
	"fmt"
	"time"

	"github.com/PabloGalante/fillyourcup/internal/domain"
)

const (
	BadgeFirstSip      = "First Sip"
	BadgeSteadyStream  = "Steady Stream"
	BadgeEarlyBird     = "Early Bird"
	firstSipThreshold  = 3
	steadyStreamLength = 4
	morningEndsAtHour  = 12
)

// badgeProgress is what badge rules look at after a completion.
type badgeProgress struct {
	completed int
	streak    int
	hour      int
}

type badgeRule struct {
	name     string
	icon     string
	color    domain.Color
	earned   func(p badgeProgress) bool
	subtitle func(p badgeProgress) string
}

var badgeRules = []badgeRule{
	{
		name:     BadgeFirstSip,
		icon:     "drop.fill",
		color:    domain.ColorGreen,
		earned:   func(p badgeProgress) bool { return p.completed >= firstSipThreshold },
		subtitle: func(p badgeProgress) string { return fmt.Sprintf("%d tasks today", p.completed) },
	},
	{
		name:     BadgeSteadyStream,
		icon:     "flame.fill",
		color:    domain.ColorBlue,
		earned:   func(p badgeProgress) bool { return p.streak >= steadyStreamLength },
		subtitle: func(p badgeProgress) string { return fmt.Sprintf("%d day streak", p.streak) },
	},
	{
		name:     BadgeEarlyBird,
		icon:     "star.fill",
		color:    domain.ColorPink,
		earned:   func(p badgeProgress) bool { return p.hour < morningEndsAtHour && p.completed > 0 },
		subtitle: func(badgeProgress) string { return "Morning task" },
	},
}

// awardBadges appends every newly earned badge and returns them.
func (e *Engine) awardBadges(now time.Time, today domain.Day) []domain.Badge {
	p := badgeProgress{
		completed: completedCount(e.state.Tasks),
		streak:    e.state.Streak.Count,
		hour:      now.Hour(),
	}

	var awarded []domain.Badge
	for _, r := range badgeRules {
		if !r.earned(p) || hasBadge(e.state.Badges, r.name) {
			continue
		}
		b := domain.Badge{
			ID:       domain.BadgeID(e.newID()),
			Name:     r.name,
			Subtitle: r.subtitle(p),
			Icon:     r.icon,
			Color:    r.color,
			EarnedOn: today,
		}
		e.state.Badges = append(e.state.Badges, b)
		awarded = append(awarded, b)
	}
	return awarded
}

func hasBadge(badges []domain.Badge, name string) bool {
	for _, b := range badges {
		if b.Name == name {
			return true
		}
	}
	return false
}
