package cup

import "github.com/PabloGalante/fillyourcup/internal/domain"

// nextStreak applies one completion on today to s.
//
// A completion the day after the last one extends the streak, a second
// completion on the same day leaves it alone, and anything else (including
// a last day that lies in the future) starts over at 1.
func nextStreak(s domain.Streak, today domain.Day) domain.Streak {
	if s.LastCompleted == "" {
		return domain.Streak{Count: 1, LastCompleted: today}
	}

	gap, err := domain.DaysBetween(s.LastCompleted, today)
	if err != nil {
		return domain.Streak{Count: 1, LastCompleted: today}
	}

	switch gap {
	case 0:
		return s
	case 1:
		return domain.Streak{Count: s.Count + 1, LastCompleted: today}
	default:
		return domain.Streak{Count: 1, LastCompleted: today}
	}
}
