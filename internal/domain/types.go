package domain

import (
	"fmt"
	"strings"
	"time"
)

type TaskID string
type BadgeID string
type GoalID string
type UserID string

// Category groups tasks by the kind of self-care they are.
type Category string

const (
	CategoryMovement   Category = "movement"
	CategoryConnection Category = "connection"
	CategoryCalm       Category = "calm"
	CategoryStructure  Category = "structure"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryMovement, CategoryConnection, CategoryCalm, CategoryStructure:
		return true
	default:
		return false
	}
}

// EnergyImpact is the expected effect of a task on the user's energy.
type EnergyImpact string

const (
	EnergyDraining EnergyImpact = "draining"
	EnergyNeutral  EnergyImpact = "neutral"
	EnergyFilling  EnergyImpact = "filling"
)

func (e EnergyImpact) IsValid() bool {
	switch e {
	case EnergyDraining, EnergyNeutral, EnergyFilling:
		return true
	default:
		return false
	}
}

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodVerySad Mood = "very_sad"
)

// AllMoods lists moods in the order they are offered to the user.
var AllMoods = []Mood{MoodHappy, MoodNeutral, MoodSad, MoodVerySad}

func (m Mood) IsValid() bool {
	switch m {
	case MoodHappy, MoodNeutral, MoodSad, MoodVerySad:
		return true
	default:
		return false
	}
}

func (m Mood) Emoji() string {
	switch m {
	case MoodHappy:
		return "😊"
	case MoodNeutral:
		return "😐"
	case MoodSad:
		return "😢"
	case MoodVerySad:
		return "😞"
	default:
		return ""
	}
}

// ParseMood accepts the canonical names plus a few spellings and the emojis.
func ParseMood(input string) (Mood, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "happy", "😊":
		return MoodHappy, nil
	case "neutral", "ok", "😐":
		return MoodNeutral, nil
	case "sad", "😢":
		return MoodSad, nil
	case "very_sad", "very-sad", "verysad", "😞":
		return MoodVerySad, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMood, input)
	}
}

type Color string

const (
	ColorBlue  Color = "blue"
	ColorGreen Color = "green"
	ColorPink  Color = "pink"
)

func (c Color) IsValid() bool {
	switch c {
	case ColorBlue, ColorGreen, ColorPink:
		return true
	default:
		return false
	}
}

// Day is a calendar day key formatted as YYYY-MM-DD.
type Day string

const dayLayout = "2006-01-02"

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

func (d Day) Time() (time.Time, error) {
	return time.Parse(dayLayout, string(d))
}

// DaysBetween returns the number of calendar days from a to b.
// It is independent of DST because both days are compared at UTC midnight.
func DaysBetween(a, b Day) (int, error) {
	ta, err := a.Time()
	if err != nil {
		return 0, fmt.Errorf("parse day %q: %w", a, err)
	}
	tb, err := b.Time()
	if err != nil {
		return 0, fmt.Errorf("parse day %q: %w", b, err)
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}
