package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/PabloGalante/fillyourcup/internal/domain"
)

// Fill Your Cup theme for the CLI.

const (
	IconCup     = "☕"
	IconDrop    = "💧"
	IconDone    = "✅"
	IconTodo    = "⬜"
	IconBadge   = "🏅"
	IconGoal    = "🎯"
	IconStreak  = "🔥"
	IconIdea    = "💡"
	IconSparkle = "✨"
	IconError   = "🧨"
)

var (
	cBlue  = lipgloss.Color("39")
	cGreen = lipgloss.Color("42")
	cPink  = lipgloss.Color("205")
	cWarn  = lipgloss.Color("214")
	cBad   = lipgloss.Color("196")
	cMuted = lipgloss.Color("244")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cBlue)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPink)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cBlue)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGreen)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
)

const barWidth = 20

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Bar renders a fixed-width fill bar for a 0..1 ratio, e.g. "██████░░░░ 60%".
func Bar(ratio float64) string {
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * barWidth))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) +
		fmt.Sprintf(" %d%%", int(math.Round(ratio*100)))
}

// Tint picks the style for a badge or goal color.
func Tint(c domain.Color) lipgloss.Style {
	switch c {
	case domain.ColorGreen:
		return Good
	case domain.ColorPink:
		return H2
	default:
		return Key
	}
}

func TaskLine(t domain.Task) string {
	icon := IconTodo
	title := t.Title
	if t.Completed {
		icon = IconDone
		title = Muted.Render(title)
	}
	line := fmt.Sprintf("%s %s %s", icon, title, Muted.Render("["+string(t.ID)+"]"))
	if t.EnergyImpact == domain.EnergyDraining {
		line += " " + Warn.Render("draining")
	}
	return line
}

func MoodText(m *domain.Mood) string {
	if m == nil {
		return Muted.Render("not set")
	}
	return fmt.Sprintf("%s %s", m.Emoji(), *m)
}
