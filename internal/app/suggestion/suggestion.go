// Package suggestion holds the rule-based advisor that looks at the day's
// tasks and decides whether the user should hear a gentle nudge.
package suggestion

import "github.com/PabloGalante/fillyourcup/internal/domain"

const (
	RechargeMessage = "I see you have a few challenging tasks today. Remember to take a short break to recharge."
	OneStepMessage  = "There's a lot on your plate. Focus on one small step at a time. You can do it!"

	drainingThreshold   = 2
	incompleteThreshold = 4
)

// Rule returns a message when it applies to the given tasks.
type Rule struct {
	Name  string
	Match func(tasks []domain.Task) bool
	Text  string
}

// Rules are evaluated in order; the first match wins.
var Rules = []Rule{
	{
		Name: "recharge",
		Match: func(tasks []domain.Task) bool {
			return countDraining(tasks) >= drainingThreshold
		},
		Text: RechargeMessage,
	},
	{
		Name: "one_step",
		Match: func(tasks []domain.Task) bool {
			return countIncomplete(tasks) >= incompleteThreshold
		},
		Text: OneStepMessage,
	},
}

// Evaluate returns the first matching suggestion, if any.
func Evaluate(tasks []domain.Task) (string, bool) {
	for _, r := range Rules {
		if r.Match(tasks) {
			return r.Text, true
		}
	}
	return "", false
}

func countDraining(tasks []domain.Task) int {
	n := 0
	for _, t := range tasks {
		if t.EnergyImpact == domain.EnergyDraining {
			n++
		}
	}
	return n
}

func countIncomplete(tasks []domain.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
