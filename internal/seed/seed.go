// Package seed provides the fixed list of tasks and weekly goals a session
// starts from.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/fillyourcup/internal/domain"
)

//go:embed default.yaml
var defaultSeed []byte

// File is the on-disk layout of a seed file.
type File struct {
	Tasks       []domain.Task       `yaml:"tasks"`
	WeeklyGoals []domain.WeeklyGoal `yaml:"weekly_goals"`
}

// Default returns the built-in seed.
func Default() (domain.State, error) {
	return Parse(defaultSeed)
}

// Load reads a seed file from path.
func Load(path string) (domain.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.State{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	st, err := Parse(data)
	if err != nil {
		return domain.State{}, fmt.Errorf("seed %s: %w", path, err)
	}
	return st, nil
}

// Parse decodes and validates seed YAML. Tasks and goals without an ID get a
// generated one; completion flags in the file are ignored.
func Parse(data []byte) (domain.State, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.State{}, fmt.Errorf("decode seed: %w", err)
	}

	taskIDs := make(map[domain.TaskID]bool, len(f.Tasks))
	for i := range f.Tasks {
		t := &f.Tasks[i]
		t.Completed = false
		if strings.TrimSpace(string(t.ID)) == "" {
			t.ID = domain.TaskID(uuid.NewString())
		}
		if taskIDs[t.ID] {
			return domain.State{}, fmt.Errorf("duplicate task id %q", t.ID)
		}
		taskIDs[t.ID] = true

		if strings.TrimSpace(t.Title) == "" {
			return domain.State{}, fmt.Errorf("task %q: title is required", t.ID)
		}
		if !t.Category.IsValid() {
			return domain.State{}, fmt.Errorf("task %q: invalid category %q", t.ID, t.Category)
		}
		if t.EnergyImpact == "" {
			t.EnergyImpact = domain.EnergyNeutral
		}
		if !t.EnergyImpact.IsValid() {
			return domain.State{}, fmt.Errorf("task %q: invalid energy impact %q", t.ID, t.EnergyImpact)
		}
	}

	goalIDs := make(map[domain.GoalID]bool, len(f.WeeklyGoals))
	for i := range f.WeeklyGoals {
		g := &f.WeeklyGoals[i]
		if strings.TrimSpace(string(g.ID)) == "" {
			g.ID = domain.GoalID(uuid.NewString())
		}
		if goalIDs[g.ID] {
			return domain.State{}, fmt.Errorf("duplicate goal id %q", g.ID)
		}
		goalIDs[g.ID] = true

		if !g.Category.IsValid() {
			return domain.State{}, fmt.Errorf("goal %q: invalid category %q", g.ID, g.Category)
		}
		if g.Color != "" && !g.Color.IsValid() {
			return domain.State{}, fmt.Errorf("goal %q: invalid color %q", g.ID, g.Color)
		}
		if g.Target < 0 || g.Current < 0 || g.Current > g.Target {
			return domain.State{}, fmt.Errorf("goal %q: need 0 <= current (%d) <= target (%d)", g.ID, g.Current, g.Target)
		}
	}

	if len(f.Tasks) == 0 {
		return domain.State{}, errors.New("seed has no tasks")
	}

	return domain.State{
		Tasks:       f.Tasks,
		WeeklyGoals: f.WeeklyGoals,
		MoodHistory: make(map[domain.Day]domain.Mood),
	}, nil
}
