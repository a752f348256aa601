// Package cup is the state and derivation engine behind the "fill your cup"
// metaphor. It owns the day's tasks, mood history, badges, weekly goals and
// streak, and publishes a fresh Snapshot to subscribers after every change.
package cup

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/PabloGalante/fillyourcup/internal/app/suggestion"
	"github.com/PabloGalante/fillyourcup/internal/domain"
	"github.com/PabloGalante/fillyourcup/internal/observability"
)

const (
	recentBadgeLimit   = 3
	defaultDisplayName = "Friend"
)

// Engine holds one user's state and is safe for concurrent use.
type Engine struct {
	mu    sync.RWMutex
	state domain.State

	celebrating bool
	suggestion  string
	hasAdvice   bool
	version     uint64

	now   func() time.Time
	loc   *time.Location
	newID func() string

	subsMu  sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the source of "now". Streaks, badges and mood keys all use it.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLocation sets the time zone that decides where a calendar day starts.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithIDGenerator overrides how badge IDs are generated.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// NewEngine creates an engine that starts from a copy of initial.
func NewEngine(initial domain.State, opts ...Option) *Engine {
	e := &Engine{
		state: initial.Clone(),
		now:   time.Now,
		loc:   time.Local,
		newID: uuid.NewString,
		subs:  make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.state.MoodHistory == nil {
		e.state.MoodHistory = make(map[domain.Day]domain.Mood)
	}
	e.refreshSuggestion()
	return e
}

// CompleteTask marks a task as done. Unknown or already completed tasks are
// ignored and false is returned.
func (e *Engine) CompleteTask(ctx context.Context, id domain.TaskID) bool {
	log := observability.LoggerFromContext(ctx).With("task_id", id)

	e.mu.Lock()
	idx := e.indexOf(id)
	if idx < 0 || e.state.Tasks[idx].Completed {
		e.mu.Unlock()
		log.Debug("complete task ignored", "found", idx >= 0)
		return false
	}

	now := e.now().In(e.loc)
	today := domain.DayOf(now)
	task := &e.state.Tasks[idx]
	task.Completed = true

	e.state.Streak = nextStreak(e.state.Streak, today)
	awarded := e.awardBadges(now, today)
	bumped := bumpWeeklyGoals(e.state.WeeklyGoals, task.Category)
	e.celebrating = true
	e.refreshSuggestion()

	snap := e.commitLocked()
	e.mu.Unlock()

	log.Info("task completed",
		"completed", snap.CompletedCount,
		"total", snap.TotalCount,
		"streak", snap.Streak.Count,
		"badges_awarded", len(awarded),
		"goals_bumped", bumped,
	)
	e.publish(snap)
	return true
}

// SetMood records today's mood, overwriting an earlier entry for the same day.
func (e *Engine) SetMood(ctx context.Context, mood domain.Mood) error {
	if !mood.IsValid() {
		return domain.ErrInvalidMood
	}

	e.mu.Lock()
	today := domain.DayOf(e.now().In(e.loc))
	m := mood
	e.state.CurrentMood = &m
	e.state.MoodHistory[today] = mood
	snap := e.commitLocked()
	e.mu.Unlock()

	observability.LoggerFromContext(ctx).Info("mood recorded", "mood", mood, "day", today)
	e.publish(snap)
	return nil
}

// CompleteOnboarding flips the onboarding flag and stores the profile name.
// It has no effect once onboarding is complete.
func (e *Engine) CompleteOnboarding(ctx context.Context, displayName string) bool {
	e.mu.Lock()
	if e.state.OnboardingComplete {
		e.mu.Unlock()
		return false
	}
	e.state.OnboardingComplete = true
	e.state.Profile = newProfile(displayName)
	snap := e.commitLocked()
	e.mu.Unlock()

	observability.LoggerFromContext(ctx).Info("onboarding completed", "display_name", snap.Profile.DisplayName)
	e.publish(snap)
	return true
}

// ClearCelebration turns off the transient celebration flag.
func (e *Engine) ClearCelebration(ctx context.Context) bool {
	e.mu.Lock()
	if !e.celebrating {
		e.mu.Unlock()
		return false
	}
	e.celebrating = false
	snap := e.commitLocked()
	e.mu.Unlock()

	observability.LoggerFromContext(ctx).Debug("celebration cleared")
	e.publish(snap)
	return true
}

// Subscribe registers fn to receive a snapshot after every state change.
// Snapshots from concurrent mutations may arrive out of order; use Version
// to discard stale ones. fn must not block.
func (e *Engine) Subscribe(fn func(Snapshot)) (cancel func()) {
	e.subsMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.subsMu.Lock()
			delete(e.subs, id)
			e.subsMu.Unlock()
		})
	}
}

// State returns a copy of the persistent part of the engine state.
func (e *Engine) State() domain.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Clone()
}

func (e *Engine) publish(snap Snapshot) {
	e.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (e *Engine) indexOf(id domain.TaskID) int {
	for i := range e.state.Tasks {
		if e.state.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// refreshSuggestion must run after any change to the task list.
func (e *Engine) refreshSuggestion() {
	e.suggestion, e.hasAdvice = suggestion.Evaluate(e.state.Tasks)
}

func newProfile(displayName string) domain.Profile {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = defaultDisplayName
	}
	r, _ := utf8.DecodeRuneInString(name)
	return domain.Profile{DisplayName: name, AvatarInitials: string(unicode.ToUpper(r))}
}
