package domain

import (
	"context"
	"errors"
)

var (
	// ErrInvalidMood is returned when a mood value is not one of AllMoods.
	ErrInvalidMood = errors.New("invalid mood")

	// ErrStateNotFound is returned by a StateStore that has nothing saved for a user.
	ErrStateNotFound = errors.New("state not found")
)

// LLMClient defines how the core application interacts with an LLM service.
type LLMClient interface {
	GenerateReply(ctx context.Context, prompt string, coachCtx CoachContext) (string, error)
}

// CoachContext gives the LLM minimal context about the user's day.
type CoachContext struct {
	UserID       UserID
	Mood         *Mood
	Suggestion   string
	PendingTasks []string
}

// StateStore defines state persistence
type StateStore interface {
	LoadState(ctx context.Context, userID UserID) (*State, error)
	SaveState(ctx context.Context, userID UserID, state *State) error
}
