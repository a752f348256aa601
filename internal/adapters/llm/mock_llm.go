package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/fillyourcup/internal/domain"
)

type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

// GenerateReply answers without a model: the app reminder if there is one,
// otherwise a nudge toward the first open task.
func (m *MockLLM) GenerateReply(ctx context.Context, prompt string, coachCtx domain.CoachContext) (string, error) {
	if coachCtx.Suggestion != "" {
		return coachCtx.Suggestion, nil
	}
	if len(coachCtx.PendingTasks) == 0 {
		return "Your cup is full today. Take a moment to notice how that feels.", nil
	}
	return fmt.Sprintf("Next small step: %s. One sip at a time.", coachCtx.PendingTasks[0]), nil
}
