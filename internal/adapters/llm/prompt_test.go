package llm_test

import (
	"context"
	"strings"
	"testing"

	"github.com/PabloGalante/fillyourcup/internal/adapters/llm"
	"github.com/PabloGalante/fillyourcup/internal/domain"
)

func TestBuildPromptIncludesContext(t *testing.T) {
	mood := domain.MoodSad
	p := llm.BuildPrompt("1 of 4 tasks done", domain.CoachContext{
		Mood:         &mood,
		Suggestion:   "Take a break.",
		PendingTasks: []string{"Text a friend", "Make your bed"},
	})

	for _, want := range []string{"1 of 4 tasks done", "sad 😢", "- Text a friend", "App reminder: Take a break."} {
		if !strings.Contains(p.User, want) {
			t.Fatalf("user prompt missing %q:\n%s", want, p.User)
		}
	}
	if p.System == "" {
		t.Fatalf("empty system prompt")
	}
}

func TestMockLLM(t *testing.T) {
	ctx := context.Background()
	m := llm.NewMockLLM()

	got, _ := m.GenerateReply(ctx, "", domain.CoachContext{Suggestion: "Recharge."})
	if got != "Recharge." {
		t.Fatalf("got %q", got)
	}

	got, _ = m.GenerateReply(ctx, "", domain.CoachContext{PendingTasks: []string{"Make your bed"}})
	if !strings.Contains(got, "Make your bed") {
		t.Fatalf("got %q", got)
	}

	got, _ = m.GenerateReply(ctx, "", domain.CoachContext{})
	if !strings.Contains(got, "cup is full") {
		t.Fatalf("got %q", got)
	}
}
