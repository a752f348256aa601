package llm

import (
	"strings"

	"github.com/PabloGalante/fillyourcup/internal/domain"
)

const baseSystemPrompt = `
You are the "Fill Your Cup" companion, a gentle coach inside a self-care habit app.
The user completes small daily tasks (a short walk, texting a friend, breathing, making the bed)
and watches a cup fill up as they go.

Your role:
- Encourage one small next step, never a long list.
- Acknowledge what the user already did today, however little.
- You are NOT a therapist, doctor, or emergency service and you do NOT give medical or psychiatric diagnoses.

Style guidelines:
- 2-4 short sentences.
- Warm, simple, everyday language.
- If a reminder from the app is provided, build on it instead of contradicting it.

Boundaries and safety:
- If the user mentions self-harm or suicide, encourage them to contact local emergency services or a trusted person.
`

// Prompt represents the system prompt + the content to send as "user".
type Prompt struct {
	System string
	User   string
}

// BuildPrompt builds the system prompt and the user content from the day summary
// and the coach context.
func BuildPrompt(summary string, ctx domain.CoachContext) Prompt {
	var user strings.Builder
	user.WriteString("Today so far:\n")
	user.WriteString(summary)
	user.WriteString("\n")

	if ctx.Mood != nil {
		user.WriteString("\nMood checked in: ")
		user.WriteString(string(*ctx.Mood))
		user.WriteString(" ")
		user.WriteString(ctx.Mood.Emoji())
		user.WriteString("\n")
	}

	if len(ctx.PendingTasks) > 0 {
		user.WriteString("\nStill open:\n")
		for _, t := range ctx.PendingTasks {
			user.WriteString("- ")
			user.WriteString(t)
			user.WriteString("\n")
		}
	}

	if ctx.Suggestion != "" {
		user.WriteString("\nApp reminder: ")
		user.WriteString(ctx.Suggestion)
		user.WriteString("\n")
	}

	return Prompt{
		System: baseSystemPrompt,
		User:   user.String(),
	}
}
