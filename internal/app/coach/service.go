package coach

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/PabloGalante/fillyourcup/internal/app/cup"
	"github.com/PabloGalante/fillyourcup/internal/domain"
	"github.com/PabloGalante/fillyourcup/internal/observability"
)

// Service turns the current state of the day into a short coaching message.
type Service struct {
	llm    domain.LLMClient
	userID domain.UserID
}

func NewService(llm domain.LLMClient, userID domain.UserID) *Service {
	return &Service{
		llm:    llm,
		userID: userID,
	}
}

func (s *Service) Advise(ctx context.Context, snap cup.Snapshot) (string, error) {
	coachCtx := ContextFor(s.userID, snap)
	summary := Summary(snap)

	log := observability.LoggerFromContext(ctx).With(
		"user_id", s.userID,
		"pending", len(coachCtx.PendingTasks),
	)

	reply, err := s.llm.GenerateReply(ctx, summary, coachCtx)
	if err != nil {
		log.Error("coach reply failed", "error", err)
		return "", fmt.Errorf("coach: %w", err)
	}

	log.Info("coach replied", "chars", len(reply))
	return strings.TrimSpace(reply), nil
}

// ContextFor extracts what the LLM needs to know from a snapshot.
func ContextFor(userID domain.UserID, snap cup.Snapshot) domain.CoachContext {
	c := domain.CoachContext{
		UserID: userID,
		Mood:   snap.CurrentMood,
	}
	if snap.Suggestion != nil {
		c.Suggestion = *snap.Suggestion
	}
	for _, t := range snap.Tasks {
		if !t.Completed {
			c.PendingTasks = append(c.PendingTasks, t.Title)
		}
	}
	return c
}

// Summary renders progress, streak and recent badges as plain text.
func Summary(snap cup.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d tasks done (cup %d%% full).", snap.CompletedCount, snap.TotalCount, int(math.Round(snap.Progress*100)))
	if snap.Streak.Count > 0 {
		fmt.Fprintf(&b, " Streak: %d day(s).", snap.Streak.Count)
	}
	if len(snap.RecentBadges) > 0 {
		names := make([]string, 0, len(snap.RecentBadges))
		for _, badge := range snap.RecentBadges {
			names = append(names, badge.Name)
		}
		fmt.Fprintf(&b, " Recent badges: %s.", strings.Join(names, ", "))
	}
	return b.String()
}
