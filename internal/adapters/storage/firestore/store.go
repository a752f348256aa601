package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/fillyourcup/internal/domain"
)

type Store struct {
	client *firestore.Client
	now    func() time.Time
}

// NewStore creates a Firestore store.
// Uses the project passed (FILLCUP_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) usersCol() *firestore.CollectionRef {
	return s.client.Collection("users")
}

func (s *Store) userDoc(id domain.UserID) *firestore.DocumentRef {
	return s.usersCol().Doc(string(id))
}

func (s *Store) badgesCol(id domain.UserID) *firestore.CollectionRef {
	return s.userDoc(id).Collection("badges")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type stateDoc struct {
	Tasks              []taskDoc         `firestore:"tasks"`
	WeeklyGoals        []goalDoc         `firestore:"weekly_goals"`
	CurrentMood        string            `firestore:"current_mood"`
	MoodHistory        map[string]string `firestore:"mood_history"`
	StreakCount        int               `firestore:"streak_count"`
	StreakLast         string            `firestore:"streak_last"`
	OnboardingComplete bool              `firestore:"onboarding_complete"`
	DisplayName        string            `firestore:"display_name"`
	AvatarInitials     string            `firestore:"avatar_initials"`
	UpdatedAt          time.Time         `firestore:"updated_at"`
}

type taskDoc struct {
	ID               string `firestore:"id"`
	Title            string `firestore:"title"`
	Subtitle         string `firestore:"subtitle"`
	Category         string `firestore:"category"`
	IconName         string `firestore:"icon_name"`
	ExplanationTitle string `firestore:"explanation_title"`
	ExplanationBody  string `firestore:"explanation_body"`
	Completed        bool   `firestore:"completed"`
	EnergyImpact     string `firestore:"energy_impact"`
}

type goalDoc struct {
	ID       string `firestore:"id"`
	Title    string `firestore:"title"`
	Icon     string `firestore:"icon"`
	Color    string `firestore:"color"`
	Category string `firestore:"category"`
	Target   int    `firestore:"target"`
	Current  int    `firestore:"current"`
}

// Badges are immutable, so each one is its own document and is written once.
type badgeDoc struct {
	Name     string `firestore:"name"`
	Subtitle string `firestore:"subtitle"`
	Icon     string `firestore:"icon"`
	Color    string `firestore:"color"`
	EarnedOn string `firestore:"earned_on"`
	Seq      int    `firestore:"seq"`
}

// ─────────────────────────────────────────
// StateStore implementation
// ─────────────────────────────────────────

func (s *Store) SaveState(ctx context.Context, userID domain.UserID, state *domain.State) error {
	if state == nil {
		return nil
	}

	doc := toStateDoc(state)
	doc.UpdatedAt = s.now()

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(s.userDoc(userID), doc); err != nil {
			return err
		}
		for i, b := range state.Badges {
			ref := s.badgesCol(userID).Doc(string(b.ID))
			if err := tx.Set(ref, toBadgeDoc(b, i)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("firestore SaveState: %w", err)
	}
	return nil
}

func (s *Store) LoadState(ctx context.Context, userID domain.UserID) (*domain.State, error) {
	snap, err := s.userDoc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("firestore LoadState: %w", err)
	}

	var doc stateDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore LoadState decode: %w", err)
	}

	st := fromStateDoc(doc)

	iter := s.badgesCol(userID).OrderBy("seq", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	for {
		bsnap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore LoadState badges: %w", err)
		}

		var b badgeDoc
		if err := bsnap.DataTo(&b); err != nil {
			return nil, fmt.Errorf("decode badgeDoc: %w", err)
		}
		st.Badges = append(st.Badges, domain.Badge{
			ID:       domain.BadgeID(bsnap.Ref.ID),
			Name:     b.Name,
			Subtitle: b.Subtitle,
			Icon:     b.Icon,
			Color:    domain.Color(b.Color),
			EarnedOn: domain.Day(b.EarnedOn),
		})
	}

	return &st, nil
}

// ─────────────────────────────────────────
// Mapping
// ─────────────────────────────────────────

func toStateDoc(st *domain.State) stateDoc {
	doc := stateDoc{
		MoodHistory:        make(map[string]string, len(st.MoodHistory)),
		StreakCount:        st.Streak.Count,
		StreakLast:         string(st.Streak.LastCompleted),
		OnboardingComplete: st.OnboardingComplete,
		DisplayName:        st.Profile.DisplayName,
		AvatarInitials:     st.Profile.AvatarInitials,
	}
	if st.CurrentMood != nil {
		doc.CurrentMood = string(*st.CurrentMood)
	}
	for d, m := range st.MoodHistory {
		doc.MoodHistory[string(d)] = string(m)
	}
	for _, t := range st.Tasks {
		doc.Tasks = append(doc.Tasks, taskDoc{
			ID:               string(t.ID),
			Title:            t.Title,
			Subtitle:         t.Subtitle,
			Category:         string(t.Category),
			IconName:         t.IconName,
			ExplanationTitle: t.ExplanationTitle,
			ExplanationBody:  t.ExplanationBody,
			Completed:        t.Completed,
			EnergyImpact:     string(t.EnergyImpact),
		})
	}
	for _, g := range st.WeeklyGoals {
		doc.WeeklyGoals = append(doc.WeeklyGoals, goalDoc{
			ID:       string(g.ID),
			Title:    g.Title,
			Icon:     g.Icon,
			Color:    string(g.Color),
			Category: string(g.Category),
			Target:   g.Target,
			Current:  g.Current,
		})
	}
	return doc
}

func fromStateDoc(doc stateDoc) domain.State {
	st := domain.State{
		MoodHistory:        make(map[domain.Day]domain.Mood, len(doc.MoodHistory)),
		Streak:             domain.Streak{Count: doc.StreakCount, LastCompleted: domain.Day(doc.StreakLast)},
		OnboardingComplete: doc.OnboardingComplete,
		Profile:            domain.Profile{DisplayName: doc.DisplayName, AvatarInitials: doc.AvatarInitials},
	}
	if doc.CurrentMood != "" {
		m := domain.Mood(doc.CurrentMood)
		st.CurrentMood = &m
	}
	for d, m := range doc.MoodHistory {
		st.MoodHistory[domain.Day(d)] = domain.Mood(m)
	}
	for _, t := range doc.Tasks {
		st.Tasks = append(st.Tasks, domain.Task{
			ID:               domain.TaskID(t.ID),
			Title:            t.Title,
			Subtitle:         t.Subtitle,
			Category:         domain.Category(t.Category),
			IconName:         t.IconName,
			ExplanationTitle: t.ExplanationTitle,
			ExplanationBody:  t.ExplanationBody,
			Completed:        t.Completed,
			EnergyImpact:     domain.EnergyImpact(t.EnergyImpact),
		})
	}
	for _, g := range doc.WeeklyGoals {
		st.WeeklyGoals = append(st.WeeklyGoals, domain.WeeklyGoal{
			ID:       domain.GoalID(g.ID),
			Title:    g.Title,
			Icon:     g.Icon,
			Color:    domain.Color(g.Color),
			Category: domain.Category(g.Category),
			Target:   g.Target,
			Current:  g.Current,
		})
	}
	return st
}

func toBadgeDoc(b domain.Badge, seq int) badgeDoc {
	return badgeDoc{
		Name:     b.Name,
		Subtitle: b.Subtitle,
		Icon:     b.Icon,
		Color:    string(b.Color),
		EarnedOn: string(b.EarnedOn),
		Seq:      seq,
	}
}
