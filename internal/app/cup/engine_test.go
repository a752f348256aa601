package cup_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/PabloGalante/fillyourcup/internal/app/cup"
	"github.com/PabloGalante/fillyourcup/internal/app/suggestion"
	"github.com/PabloGalante/fillyourcup/internal/domain"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) addDays(n int) { c.t = c.t.AddDate(0, 0, n) }

// afternoon avoids the Early Bird badge unless a test asks for it.
func afternoon() *fakeClock {
	return &fakeClock{t: time.Date(2024, time.March, 4, 15, 0, 0, 0, time.UTC)}
}

func task(id string, cat domain.Category) domain.Task {
	return domain.Task{
		ID:           domain.TaskID(id),
		Title:        id,
		Category:     cat,
		EnergyImpact: domain.EnergyNeutral,
	}
}

func seedState() domain.State {
	return domain.State{
		Tasks: []domain.Task{
			task("walk", domain.CategoryMovement),
			task("text", domain.CategoryConnection),
			task("breathe", domain.CategoryCalm),
			task("bed", domain.CategoryStructure),
			task("stretch", domain.CategoryMovement),
			task("dance", domain.CategoryMovement),
		},
		WeeklyGoals: []domain.WeeklyGoal{
			{ID: "move", Category: domain.CategoryMovement, Target: 2},
			{ID: "connect", Category: domain.CategoryConnection, Target: 3},
			{ID: "calm", Category: domain.CategoryCalm, Target: 5},
		},
	}
}

func newEngine(t *testing.T, clk *fakeClock, st domain.State) *cup.Engine {
	t.Helper()
	n := 0
	return cup.NewEngine(st,
		cup.WithClock(clk.Now),
		cup.WithLocation(time.UTC),
		cup.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("badge-%d", n)
		}),
	)
}

func badgeNames(badges []domain.Badge) []string {
	out := make([]string, 0, len(badges))
	for _, b := range badges {
		out = append(out, b.Name)
	}
	return out
}

func countBadge(badges []domain.Badge, name string) int {
	n := 0
	for _, b := range badges {
		if b.Name == name {
			n++
		}
	}
	return n
}

func TestCompleteTaskTwiceCountsOnce(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, afternoon(), seedState())

	if !e.CompleteTask(ctx, "walk") {
		t.Fatalf("first completion should change state")
	}
	after := e.CompletedCount()

	if e.CompleteTask(ctx, "walk") {
		t.Fatalf("second completion should be a no-op")
	}
	if got := e.CompletedCount(); got != after {
		t.Fatalf("completed=%d after repeat, want %d", got, after)
	}
}

func TestCompleteUnknownTaskIsIgnored(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, afternoon(), seedState())
	before := e.Snapshot()

	if e.CompleteTask(ctx, "nope") {
		t.Fatalf("unknown task should be ignored")
	}
	after := e.Snapshot()
	if after.Version != before.Version || after.CompletedCount != 0 || after.ShowCelebration {
		t.Fatalf("state changed for unknown task: %+v", after)
	}
}

func TestProgress(t *testing.T) {
	ctx := context.Background()

	empty := newEngine(t, afternoon(), domain.State{})
	if got := empty.Progress(); got != 0 {
		t.Fatalf("progress with no tasks=%v, want 0", got)
	}

	e := newEngine(t, afternoon(), seedState())
	total := e.TotalCount()
	for i, id := range []domain.TaskID{"walk", "text", "breathe", "bed", "stretch", "dance"} {
		e.CompleteTask(ctx, id)
		p := e.Progress()
		if p < 0 || p > 1 {
			t.Fatalf("progress=%v out of range", p)
		}
		want := float64(i+1) / float64(total)
		if p != want {
			t.Fatalf("progress=%v, want %v", p, want)
		}
	}
}

func TestStreakSequence(t *testing.T) {
	ctx := context.Background()
	clk := afternoon()
	e := newEngine(t, clk, seedState())

	e.CompleteTask(ctx, "walk")
	if got := e.Snapshot().Streak.Count; got != 1 {
		t.Fatalf("day 1 streak=%d, want 1", got)
	}

	e.CompleteTask(ctx, "text")
	if got := e.Snapshot().Streak.Count; got != 1 {
		t.Fatalf("same-day streak=%d, want 1", got)
	}

	clk.addDays(1)
	e.CompleteTask(ctx, "breathe")
	if got := e.Snapshot().Streak.Count; got != 2 {
		t.Fatalf("day 2 streak=%d, want 2", got)
	}

	clk.addDays(2)
	e.CompleteTask(ctx, "bed")
	s := e.Snapshot().Streak
	if s.Count != 1 {
		t.Fatalf("day 4 streak=%d, want 1", s.Count)
	}
	if want := domain.DayOf(clk.Now()); s.LastCompleted != want {
		t.Fatalf("last completed=%q, want %q", s.LastCompleted, want)
	}
}

func TestStreakUsesConfiguredLocation(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("UTC-5", -5*60*60)

	// 23:30 local on March 4th and 00:30 local on March 5th are one hour
	// apart but on consecutive calendar days.
	clk := &fakeClock{t: time.Date(2024, time.March, 5, 4, 30, 0, 0, time.UTC)}
	e := cup.NewEngine(seedState(), cup.WithClock(clk.Now), cup.WithLocation(loc))

	e.CompleteTask(ctx, "walk")
	clk.t = clk.t.Add(time.Hour)
	e.CompleteTask(ctx, "text")

	if got := e.Snapshot().Streak.Count; got != 2 {
		t.Fatalf("streak=%d, want 2", got)
	}
}

func TestFirstSipAwardedOnce(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, afternoon(), seedState())

	e.CompleteTask(ctx, "walk")
	e.CompleteTask(ctx, "text")
	if n := countBadge(e.Snapshot().Badges, cup.BadgeFirstSip); n != 0 {
		t.Fatalf("First Sip awarded after 2 completions")
	}

	e.CompleteTask(ctx, "breathe")
	e.CompleteTask(ctx, "bed")
	e.CompleteTask(ctx, "stretch")

	snap := e.Snapshot()
	if n := countBadge(snap.Badges, cup.BadgeFirstSip); n != 1 {
		t.Fatalf("First Sip count=%d, want 1 (badges=%v)", n, badgeNames(snap.Badges))
	}
	if got := snap.Badges[0].Subtitle; got != "3 tasks today" {
		t.Fatalf("subtitle=%q", got)
	}
}

func TestSteadyStreamAfterFourDays(t *testing.T) {
	ctx := context.Background()
	clk := afternoon()
	e := newEngine(t, clk, seedState())

	for i, id := range []domain.TaskID{"walk", "text", "breathe", "bed"} {
		if i > 0 {
			clk.addDays(1)
		}
		e.CompleteTask(ctx, id)
		has := countBadge(e.Snapshot().Badges, cup.BadgeSteadyStream) == 1
		if has != (i == 3) {
			t.Fatalf("after day %d Steady Stream=%v", i+1, has)
		}
	}

	clk.addDays(1)
	e.CompleteTask(ctx, "stretch")
	if n := countBadge(e.Snapshot().Badges, cup.BadgeSteadyStream); n != 1 {
		t.Fatalf("Steady Stream count=%d, want 1", n)
	}
}

func TestEarlyBird(t *testing.T) {
	ctx := context.Background()
	clk := &fakeClock{t: time.Date(2024, time.March, 4, 8, 15, 0, 0, time.UTC)}
	e := newEngine(t, clk, seedState())

	e.CompleteTask(ctx, "walk")
	snap := e.Snapshot()
	if n := countBadge(snap.Badges, cup.BadgeEarlyBird); n != 1 {
		t.Fatalf("Early Bird count=%d, want 1", n)
	}
	b := snap.Badges[0]
	if b.Color != domain.ColorPink || b.Icon != "star.fill" || b.EarnedOn != "2024-03-04" {
		t.Fatalf("unexpected badge %+v", b)
	}

	noon := newEngine(t, &fakeClock{t: time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)}, seedState())
	noon.CompleteTask(ctx, "walk")
	if n := countBadge(noon.Snapshot().Badges, cup.BadgeEarlyBird); n != 0 {
		t.Fatalf("Early Bird awarded at noon")
	}
}

func TestRecentBadgesNewestFirst(t *testing.T) {
	st := seedState()
	for _, name := range []string{"a", "b", "c", "d"} {
		st.Badges = append(st.Badges, domain.Badge{ID: domain.BadgeID(name), Name: name})
	}
	e := newEngine(t, afternoon(), st)

	got := badgeNames(e.RecentBadges())
	want := []string{"d", "c", "b"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("recent=%v, want %v", got, want)
	}

	if got := newEngine(t, afternoon(), seedState()).RecentBadges(); len(got) != 0 {
		t.Fatalf("recent with no badges=%v", got)
	}
}

func TestWeeklyGoalCappedAtTarget(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, afternoon(), seedState())

	for _, id := range []domain.TaskID{"walk", "stretch", "dance"} {
		e.CompleteTask(ctx, id)
	}
	e.CompleteTask(ctx, "bed")

	for _, g := range e.Snapshot().WeeklyGoals {
		if g.Current > g.Target {
			t.Fatalf("goal %s current=%d > target=%d", g.ID, g.Current, g.Target)
		}
		switch g.ID {
		case "move":
			if g.Current != 2 {
				t.Fatalf("move current=%d, want 2", g.Current)
			}
		default:
			if g.Current != 0 {
				t.Fatalf("goal %s current=%d, want 0", g.ID, g.Current)
			}
		}
	}
}

func TestSetMoodOverwritesSameDay(t *testing.T) {
	ctx := context.Background()
	clk := afternoon()
	e := newEngine(t, clk, seedState())

	if err := e.SetMood(ctx, domain.MoodSad); err != nil {
		t.Fatalf("SetMood: %v", err)
	}
	if err := e.SetMood(ctx, domain.MoodHappy); err != nil {
		t.Fatalf("SetMood: %v", err)
	}

	snap := e.Snapshot()
	if len(snap.MoodHistory) != 1 {
		t.Fatalf("history=%v, want one entry", snap.MoodHistory)
	}
	if got := snap.MoodHistory[domain.DayOf(clk.Now())]; got != domain.MoodHappy {
		t.Fatalf("today=%q, want happy", got)
	}
	if snap.CurrentMood == nil || *snap.CurrentMood != domain.MoodHappy {
		t.Fatalf("current mood=%v", snap.CurrentMood)
	}

	clk.addDays(1)
	_ = e.SetMood(ctx, domain.MoodNeutral)
	if got := len(e.Snapshot().MoodHistory); got != 2 {
		t.Fatalf("history len=%d, want 2", got)
	}

	if err := e.SetMood(ctx, domain.Mood("grumpy")); !errors.Is(err, domain.ErrInvalidMood) {
		t.Fatalf("err=%v, want ErrInvalidMood", err)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, afternoon(), seedState())

	if !e.CompleteOnboarding(ctx, "  alex ") {
		t.Fatalf("first onboarding should change state")
	}
	if e.CompleteOnboarding(ctx, "Sam") {
		t.Fatalf("second onboarding should be a no-op")
	}

	snap := e.Snapshot()
	if !snap.OnboardingComplete {
		t.Fatalf("onboarding flag not set")
	}
	if snap.Profile.DisplayName != "alex" || snap.Profile.AvatarInitials != "A" {
		t.Fatalf("profile=%+v", snap.Profile)
	}

	anon := newEngine(t, afternoon(), seedState())
	anon.CompleteOnboarding(ctx, "")
	if p := anon.Snapshot().Profile; p.DisplayName != "Friend" || p.AvatarInitials != "F" {
		t.Fatalf("anonymous profile=%+v", p)
	}
}

func TestCelebrationFlag(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, afternoon(), seedState())

	if e.ClearCelebration(ctx) {
		t.Fatalf("clearing with no celebration should be a no-op")
	}
	e.CompleteTask(ctx, "walk")
	if !e.ShowCelebration() {
		t.Fatalf("celebration not shown after completion")
	}
	if !e.ClearCelebration(ctx) || e.ShowCelebration() {
		t.Fatalf("celebration not cleared")
	}
}

func TestSuggestionFollowsTaskList(t *testing.T) {
	ctx := context.Background()
	st := seedState()
	st.Tasks = st.Tasks[:4]
	e := newEngine(t, afternoon(), st)

	if s, ok := e.Suggestion(); !ok || s != suggestion.OneStepMessage {
		t.Fatalf("initial suggestion=%q ok=%v", s, ok)
	}

	e.CompleteTask(ctx, "walk")
	if s, ok := e.Suggestion(); ok {
		t.Fatalf("suggestion after completion=%q, want none", s)
	}
	if e.Snapshot().Suggestion != nil {
		t.Fatalf("snapshot suggestion should be nil")
	}
}

func TestSubscribeReceivesChanges(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, afternoon(), seedState())

	var got []cup.Snapshot
	cancel := e.Subscribe(func(s cup.Snapshot) { got = append(got, s) })

	e.CompleteTask(ctx, "walk")
	e.CompleteTask(ctx, "walk")
	_ = e.SetMood(ctx, domain.MoodHappy)

	if len(got) != 2 {
		t.Fatalf("notifications=%d, want 2", len(got))
	}
	if got[0].CompletedCount != 1 || !got[0].ShowCelebration {
		t.Fatalf("first snapshot=%+v", got[0])
	}
	if got[1].Version <= got[0].Version {
		t.Fatalf("versions not increasing: %d then %d", got[0].Version, got[1].Version)
	}

	cancel()
	cancel()
	e.CompleteTask(ctx, "text")
	if len(got) != 2 {
		t.Fatalf("notified after cancel")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, afternoon(), seedState())
	_ = e.SetMood(ctx, domain.MoodHappy)

	snap := e.Snapshot()
	snap.Tasks[0].Completed = true
	for d := range snap.MoodHistory {
		snap.MoodHistory[d] = domain.MoodSad
	}

	again := e.Snapshot()
	if again.Tasks[0].Completed {
		t.Fatalf("task mutated through snapshot")
	}
	for _, m := range again.MoodHistory {
		if m != domain.MoodHappy {
			t.Fatalf("mood history mutated through snapshot")
		}
	}
}

func TestAccessorsTrackChanges(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, afternoon(), seedState())

	if e.Version() != 0 || e.CompletedCount() != 0 || e.TotalCount() != 6 || e.ShowCelebration() {
		t.Fatalf("unexpected initial values")
	}

	e.CompleteTask(ctx, "walk")
	if e.Version() != 1 || e.CompletedCount() != 1 || !e.ShowCelebration() {
		t.Fatalf("version=%d completed=%d celebrating=%v", e.Version(), e.CompletedCount(), e.ShowCelebration())
	}

	e.ClearCelebration(ctx)
	if e.Version() != 2 || e.ShowCelebration() {
		t.Fatalf("version=%d celebrating=%v", e.Version(), e.ShowCelebration())
	}
}
