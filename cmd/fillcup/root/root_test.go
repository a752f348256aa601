package root_test

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PabloGalante/fillyourcup/cmd/fillcup/root"
	httpadapter "github.com/PabloGalante/fillyourcup/internal/adapters/http"
	"github.com/PabloGalante/fillyourcup/internal/adapters/llm"
	"github.com/PabloGalante/fillyourcup/internal/app/coach"
	"github.com/PabloGalante/fillyourcup/internal/app/cup"
	"github.com/PabloGalante/fillyourcup/internal/seed"
)

func newAPI(t *testing.T) string {
	t.Helper()

	initial, err := seed.Default()
	if err != nil {
		t.Fatalf("seed.Default: %v", err)
	}
	evening := time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)
	engine := cup.NewEngine(initial,
		cup.WithClock(func() time.Time { return evening }),
		cup.WithLocation(time.UTC),
	)

	ts := httptest.NewServer(httpadapter.NewServer(engine, coach.NewService(llm.NewMockLLM(), "cli")))
	t.Cleanup(ts.Close)
	return ts.URL
}

func run(t *testing.T, api string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := root.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", api}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDoThenStatus(t *testing.T) {
	api := newAPI(t)

	out, err := run(t, api, "do", "walk")
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(out, "Your cup is filling up!") {
		t.Fatalf("do output:\n%s", out)
	}

	out, err = run(t, api, "do", "walk")
	if err != nil {
		t.Fatalf("second do: %v", err)
	}
	if !strings.Contains(out, "Nothing changed") {
		t.Fatalf("second do output:\n%s", out)
	}

	out, err = run(t, api, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"1 of 4", "Take a 5-minute walk", "[text-a-friend]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("status missing %q:\n%s", want, out)
		}
	}
}

func TestFirstSipBadgeIsAnnounced(t *testing.T) {
	api := newAPI(t)

	var out string
	for _, id := range []string{"walk", "text-a-friend", "breathing"} {
		var err error
		if out, err = run(t, api, "do", id); err != nil {
			t.Fatalf("do %s: %v", id, err)
		}
	}
	if !strings.Contains(out, "New badge: "+cup.BadgeFirstSip) {
		t.Fatalf("expected badge announcement:\n%s", out)
	}

	out, err := run(t, api, "badges")
	if err != nil {
		t.Fatalf("badges: %v", err)
	}
	if !strings.Contains(out, cup.BadgeFirstSip) {
		t.Fatalf("badges output:\n%s", out)
	}
}

func TestMoodValidatesLocally(t *testing.T) {
	api := newAPI(t)

	if _, err := run(t, api, "mood", "grumpy"); err == nil {
		t.Fatalf("expected error for invalid mood")
	}

	out, err := run(t, api, "mood", "very_sad")
	if err != nil {
		t.Fatalf("mood: %v", err)
	}
	if !strings.Contains(out, "very_sad") {
		t.Fatalf("mood output:\n%s", out)
	}
}

func TestOnboardGoalsCoach(t *testing.T) {
	api := newAPI(t)

	out, err := run(t, api, "onboard", "Sam", "Lee")
	if err != nil {
		t.Fatalf("onboard: %v", err)
	}
	if !strings.Contains(out, "Welcome, Sam Lee!") {
		t.Fatalf("onboard output:\n%s", out)
	}

	out, err = run(t, api, "goals")
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	if !strings.Contains(out, "(0/5)") {
		t.Fatalf("goals output:\n%s", out)
	}

	out, err = run(t, api, "coach")
	if err != nil {
		t.Fatalf("coach: %v", err)
	}
	if !strings.Contains(out, "one small step") {
		t.Fatalf("coach output:\n%s", out)
	}
}
