package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/PabloGalante/fillyourcup/internal/app/coach"
	"github.com/PabloGalante/fillyourcup/internal/app/cup"
	"github.com/PabloGalante/fillyourcup/internal/domain"
	"github.com/PabloGalante/fillyourcup/internal/observability"
)

type Server struct {
	engine *cup.Engine
	coach  *coach.Service
}

// NewServer builds the API handler. coachSvc may be nil, in which case
// /coach answers 503.
func NewServer(engine *cup.Engine, coachSvc *coach.Service) http.Handler {
	s := &Server{engine: engine, coach: coachSvc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/events", s.handleEvents)

	// /tasks              → GET: tasks + counts
	// /tasks/{id}/complete → POST: complete a task
	mux.HandleFunc("/tasks", s.handleTasks)
	mux.HandleFunc("/tasks/", s.handleTaskWithID)

	mux.HandleFunc("/mood", s.handleMood)
	mux.HandleFunc("/onboarding", s.handleOnboarding)
	mux.HandleFunc("/celebration/clear", s.handleClearCelebration)
	mux.HandleFunc("/badges", s.handleBadges)
	mux.HandleFunc("/goals", s.handleGoals)
	mux.HandleFunc("/suggestion", s.handleSuggestion)
	mux.HandleFunc("/coach", s.handleCoach)

	return chainMiddlewares(mux, withCORS, withLogging, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type tasksResponse struct {
	Tasks          []domain.Task `json:"tasks"`
	CompletedCount int           `json:"completed_count"`
	TotalCount     int           `json:"total_count"`
	Progress       float64       `json:"progress"`
}

type completeTaskResponse struct {
	Changed bool         `json:"changed"`
	State   cup.Snapshot `json:"state"`
}

type setMoodRequest struct {
	Mood string `json:"mood"`
}

type moodResponse struct {
	CurrentMood *domain.Mood               `json:"current_mood"`
	Emoji       string                     `json:"emoji,omitempty"`
	History     map[domain.Day]domain.Mood `json:"history"`
}

type onboardingRequest struct {
	DisplayName string `json:"display_name"`
}

type onboardingResponse struct {
	Changed            bool           `json:"changed"`
	OnboardingComplete bool           `json:"onboarding_complete"`
	Profile            domain.Profile `json:"profile"`
}

type changedResponse struct {
	Changed bool `json:"changed"`
}

type badgesResponse struct {
	Badges []domain.Badge `json:"badges"`
	Recent []domain.Badge `json:"recent"`
}

type goalResponse struct {
	domain.WeeklyGoal
	Progress float64 `json:"progress"`
}

type goalsResponse struct {
	WeeklyGoals []goalResponse `json:"weekly_goals"`
}

type suggestionResponse struct {
	Suggestion *string `json:"suggestion"`
}

type coachResponse struct {
	Message string `json:"message"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	snap := s.engine.Snapshot()
	writeJSON(w, http.StatusOK, tasksResponse{
		Tasks:          snap.Tasks,
		CompletedCount: snap.CompletedCount,
		TotalCount:     snap.TotalCount,
		Progress:       snap.Progress,
	})
}

// /tasks/{id}/complete
func (s *Server) handleTaskWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/tasks/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[0] == "" || parts[1] != "complete" {
		notFound(w)
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	changed := s.engine.CompleteTask(r.Context(), domain.TaskID(parts[0]))
	writeJSON(w, http.StatusOK, completeTaskResponse{
		Changed: changed,
		State:   s.engine.Snapshot(),
	})
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, toMoodResponse(s.engine.Snapshot()))
	case http.MethodPost:
		s.handleSetMood(w, r)
	default:
		methodNotAllowed(w)
	}
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleSetMood(w http.ResponseWriter, r *http.Request) {
	var req setMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	mood, err := domain.ParseMood(req.Mood)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.engine.SetMood(r.Context(), mood); err != nil {
		if errors.Is(err, domain.ErrInvalidMood) {
			badRequest(w, err.Error())
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toMoodResponse(s.engine.Snapshot()))
}

func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req onboardingRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	}

	changed := s.engine.CompleteOnboarding(r.Context(), req.DisplayName)
	snap := s.engine.Snapshot()
	writeJSON(w, http.StatusOK, onboardingResponse{
		Changed:            changed,
		OnboardingComplete: snap.OnboardingComplete,
		Profile:            snap.Profile,
	})
}

func (s *Server) handleClearCelebration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, changedResponse{Changed: s.engine.ClearCelebration(r.Context())})
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	snap := s.engine.Snapshot()
	writeJSON(w, http.StatusOK, badgesResponse{
		Badges: nonNil(snap.Badges),
		Recent: snap.RecentBadges,
	})
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	snap := s.engine.Snapshot()
	out := goalsResponse{WeeklyGoals: make([]goalResponse, 0, len(snap.WeeklyGoals))}
	for _, g := range snap.WeeklyGoals {
		out.WeeklyGoals = append(out.WeeklyGoals, goalResponse{WeeklyGoal: g, Progress: g.Progress()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, suggestionResponse{Suggestion: s.engine.Snapshot().Suggestion})
}

func (s *Server) handleCoach(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if s.coach == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "coach is not configured",
		})
		return
	}

	msg, err := s.coach.Advise(r.Context(), s.engine.Snapshot())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, coachResponse{Message: msg})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func toMoodResponse(snap cup.Snapshot) moodResponse {
	resp := moodResponse{
		CurrentMood: snap.CurrentMood,
		History:     snap.MoodHistory,
	}
	if snap.CurrentMood != nil {
		resp.Emoji = snap.CurrentMood.Emoji()
	}
	return resp
}

func nonNil(badges []domain.Badge) []domain.Badge {
	if badges == nil {
		return []domain.Badge{}
	}
	return badges
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "not found",
	})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
