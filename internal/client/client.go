// Package client talks to the fillcup HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PabloGalante/fillyourcup/internal/app/cup"
	"github.com/PabloGalante/fillyourcup/internal/domain"
)

const defaultTimeout = 30 * time.Second

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type CompleteResult struct {
	Changed bool         `json:"changed"`
	State   cup.Snapshot `json:"state"`
}

type MoodResult struct {
	CurrentMood *domain.Mood               `json:"current_mood"`
	Emoji       string                     `json:"emoji"`
	History     map[domain.Day]domain.Mood `json:"history"`
}

type OnboardingResult struct {
	Changed            bool           `json:"changed"`
	OnboardingComplete bool           `json:"onboarding_complete"`
	Profile            domain.Profile `json:"profile"`
}

type BadgesResult struct {
	Badges []domain.Badge `json:"badges"`
	Recent []domain.Badge `json:"recent"`
}

type Goal struct {
	domain.WeeklyGoal
	Progress float64 `json:"progress"`
}

func (c *Client) State(ctx context.Context) (cup.Snapshot, error) {
	var out cup.Snapshot
	err := c.do(ctx, http.MethodGet, "/state", nil, &out)
	return out, err
}

func (c *Client) CompleteTask(ctx context.Context, id domain.TaskID) (CompleteResult, error) {
	var out CompleteResult
	err := c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(string(id))+"/complete", nil, &out)
	return out, err
}

func (c *Client) SetMood(ctx context.Context, mood string) (MoodResult, error) {
	var out MoodResult
	err := c.do(ctx, http.MethodPost, "/mood", map[string]string{"mood": mood}, &out)
	return out, err
}

func (c *Client) CompleteOnboarding(ctx context.Context, displayName string) (OnboardingResult, error) {
	var out OnboardingResult
	err := c.do(ctx, http.MethodPost, "/onboarding", map[string]string{"display_name": displayName}, &out)
	return out, err
}

func (c *Client) Badges(ctx context.Context) (BadgesResult, error) {
	var out BadgesResult
	err := c.do(ctx, http.MethodGet, "/badges", nil, &out)
	return out, err
}

func (c *Client) Goals(ctx context.Context) ([]Goal, error) {
	var out struct {
		WeeklyGoals []Goal `json:"weekly_goals"`
	}
	err := c.do(ctx, http.MethodGet, "/goals", nil, &out)
	return out.WeeklyGoals, err
}

func (c *Client) Coach(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/coach", nil, &out)
	return out.Message, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
