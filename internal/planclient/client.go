package planclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/meltforce/planview/internal/models"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Source is the read-only plan backend used by the loaders.
type Source interface {
	ListWorkoutPlans(ctx context.Context, trainerID string) ([]models.WorkoutSummary, error)
	GetWorkoutPlan(ctx context.Context, planID string) (*models.WorkoutDetail, error)
}

// Client calls the trainer plan REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: Client satisfies Source.
var _ Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. one that dials
// through a tailnet.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithAPIKey sends key in the X-API-Key header on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTimeout sets the per-request timeout. Zero keeps DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a Client targeting the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListWorkoutPlans fetches the plan summaries for a trainer, in server order.
func (c *Client) ListWorkoutPlans(ctx context.Context, trainerID string) ([]models.WorkoutSummary, error) {
	if strings.TrimSpace(trainerID) == "" {
		return nil, fmt.Errorf("planclient: trainer id: %w", ErrEmptyID)
	}
	path := "/trainers/" + url.PathEscape(trainerID) + "/workoutplans"

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var plans []models.WorkoutSummary
	if err := json.Unmarshal(body, &plans); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if plans == nil {
		// A literal null body is not a collection.
		return nil, &ParseError{Path: path, Err: fmt.Errorf("expected JSON array, got %s", abbreviate(body))}
	}
	return plans, nil
}

// GetWorkoutPlan fetches one plan including its exercises.
func (c *Client) GetWorkoutPlan(ctx context.Context, planID string) (*models.WorkoutDetail, error) {
	if strings.TrimSpace(planID) == "" {
		return nil, fmt.Errorf("planclient: plan id: %w", ErrEmptyID)
	}
	path := "/workoutplans/" + url.PathEscape(planID)

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var detail *models.WorkoutDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if detail == nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("expected JSON object, got %s", abbreviate(body))}
	}
	return detail, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("planclient: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("planclient: %s: %w: %w", path, ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("planclient: read body: %w: %w", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Path: path, StatusCode: resp.StatusCode, Body: abbreviate(body)}
	}

	return body, nil
}

func abbreviate(body []byte) string {
	const maxLen = 200
	s := strings.TrimSpace(string(body))
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
