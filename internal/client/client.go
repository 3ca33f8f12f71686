// Package client talks to the workout API and keeps a local, reconciled view
// of the signed-in user's workouts.
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
)

const defaultTimeout = 15 * time.Second

// API is the set of store operations the View depends on.
type API interface {
	ListWorkouts(ctx context.Context, token string) ([]Workout, error)
	CreateWorkout(ctx context.Context, token string, in NewWorkout) (*Workout, error)
	UpdateWorkout(ctx context.Context, token, id string, changes WorkoutChanges) (*Workout, error)
	DeleteWorkout(ctx context.Context, token, id string) error
	CompleteWorkout(ctx context.Context, token, id string) (*Workout, error)
}

// Client is an HTTP client for the workout API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: Client satisfies API.
var _ API = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// badRequestMeans picks what a 400 maps to for a call.
type badRequestMeans int

const (
	badRequestIsValidation badRequestMeans = iota
	badRequestIsIdentifier
)

func (c *Client) do(ctx context.Context, method, path, token string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("client: encode body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("client: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}
	return resp.StatusCode, respBody, nil
}

// statusError turns a non-2xx reply into an *APIError. The server message is
// taken from {"error": ...} or {"message": ...}; a non-JSON body (an HTML 404
// page from a proxy, say) falls back to the status text.
func statusError(status int, body []byte, bad badRequestMeans) error {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = payload.Error
		if apiErr.Message == "" {
			apiErr.Message = payload.Message
		}
	}

	switch status {
	case http.StatusUnauthorized:
		apiErr.Kind = ErrUnauthenticated
	case http.StatusNotFound:
		apiErr.Kind = ErrNotFoundOrForbidden
	case http.StatusBadRequest:
		if bad == badRequestIsIdentifier {
			apiErr.Kind = ErrInvalidIdentifier
		} else {
			apiErr.Kind = ErrValidation
		}
	}
	return apiErr
}

func isSuccess(status int) bool { return status >= 200 && status < 300 }

func workoutPath(action, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrInvalidIdentifier
	}
	return "/workouts/" + action + "/" + url.PathEscape(id), nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/users/login", "", map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	if !isSuccess(status) {
		return "", statusError(status, body, badRequestIsValidation)
	}

	var payload struct {
		Access string `json:"access"`
		Token  string `json:"token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &NormalizationError{Reason: "malformed body", Cause: err}
	}
	token := payload.Access
	if token == "" {
		token = payload.Token
	}
	if token == "" {
		return "", &NormalizationError{Reason: "no access token in response"}
	}
	return token, nil
}

// Register creates an account. It does not sign in.
func (c *Client) Register(ctx context.Context, email, password string) error {
	status, body, err := c.do(ctx, http.MethodPost, "/users/register", "", map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return statusError(status, body, badRequestIsValidation)
	}
	return nil
}

// ListWorkouts fetches and normalizes the caller's workouts. The order is
// whatever the server sent; use OrderForDisplay before showing them.
func (c *Client) ListWorkouts(ctx context.Context, token string) ([]Workout, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/workouts/getMyWorkouts", token, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, statusError(status, body, badRequestIsValidation)
	}
	return NormalizeListResponse(body)
}

// ValidateNewWorkout is the pre-check run before any create request.
func ValidateNewWorkout(in NewWorkout) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Duration) == "" {
		return ErrValidation
	}
	return nil
}

// CreateWorkout validates locally, then posts. The returned record is nil if
// the server acknowledged without echoing it.
func (c *Client) CreateWorkout(ctx context.Context, token string, in NewWorkout) (*Workout, error) {
	if err := ValidateNewWorkout(in); err != nil {
		return nil, err
	}
	status, body, err := c.do(ctx, http.MethodPost, "/workouts/addWorkout", token, in)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, statusError(status, body, badRequestIsValidation)
	}
	w, _ := decodeRecord(body)
	return w, nil
}

// UpdateWorkout overwrites the supplied fields.
func (c *Client) UpdateWorkout(ctx context.Context, token, id string, changes WorkoutChanges) (*Workout, error) {
	if (changes.Name != nil && strings.TrimSpace(*changes.Name) == "") ||
		(changes.Duration != nil && strings.TrimSpace(*changes.Duration) == "") {
		return nil, ErrValidation
	}
	path, err := workoutPath("updateWorkout", id)
	if err != nil {
		return nil, err
	}
	status, body, err := c.do(ctx, http.MethodPatch, path, token, changes)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, statusError(status, body, badRequestIsIdentifier)
	}
	w, _ := decodeRecord(body)
	return w, nil
}

// DeleteWorkout succeeds on any 2xx; the body is ignored.
func (c *Client) DeleteWorkout(ctx context.Context, token, id string) error {
	path, err := workoutPath("deleteWorkout", id)
	if err != nil {
		return err
	}
	status, body, err := c.do(ctx, http.MethodDelete, path, token, nil)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return statusError(status, body, badRequestIsIdentifier)
	}
	return nil
}

// CompleteWorkout marks a workout Completed. Success is decided by the status
// code; the record is returned only if the body carried one.
func (c *Client) CompleteWorkout(ctx context.Context, token, id string) (*Workout, error) {
	path, err := workoutPath("completeWorkoutStatus", id)
	if err != nil {
		return nil, err
	}
	status, body, err := c.do(ctx, http.MethodPatch, path, token, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, statusError(status, body, badRequestIsIdentifier)
	}
	w, _ := decodeRecord(body)
	return w, nil
}
