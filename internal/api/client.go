// Package api is the sole network boundary of sweatlog: a typed wrapper over
// the remote workout service's REST endpoints. Authentication is delegated to
// the service via a session cookie held in the client's cookie jar.
//
// The client performs no retries and enforces no timeout of its own; a hung
// request hangs the caller until the context or the underlying transport
// gives up. Use the context for cancellation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"go.uber.org/zap"
)

// Client talks to the remote workout service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a Client for the given base URL (e.g. "https://host/api").
// A nil logger is replaced with a no-op logger.
func New(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		log:     logger,
	}
}

// CurrentUser queries the identity endpoint. A 401 yields an error matching
// ErrUnauthorized.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	return request[User](ctx, c, http.MethodGet, "/_me", nil)
}

// ListWorkoutTypes returns the raw list envelope for workout types.
func (c *Client) ListWorkoutTypes(ctx context.Context) (*WorkoutTypeList, error) {
	return request[WorkoutTypeList](ctx, c, http.MethodGet, "/workoutType", nil)
}

// GetWorkoutType fetches a single workout type by id.
func (c *Client) GetWorkoutType(ctx context.Context, id string) (*WorkoutType, error) {
	return request[WorkoutType](ctx, c, http.MethodGet, "/workoutType/"+id, nil)
}

// CreateWorkoutType creates a workout type from the user-editable fields.
func (c *Client) CreateWorkoutType(ctx context.Context, req CreateWorkoutTypeRequest) (*WorkoutType, error) {
	return request[WorkoutType](ctx, c, http.MethodPost, "/workoutType", req)
}

// UpdateWorkoutType patches an existing workout type.
func (c *Client) UpdateWorkoutType(ctx context.Context, id string, req CreateWorkoutTypeRequest) (*WorkoutType, error) {
	return request[WorkoutType](ctx, c, http.MethodPatch, "/workoutType/"+id, req)
}

// DeleteWorkoutType deletes a workout type by id.
func (c *Client) DeleteWorkoutType(ctx context.Context, id string) error {
	_, err := request[json.RawMessage](ctx, c, http.MethodDelete, "/workoutType/"+id, nil)
	return err
}

// ListWorkoutLogs returns the raw list envelope for workout logs.
func (c *Client) ListWorkoutLogs(ctx context.Context) (*WorkoutLogList, error) {
	return request[WorkoutLogList](ctx, c, http.MethodGet, "/workoutLog", nil)
}

// GetWorkoutLog fetches a single workout log by id.
func (c *Client) GetWorkoutLog(ctx context.Context, id string) (*WorkoutLog, error) {
	return request[WorkoutLog](ctx, c, http.MethodGet, "/workoutLog/"+id, nil)
}

// CreateWorkoutLog creates a workout log from the user-editable fields.
func (c *Client) CreateWorkoutLog(ctx context.Context, req CreateWorkoutLogRequest) (*WorkoutLog, error) {
	return request[WorkoutLog](ctx, c, http.MethodPost, "/workoutLog", req)
}

// UpdateWorkoutLog patches an existing workout log.
func (c *Client) UpdateWorkoutLog(ctx context.Context, id string, req CreateWorkoutLogRequest) (*WorkoutLog, error) {
	return request[WorkoutLog](ctx, c, http.MethodPatch, "/workoutLog/"+id, req)
}

// DeleteWorkoutLog deletes a workout log by id.
func (c *Client) DeleteWorkoutLog(ctx context.Context, id string) error {
	_, err := request[json.RawMessage](ctx, c, http.MethodDelete, "/workoutLog/"+id, nil)
	return err
}

// request performs one HTTP round trip and decodes a 2xx JSON body into T.
// A 204 returns (nil, nil). Any non-2xx status becomes an *APIError.
func request[T any](ctx context.Context, c *Client, method, path string, payload any) (*T, error) {
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("api request", zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp)
		c.log.Debug("api error response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.Status))
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return &out, nil
}
