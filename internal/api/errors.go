package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnauthorized marks a 401 response. The auth session manager matches it
// with errors.Is to decide whether to redirect to the login page.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is the single failure type for non-2xx responses. Message is the
// response body text, or a generic status-coded message when the body was
// empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match any 401.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// newAPIError converts a non-2xx response into an *APIError, consuming the
// body for its message text.
func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = fmt.Sprintf("API error: %d", resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
