// ABOUTME: Error types for the Coros API client.
// ABOUTME: Distinguishes auth, transport, and remote API failures.
package coros

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotAuthenticated is returned when an authenticated call is made
// before a successful Login.
var ErrNotAuthenticated = errors.New("not authenticated: call Login first")

// maxErrorBody caps how much of a response body is carried in an APIError.
const maxErrorBody = 500

// AuthError indicates a failed credential exchange.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("login failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("login failed: %s", e.Reason)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NetworkError indicates a transport-level failure before any HTTP
// status was received.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError represents a non-success response from the Coros API, either
// an HTTP error status or a non-OK result code in the response envelope.
type APIError struct {
	StatusCode int
	Status     string
	Code       string // Coros envelope result code, "0000" means OK
	Body       string
	URL        string
}

func (e *APIError) Error() string {
	if e.Code != "" && e.Code != resultOK {
		return fmt.Sprintf("coros API error %s (status %d): %s", e.Code, e.StatusCode, e.Body)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Status, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s (status %d)", e.Status, e.StatusCode)
}

// newAPIError builds an APIError for an HTTP error status.
func newAPIError(statusCode int, body, url string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Body:       truncate(body, maxErrorBody),
		URL:        url,
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
