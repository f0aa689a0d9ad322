package wiki

import (
	"errors"
	"fmt"
)

// Common errors returned by the Wikipedia client.
var (
	// ErrNotFound indicates the page does not exist.
	ErrNotFound = errors.New("page not found on Wikipedia")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("Wikipedia rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with Wikipedia")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from Wikipedia")
)

// APIError represents an error reported by the MediaWiki API.
type APIError struct {
	StatusCode int
	Code       string // Error code from API (e.g., "maxlag", "invalidtitle")
	Message    string
	Title      string // Page title being queried, for context
}

func (e *APIError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("Wikipedia API error (status %d, code %s): %s (page: %s)", e.StatusCode, e.Code, e.Message, e.Title)
	}
	return fmt.Sprintf("Wikipedia API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

// IsNotFound returns true if the error indicates a missing page.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404 || apiErr.Code == "missingtitle" || apiErr.Code == "invalidtitle"
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.Code == "ratelimited"
	}
	return false
}
