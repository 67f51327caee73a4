package news

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured   = errors.New("news API key not configured")
	ErrEmptyQuery      = errors.New("news search text is required")
	ErrUpstream        = errors.New("news upstream failure")
	ErrTimeout         = errors.New("news request timed out")
	ErrInvalidResponse = errors.New("news response missing articles")
)

// UpstreamError is a non-2xx answer from the news API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("news API returned status %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }
