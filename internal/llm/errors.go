package llm

import "errors"

var (
	// ErrMissingAPIKey indicates no provider API key was configured.
	ErrMissingAPIKey = errors.New("llm api key not configured")

	// ErrUpstream indicates the provider was unreachable or answered with
	// an error status.
	ErrUpstream = errors.New("llm upstream failure")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrEmptyResponse indicates the provider answered without any choices.
	ErrEmptyResponse = errors.New("llm returned an empty response")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")
)
