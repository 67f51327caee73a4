package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tanish-jain-225/SilverCare-AI/internal/app"
	"github.com/tanish-jain-225/SilverCare-AI/internal/llm"
	"github.com/tanish-jain-225/SilverCare-AI/internal/news"
	"github.com/tanish-jain-225/SilverCare-AI/internal/repository"
	"github.com/tanish-jain-225/SilverCare-AI/internal/service"
)

var errBadBody = errors.New("invalid request body")

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeError maps service and client errors onto HTTP statuses. Messages
// for news failures match what the web client already displays.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := http.StatusInternalServerError, errorResponse{Error: "Internal server error"}

	var upstream *news.UpstreamError
	switch {
	case errors.Is(err, errBadBody):
		status, body.Error = http.StatusBadRequest, "Invalid request body"
	case errors.Is(err, service.ErrInvalidInput):
		status, body.Error = http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrNotFound):
		status, body.Error = http.StatusNotFound, "Not found"
	case errors.Is(err, app.ErrAssistantUnavailable):
		status, body.Error = http.StatusServiceUnavailable, err.Error()

	case errors.Is(err, news.ErrEmptyQuery):
		status, body.Error = http.StatusBadRequest, "Text is required to search news articles."
	case errors.Is(err, news.ErrNotConfigured):
		status, body.Error = http.StatusInternalServerError, "World News API key is not configured on the server."
	case errors.As(err, &upstream):
		status = upstream.StatusCode
		body = errorResponse{
			Error:   fmt.Sprintf("Failed to fetch news articles: %d", upstream.StatusCode),
			Details: upstream.Body,
		}
	case errors.Is(err, news.ErrTimeout):
		status, body.Error = http.StatusGatewayTimeout, "Request timeout while fetching news articles."
	case errors.Is(err, news.ErrInvalidResponse):
		status, body.Error = http.StatusInternalServerError, "Invalid response format from World News API"
	case errors.Is(err, news.ErrUpstream):
		status, body.Error = http.StatusBadGateway, fmt.Sprintf("Network error: %v", err)

	case errors.Is(err, llm.ErrTimeout):
		status, body.Error = http.StatusGatewayTimeout, "The assistant took too long to respond. Please try again."
	case errors.Is(err, llm.ErrUpstream), errors.Is(err, llm.ErrEmptyResponse), errors.Is(err, llm.ErrInvalidOutput):
		status, body.Error = http.StatusBadGateway, "The assistant is unavailable right now. Please try again."
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	writeJSON(w, status, body)
}

// decodeBody decodes a JSON request body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: %v", errBadBody, err)
}
