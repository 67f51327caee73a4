package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
	"github.com/tanish-jain-225/SilverCare-AI/internal/repository"
)

// naiveISOLayout is the timestamp shape older web clients send
// (isoformat without a zone). It is read as UTC.
const naiveISOLayout = "2006-01-02T15:04:05.999999999"

type sessionJSON struct {
	ID           string               `json:"id"`
	UserID       string               `json:"userId"`
	Name         string               `json:"name"`
	Messages     []domain.ChatMessage `json:"messages"`
	CreatedAt    string               `json:"createdAt"`
	LastActivity string               `json:"lastActivity"`
	MessageCount int                  `json:"messageCount"`
}

func toSessionJSON(cs *domain.ChatSession) sessionJSON {
	msgs := cs.Messages
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	return sessionJSON{
		ID:           cs.ID,
		UserID:       cs.UserID,
		Name:         cs.Name,
		Messages:     msgs,
		CreatedAt:    formatTimestamp(cs.CreatedAt),
		LastActivity: formatTimestamp(cs.LastActivity),
		MessageCount: cs.MessageCount,
	}
}

func toSessionJSONList(list []*domain.ChatSession) []sessionJSON {
	out := make([]sessionJSON, 0, len(list))
	for _, cs := range list {
		out = append(out, toSessionJSON(cs))
	}
	return out
}

func (j sessionJSON) toDomain(userID string) *domain.ChatSession {
	return &domain.ChatSession{
		ID:           j.ID,
		UserID:       userID,
		Name:         j.Name,
		Messages:     j.Messages,
		CreatedAt:    parseTimestamp(j.CreatedAt),
		LastActivity: parseTimestamp(j.LastActivity),
		MessageCount: j.MessageCount,
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// parseTimestamp returns the zero time for anything unparseable; the
// service fills those in.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(naiveISOLayout, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func (s *Server) loadChatHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := s.opts.Sessions.Load(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var current *string
	if snap.CurrentSessionID != "" {
		current = &snap.CurrentSessionID
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"sessions":         toSessionJSONList(snap.Sessions),
		"currentSessionId": current,
		"sessionCounter":   snap.SessionCounter,
	})
}

func (s *Server) saveChatHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string         `json:"userId"`
		Sessions []*sessionJSON `json:"sessions"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sessions := make([]*domain.ChatSession, 0, len(req.Sessions))
	for _, j := range req.Sessions {
		if j == nil {
			continue
		}
		sessions = append(sessions, j.toDomain(req.UserID))
	}
	saved, err := s.opts.Sessions.ReplaceAll(r.Context(), req.UserID, sessions)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": saved})
}

func (s *Server) createChatHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionName string `json:"sessionName"`
		UserID      string `json:"userId"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	cs, err := s.opts.Sessions.Create(r.Context(), req.UserID, req.SessionName)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "session": toSessionJSON(cs)})
}

// updateMessagesHandler answers success=false, not 404, when the session
// does not belong to the user. The web client treats both the same way.
func (s *Server) updateMessagesHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string               `json:"userId"`
		Messages []domain.ChatMessage `json:"messages"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	err := s.opts.Sessions.UpdateMessages(r.Context(), chi.URLParam(r, "sessionID"), req.UserID, req.Messages)
	s.writeModified(w, r, err)
}

func (s *Server) updateActivityHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	err := s.opts.Sessions.Touch(r.Context(), chi.URLParam(r, "sessionID"), req.UserID)
	s.writeModified(w, r, err)
}

func (s *Server) writeModified(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusOK, map[string]bool{"success": false})
	default:
		s.writeError(w, r, err)
	}
}

// deleteChatHandler returns the sessions left after the delete. Deleting a
// session that is already gone is not an error.
func (s *Server) deleteChatHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	remaining, err := s.opts.Sessions.Delete(r.Context(), chi.URLParam(r, "sessionID"), userID)
	if errors.Is(err, repository.ErrNotFound) {
		snap, loadErr := s.opts.Sessions.Load(r.Context(), userID)
		if err = loadErr; err == nil {
			remaining = snap.Sessions
		}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"remainingSessions": toSessionJSONList(remaining),
	})
}
