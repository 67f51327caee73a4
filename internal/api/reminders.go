package api

import (
	"net/http"

	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
)

func (s *Server) listRemindersHandler(w http.ResponseWriter, r *http.Request) {
	list, err := s.opts.Reminders.ListByUser(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"reminders": toReminderJSONList(list),
	})
}

func (s *Server) saveReminderHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string `json:"title"`
		Date   string `json:"date"`
		Time   string `json:"time"`
		UserID string `json:"userId"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	saved, err := s.opts.Reminders.Save(r.Context(), &domain.Reminder{
		UserID: req.UserID,
		Title:  req.Title,
		Date:   req.Date,
		Time:   req.Time,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rem := toReminderJSON(saved)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "reminder": rem})
}

func (s *Server) deleteReminderHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     string `json:"id"`
		UserID string `json:"userId"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.opts.Reminders.Delete(r.Context(), req.ID, req.UserID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
