package api

import (
	"net/http"
	"time"

	"github.com/tanish-jain-225/SilverCare-AI/internal/app"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
	"github.com/tanish-jain-225/SilverCare-AI/internal/intelligence"
)

type chatMessageRequest struct {
	Input       string             `json:"input"`
	UserID      string             `json:"userId"`
	ChatHistory domain.ChatHistory `json:"chatHistory"`
	SessionID   string             `json:"sessionId"`
}

type chatMessageResponse struct {
	Success             bool              `json:"success"`
	Message             string            `json:"message"`
	EmergencyDetected   bool              `json:"emergency_detected"`
	EmergencyConfidence float64           `json:"emergency_confidence"`
	EmergencyAnalysis   map[string]string `json:"emergency_analysis"`
	ReminderDetected    bool              `json:"reminder_detected"`
	ReminderConfidence  float64           `json:"reminder_confidence"`
	ReminderComponents  map[string]string `json:"reminder_components"`
	ReminderResult      any               `json:"reminder_result"`
}

type reminderJSON struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	CreatedAt string `json:"created_at"`
}

type reminderSavedResult struct {
	Success   bool           `json:"success"`
	Reminder  *reminderJSON  `json:"reminder,omitempty"`
	Reminders []reminderJSON `json:"reminders,omitempty"`
	Count     int            `json:"count,omitempty"`
}

type reminderFailedResult struct {
	Error string `json:"error"`
	Raw   string `json:"raw,omitempty"`
}

func (s *Server) chatMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req chatMessageRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Input == "" || req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No message provided"})
		return
	}
	if s.opts.Assistant == nil {
		s.writeError(w, r, app.ErrAssistantUnavailable)
		return
	}

	res, err := s.opts.Assistant.HandleMessage(r.Context(), intelligence.MessageRequest{
		Message:   req.Input,
		UserID:    req.UserID,
		SessionID: req.SessionID,
		History:   req.ChatHistory,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toChatMessageResponse(res))
}

func toChatMessageResponse(res *intelligence.MessageResult) chatMessageResponse {
	out := chatMessageResponse{
		Success:             res.Success,
		Message:             res.Message,
		EmergencyDetected:   res.EmergencyDetected,
		EmergencyConfidence: res.EmergencyConfidence,
		EmergencyAnalysis:   res.EmergencyDetails,
		ReminderDetected:    res.ReminderDetected,
		ReminderConfidence:  res.ReminderConfidence,
		ReminderComponents:  res.ReminderDetails,
	}

	switch {
	case res.ReminderError != nil:
		out.ReminderResult = reminderFailedResult{
			Error: res.ReminderError.Message,
			Raw:   res.ReminderError.Raw,
		}
	case res.ReminderResult != nil && len(res.ReminderResult.Reminders) > 0:
		saved := reminderSavedResult{Success: true}
		if res.ReminderResult.FromArray {
			saved.Reminders = toReminderJSONList(res.ReminderResult.Reminders)
			saved.Count = len(saved.Reminders)
		} else {
			rem := toReminderJSON(res.ReminderResult.Reminders[0])
			saved.Reminder = &rem
		}
		out.ReminderResult = saved
	}
	return out
}

func toReminderJSON(r *domain.Reminder) reminderJSON {
	return reminderJSON{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Date:      r.Date,
		Time:      r.Time,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toReminderJSONList(list []*domain.Reminder) []reminderJSON {
	out := make([]reminderJSON, 0, len(list))
	for _, r := range list {
		out = append(out, toReminderJSON(r))
	}
	return out
}
