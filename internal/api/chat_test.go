package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
	"github.com/tanish-jain-225/SilverCare-AI/internal/intelligence"
	"github.com/tanish-jain-225/SilverCare-AI/internal/llm"
)

func savedReminder(id, title string) *domain.Reminder {
	return &domain.Reminder{
		ID: id, UserID: "u1", Title: title, Date: "2024-06-11", Time: "9:00 AM",
		CreatedAt: time.Date(2024, time.June, 10, 14, 0, 0, 0, time.UTC),
	}
}

func TestChatMessage_RequiresInputAndUser(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []map[string]any{
		{"userId": "u1"},
		{"input": "hello"},
		{"input": "", "userId": "u1"},
	} {
		status, resp := env.do(t, http.MethodPost, "/chat/message", body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "No message provided", resp["error"])
	}

	status, resp := env.do(t, http.MethodPost, "/chat/message", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No message provided", resp["error"])
}

func TestChatMessage_AssistantUnavailable(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.Assistant = nil })
	status, resp := env.do(t, http.MethodPost, "/chat/message", map[string]any{"input": "hi", "userId": "u1"})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, resp["error"], "assistant unavailable")
}

func TestChatMessage_GeneralChat(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.result = &intelligence.MessageResult{
		Success:             true,
		Message:             "I'm here with you.",
		EmergencyDetected:   true,
		EmergencyConfidence: 0.9,
		EmergencyDetails:    map[string]string{"category": "medical"},
		ReminderDetails:     map[string]string{},
		Decision:            intelligence.DecisionEmergency,
	}

	status, resp := env.do(t, http.MethodPost, "/chat/message", map[string]any{
		"input":     "I fell and can't get up",
		"userId":    "u1",
		"sessionId": "s1",
		"chatHistory": []map[string]any{
			{"role": "user", "content": "hello", "id": 7},
			{"role": "assistant", "content": "Hi there"},
		},
	})
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "I'm here with you.", resp["message"])
	assert.Equal(t, true, resp["emergency_detected"])
	assert.InDelta(t, 0.9, resp["emergency_confidence"], 1e-9)
	assert.Equal(t, map[string]any{"category": "medical"}, resp["emergency_analysis"])
	assert.Equal(t, false, resp["reminder_detected"])
	assert.Contains(t, resp, "reminder_result")
	assert.Nil(t, resp["reminder_result"])

	got := env.assistant.got
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "s1", got.SessionID)
	require.Len(t, got.History, 2)
	assert.Equal(t, "hello", got.History[0].Content)
	assert.Contains(t, got.History[0].Extra, "id")
}

func TestChatMessage_SkipsNonObjectHistoryEntries(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.result = &intelligence.MessageResult{Success: true, Message: "ok", Decision: intelligence.DecisionGeneralChat}

	status, _ := env.do(t, http.MethodPost, "/chat/message", map[string]any{
		"input":  "how are you",
		"userId": "u1",
		"chatHistory": []any{
			"hi",
			1,
			nil,
			map[string]any{"role": "user", "content": "hello"},
		},
	})
	require.Equal(t, http.StatusOK, status)

	got := env.assistant.got
	require.Len(t, got.History, 1)
	assert.Equal(t, "hello", got.History[0].Content)
}

func TestChatMessage_SingleReminderSaved(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.result = &intelligence.MessageResult{
		Success:            true,
		Message:            "Perfect! I've set a reminder for 'Take medicine' on 2024-06-11 at 9:00 AM.",
		ReminderDetected:   true,
		ReminderConfidence: 0.92,
		ReminderDetails:    map[string]string{"task": "take medicine"},
		ReminderResult: &intelligence.ExtractionResult{
			Reminders: []*domain.Reminder{savedReminder("r1", "Take medicine")},
		},
		Decision: intelligence.DecisionReminderHandled,
	}

	status, resp := env.do(t, http.MethodPost, "/chat/message", map[string]any{"input": "remind me", "userId": "u1"})
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, true, resp["reminder_detected"])
	assert.Equal(t, false, resp["emergency_detected"])
	assert.Nil(t, resp["emergency_analysis"])

	result := resp["reminder_result"].(map[string]any)
	assert.Equal(t, true, result["success"])
	assert.NotContains(t, result, "reminders")
	rem := result["reminder"].(map[string]any)
	assert.Equal(t, "r1", rem["id"])
	assert.Equal(t, "Take medicine", rem["title"])
	assert.Equal(t, "2024-06-11", rem["date"])
	assert.Equal(t, "9:00 AM", rem["time"])
	assert.Equal(t, "2024-06-10T14:00:00Z", rem["created_at"])
}

func TestChatMessage_ReminderArraySaved(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.result = &intelligence.MessageResult{
		Success:          true,
		Message:          "Done!",
		ReminderDetected: true,
		ReminderResult: &intelligence.ExtractionResult{
			Reminders: []*domain.Reminder{savedReminder("r1", "Walk"), savedReminder("r2", "Call Ana")},
			FromArray: true,
		},
	}

	_, resp := env.do(t, http.MethodPost, "/chat/message", map[string]any{"input": "two things", "userId": "u1"})
	result := resp["reminder_result"].(map[string]any)
	assert.Equal(t, true, result["success"])
	assert.EqualValues(t, 2, result["count"])
	assert.Len(t, result["reminders"], 2)
	assert.NotContains(t, result, "reminder")
}

func TestChatMessage_ReminderFailed(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.result = &intelligence.MessageResult{
		Message:            "Failed to process reminder.",
		ReminderDetected:   true,
		ReminderConfidence: 0.6,
		ReminderDetails:    map[string]string{},
		ReminderError: &intelligence.ExtractionError{
			Kind:    intelligence.ExtractionNoStructuredData,
			Message: "No JSON found in LLM response",
			Raw:     "Sure, I can help with that!",
		},
		Decision: intelligence.DecisionReminderFailed,
	}

	status, resp := env.do(t, http.MethodPost, "/chat/message", map[string]any{"input": "remind me", "userId": "u1"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Failed to process reminder.", resp["message"])
	assert.Equal(t, map[string]any{
		"error": "No JSON found in LLM response",
		"raw":   "Sure, I can help with that!",
	}, resp["reminder_result"])
}

func TestChatMessage_ModelErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("chat completion: %w", llm.ErrUpstream), http.StatusBadGateway},
		{fmt.Errorf("chat completion: %w", llm.ErrTimeout), http.StatusGatewayTimeout},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		env := newTestEnv(t)
		env.assistant.err = tt.err
		status, resp := env.do(t, http.MethodPost, "/chat/message", map[string]any{"input": "hi", "userId": "u1"})
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.NotEmpty(t, resp["error"])
	}
}
