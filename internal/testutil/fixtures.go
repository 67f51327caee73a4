package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
)

// Reminder options
type ReminderOption func(*domain.Reminder)

func WithReminderDate(date string) ReminderOption {
	return func(r *domain.Reminder) {
		r.Date = date
	}
}

func WithReminderTime(clock string) ReminderOption {
	return func(r *domain.Reminder) {
		r.Time = clock
	}
}

func WithReminderCreatedAt(t time.Time) ReminderOption {
	return func(r *domain.Reminder) {
		r.CreatedAt = t
	}
}

func NewTestReminder(userID, title string, opts ...ReminderOption) *domain.Reminder {
	r := &domain.Reminder{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Date:      "2024-06-13",
		Time:      "9:00 AM",
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ChatSession options
type ChatSessionOption func(*domain.ChatSession)

func WithMessages(msgs ...domain.ChatMessage) ChatSessionOption {
	return func(s *domain.ChatSession) {
		s.Messages = msgs
		s.MessageCount = len(msgs)
	}
}

func WithSessionCreatedAt(t time.Time) ChatSessionOption {
	return func(s *domain.ChatSession) {
		s.CreatedAt = t
		s.LastActivity = t
	}
}

func WithSessionID(id string) ChatSessionOption {
	return func(s *domain.ChatSession) {
		s.ID = id
	}
}

func NewTestChatSession(userID, name string, opts ...ChatSessionOption) *domain.ChatSession {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.ChatSession{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         name,
		Messages:     []domain.ChatMessage{},
		CreatedAt:    now,
		LastActivity: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserMsg and AssistantMsg build plain conversational turns.
func UserMsg(content string) domain.ChatMessage {
	return domain.ChatMessage{Role: domain.RoleUser, Content: content}
}

func AssistantMsg(content string) domain.ChatMessage {
	return domain.ChatMessage{Role: domain.RoleAssistant, Content: content}
}
