package service

import (
	"context"

	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
)

type ReminderService interface {
	// Save completes, normalizes and persists a reminder, returning the
	// stored record.
	Save(ctx context.Context, r *domain.Reminder) (*domain.Reminder, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Reminder, error)
	Delete(ctx context.Context, id, userID string) error
}

// SessionSnapshot is everything a client needs to restore its chat sidebar.
type SessionSnapshot struct {
	Sessions         []*domain.ChatSession
	CurrentSessionID string
	SessionCounter   int
}

type ChatSessionService interface {
	Load(ctx context.Context, userID string) (*SessionSnapshot, error)
	ReplaceAll(ctx context.Context, userID string, sessions []*domain.ChatSession) (int, error)
	Create(ctx context.Context, userID, name string) (*domain.ChatSession, error)
	UpdateMessages(ctx context.Context, id, userID string, messages []domain.ChatMessage) error
	Delete(ctx context.Context, id, userID string) ([]*domain.ChatSession, error)
	Touch(ctx context.Context, id, userID string) error
}
