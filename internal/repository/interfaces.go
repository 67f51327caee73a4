package repository

import (
	"context"
	"time"

	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
)

type ReminderRepo interface {
	Create(ctx context.Context, r *domain.Reminder) error
	GetByID(ctx context.Context, id, userID string) (*domain.Reminder, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Reminder, error)
	Delete(ctx context.Context, id, userID string) error
}

// ChatSessionRepo stores chat sessions. Every method is scoped to the owning
// user; a session ID belonging to another user behaves as missing.
type ChatSessionRepo interface {
	Create(ctx context.Context, s *domain.ChatSession) error
	Upsert(ctx context.Context, s *domain.ChatSession) (bool, error)
	GetByID(ctx context.Context, id, userID string) (*domain.ChatSession, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.ChatSession, error)
	UpdateMessages(ctx context.Context, id, userID string, messages []domain.ChatMessage, at time.Time) error
	Touch(ctx context.Context, id, userID string, at time.Time) error
	Delete(ctx context.Context, id, userID string) error
	DeleteAllByUser(ctx context.Context, userID string) (int64, error)
}
