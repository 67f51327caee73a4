package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tanish-jain-225/SilverCare-AI/internal/db"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
	"github.com/tanish-jain-225/SilverCare-AI/internal/repository"
)

type chatSessionService struct {
	sessions repository.ChatSessionRepo
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func NewChatSessionService(sessions repository.ChatSessionRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ChatSessionService {
	return &chatSessionService{
		sessions: sessions,
		uow:      uow,
		now:      func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *chatSessionService) Load(ctx context.Context, userID string) (*SessionSnapshot, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap := &SessionSnapshot{
		Sessions:       nonNilSessions(sessions),
		SessionCounter: len(sessions) + 1,
	}
	if len(sessions) > 0 {
		snap.CurrentSessionID = sessions[0].ID
	}
	return snap, nil
}

// ReplaceAll makes sessions the user's complete set. The delete and the
// writes share one transaction so a failure leaves the previous set intact.
func (s *chatSessionService) ReplaceAll(ctx context.Context, userID string, sessions []*domain.ChatSession) (saved int, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "chat_session.replace_all", start, err, map[string]any{"user_id": userID, "sessions": len(sessions)})
	}()

	if userID == "" {
		return 0, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteChatSessionRepo(tx)
		if _, err := txSessions.DeleteAllByUser(ctx, userID); err != nil {
			return err
		}
		for _, sess := range sessions {
			if sess == nil || sess.ID == "" {
				continue
			}
			rec := *sess
			rec.UserID = userID
			if rec.CreatedAt.IsZero() {
				rec.CreatedAt = now
			}
			if rec.LastActivity.IsZero() {
				rec.LastActivity = rec.CreatedAt
			}
			if rec.MessageCount == 0 {
				rec.MessageCount = len(rec.Messages)
			}
			written, err := txSessions.Upsert(ctx, &rec)
			if err != nil {
				return err
			}
			if written {
				saved++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return saved, nil
}

func (s *chatSessionService) Create(ctx context.Context, userID, name string) (created *domain.ChatSession, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "chat_session.create", start, err, map[string]any{"user_id": userID})
	}()

	name = strings.TrimSpace(name)
	if userID == "" || name == "" {
		return nil, fmt.Errorf("%w: session name and user ID are required", ErrInvalidInput)
	}
	now := s.now()
	sess := &domain.ChatSession{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         name,
		Messages:     []domain.ChatMessage{},
		CreatedAt:    now,
		LastActivity: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *chatSessionService) UpdateMessages(ctx context.Context, id, userID string, messages []domain.ChatMessage) error {
	if id == "" || userID == "" {
		return fmt.Errorf("%w: session ID and user ID are required", ErrInvalidInput)
	}
	return s.sessions.UpdateMessages(ctx, id, userID, messages, s.now())
}

// Delete removes the session and returns the user's remaining sessions.
func (s *chatSessionService) Delete(ctx context.Context, id, userID string) (remaining []*domain.ChatSession, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "chat_session.delete", start, err, map[string]any{"user_id": userID})
	}()

	if id == "" || userID == "" {
		return nil, fmt.Errorf("%w: session ID and user ID are required", ErrInvalidInput)
	}
	if err := s.sessions.Delete(ctx, id, userID); err != nil {
		return nil, err
	}
	remaining, err = s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nonNilSessions(remaining), nil
}

func (s *chatSessionService) Touch(ctx context.Context, id, userID string) error {
	if id == "" || userID == "" {
		return fmt.Errorf("%w: session ID and user ID are required", ErrInvalidInput)
	}
	return s.sessions.Touch(ctx, id, userID, s.now())
}

func nonNilSessions(list []*domain.ChatSession) []*domain.ChatSession {
	if list == nil {
		return []*domain.ChatSession{}
	}
	return list
}
