package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tanish-jain-225/SilverCare-AI/internal/db"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
)

// SQLiteChatSessionRepo implements ChatSessionRepo using a SQLite database.
// Messages are stored as a JSON array in a single column.
type SQLiteChatSessionRepo struct {
	db db.DBTX
}

// NewSQLiteChatSessionRepo creates a new SQLiteChatSessionRepo.
func NewSQLiteChatSessionRepo(db db.DBTX) *SQLiteChatSessionRepo {
	return &SQLiteChatSessionRepo{db: db}
}

const chatSessionColumns = `id, user_id, name, messages, created_at, last_activity, message_count`

func (r *SQLiteChatSessionRepo) Create(ctx context.Context, s *domain.ChatSession) error {
	msgs, err := encodeMessages(s.Messages)
	if err != nil {
		return err
	}
	query := `INSERT INTO chat_sessions (` + chatSessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.Name,
		msgs,
		formatTime(s.CreatedAt),
		formatTime(s.LastActivity),
		s.MessageCount,
	)
	if err != nil {
		return fmt.Errorf("inserting chat session: %w", err)
	}
	return nil
}

// Upsert inserts the session or replaces every column of an existing row
// with the same ID. A row owned by another user is left untouched and
// reported as not written.
func (r *SQLiteChatSessionRepo) Upsert(ctx context.Context, s *domain.ChatSession) (bool, error) {
	msgs, err := encodeMessages(s.Messages)
	if err != nil {
		return false, err
	}
	query := `INSERT INTO chat_sessions (` + chatSessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			messages = excluded.messages,
			created_at = excluded.created_at,
			last_activity = excluded.last_activity,
			message_count = excluded.message_count
		WHERE chat_sessions.user_id = excluded.user_id`
	res, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.Name,
		msgs,
		formatTime(s.CreatedAt),
		formatTime(s.LastActivity),
		s.MessageCount,
	)
	if err != nil {
		return false, fmt.Errorf("upserting chat session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return n == 1, nil
}

func (r *SQLiteChatSessionRepo) GetByID(ctx context.Context, id, userID string) (*domain.ChatSession, error) {
	query := `SELECT ` + chatSessionColumns + ` FROM chat_sessions WHERE id = ? AND user_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, userID)

	var s domain.ChatSession
	var msgs, createdAtStr, lastActivityStr string
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &msgs, &createdAtStr, &lastActivityStr, &s.MessageCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("chat session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning chat session: %w", err)
	}
	return r.populateSession(&s, msgs, createdAtStr, lastActivityStr)
}

// ListByUser returns the user's sessions, oldest first.
func (r *SQLiteChatSessionRepo) ListByUser(ctx context.Context, userID string) ([]*domain.ChatSession, error) {
	query := `SELECT ` + chatSessionColumns + ` FROM chat_sessions WHERE user_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing chat sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.ChatSession
	for rows.Next() {
		var s domain.ChatSession
		var msgs, createdAtStr, lastActivityStr string
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &msgs, &createdAtStr, &lastActivityStr, &s.MessageCount); err != nil {
			return nil, fmt.Errorf("scanning chat session row: %w", err)
		}
		session, err := r.populateSession(&s, msgs, createdAtStr, lastActivityStr)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat sessions: %w", err)
	}
	return sessions, nil
}

// UpdateMessages replaces the message list and refreshes last_activity and
// message_count.
func (r *SQLiteChatSessionRepo) UpdateMessages(ctx context.Context, id, userID string, messages []domain.ChatMessage, at time.Time) error {
	msgs, err := encodeMessages(messages)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE chat_sessions SET messages = ?, last_activity = ?, message_count = ? WHERE id = ? AND user_id = ?`,
		msgs, formatTime(at), len(messages), id, userID,
	)
	if err != nil {
		return fmt.Errorf("updating chat session messages: %w", err)
	}
	return requireAffected(res, "chat session")
}

func (r *SQLiteChatSessionRepo) Touch(ctx context.Context, id, userID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE chat_sessions SET last_activity = ? WHERE id = ? AND user_id = ?`,
		formatTime(at), id, userID,
	)
	if err != nil {
		return fmt.Errorf("touching chat session: %w", err)
	}
	return requireAffected(res, "chat session")
}

func (r *SQLiteChatSessionRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting chat session: %w", err)
	}
	return requireAffected(res, "chat session")
}

func (r *SQLiteChatSessionRepo) DeleteAllByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting chat sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return n, nil
}

// populateSession fills in parsed fields on a ChatSession after scanning raw strings.
func (r *SQLiteChatSessionRepo) populateSession(s *domain.ChatSession, msgs, createdAtStr, lastActivityStr string) (*domain.ChatSession, error) {
	var err error
	if s.Messages, err = decodeMessages(msgs); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if s.LastActivity, err = parseTime("last_activity", lastActivityStr); err != nil {
		return nil, err
	}
	return s, nil
}
