package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tanish-jain-225/SilverCare-AI/internal/db"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
)

// SQLiteReminderRepo implements ReminderRepo using a SQLite database.
type SQLiteReminderRepo struct {
	db db.DBTX
}

// NewSQLiteReminderRepo creates a new SQLiteReminderRepo. Pass the *sql.DB
// for standalone use or a transaction's DBTX inside a UnitOfWork.
func NewSQLiteReminderRepo(db db.DBTX) *SQLiteReminderRepo {
	return &SQLiteReminderRepo{db: db}
}

const reminderColumns = `id, user_id, title, date, time, created_at`

func (r *SQLiteReminderRepo) Create(ctx context.Context, rem *domain.Reminder) error {
	query := `INSERT INTO reminders (` + reminderColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rem.ID,
		rem.UserID,
		rem.Title,
		rem.Date,
		rem.Time,
		formatTime(rem.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting reminder: %w", err)
	}
	return nil
}

func (r *SQLiteReminderRepo) GetByID(ctx context.Context, id, userID string) (*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = ? AND user_id = ?`
	return r.scanReminder(r.db.QueryRowContext(ctx, query, id, userID))
}

// ListByUser returns the user's reminders ordered by date. Time strings are
// 12-hour clock values and do not sort lexically; callers order within a day.
func (r *SQLiteReminderRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE user_id = ? ORDER BY date, created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	defer rows.Close()

	var out []*domain.Reminder
	for rows.Next() {
		var rem domain.Reminder
		var createdAtStr string
		if err := rows.Scan(&rem.ID, &rem.UserID, &rem.Title, &rem.Date, &rem.Time, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning reminder row: %w", err)
		}
		if rem.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
			return nil, err
		}
		out = append(out, &rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reminders: %w", err)
	}
	return out, nil
}

func (r *SQLiteReminderRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting reminder: %w", err)
	}
	return requireAffected(res, "reminder")
}

func (r *SQLiteReminderRepo) scanReminder(row *sql.Row) (*domain.Reminder, error) {
	var rem domain.Reminder
	var createdAtStr string
	err := row.Scan(&rem.ID, &rem.UserID, &rem.Title, &rem.Date, &rem.Time, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reminder: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning reminder: %w", err)
	}
	if rem.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	return &rem, nil
}
