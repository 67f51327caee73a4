package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS reminders (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		title      TEXT NOT NULL,
		date       TEXT NOT NULL,
		time       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reminders_user ON reminders(user_id, date)`,

	`CREATE TABLE IF NOT EXISTS chat_sessions (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		messages      TEXT NOT NULL DEFAULT '[]',
		created_at    TEXT NOT NULL,
		last_activity TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_chat_sessions_user ON chat_sessions(user_id, created_at)`,

	// message_count was added after the first release.
	`ALTER TABLE chat_sessions ADD COLUMN message_count INTEGER NOT NULL DEFAULT 0`,
}
