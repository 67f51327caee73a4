package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"reminders", "chat_sessions"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"idx_reminders_user", "idx_chat_sessions_user"}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestOpenDB_Pragmas(t *testing.T) {
	db := openTestDB(t)

	var fk, busy int
	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	require.NoError(t, db.QueryRow(`PRAGMA busy_timeout`).Scan(&busy))
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, 1, fk)
	assert.Equal(t, 5000, busy)
	assert.Equal(t, "memory", mode, "WAL only applies to file databases")
}

func TestOpenDB_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "silvercare.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestMigrate_ChatSessionDefaults(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO chat_sessions (id, user_id, created_at, last_activity)
		VALUES ('s1', 'u1', '2024-06-10T10:00:00Z', '2024-06-10T10:00:00Z')`)
	require.NoError(t, err)

	var name, messages string
	var count int
	err = db.QueryRow(`SELECT name, messages, message_count FROM chat_sessions WHERE id = 's1'`).Scan(&name, &messages, &count)
	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Equal(t, "[]", messages)
	assert.Equal(t, 0, count)
}

func TestMigrate_RemindersRequireFields(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO reminders (id, user_id, title, created_at) VALUES ('r1', 'u1', 'Walk', '2024-06-10T10:00:00Z')`)
	assert.Error(t, err, "date and time are NOT NULL")
}
