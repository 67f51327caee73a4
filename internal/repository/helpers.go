package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
)

// formatTime renders a timestamp for SQLite storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime parses a stored RFC3339 timestamp, naming the column on failure.
func parseTime(column, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// encodeMessages serializes chat messages for the messages column. A nil
// slice is stored as an empty array.
func encodeMessages(msgs []domain.ChatMessage) (string, error) {
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	b, err := json.Marshal(msgs)
	if err != nil {
		return "", fmt.Errorf("encoding messages: %w", err)
	}
	return string(b), nil
}

func decodeMessages(s string) ([]domain.ChatMessage, error) {
	msgs := []domain.ChatMessage{}
	if s == "" {
		return msgs, nil
	}
	if err := json.Unmarshal([]byte(s), &msgs); err != nil {
		return nil, fmt.Errorf("decoding messages: %w", err)
	}
	return msgs, nil
}

// requireAffected maps a zero-row write to ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
