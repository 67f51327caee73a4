package app

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
)

func memoryConfig() Config {
	cfg := DefaultConfig()
	cfg.DBPath = ":memory:"
	return cfg
}

func TestOpen_WithoutAPIKeyDisablesAssistant(t *testing.T) {
	a, err := Open(memoryConfig(), log.New(io.Discard), nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	_, err = a.Assistant()
	assert.ErrorIs(t, err, ErrAssistantUnavailable)

	saved, err := a.Reminders.Save(context.Background(), &domain.Reminder{
		UserID: "u1", Title: "Walk", Date: "2024-06-13", Time: "7pm",
	})
	require.NoError(t, err)
	assert.Equal(t, "7:00 PM", saved.Time)

	snap, err := a.Sessions.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, snap.Sessions)
}

func TestOpen_WithAPIKeyWiresAssistant(t *testing.T) {
	cfg := memoryConfig()
	cfg.LLM.APIKey = "test-key"

	a, err := Open(cfg, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	router, err := a.Assistant()
	require.NoError(t, err)
	assert.NotNil(t, router)
	assert.NotNil(t, a.News)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SILVERCARE_DB", "/tmp/silvercare-test.db")
	t.Setenv("SILVERCARE_ADDR", "")
	t.Setenv("SILVERCARE_REMINDER_THRESHOLD", "")
	t.Setenv("SILVERCARE_REQUEST_TIMEOUT_MS", "")
	t.Setenv("SILVERCARE_CORS_ORIGINS", "")
	t.Setenv("SILVERCARE_LOG_LEVEL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "/tmp/silvercare-test.db", cfg.DBPath)
	assert.InDelta(t, 0.2, cfg.ReminderThreshold, 1e-9)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SILVERCARE_DB", ":memory:")
	t.Setenv("SILVERCARE_ADDR", "127.0.0.1:8080")
	t.Setenv("SILVERCARE_REMINDER_THRESHOLD", "0.35")
	t.Setenv("SILVERCARE_REQUEST_TIMEOUT_MS", "1500")
	t.Setenv("SILVERCARE_CORS_ORIGINS", "http://localhost:5173, https://silvercare.app ,")
	t.Setenv("SILVERCARE_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.InDelta(t, 0.35, cfg.ReminderThreshold, 1e-9)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "https://silvercare.app"}, cfg.CORSOrigins)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
}

func TestLoadConfig_ZeroReminderThreshold(t *testing.T) {
	t.Setenv("SILVERCARE_DB", ":memory:")
	t.Setenv("SILVERCARE_REMINDER_THRESHOLD", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Zero(t, cfg.ReminderThreshold)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	t.Setenv("SILVERCARE_DB", ":memory:")

	t.Setenv("SILVERCARE_REMINDER_THRESHOLD", "1.5")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("SILVERCARE_REMINDER_THRESHOLD", "")
	t.Setenv("SILVERCARE_REQUEST_TIMEOUT_MS", "-1")
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("SILVERCARE_REQUEST_TIMEOUT_MS", "")
	t.Setenv("SILVERCARE_LOG_LEVEL", "chatty")
	_, err = LoadConfig()
	assert.Error(t, err)
}
