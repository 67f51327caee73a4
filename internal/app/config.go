package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/tanish-jain-225/SilverCare-AI/internal/intelligence"
	"github.com/tanish-jain-225/SilverCare-AI/internal/llm"
	"github.com/tanish-jain-225/SilverCare-AI/internal/news"
)

// Config is the process-wide configuration shared by the server and the CLI.
type Config struct {
	Addr              string
	DBPath            string
	ReminderThreshold float64
	RequestTimeout    time.Duration
	CORSOrigins       []string
	LogLevel          log.Level

	LLM  llm.LLMConfig
	News news.Config
}

// DefaultConfig returns settings for local use. DBPath is left empty and
// resolved against the home directory by LoadConfig.
func DefaultConfig() Config {
	return Config{
		Addr:              ":5000",
		ReminderThreshold: intelligence.DefaultReminderThreshold,
		RequestTimeout:    60 * time.Second,
		CORSOrigins:       []string{"*"},
		LogLevel:          log.InfoLevel,
		LLM:               llm.DefaultConfig(),
		News:              news.DefaultConfig(),
	}
}

// LoadConfig reads a .env file from the working directory if one exists and
// then the SILVERCARE_* environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.LLM = llm.LoadConfig()
	cfg.News = news.LoadConfig()

	cfg.Addr = getEnv("SILVERCARE_ADDR", cfg.Addr)

	cfg.DBPath = os.Getenv("SILVERCARE_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".silvercare", "silvercare.db")
	}

	if v := os.Getenv("SILVERCARE_REMINDER_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return cfg, fmt.Errorf("SILVERCARE_REMINDER_THRESHOLD must be a number in [0,1], got %q", v)
		}
		cfg.ReminderThreshold = f
	}
	if v := os.Getenv("SILVERCARE_REQUEST_TIMEOUT_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("SILVERCARE_REQUEST_TIMEOUT_MS must be a positive integer, got %q", v)
		}
		cfg.RequestTimeout = time.Duration(n) * time.Millisecond
	}
	if v := os.Getenv("SILVERCARE_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("SILVERCARE_LOG_LEVEL"); v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("SILVERCARE_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
