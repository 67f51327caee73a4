package news

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.worldnewsapi.com"
	DefaultQuery   = "latest news"
	userAgent      = "SilverCare-AI/1.0"
)

type Config struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   10 * time.Second,
		CacheSize: 128,
		CacheTTL:  5 * time.Minute,
	}
}

// LoadConfig reads the news settings from the environment. The first of
// WORLD_NEWS_API_KEY1..3 that is set supplies the key.
func LoadConfig() Config {
	cfg := DefaultConfig()
	for _, name := range []string{"WORLD_NEWS_API_KEY1", "WORLD_NEWS_API_KEY2", "WORLD_NEWS_API_KEY3"} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			cfg.APIKey = v
			break
		}
	}
	if v := os.Getenv("SILVERCARE_NEWS_BASE_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("SILVERCARE_NEWS_CACHE_TTL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CacheTTL = time.Duration(n) * time.Second
		}
	}
	return cfg
}
