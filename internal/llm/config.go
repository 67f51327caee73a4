package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskClassifyEmergency TaskType = "classify_emergency"
	TaskClassifyReminder  TaskType = "classify_reminder"
	TaskExtractReminder   TaskType = "extract_reminder"
	TaskChat              TaskType = "chat"
)

// Transport selects how the client talks to the chat-completion endpoint.
type Transport string

const (
	// TransportSDK uses the openai-go SDK.
	TransportSDK Transport = "sdk"
	// TransportHTTP posts raw JSON and keeps the decoded body as a map.
	TransportHTTP Transport = "http"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	ClassifierModel string
	Transport       Transport
	Stream          bool
	LogCalls        bool
	TimeoutMs       int
	Tasks           map[TaskType]TaskConfig
}

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "deepseek-ai/DeepSeek-V3"

// DefaultConfig returns an LLMConfig pointed at the Together AI
// OpenAI-compatible endpoint. The API key is left empty.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		BaseURL:         "https://api.together.xyz/v1",
		Model:           DefaultModel,
		ClassifierModel: DefaultModel,
		Transport:       TransportSDK,
		TimeoutMs:       30000,
		Tasks: map[TaskType]TaskConfig{
			TaskClassifyEmergency: {Temperature: 0, MaxTokens: 512, TimeoutMs: 15000},
			TaskClassifyReminder:  {Temperature: 0, MaxTokens: 512, TimeoutMs: 15000},
			TaskExtractReminder:   {Temperature: 0.1, MaxTokens: 1024, TimeoutMs: 20000},
			TaskChat:              {Temperature: 0.7, MaxTokens: 2048},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	cfg.APIKey = os.Getenv("SILVERCARE_LLM_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("TOGETHER_API_KEY")
	}
	if v := os.Getenv("SILVERCARE_LLM_BASE_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("SILVERCARE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SILVERCARE_LLM_CLASSIFIER_MODEL"); v != "" {
		cfg.ClassifierModel = v
	}
	if v := os.Getenv("SILVERCARE_LLM_TRANSPORT"); v != "" {
		switch t := Transport(strings.ToLower(v)); t {
		case TransportSDK, TransportHTTP:
			cfg.Transport = t
		}
	}
	if v := os.Getenv("SILVERCARE_LLM_STREAM"); v != "" {
		cfg.Stream, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SILVERCARE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SILVERCARE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskClassifyEmergency, "SILVERCARE_LLM_CLASSIFY_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskClassifyReminder, "SILVERCARE_LLM_CLASSIFY_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskExtractReminder, "SILVERCARE_LLM_EXTRACT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskChat, "SILVERCARE_LLM_CHAT_TIMEOUT_MS")

	return cfg
}

// Validate reports whether the configuration can reach a provider.
func (c LLMConfig) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// ModelFor returns the model used for a task: classification tasks use the
// classifier model, everything else the chat model.
func (c LLMConfig) ModelFor(task TaskType) string {
	switch task {
	case TaskClassifyEmergency, TaskClassifyReminder:
		if c.ClassifierModel != "" {
			return c.ClassifierModel
		}
	}
	return c.Model
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
