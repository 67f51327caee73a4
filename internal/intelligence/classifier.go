package intelligence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tanish-jain-225/SilverCare-AI/internal/llm"
)

// intentClassifier asks the model for a {is_<kind>, confidence, details}
// verdict and degrades every failure to a negative verdict.
type intentClassifier struct {
	kind       string
	flagKey    string
	task       llm.TaskType
	system     string
	userFormat string
	client     llm.ChatClient
	logger     *log.Logger
}

func (c *intentClassifier) Classify(ctx context.Context, text string) IntentVerdict {
	resp, err := c.client.Complete(ctx, llm.CompleteRequest{
		Task: c.task,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: c.system},
			{Role: llm.RoleUser, Content: fmt.Sprintf(c.userFormat, text)},
		},
	})
	if err != nil {
		c.logger.Warn("classification call failed", "kind", c.kind, "err", err)
		return negativeVerdict()
	}

	verdict, err := parseVerdict(llm.ExtractText(resp), c.flagKey)
	if err != nil {
		c.logger.Warn("classification output unusable", "kind", c.kind, "err", err)
		return negativeVerdict()
	}
	return verdict
}

// EmergencyClassifier flags medical, safety and emotional emergencies.
type EmergencyClassifier struct {
	intentClassifier
}

func NewEmergencyClassifier(client llm.ChatClient, logger *log.Logger) *EmergencyClassifier {
	return &EmergencyClassifier{intentClassifier{
		kind:       "emergency",
		flagKey:    "is_emergency",
		task:       llm.TaskClassifyEmergency,
		system:     emergencySystemPrompt,
		userFormat: emergencyUserPrompt,
		client:     client,
		logger:     componentLogger(logger, "emergency-classifier"),
	}}
}

// ReminderClassifier flags requests to create a reminder.
type ReminderClassifier struct {
	intentClassifier
}

func NewReminderClassifier(client llm.ChatClient, logger *log.Logger) *ReminderClassifier {
	return &ReminderClassifier{intentClassifier{
		kind:       "reminder",
		flagKey:    "is_reminder",
		task:       llm.TaskClassifyReminder,
		system:     reminderSystemPrompt,
		userFormat: reminderUserPrompt,
		client:     client,
		logger:     componentLogger(logger, "reminder-classifier"),
	}}
}

// parseVerdict reads the first JSON object in text. A missing flag or
// confidence counts as false or zero; a value of the wrong type is an error.
func parseVerdict(text, flagKey string) (IntentVerdict, error) {
	candidate, ok := llm.FindJSONObject(text)
	if !ok {
		return IntentVerdict{}, fmt.Errorf("%w: no JSON object in classifier output", llm.ErrInvalidOutput)
	}
	raw, err := llm.DecodeJSON[map[string]json.RawMessage](candidate)
	if err != nil {
		return IntentVerdict{}, err
	}

	v := IntentVerdict{Details: map[string]string{}}
	if v.Flag, err = parseFlag(raw[flagKey]); err != nil {
		return IntentVerdict{}, fmt.Errorf("%s: %w", flagKey, err)
	}
	if v.Confidence, err = parseConfidence(raw["confidence"]); err != nil {
		return IntentVerdict{}, fmt.Errorf("confidence: %w", err)
	}
	v.Details = stringifyDetails(raw["details"])
	return v, nil
}

func parseFlag(raw json.RawMessage) (bool, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.ParseBool(strings.TrimSpace(s))
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f != 0, nil
	}
	return false, fmt.Errorf("unsupported value %s", raw)
}

func parseConfidence(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0, fmt.Errorf("unsupported value %s", raw)
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0, err
		}
	}
	if math.IsNaN(f) {
		return 0, nil
	}
	return math.Max(0, math.Min(1, f)), nil
}

// stringifyDetails flattens a details object to strings. Strings are kept
// as-is and other values are rendered as compact JSON. Anything that is not
// an object yields an empty map.
func stringifyDetails(raw json.RawMessage) map[string]string {
	out := map[string]string{}
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil {
		return out
	}
	for k, v := range fields {
		var s string
		if json.Unmarshal(v, &s) == nil {
			out[k] = s
			continue
		}
		if string(v) == "null" {
			out[k] = ""
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			out[k] = string(v)
			continue
		}
		out[k] = buf.String()
	}
	return out
}

func componentLogger(logger *log.Logger, name string) *log.Logger {
	if logger == nil {
		logger = log.Default()
	}
	return logger.With("component", name)
}
