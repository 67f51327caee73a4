package intelligence

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanish-jain-225/SilverCare-AI/internal/llm"
)

func TestEmergencyClassifier_ParsesVerdictShapes(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		flag       bool
		confidence float64
	}{
		{"bare", `{"is_emergency": true, "confidence": 0.9, "details": {"type": "medical"}}`, true, 0.9},
		{"fenced", "Sure.\n```json\n{\"is_emergency\": false, \"confidence\": 0.1}\n```", false, 0.1},
		{"surrounding prose", `Verdict: {"is_emergency": true, "confidence": 0.75} hope that helps`, true, 0.75},
		{"string values", `{"is_emergency": "true", "confidence": "0.6"}`, true, 0.6},
		{"missing fields", `{"details": {}}`, false, 0},
		{"confidence clamped high", `{"is_emergency": true, "confidence": 1.7}`, true, 1},
		{"confidence clamped low", `{"is_emergency": true, "confidence": -0.3}`, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newScriptedClient().on(llm.TaskClassifyEmergency, tt.output)
			v := NewEmergencyClassifier(client, nil).Classify(context.Background(), "help")
			assert.Equal(t, tt.flag, v.Flag)
			assert.InDelta(t, tt.confidence, v.Confidence, 1e-9)
			assert.NotNil(t, v.Details)
		})
	}
}

func TestClassifier_FailuresAreSilentNegatives(t *testing.T) {
	tests := []struct {
		name   string
		client *scriptedClient
	}{
		{"upstream error", newScriptedClient().fail(llm.TaskClassifyReminder, llm.ErrUpstream)},
		{"timeout", newScriptedClient().fail(llm.TaskClassifyReminder, llm.ErrTimeout)},
		{"no json", newScriptedClient().on(llm.TaskClassifyReminder, "I think this is a reminder.")},
		{"wrong flag type", newScriptedClient().on(llm.TaskClassifyReminder, `{"is_reminder": {"x": 1}, "confidence": 0.9}`)},
		{"unparseable confidence", newScriptedClient().on(llm.TaskClassifyReminder, `{"is_reminder": true, "confidence": "high"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewReminderClassifier(tt.client, nil).Classify(context.Background(), "remind me")
			assert.False(t, v.Flag)
			assert.Zero(t, v.Confidence)
			assert.Empty(t, v.Details)
			assert.NotNil(t, v.Details)
		})
	}
}

func TestClassifier_DetailsAreStringified(t *testing.T) {
	client := newScriptedClient().on(llm.TaskClassifyReminder,
		`{"is_reminder": true, "confidence": 0.8, "details": {"task": "take medicine", "count": 2, "when": {"day": "tomorrow"}, "tags": ["a", "b"], "time": null}}`)

	v := NewReminderClassifier(client, nil).Classify(context.Background(), "remind me")
	require.True(t, v.Flag)
	assert.Equal(t, "take medicine", v.Details["task"])
	assert.Equal(t, "2", v.Details["count"])
	assert.Equal(t, `{"day":"tomorrow"}`, v.Details["when"])
	assert.Equal(t, `["a","b"]`, v.Details["tags"])
	assert.Equal(t, "", v.Details["time"])
}

func TestClassifier_NonObjectDetailsBecomeEmpty(t *testing.T) {
	client := newScriptedClient().on(llm.TaskClassifyEmergency, `{"is_emergency": true, "confidence": 0.9, "details": "chest pain"}`)

	v := NewEmergencyClassifier(client, nil).Classify(context.Background(), "my chest hurts")
	assert.True(t, v.Flag)
	assert.Empty(t, v.Details)
}

func TestClassifier_SendsKindSpecificPrompts(t *testing.T) {
	client := newScriptedClient()
	ctx := context.Background()

	NewEmergencyClassifier(client, nil).Classify(ctx, "I fell down")
	NewReminderClassifier(client, nil).Classify(ctx, "remind me at 9")

	em := client.calls(llm.TaskClassifyEmergency)
	require.Len(t, em, 1)
	require.Len(t, em[0].Messages, 2)
	assert.Equal(t, llm.RoleSystem, em[0].Messages[0].Role)
	assert.Contains(t, em[0].Messages[0].Content, "is_emergency")
	assert.Equal(t, "Classify and extract emergency intent from this message: I fell down", em[0].Messages[1].Content)

	rem := client.calls(llm.TaskClassifyReminder)
	require.Len(t, rem, 1)
	assert.Contains(t, rem[0].Messages[0].Content, "is_reminder")
	assert.True(t, strings.HasSuffix(rem[0].Messages[1].Content, "remind me at 9"))
}

func TestClassifier_UnrecognisedShapeIsNegative(t *testing.T) {
	client := newScriptedClient()
	client.responses[llm.TaskClassifyEmergency] = llm.ChatResponse{Shape: llm.ShapeUnknown}

	v := NewEmergencyClassifier(client, nil).Classify(context.Background(), "help")
	assert.False(t, v.Flag)
	assert.Zero(t, v.Confidence)
}
