package intelligence

import (
	"context"
	"fmt"

	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
	"github.com/tanish-jain-225/SilverCare-AI/internal/temporal"
)

// IntentVerdict is a classifier's answer for one intent kind.
type IntentVerdict struct {
	Flag       bool
	Confidence float64 // clamped to [0,1]
	Details    map[string]string
}

// negativeVerdict is returned whenever classification cannot be completed.
func negativeVerdict() IntentVerdict {
	return IntentVerdict{Details: map[string]string{}}
}

// IntentClassifier decides whether a message carries one kind of intent.
// Failures are reported as a negative verdict, never as an error.
type IntentClassifier interface {
	Classify(ctx context.Context, text string) IntentVerdict
}

// ReminderSaver persists a finished reminder and returns the stored record.
type ReminderSaver interface {
	Save(ctx context.Context, r *domain.Reminder) (*domain.Reminder, error)
}

// Extractor turns a reminder request into saved reminders.
type Extractor interface {
	Extract(ctx context.Context, userMessage, userID string, tc temporal.Context) (*ExtractionResult, error)
}

// ExtractionResult lists the reminders saved for one request.
type ExtractionResult struct {
	Reminders []*domain.Reminder
	// FromArray is set when the model answered with a JSON array.
	FromArray bool
}

type ExtractionErrorKind string

const (
	ExtractionNoStructuredData ExtractionErrorKind = "no_structured_data"
	ExtractionParseFailure     ExtractionErrorKind = "parse_failure"
	ExtractionInternal         ExtractionErrorKind = "internal"
)

// ExtractionError describes why no reminder could be produced. Raw holds the
// model text for the structured-data kinds.
type ExtractionError struct {
	Kind    ExtractionErrorKind
	Message string
	Raw     string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Decision is the branch the router took for a message.
type Decision string

const (
	DecisionEmergency       Decision = "emergency"
	DecisionReminderHandled Decision = "reminder_handled"
	DecisionReminderFailed  Decision = "reminder_failed"
	DecisionGeneralChat     Decision = "general_chat"
)

// DecisionObserver is notified once per handled message.
type DecisionObserver interface {
	OnDecision(d Decision)
}

type noopDecisionObserver struct{}

func (noopDecisionObserver) OnDecision(Decision) {}

// MessageRequest is one incoming user message with its recent history.
type MessageRequest struct {
	Message   string
	UserID    string
	SessionID string
	History   []domain.ChatMessage
}

// MessageResult is the router's reply plus the classifier diagnostics.
type MessageResult struct {
	Success             bool
	Message             string
	EmergencyDetected   bool
	EmergencyConfidence float64
	EmergencyDetails    map[string]string
	ReminderDetected    bool
	ReminderConfidence  float64
	ReminderDetails     map[string]string
	ReminderResult      *ExtractionResult
	ReminderError       *ExtractionError
	Decision            Decision
}
