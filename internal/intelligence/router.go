package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
	"github.com/tanish-jain-225/SilverCare-AI/internal/llm"
	"github.com/tanish-jain-225/SilverCare-AI/internal/sentiment"
	"github.com/tanish-jain-225/SilverCare-AI/internal/temporal"
)

const (
	// DefaultReminderThreshold is the reminder confidence the classifier
	// must exceed before extraction is attempted.
	DefaultReminderThreshold = 0.2

	historyWindow = 10
	toneThreshold = 0.1
)

// RouterDeps wires the router's collaborators. Client, Emergency, Reminder
// and Extractor are required. A nil ReminderThreshold means
// DefaultReminderThreshold; zero is a valid setting.
type RouterDeps struct {
	Client            llm.ChatClient
	Emergency         IntentClassifier
	Reminder          IntentClassifier
	Extractor         Extractor
	Sentiment         sentiment.Analyzer
	Observer          DecisionObserver
	Logger            *log.Logger
	Now               func() time.Time
	ReminderThreshold *float64
}

// Router decides how to answer a message: save a reminder, respond to an
// emergency, or chat.
type Router struct {
	client    llm.ChatClient
	emergency IntentClassifier
	reminder  IntentClassifier
	extractor Extractor
	sentiment sentiment.Analyzer
	observer  DecisionObserver
	logger    *log.Logger
	now       func() time.Time
	threshold float64
}

func NewRouter(deps RouterDeps) *Router {
	r := &Router{
		client:    deps.Client,
		emergency: deps.Emergency,
		reminder:  deps.Reminder,
		extractor: deps.Extractor,
		sentiment: deps.Sentiment,
		observer:  deps.Observer,
		logger:    componentLogger(deps.Logger, "router"),
		now:       deps.Now,
		threshold: DefaultReminderThreshold,
	}
	if r.sentiment == nil {
		r.sentiment = sentiment.NewLexicon()
	}
	if r.observer == nil {
		r.observer = noopDecisionObserver{}
	}
	if r.now == nil {
		r.now = time.Now
	}
	if deps.ReminderThreshold != nil {
		r.threshold = *deps.ReminderThreshold
	}
	return r
}

// HandleMessage runs both classifiers and then either the reminder path or
// general chat. Only a failed chat completion is returned as an error.
func (r *Router) HandleMessage(ctx context.Context, req MessageRequest) (*MessageResult, error) {
	emergency := r.emergency.Classify(ctx, req.Message)
	reminder := r.reminder.Classify(ctx, req.Message)

	if reminder.Flag && reminder.Confidence > r.threshold {
		res := r.handleReminder(ctx, req, reminder)
		r.observer.OnDecision(res.Decision)
		return res, nil
	}

	suggestReminder := reminder.Flag
	system := personaPrompt + continuityNote(len(req.History))
	decision := DecisionGeneralChat
	switch {
	case emergency.Flag:
		system += emergencyInstruction
		decision = DecisionEmergency
	case suggestReminder:
		system += reminderSuggestInstruction
	default:
		if tone := toneInstruction(r.sentiment.Polarity(req.Message)); tone != "" {
			system += " " + tone
		}
	}

	reply, err := r.chat(ctx, system, req)
	if err != nil {
		return nil, err
	}
	if suggestReminder {
		reply += reminderSuggestSuffix
	}

	r.logger.Debug("message handled", "decision", decision, "user", req.UserID, "session", req.SessionID)
	r.observer.OnDecision(decision)
	return &MessageResult{
		Success:             true,
		Message:             reply,
		EmergencyDetected:   emergency.Flag,
		EmergencyConfidence: emergency.Confidence,
		EmergencyDetails:    emergency.Details,
		ReminderDetected:    reminder.Flag,
		ReminderConfidence:  reminder.Confidence,
		ReminderDetails:     reminder.Details,
		Decision:            decision,
	}, nil
}

// handleReminder runs extraction. The emergency verdict is not reported on
// this path.
func (r *Router) handleReminder(ctx context.Context, req MessageRequest, verdict IntentVerdict) *MessageResult {
	res := &MessageResult{
		ReminderDetected:   true,
		ReminderConfidence: verdict.Confidence,
		ReminderDetails:    verdict.Details,
	}

	result, err := r.extractor.Extract(ctx, req.Message, req.UserID, temporal.Build(r.now()))
	if err == nil && (result == nil || len(result.Reminders) == 0) {
		err = &ExtractionError{Kind: ExtractionNoStructuredData, Message: "no reminders extracted"}
	}
	if err != nil {
		var xerr *ExtractionError
		if !errors.As(err, &xerr) {
			xerr = &ExtractionError{Kind: ExtractionInternal, Message: err.Error(), Err: err}
		}
		r.logger.Warn("reminder not created", "user", req.UserID, "kind", xerr.Kind, "err", xerr)
		res.Message = reminderFailedMessage
		res.ReminderError = xerr
		res.Decision = DecisionReminderFailed
		return res
	}

	res.Success = true
	res.Message = confirmation(result.Reminders[0])
	res.ReminderResult = result
	res.Decision = DecisionReminderHandled
	return res
}

func (r *Router) chat(ctx context.Context, system string, req MessageRequest) (string, error) {
	msgs := make([]llm.Message, 0, historyWindow+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: system})
	msgs = append(msgs, recentHistory(req.History)...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: req.Message})

	resp, err := r.client.Complete(ctx, llm.CompleteRequest{Task: llm.TaskChat, Messages: msgs})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	text := llm.ExtractText(resp)
	if llm.IsUnrecognised(text) {
		r.logger.Error("chat reply had an unrecognised shape", "text", text)
		text = ""
	}
	reply := strings.TrimSpace(text)
	if reply == "" {
		reply = emptyReplyApology
	}
	return reply, nil
}

// recentHistory keeps the usable turns among the last historyWindow entries.
func recentHistory(history []domain.ChatMessage) []llm.Message {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	out := make([]llm.Message, 0, len(history))
	for _, m := range history {
		if !m.IsConversational() {
			continue
		}
		out = append(out, llm.Message{Role: llm.Role(m.Role), Content: m.Content})
	}
	return out
}

func toneInstruction(polarity float64) string {
	switch {
	case polarity > toneThreshold:
		return positiveToneInstruction
	case polarity < -toneThreshold:
		return negativeToneInstruction
	default:
		return ""
	}
}

// confirmation words the reply after the first saved reminder.
func confirmation(rem *domain.Reminder) string {
	title := rem.Title
	if title == "" {
		title = "your reminder"
	}
	switch {
	case rem.Date != "" && rem.Time != "":
		return fmt.Sprintf("Perfect! I've set a reminder for '%s' on %s at %s. I'll make sure to notify you when it's time.", title, rem.Date, rem.Time)
	case rem.Date != "":
		return fmt.Sprintf("Great! I've set a reminder for '%s' on %s. I'll remind you about this.", title, rem.Date)
	case rem.Time != "":
		return fmt.Sprintf("Done! I've set a reminder for '%s' at %s. You'll get notified when it's time.", title, rem.Time)
	default:
		return fmt.Sprintf("I've created a reminder for '%s'. You can view and edit it in your reminders section.", title)
	}
}
