package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
	"github.com/tanish-jain-225/SilverCare-AI/internal/llm"
	"github.com/tanish-jain-225/SilverCare-AI/internal/temporal"
)

// ReminderExtractor asks the model for reminder fields, repairs whatever is
// missing with the temporal defaults and hands each record to a saver.
type ReminderExtractor struct {
	client llm.ChatClient
	saver  ReminderSaver
	logger *log.Logger
}

func NewReminderExtractor(client llm.ChatClient, saver ReminderSaver, logger *log.Logger) *ReminderExtractor {
	return &ReminderExtractor{
		client: client,
		saver:  saver,
		logger: componentLogger(logger, "reminder-extractor"),
	}
}

// Extract returns the saved reminders or an *ExtractionError. It never
// retries.
func (e *ReminderExtractor) Extract(ctx context.Context, userMessage, userID string, tc temporal.Context) (*ExtractionResult, error) {
	resp, err := e.client.Complete(ctx, llm.CompleteRequest{
		Task: llm.TaskExtractReminder,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: buildExtractionSystemPrompt(tc)},
			{Role: llm.RoleUser, Content: fmt.Sprintf(extractUserPrompt, userMessage)},
		},
	})
	if err != nil {
		return nil, &ExtractionError{Kind: ExtractionInternal, Message: "reminder extraction call failed", Err: err}
	}
	text := llm.ExtractText(resp)

	drafts, fromArray, err := parseDrafts(text)
	if err != nil {
		var xerr *ExtractionError
		if errors.As(err, &xerr) {
			xerr.Raw = text
		}
		e.logger.Warn("reminder extraction failed", "err", err)
		return nil, err
	}

	records := make([]*domain.Reminder, 0, len(drafts))
	for _, d := range drafts {
		records = append(records, finishDraft(d, userID, tc))
	}

	result := &ExtractionResult{FromArray: fromArray}
	for _, rec := range records {
		saved, err := e.saver.Save(ctx, rec)
		if err != nil {
			return nil, &ExtractionError{Kind: ExtractionInternal, Message: "saving reminder failed", Err: err}
		}
		result.Reminders = append(result.Reminders, saved)
	}
	return result, nil
}

// parseDrafts looks for an array of reminder objects first and falls back
// to a single object. An array with any non-object element is abandoned.
// An object carrying none of the reminder keys counts as malformed, since
// repair turns unparseable text such as "{]}" into an empty object.
func parseDrafts(text string) ([]domain.ReminderDraft, bool, error) {
	if candidate, ok := llm.FindJSONArray(text); ok {
		items, err := llm.DecodeJSON[[]map[string]any](candidate)
		if err == nil && len(items) > 0 && allReminderObjects(items) {
			drafts := make([]domain.ReminderDraft, 0, len(items))
			for _, item := range items {
				drafts = append(drafts, draftFromFields(item))
			}
			return drafts, true, nil
		}
	}

	candidate, ok := llm.FindJSONObject(text)
	if !ok {
		return nil, false, &ExtractionError{Kind: ExtractionNoStructuredData, Message: "No JSON found in LLM response"}
	}
	fields, err := llm.DecodeJSON[map[string]any](candidate)
	if err != nil || fields == nil {
		return nil, false, &ExtractionError{Kind: ExtractionParseFailure, Message: "Failed to parse reminder JSON", Err: err}
	}
	if !hasReminderKey(fields) {
		return nil, false, &ExtractionError{Kind: ExtractionParseFailure, Message: "Failed to parse reminder JSON"}
	}
	return []domain.ReminderDraft{draftFromFields(fields)}, false, nil
}

func allReminderObjects(items []map[string]any) bool {
	for _, it := range items {
		if it == nil || !hasReminderKey(it) {
			return false
		}
	}
	return true
}

func hasReminderKey(fields map[string]any) bool {
	for _, key := range []string{"title", "date", "time"} {
		if _, ok := fields[key]; ok {
			return true
		}
	}
	return false
}

func draftFromFields(fields map[string]any) domain.ReminderDraft {
	return domain.ReminderDraft{
		Title:   fieldString(fields["title"]),
		RawDate: fieldString(fields["date"]),
		RawTime: fieldString(fields["time"]),
	}
}

// fieldString renders a model-supplied value. Falsy values (null, false,
// zero, empty string) become "" so the defaults apply.
func fieldString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		if x == 0 {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "true"
		}
	}
	return ""
}

// finishDraft fills and normalizes a draft. Normalization runs even when the
// model supplied a value.
func finishDraft(d domain.ReminderDraft, userID string, tc temporal.Context) *domain.Reminder {
	title := d.Title
	if title == "" {
		title = domain.DefaultReminderTitle
	}
	date := d.RawDate
	if date == "" {
		date = temporal.DefaultDate(title, tc.Now)
	}
	clock := d.RawTime
	if clock == "" {
		clock = temporal.DefaultTime(title, tc.Now)
	}
	return &domain.Reminder{
		UserID: userID,
		Title:  title,
		Date:   temporal.NormalizeDate(date, tc.Now),
		Time:   temporal.NormalizeTime(clock, tc.Now),
	}
}
