package domain

import (
	"fmt"
	"time"
)

// DefaultReminderTitle names reminders the model returned without a title.
const DefaultReminderTitle = "New Reminder"

// ReminderDraft is a reminder as proposed by the model. Every field is
// untrusted and may be empty.
type ReminderDraft struct {
	Title   string
	RawDate string
	RawTime string
}

type Reminder struct {
	ID        string
	UserID    string
	Title     string
	Date      string // YYYY-MM-DD
	Time      string // H:MM AM|PM
	CreatedAt time.Time
}

// Validate checks the fields required before a reminder is persisted.
func (r *Reminder) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("reminder user ID is required")
	}
	if r.Title == "" {
		return fmt.Errorf("reminder title is required")
	}
	if r.Date == "" || r.Time == "" {
		return fmt.Errorf("reminder %q needs both date and time", r.Title)
	}
	return nil
}
