package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
)

// FormatReminderList renders a user's reminders as a boxed table.
func FormatReminderList(reminders []*domain.Reminder, now time.Time) string {
	if len(reminders) == 0 {
		return Dim("No reminders yet.") + "\n"
	}

	headers := []string{"ID", "TITLE", "DATE", "TIME", "DUE"}
	rows := make([][]string, 0, len(reminders))
	for _, r := range reminders {
		rows = append(rows, []string{
			TruncID(r.ID),
			Truncate(r.Title, 40),
			r.Date,
			r.Time,
			ReminderWhen(r.Date, now),
		})
	}
	return RenderBox("Reminders", RenderTable(headers, rows)) + "\n"
}

// FormatReminderSaved confirms one or more saved reminders.
func FormatReminderSaved(reminders ...*domain.Reminder) string {
	var b strings.Builder
	for _, r := range reminders {
		fmt.Fprintf(&b, "%s %s %s\n",
			StyleGreen.Render("✔"),
			Bold(r.Title),
			Dim(fmt.Sprintf("%s at %s (%s)", r.Date, r.Time, shortID(r.ID))))
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
