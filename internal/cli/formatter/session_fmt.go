package formatter

import (
	"fmt"
	"time"

	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
)

// FormatSessionList renders chat sessions with their activity.
func FormatSessionList(sessions []*domain.ChatSession, now time.Time) string {
	if len(sessions) == 0 {
		return Dim("No chat sessions.") + "\n"
	}

	headers := []string{"ID", "NAME", "MESSAGES", "LAST ACTIVE"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		name := s.Name
		if name == "" {
			name = Dim("(untitled)")
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			Truncate(name, 40),
			fmt.Sprintf("%d", s.MessageCount),
			HumanTimestamp(s.LastActivity, now),
		})
	}
	return RenderBox("Chat Sessions", RenderTable(headers, rows)) + "\n"
}
