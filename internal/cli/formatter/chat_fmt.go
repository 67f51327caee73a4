package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tanish-jain-225/SilverCare-AI/internal/intelligence"
)

// FormatAssistantReply renders the assistant's answer. With verbose set the
// classifier verdicts are listed underneath.
func FormatAssistantReply(res *intelligence.MessageResult, verbose bool) string {
	var b strings.Builder

	if res.EmergencyDetected {
		b.WriteString(DecisionBadge(intelligence.DecisionEmergency))
		b.WriteString(Dim("  If you are in danger, call your local emergency number."))
		b.WriteString("\n")
	}
	if res.ReminderResult != nil {
		b.WriteString(FormatReminderSaved(res.ReminderResult.Reminders...))
	}

	b.WriteString(StylePurple.Render("SilverCare"))
	b.WriteString(Dim(": "))
	b.WriteString(res.Message)
	b.WriteString("\n")

	if verbose {
		b.WriteString(formatVerdicts(res))
	}
	return b.String()
}

func formatVerdicts(res *intelligence.MessageResult) string {
	var b strings.Builder
	b.WriteString(Dim("─ decision ") + DecisionBadge(res.Decision) + "\n")
	fmt.Fprintf(&b, "%s %v %s%s\n", Dim("  emergency:"), res.EmergencyDetected,
		RenderMeter(res.EmergencyConfidence, 10), formatDetails(res.EmergencyDetails))
	fmt.Fprintf(&b, "%s %v %s%s\n", Dim("  reminder: "), res.ReminderDetected,
		RenderMeter(res.ReminderConfidence, 10), formatDetails(res.ReminderDetails))
	if res.ReminderError != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("  extraction:"), StyleYellow.Render(res.ReminderError.Error()))
	}
	return b.String()
}

func formatDetails(details map[string]string) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+details[k])
	}
	return Dim(" (" + strings.Join(parts, ", ") + ")")
}
