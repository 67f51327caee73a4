package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tanish-jain-225/SilverCare-AI/internal/cli/formatter"
)

// silvercareHuhTheme styles huh forms with the formatter palette.
func silvercareHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// reminderDraft holds the raw answers of the add-reminder form. Date and
// time accept the same loose phrasing the assistant understands.
type reminderDraft struct {
	Title string
	Date  string
	Time  string
}

// reminderForm collects a reminder interactively. Blank date or time are
// inferred from the title when saved.
func reminderForm(d *reminderDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should I remind you about?").
				Placeholder("Take blood pressure medicine").
				Value(&d.Title).
				Validate(validateRequired("title")),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, or words like \"tomorrow\" or \"next monday\". Blank to infer.").
				Placeholder("tomorrow").
				Value(&d.Date),
			huh.NewInput().
				Title("Time").
				Description("e.g. 9am, 21:30, after lunch. Blank to infer.").
				Placeholder("9:00 AM").
				Value(&d.Time),
		),
	).WithTheme(silvercareHuhTheme()).WithShowHelp(false)
}

// confirmForm asks a yes/no question.
func confirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(value),
		),
	).WithTheme(silvercareHuhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
