package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tanish-jain-225/SilverCare-AI/internal/cli/formatter"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
)

func newReminderCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reminder",
		Aliases: []string{"reminders"},
		Short:   "Manage reminders",
	}

	cmd.AddCommand(
		newReminderListCmd(a),
		newReminderAddCmd(a),
		newReminderDeleteCmd(a),
	)

	return cmd
}

func newReminderListCmd(a *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's reminders in date order",
		RunE: func(cmd *cobra.Command, args []string) error {
			reminders, err := a.Reminders.ListByUser(commandContext(cmd), userID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReminderList(reminders, a.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newReminderAddCmd(a *App) *cobra.Command {
	var userID string
	var draft reminderDraft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a reminder",
		Long: "Add a reminder. Date and time accept natural phrasing and are normalized;\n" +
			"when omitted they are inferred from the title. Without --title an\n" +
			"interactive form is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(draft.Title) == "" {
				if !a.interactive() {
					return fmt.Errorf("--title is required when not running in a terminal")
				}
				if err := reminderForm(&draft).Run(); err != nil {
					return err
				}
			}

			saved, err := a.Reminders.Save(commandContext(cmd), &domain.Reminder{
				UserID: userID,
				Title:  draft.Title,
				Date:   draft.Date,
				Time:   draft.Time,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReminderSaved(saved))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&draft.Title, "title", "", "What to be reminded about")
	cmd.Flags().StringVar(&draft.Date, "date", "", "Date (YYYY-MM-DD or phrases like \"tomorrow\")")
	cmd.Flags().StringVar(&draft.Time, "time", "", "Time (e.g. 9am, 21:30, evening)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newReminderDeleteCmd(a *App) *cobra.Command {
	var userID string
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a reminder",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && a.interactive() {
				confirmed := false
				if err := confirmForm(fmt.Sprintf("Delete reminder %s?", args[0]), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := a.Reminders.Delete(commandContext(cmd), args[0], userID); err != nil {
				return fmt.Errorf("deleting reminder %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted reminder %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
