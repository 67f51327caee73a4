package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tanish-jain-225/SilverCare-AI/internal/cli/formatter"
)

func newSessionCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "Manage chat sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(a),
		newSessionCreateCmd(a),
		newSessionDeleteCmd(a),
	)

	return cmd
}

func newSessionListCmd(a *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's chat sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.Sessions.Load(commandContext(cmd), userID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionList(snap.Sessions, a.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newSessionCreateCmd(a *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty chat session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Sessions.Create(commandContext(cmd), userID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created session %s (%s)\n", formatter.Bold(s.Name), s.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newSessionDeleteCmd(a *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a chat session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remaining, err := a.Sessions.Delete(commandContext(cmd), args[0], userID)
			if err != nil {
				return fmt.Errorf("deleting session %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deleted session %s\n", args[0])
			fmt.Fprint(out, formatter.FormatSessionList(remaining, a.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
