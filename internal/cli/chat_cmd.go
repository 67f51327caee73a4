package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tanish-jain-225/SilverCare-AI/internal/domain"
)

func newChatCmd(a *App) *cobra.Command {
	var userID, sessionID string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive chat with the assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Assistant == nil {
				return assistantDisabledError()
			}
			if !a.interactive() {
				return fmt.Errorf("chat needs an interactive terminal; use `silvercare ask` instead")
			}

			ctx := commandContext(cmd)
			var history []domain.ChatMessage
			if sessionID != "" {
				snap, err := a.Sessions.Load(ctx, userID)
				if err != nil {
					return err
				}
				found := false
				for _, s := range snap.Sessions {
					if s.ID == sessionID {
						history, found = s.Messages, true
						break
					}
				}
				if !found {
					return fmt.Errorf("chat session %s not found for user %s", sessionID, userID)
				}
			}

			model := newChatModel(ctx, a.Assistant, a.Sessions, userID, sessionID, history).withRecall(chatHistoryPath())
			model.verbose = verbose
			_, err := tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID to chat as")
	cmd.Flags().StringVar(&sessionID, "session", "", "Continue and save into this chat session")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show classifier verdicts")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
