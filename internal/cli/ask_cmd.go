package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tanish-jain-225/SilverCare-AI/internal/app"
	"github.com/tanish-jain-225/SilverCare-AI/internal/cli/formatter"
	"github.com/tanish-jain-225/SilverCare-AI/internal/intelligence"
	"github.com/tanish-jain-225/SilverCare-AI/internal/llm"
)

func newAskCmd(a *App) *cobra.Command {
	var userID, sessionID string
	var verbose bool

	cmd := &cobra.Command{
		Use:   `ask "<message>"`,
		Short: "Send one message to the assistant",
		Long: "Send one message to the assistant. Reminder requests are saved for the user;\n" +
			"everything else gets a conversational reply.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Assistant == nil {
				return assistantDisabledError()
			}

			stop := func() {}
			if a.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
			}
			res, err := a.Assistant.HandleMessage(commandContext(cmd), intelligence.MessageRequest{
				Message:   args[0],
				UserID:    userID,
				SessionID: sessionID,
			})
			stop()
			if err != nil {
				return askError(err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAssistantReply(res, verbose))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID the message belongs to")
	cmd.Flags().StringVar(&sessionID, "session", "", "Chat session ID for context")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show classifier verdicts")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func assistantDisabledError() error {
	return fmt.Errorf("%w\n  set SILVERCARE_LLM_API_KEY (or TOGETHER_API_KEY) to enable chat", app.ErrAssistantUnavailable)
}

func askError(err error) error {
	if errors.Is(err, llm.ErrTimeout) {
		return fmt.Errorf("assistant timed out: %w (raise SILVERCARE_LLM_CHAT_TIMEOUT_MS, e.g. 60000)", err)
	}
	return fmt.Errorf("assistant failed: %w", err)
}
