package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/tanish-jain-225/SilverCare-AI/internal/app"
	"github.com/tanish-jain-225/SilverCare-AI/internal/service"
)

// App holds the services the CLI commands call.
type App struct {
	Reminders service.ReminderService
	Sessions  service.ChatSessionService
	News      app.NewsUseCase

	// Assistant answers chat messages. Nil when no LLM key is configured.
	Assistant app.MessageUseCase

	// Serve runs the HTTP API until ctx is cancelled.
	Serve func(ctx context.Context, addr string) error

	// IsInteractive reports whether stdin is a terminal; forms and the chat
	// shell are only offered when it is.
	IsInteractive func() bool

	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "silvercare" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "silvercare",
		Short:         "SilverCare assistant: chat, reminders and news for older adults",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(a),
		newAskCmd(a),
		newChatCmd(a),
		newReminderCmd(a),
		newSessionCmd(a),
		newNewsCmd(a),
		newNormalizeCmd(a),
	)

	return root
}
