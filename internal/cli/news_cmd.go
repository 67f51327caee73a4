package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tanish-jain-225/SilverCare-AI/internal/cli/formatter"
	"github.com/tanish-jain-225/SilverCare-AI/internal/news"
)

func newNewsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "news [text...]",
		Short: "Search recent English news (default: latest news)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.News == nil {
				return news.ErrNotConfigured
			}
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				text = news.DefaultQuery
			}
			res, err := a.News.Search(commandContext(cmd), text)
			if err != nil {
				if errors.Is(err, news.ErrNotConfigured) {
					return fmt.Errorf("%w: set WORLD_NEWS_API_KEY1", err)
				}
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatArticles(text, res))
			return nil
		},
	}
}
