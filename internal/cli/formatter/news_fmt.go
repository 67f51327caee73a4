package formatter

import (
	"fmt"
	"strings"

	"github.com/tanish-jain-225/SilverCare-AI/internal/news"
)

// FormatArticles renders search results as a numbered list.
func FormatArticles(query string, res *news.SearchResult) string {
	if res == nil || len(res.Articles) == 0 {
		return Dim(fmt.Sprintf("No articles found for %q.", query)) + "\n"
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("News: %s", query)))
	b.WriteString("\n")
	for i, a := range res.Articles {
		fmt.Fprintf(&b, "%s %s\n", StyleHeader.Render(fmt.Sprintf("%2d.", i+1)), Bold(a.Title))
		var meta []string
		if a.Source.Name != "" {
			meta = append(meta, strings.ToUpper(a.Source.Name))
		}
		if a.PublishedAt != "" {
			meta = append(meta, a.PublishedAt)
		}
		if len(meta) > 0 {
			fmt.Fprintf(&b, "    %s\n", Dim(strings.Join(meta, " · ")))
		}
		if a.Description != "" {
			fmt.Fprintf(&b, "    %s\n", Truncate(strings.TrimSpace(a.Description), 160))
		}
		if a.URL != "" {
			fmt.Fprintf(&b, "    %s\n", StyleBlue.Render(a.URL))
		}
	}
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%d article(s)", res.Total)))
	return b.String()
}
