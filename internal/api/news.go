package api

import (
	"net/http"

	"github.com/tanish-jain-225/SilverCare-AI/internal/news"
)

// fetchNewsHandler reads text from the query string on GET and from the
// JSON body on POST, defaulting to the latest headlines.
func (s *Server) fetchNewsHandler(w http.ResponseWriter, r *http.Request) {
	text := news.DefaultQuery
	if r.Method == http.MethodPost {
		var req struct {
			Text *string `json:"text"`
		}
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if req.Text != nil {
			text = *req.Text
		}
	} else if q := r.URL.Query(); q.Has("text") {
		text = q.Get("text")
	}

	if s.opts.News == nil {
		s.writeError(w, r, news.ErrNotConfigured)
		return
	}
	res, err := s.opts.News.Search(r.Context(), text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	articles := res.Articles
	if articles == nil {
		articles = []news.Article{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"articles": articles,
		"total":    res.Total,
	})
}
