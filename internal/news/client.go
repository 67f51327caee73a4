package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Source names where an article came from.
type Source struct {
	Name string `json:"name"`
}

// Article is a news item in the shape the frontend renders.
type Article struct {
	ID          json.RawMessage `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	URLToImage  string          `json:"urlToImage"`
	Source      Source          `json:"source"`
	PublishedAt string          `json:"publishedAt"`
	Category    string          `json:"category"`
}

type SearchResult struct {
	Articles []Article
	Total    int
}

// CacheObserver is told about every cache lookup.
type CacheObserver interface {
	ObserveNewsCache(hit bool)
}

// Client searches the World News API and caches results per query text.
type Client struct {
	cfg      Config
	http     *http.Client
	cache    *expirable.LRU[string, *SearchResult]
	observer CacheObserver
	logger   *log.Logger
}

func NewClient(cfg Config, observer CacheObserver, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	c := &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		observer: observer,
		logger:   logger.With("component", "news"),
	}
	if cfg.CacheSize > 0 && cfg.CacheTTL > 0 {
		c.cache = expirable.NewLRU[string, *SearchResult](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return c
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// Search returns English articles matching text.
func (c *Client) Search(ctx context.Context, text string) (*SearchResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	key := strings.ToLower(text)
	if c.cache != nil {
		if res, ok := c.cache.Get(key); ok {
			c.observe(true)
			return res, nil
		}
		c.observe(false)
	}

	res, err := c.fetch(ctx, text)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Add(key, res)
	}
	return res, nil
}

func (c *Client) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveNewsCache(hit)
	}
}

// upstreamArticle is one entry of the API's "news" array.
type upstreamArticle struct {
	ID            json.RawMessage `json:"id"`
	Title         string          `json:"title"`
	Summary       string          `json:"summary"`
	Text          string          `json:"text"`
	URL           string          `json:"url"`
	Image         string          `json:"image"`
	SourceCountry string          `json:"source_country"`
	PublishDate   string          `json:"publish_date"`
	Category      string          `json:"category"`
}

func (c *Client) fetch(ctx context.Context, text string) (*SearchResult, error) {
	q := url.Values{}
	q.Set("api-key", c.cfg.APIKey)
	q.Set("text", text)
	q.Set("language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/search-news?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating news request: %w", err)
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("news search failed", "status", resp.StatusCode)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var payload struct {
		News *[]upstreamArticle `json:"news"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.News == nil {
		return nil, ErrInvalidResponse
	}

	articles := make([]Article, 0, len(*payload.News))
	for _, a := range *payload.News {
		desc := a.Summary
		if desc == "" {
			desc = a.Text
		}
		articles = append(articles, Article{
			ID:          a.ID,
			Title:       a.Title,
			Description: desc,
			URL:         a.URL,
			URLToImage:  a.Image,
			Source:      Source{Name: a.SourceCountry},
			PublishedAt: a.PublishDate,
			Category:    a.Category,
		})
	}
	return &SearchResult{Articles: articles, Total: len(articles)}, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var uerr *url.Error
	return errors.As(err, &uerr) && uerr.Timeout()
}
