package app

import (
	"context"

	"github.com/tanish-jain-225/SilverCare-AI/internal/intelligence"
	"github.com/tanish-jain-225/SilverCare-AI/internal/news"
)

// MessageUseCase answers one chat message.
type MessageUseCase interface {
	HandleMessage(ctx context.Context, req intelligence.MessageRequest) (*intelligence.MessageResult, error)
}

// NewsUseCase searches news articles.
type NewsUseCase interface {
	Search(ctx context.Context, text string) (*news.SearchResult, error)
}
