package usecase

import (
	"context"
	"fmt"

	"github.com/unp-digital/sciencebot/internal/core/domain"
	"github.com/unp-digital/sciencebot/internal/core/ports"
)

const defaultPageLimit = 10

// PageSearchEngine runs embedding-based similarity search scoped to one
// document. The orchestrator embeds the query once per run and reuses the
// vector across candidate documents.
type PageSearchEngine struct {
	embedder ports.Embedder
	index    ports.PageIndex
}

func NewPageSearchEngine(embedder ports.Embedder, index ports.PageIndex) *PageSearchEngine {
	return &PageSearchEngine{embedder: embedder, index: index}
}

func (e *PageSearchEngine) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vector, err := e.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return vector, nil
}

func (e *PageSearchEngine) SearchPages(ctx context.Context, vector []float32, documentName string, limit int) ([]domain.PageMatch, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	matches, err := e.index.SearchPages(ctx, vector, documentName, limit)
	if err != nil {
		return nil, fmt.Errorf("search pages in %q: %w", documentName, err)
	}
	return matches, nil
}

// Search composes EmbedQuery and SearchPages for callers outside the
// orchestrator loop.
func (e *PageSearchEngine) Search(ctx context.Context, query, documentName string, limit int) ([]domain.PageMatch, error) {
	vector, err := e.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return e.SearchPages(ctx, vector, documentName, limit)
}
