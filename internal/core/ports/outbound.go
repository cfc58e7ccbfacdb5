package ports

import (
	"context"

	"github.com/unp-digital/sciencebot/internal/core/domain"
)

// DocumentCatalog reads document metadata by school tag. An empty result is
// a legitimate "nothing available" signal, not an error.
type DocumentCatalog interface {
	ListBySchool(ctx context.Context, school domain.School) ([]domain.DocumentInfo, error)
}

// Embedder converts query text to a fixed-length vector.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// ChatCompleter issues one chat completion with a system instruction and a
// single user turn. No conversation state is carried between calls.
type ChatCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// PageIndex performs approximate nearest-neighbor search over page
// embeddings, filtered by owning-document name.
type PageIndex interface {
	SearchPages(ctx context.Context, vector []float32, documentName string, limit int) ([]domain.PageMatch, error)
}

// EventPublisher emits pipeline analytics events, best-effort.
type EventPublisher interface {
	PublishQueryCompleted(ctx context.Context, event domain.QueryEvent) error
}

// SearchObserver receives pipeline internals for instrumentation.
type SearchObserver interface {
	ObserveCandidateAttempt(meanScore float64)
	ObserveFallbackWin()
}

// ConversationHistory keeps a capped per-user turn sequence.
type ConversationHistory interface {
	Append(userID string, turn domain.Turn)
	Recent(userID string) []domain.Turn
}
