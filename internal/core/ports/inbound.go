package ports

import (
	"context"

	"github.com/unp-digital/sciencebot/internal/core/domain"
)

// DocumentSearchService is the inbound contract for the full
// catalog -> rank -> page search -> synthesis pipeline.
type DocumentSearchService interface {
	SearchAndAnswer(ctx context.Context, query string, school domain.School, maxPages int) domain.PipelineResult
}

// ChatService is the inbound contract for the history-aware wrapper around
// the search pipeline.
type ChatService interface {
	ProcessMessage(ctx context.Context, userID, message string, school domain.School) (string, error)
}
