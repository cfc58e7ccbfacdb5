package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/unp-digital/sciencebot/internal/core/domain"
	"github.com/unp-digital/sciencebot/internal/core/ports"
)

const defaultRankTopK = 2

// DocumentRanker asks the chat model to order catalog entries by relevance
// to the query. One model call is made regardless of topK.
type DocumentRanker struct {
	chat ports.ChatCompleter
}

func NewDocumentRanker(chat ports.ChatCompleter) *DocumentRanker {
	return &DocumentRanker{chat: chat}
}

// Rank returns at most topK document names in descending relevance order.
// Returned names are deliberately not checked against the catalog: an
// unknown name yields zero matches downstream.
func (r *DocumentRanker) Rank(ctx context.Context, query string, documents []domain.DocumentInfo, topK int) ([]string, error) {
	if topK <= 0 {
		topK = defaultRankTopK
	}

	raw, err := r.chat.Complete(ctx, buildRankerSystemPrompt(topK), buildRankerUserPrompt(query, documents))
	if err != nil {
		return nil, fmt.Errorf("rank documents: %w", err)
	}

	names := make([]string, 0, topK)
	for _, line := range strings.Split(raw, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		names = append(names, name)
		if len(names) == topK {
			break
		}
	}
	return names, nil
}
