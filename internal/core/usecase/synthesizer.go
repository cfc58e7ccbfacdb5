package usecase

import (
	"context"
	"fmt"

	"github.com/unp-digital/sciencebot/internal/core/domain"
	"github.com/unp-digital/sciencebot/internal/core/ports"
)

// AnswerSynthesizer generates a grounded answer from the winning document's
// retrieved pages with a single chat-completion call.
type AnswerSynthesizer struct {
	chat ports.ChatCompleter
}

func NewAnswerSynthesizer(chat ports.ChatCompleter) *AnswerSynthesizer {
	return &AnswerSynthesizer{chat: chat}
}

// Generate returns the model answer plus the full list of supplied page
// numbers, which is not necessarily the set cited in the prose.
func (s *AnswerSynthesizer) Generate(ctx context.Context, query, documentName string, pages []domain.PageMatch) (domain.Synthesis, error) {
	answer, err := s.chat.Complete(ctx, answerSystemPrompt, buildAnswerUserPrompt(query, documentName, pages))
	if err != nil {
		return domain.Synthesis{}, fmt.Errorf("generate answer: %w", err)
	}

	referenced := make([]int, 0, len(pages))
	for _, page := range pages {
		referenced = append(referenced, page.Page)
	}

	return domain.Synthesis{
		Answer:          answer,
		DocumentUsed:    documentName,
		PagesReferenced: referenced,
	}, nil
}
