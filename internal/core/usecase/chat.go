package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/unp-digital/sciencebot/internal/core/domain"
	"github.com/unp-digital/sciencebot/internal/core/ports"
)

const fallbackReply = "Sorry, something went wrong. Please try again later."

var errEmptyMessage = errors.New("message is empty")

// ChatUseCase wraps the search pipeline with per-user conversation history
// bookkeeping. The pipeline itself stays single-query.
type ChatUseCase struct {
	search   ports.DocumentSearchService
	history  ports.ConversationHistory
	maxPages int
}

func NewChatUseCase(search ports.DocumentSearchService, history ports.ConversationHistory, maxPages int) *ChatUseCase {
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return &ChatUseCase{
		search:   search,
		history:  history,
		maxPages: maxPages,
	}
}

func (uc *ChatUseCase) ProcessMessage(ctx context.Context, userID, message string, school domain.School) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "process message", errEmptyMessage)
	}

	uc.history.Append(userID, domain.Turn{
		Role:    domain.RoleUser,
		Content: message,
		At:      time.Now().UTC(),
	})

	result := uc.search.SearchAndAnswer(ctx, message, school, uc.maxPages)
	reply := result.Message
	if reply == "" {
		reply = fallbackReply
	}

	uc.history.Append(userID, domain.Turn{
		Role:    domain.RoleAssistant,
		Content: reply,
		At:      time.Now().UTC(),
	})
	return reply, nil
}
