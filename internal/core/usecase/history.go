package usecase

import (
	"strings"
	"sync"

	"github.com/unp-digital/sciencebot/internal/core/domain"
)

const defaultHistoryMaxTurns = 20

// HistoryManager is a process-wide, mutex-guarded map from user id to a
// capped ordered turn sequence. When the cap is exceeded the oldest
// non-system entries are evicted so pinned system turns survive.
type HistoryManager struct {
	mu       sync.Mutex
	maxTurns int
	turns    map[string][]domain.Turn
}

func NewHistoryManager(maxTurns int) *HistoryManager {
	if maxTurns <= 0 {
		maxTurns = defaultHistoryMaxTurns
	}
	return &HistoryManager{
		maxTurns: maxTurns,
		turns:    make(map[string][]domain.Turn),
	}
}

func (h *HistoryManager) Append(userID string, turn domain.Turn) {
	userID = strings.TrimSpace(userID)
	if userID == "" || turn.Content == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	turns := append(h.turns[userID], turn)
	for len(turns) > h.maxTurns {
		evicted := false
		for i, t := range turns {
			if t.Role != domain.RoleSystem {
				turns = append(turns[:i], turns[i+1:]...)
				evicted = true
				break
			}
		}
		if !evicted {
			break
		}
	}
	h.turns[userID] = turns
}

// Recent returns a copy of the user's history, oldest first.
func (h *HistoryManager) Recent(userID string) []domain.Turn {
	h.mu.Lock()
	defer h.mu.Unlock()

	turns := h.turns[userID]
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out
}
