package domain

import "time"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry in a user's conversation history.
type Turn struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// QueryEvent is the analytics event published after each pipeline run.
type QueryEvent struct {
	School       string    `json:"school"`
	Success      bool      `json:"success"`
	DocumentUsed string    `json:"document_used,omitempty"`
	PagesCount   int       `json:"pages_count"`
	DurationMS   int64     `json:"duration_ms"`
	At           time.Time `json:"at"`
}
