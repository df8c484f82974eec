package memory

import (
	"context"
	"time"
)

// Message is a single conversation turn in a session.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// PendingClarification parks a request that triggered a follow-up question.
// The dialogue supports exactly one clarification round: the next message for
// the session is interpreted together with the parked text, then the slot is
// cleared.
type PendingClarification struct {
	Raw      string    `json:"raw"`
	Question string    `json:"question"`
	AskedAt  time.Time `json:"asked_at"`
}

// SessionData is everything stored for one conversation session.
type SessionData struct {
	SessionID string                `json:"session_id"`
	Messages  []Message             `json:"messages"`
	Pending   *PendingClarification `json:"pending,omitempty"`
	Metadata  Metadata              `json:"metadata"`
}

// Metadata tracks session activity.
type Metadata struct {
	StartedAt    time.Time `json:"started_at"`
	LastActivity time.Time `json:"last_activity"`
	MessageCount int       `json:"message_count"`
}

// Store is the session storage contract, swappable between Redis and
// in-memory backends.
type Store interface {
	// LoadSession loads a session, returning an empty one when absent.
	LoadSession(ctx context.Context, sessionID string) (*SessionData, error)

	// SaveMessage appends a message to a session.
	SaveMessage(ctx context.Context, sessionID string, msg Message) error

	// SetPending parks a clarification round for the session.
	SetPending(ctx context.Context, sessionID string, pending *PendingClarification) error

	// TakePending returns and clears the parked clarification, if any.
	TakePending(ctx context.Context, sessionID string) (*PendingClarification, error)

	// ClearSession removes a session from storage.
	ClearSession(ctx context.Context, sessionID string) error
}
