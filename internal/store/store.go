// Package store holds conversation sessions keyed by generated UUIDs.
// Two backends exist: a bounded in-memory map (default) and Redis for
// persistence across restarts.
package store

import (
	"context"
	"errors"

	"podsum-backend/internal/models"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore is the session lifecycle contract. AppendTurn must be
// atomic per session: concurrent appends to the same id may interleave in
// either order but never lose an update.
type SessionStore interface {
	// Create registers a new session and returns it with a generated id.
	Create(ctx context.Context, transcript, summary string, meta models.VideoMetadata) (*models.Session, error)

	// Get returns a copy of the session, or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*models.Session, error)

	// AppendTurn appends a user/assistant pair to the conversation
	// history, or returns ErrSessionNotFound.
	AppendTurn(ctx context.Context, id string, userMsg, assistantMsg models.ChatMessage) error

	Close() error
}
