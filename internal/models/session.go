package models

import (
	"time"

	"github.com/google/uuid"
)

// Session ties a generated identifier to one video's transcript, summary
// and chat history. The history is replayed verbatim as conversational
// context on every subsequent chat call.
type Session struct {
	ID                  uuid.UUID     `json:"id"`
	Transcript          string        `json:"transcript"`
	Summary             string        `json:"summary"`
	Metadata            VideoMetadata `json:"metadata"`
	ConversationHistory []ChatMessage `json:"conversation_history"`
	CreatedAt           time.Time     `json:"created_at"`
}
