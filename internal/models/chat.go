package models

// Conversation roles. History entries only ever carry user or assistant;
// the system role exists for the transcript context message sent upstream.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// SummarizeRequest is the payload sent to the summarize endpoint.
type SummarizeRequest struct {
	YouTubeURL string `json:"youtube_url"`
}

// SummarizeResponse carries the generated summary and the session handle
// follow-up questions should be asked against.
type SummarizeResponse struct {
	SessionID     string        `json:"session_id"`
	Summary       string        `json:"summary"`
	VideoMetadata VideoMetadata `json:"video_metadata"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Response string `json:"response"`
}
