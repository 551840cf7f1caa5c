package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"podsum-backend/internal/models"
	"podsum-backend/internal/store"
)

type ChatHandler struct {
	model modelClient
	store store.SessionStore
}

func NewChatHandler(model modelClient, sessionStore store.SessionStore) *ChatHandler {
	return &ChatHandler{
		model: model,
		store: sessionStore,
	}
}

// Chat answers a follow-up question against a stored session and appends
// the new turn to its history.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Session ID is required", r))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Message is required", r))
		return
	}

	session, err := h.store.Get(r.Context(), req.SessionID)
	if err == store.ErrSessionNotFound {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found", r))
		return
	}
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	reply, err := h.model.ChatAboutContent(
		r.Context(),
		session.Transcript,
		session.ConversationHistory,
		req.Message,
		session.Metadata.VideoID,
	)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	err = h.store.AppendTurn(r.Context(), req.SessionID,
		models.ChatMessage{Role: models.RoleUser, Content: req.Message},
		models.ChatMessage{Role: models.RoleAssistant, Content: reply},
	)
	if err == store.ErrSessionNotFound {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found", r))
		return
	}
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}
