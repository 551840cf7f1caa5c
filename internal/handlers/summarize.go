package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"podsum-backend/internal/models"
	"podsum-backend/internal/services"
	"podsum-backend/internal/store"
)

type transcriptFetcher interface {
	GetTranscript(ctx context.Context, videoID string) (*models.Transcript, error)
}

type modelClient interface {
	SummarizeTranscript(ctx context.Context, transcript string, meta models.VideoMetadata) (string, error)
	ChatAboutContent(ctx context.Context, transcript string, history []models.ChatMessage, question, videoID string) (string, error)
}

type SummarizeHandler struct {
	youtube transcriptFetcher
	model   modelClient
	store   store.SessionStore
}

func NewSummarizeHandler(youtube transcriptFetcher, model modelClient, sessionStore store.SessionStore) *SummarizeHandler {
	return &SummarizeHandler{
		youtube: youtube,
		model:   model,
		store:   sessionStore,
	}
}

// Summarize runs the full pipeline: URL → video id → transcript →
// summary → new session.
func (h *SummarizeHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.YouTubeURL) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "YouTube URL is required", r))
		return
	}

	videoID, ok := services.ExtractVideoID(req.YouTubeURL)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid YouTube URL", r))
		return
	}

	transcript, err := h.youtube.GetTranscript(r.Context(), videoID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	summary, err := h.model.SummarizeTranscript(r.Context(), transcript.Text, transcript.Metadata)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	session, err := h.store.Create(r.Context(), transcript.Text, summary, transcript.Metadata)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SummarizeResponse{
		SessionID:     session.ID.String(),
		Summary:       summary,
		VideoMetadata: transcript.Metadata,
	})
}
