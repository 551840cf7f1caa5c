package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"podsum-backend/internal/models"
	"podsum-backend/internal/services"
	"podsum-backend/internal/store"
)

// ─── Fakes ───

type fakeFetcher struct {
	transcript *models.Transcript
	err        error
	gotVideoID string
}

func (f *fakeFetcher) GetTranscript(_ context.Context, videoID string) (*models.Transcript, error) {
	f.gotVideoID = videoID
	if f.err != nil {
		return nil, f.err
	}
	return f.transcript, nil
}

type fakeModel struct {
	summary string
	reply   string
	err     error

	summarizeCalls    int
	gotSummaryText    string
	gotChatTranscript string
	gotHistory        []models.ChatMessage
	gotQuestion       string
}

func (f *fakeModel) SummarizeTranscript(_ context.Context, transcript string, _ models.VideoMetadata) (string, error) {
	f.summarizeCalls++
	f.gotSummaryText = transcript
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

func (f *fakeModel) ChatAboutContent(_ context.Context, transcript string, history []models.ChatMessage, question, _ string) (string, error) {
	f.gotChatTranscript = transcript
	f.gotHistory = append([]models.ChatMessage(nil), history...)
	f.gotQuestion = question
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type spyStore struct {
	store.SessionStore
	createCalls int
}

func (s *spyStore) Create(ctx context.Context, transcript, summary string, meta models.VideoMetadata) (*models.Session, error) {
	s.createCalls++
	return s.SessionStore.Create(ctx, transcript, summary, meta)
}

func newTestStore(t *testing.T) *spyStore {
	t.Helper()
	mem := store.NewMemoryStore(time.Hour, 100)
	t.Cleanup(func() { mem.Close() })
	return &spyStore{SessionStore: mem}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

// ─── Summarize Handler Tests ───

func TestSummarize_GoldenPath(t *testing.T) {
	fetcher := &fakeFetcher{transcript: &models.Transcript{
		Text: "Hello world",
		Metadata: models.VideoMetadata{
			VideoID:         "abc123",
			DurationSeconds: 5,
			SegmentCount:    2,
		},
	}}
	model := &fakeModel{summary: "A short summary."}
	sessions := newTestStore(t)
	h := NewSummarizeHandler(fetcher, model, sessions)

	rr := postJSON(t, h.Summarize, "/api/summarize", models.SummarizeRequest{
		YouTubeURL: "https://youtu.be/abc123",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if fetcher.gotVideoID != "abc123" {
		t.Errorf("Expected extracted video id 'abc123', got %q", fetcher.gotVideoID)
	}
	if model.gotSummaryText != "Hello world" {
		t.Errorf("Expected transcript text passed to model, got %q", model.gotSummaryText)
	}

	var resp models.SummarizeResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Summary != "A short summary." {
		t.Errorf("Expected summary echoed, got %q", resp.Summary)
	}
	want := models.VideoMetadata{VideoID: "abc123", DurationSeconds: 5, SegmentCount: 2}
	if resp.VideoMetadata != want {
		t.Errorf("Expected metadata %+v, got %+v", want, resp.VideoMetadata)
	}
	if resp.SessionID == "" {
		t.Fatal("Expected a session id")
	}

	session, err := sessions.Get(context.Background(), resp.SessionID)
	if err != nil {
		t.Fatalf("Expected session to be stored: %v", err)
	}
	if session.Transcript != "Hello world" || session.Summary != "A short summary." {
		t.Errorf("Session state wrong: %+v", session)
	}
}

func TestSummarize_InvalidURL(t *testing.T) {
	h := NewSummarizeHandler(&fakeFetcher{}, &fakeModel{}, newTestStore(t))

	rr := postJSON(t, h.Summarize, "/api/summarize", models.SummarizeRequest{
		YouTubeURL: "https://example.com/not-youtube",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Error.Message != "Invalid YouTube URL" {
		t.Errorf("Expected 'Invalid YouTube URL', got %q", resp.Error.Message)
	}
}

func TestSummarize_InvalidBody(t *testing.T) {
	h := NewSummarizeHandler(&fakeFetcher{}, &fakeModel{}, newTestStore(t))

	req := httptest.NewRequest(http.MethodPost, "/api/summarize", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	h.Summarize(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestSummarize_TranscriptsDisabled(t *testing.T) {
	fetcher := &fakeFetcher{err: &services.UpstreamError{Message: "Transcripts are disabled for this video"}}
	model := &fakeModel{}
	sessions := newTestStore(t)
	h := NewSummarizeHandler(fetcher, model, sessions)

	rr := postJSON(t, h.Summarize, "/api/summarize", models.SummarizeRequest{
		YouTubeURL: "https://youtu.be/abc123",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Error.Message != "Transcripts are disabled for this video" {
		t.Errorf("Expected disabled reason, got %q", resp.Error.Message)
	}
	if model.summarizeCalls != 0 {
		t.Error("Model must not be called when retrieval fails")
	}
	if sessions.createCalls != 0 {
		t.Error("No session may be created when retrieval fails")
	}
}

func TestSummarize_ModelFailure(t *testing.T) {
	fetcher := &fakeFetcher{transcript: &models.Transcript{Text: "t", Metadata: models.VideoMetadata{VideoID: "v"}}}
	model := &fakeModel{err: errors.New("gateway exploded")}
	sessions := newTestStore(t)
	h := NewSummarizeHandler(fetcher, model, sessions)

	rr := postJSON(t, h.Summarize, "/api/summarize", models.SummarizeRequest{
		YouTubeURL: "https://youtu.be/v",
	})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}
	if sessions.createCalls != 0 {
		t.Error("No session may be created when generation fails")
	}
}
