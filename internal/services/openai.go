package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"podsum-backend/internal/models"
)

// Output caps per task. Summaries get the larger budget.
const (
	summaryMaxTokens = 2048
	chatMaxTokens    = 1024
)

// OpenAIService talks to the model gateway over the OpenAI
// chat-completions protocol. Both operations are synchronous single-shot
// calls; upstream errors propagate unmodified to the caller.
type OpenAIService struct {
	client   *openai.Client
	model    string
	rateChan chan struct{} // Token bucket
}

func NewOpenAIService(apiKey, baseURL, model string, concurrentReqs int) *OpenAIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &OpenAIService{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		rateChan: rateChan,
	}
}

// acquireRate blocks until a rate slot is available
func (s *OpenAIService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for model rate slot")
	}
}

func (s *OpenAIService) releaseRate() {
	s.rateChan <- struct{}{}
}

// SummarizeTranscript generates the one-shot summary for a transcript.
// The metadata bag rides along for gateway-side observability only.
func (s *OpenAIService) SummarizeTranscript(ctx context.Context, transcript string, meta models.VideoMetadata) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: summaryMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildSummaryPrompt(transcript, meta)},
		},
		Metadata: map[string]string{
			"task":             "summary",
			"video_id":         meta.VideoID,
			"duration_seconds": strconv.FormatFloat(meta.DurationSeconds, 'f', -1, 64),
			"segment_count":    strconv.Itoa(meta.SegmentCount),
		},
	})
	if err != nil {
		return "", err
	}

	return extractText(resp)
}

// ChatAboutContent answers a follow-up question grounded in the stored
// transcript, replaying the prior history verbatim.
func (s *OpenAIService) ChatAboutContent(ctx context.Context, transcript string, history []models.ChatMessage, question, videoID string) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: chatMaxTokens,
		Messages:  BuildChatMessages(transcript, history, question),
		Metadata: map[string]string{
			"task":          "chat",
			"video_id":      videoID,
			"message_count": strconv.Itoa(len(history) + 1),
		},
	})
	if err != nil {
		return "", err
	}

	return extractText(resp)
}

// BuildSummaryPrompt renders the summarization prompt: the whole-minute
// duration, the fixed section template with its length constraints, and
// the full transcript. Pure function, unit-testable without network.
func BuildSummaryPrompt(transcript string, meta models.VideoMetadata) string {
	durationMinutes := int(meta.DurationSeconds / 60)

	return fmt.Sprintf(`Summarize this %d-minute YouTube video transcript.

Provide:
- **Main Topic** (1-2 sentences)
- **Key Points** (5-7 bullet points, each 1-2 sentences)
- **Notable Quotes** (2-3 direct quotes worth remembering; skip this section if none stand out)
- **Takeaways** (2-3 actionable insights or conclusions)

Keep the total summary under 400 words.

If the transcript is unclear, incomplete, or appears to be auto-generated with errors, note this briefly and summarize what you can confidently extract.

Transcript:
%s`, durationMinutes, transcript)
}

// BuildChatMessages renders the multi-turn message list: a system message
// carrying the full transcript, the prior history in original role and
// order, then the new question. Pure function.
func BuildChatMessages(transcript string, history []models.ChatMessage, question string) []openai.ChatCompletionMessage {
	systemPrompt := fmt.Sprintf(`You are a helpful assistant that answers questions about a YouTube video.

Here is the full transcript:
%s

Answer questions accurately based on the content. If something isn't covered in the video, say so.`, transcript)

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})

	return messages
}

// extractText returns the generated text verbatim, no parsing or
// validation of the requested structure.
func extractText(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
