package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"

	"podsum-backend/internal/models"
)

// Ordered URL patterns. Mutually exclusive by construction, so the order
// only matters in theory; each captures the raw video identifier without
// validating it (existence checks are left to the retrieval step).
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/v/([^&\n?#]+)`),
}

// ExtractVideoID pulls the video identifier out of a YouTube URL. The
// second return value is false when no pattern matches.
func ExtractVideoID(rawURL string) (string, bool) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); len(m) > 1 {
			return m[1], true
		}
	}
	return "", false
}

// transcriptSource delivers the timed caption entries for a video, in
// source order.
type transcriptSource interface {
	Fetch(ctx context.Context, videoID string) ([]models.TranscriptSegment, error)
}

type YouTubeService struct {
	source transcriptSource
}

// NewYouTubeService builds the transcript retriever. With residential
// proxy credentials configured, retrieval goes through the timedtext
// endpoint over an authenticated proxy (datacenter IPs get blocked);
// otherwise the transcript API is called directly. Single attempt either
// way: no retry, no backoff, no caching.
func NewYouTubeService(proxyUsername, proxyPassword string) *YouTubeService {
	var source transcriptSource
	if proxyUsername != "" && proxyPassword != "" {
		source = newTimedTextSource(proxyUsername, proxyPassword)
	} else {
		source = &apiSource{api: ytapi.NewYouTubeTranscriptApi()}
	}
	return &YouTubeService{source: source}
}

// GetTranscript fetches the captions for a video and flattens them into a
// single text blob plus metadata.
func (s *YouTubeService) GetTranscript(ctx context.Context, videoID string) (*models.Transcript, error) {
	segments, err := s.source.Fetch(ctx, videoID)
	if err != nil {
		return nil, classifyTranscriptErr(err)
	}
	return buildTranscript(videoID, segments), nil
}

// buildTranscript joins segment texts with single spaces, trusting the
// source-provided order (no defensive re-sort). Duration is the last
// segment's start plus its duration, 0 when there are no segments.
func buildTranscript(videoID string, segments []models.TranscriptSegment) *models.Transcript {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}

	var duration float64
	if len(segments) > 0 {
		last := segments[len(segments)-1]
		duration = last.Start + last.Duration
	}

	return &models.Transcript{
		Text: strings.Join(texts, " "),
		Metadata: models.VideoMetadata{
			VideoID:         videoID,
			DurationSeconds: duration,
			SegmentCount:    len(segments),
		},
	}
}

// classifyTranscriptErr maps source failures onto the reported reason
// strings. Everything unrecognized surfaces with the underlying message.
func classifyTranscriptErr(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "disabled"):
		return &UpstreamError{Message: "Transcripts are disabled for this video"}
	case strings.Contains(msg, "no transcript"),
		strings.Contains(msg, "transcript not found"),
		strings.Contains(msg, "no captions"):
		return &UpstreamError{Message: "No transcript available"}
	default:
		return &UpstreamError{Message: fmt.Sprintf("Error fetching transcript: %v", err)}
	}
}

// apiSource fetches captions through the transcript API library.
type apiSource struct {
	api *ytapi.YouTubeTranscriptApi
}

func (s *apiSource) Fetch(_ context.Context, videoID string) ([]models.TranscriptSegment, error) {
	// nil languages = any available language
	transcript, err := s.api.GetTranscript(videoID, nil)
	if err != nil {
		return nil, err
	}

	segments := make([]models.TranscriptSegment, 0, len(transcript.Entries))
	for _, entry := range transcript.Entries {
		segments = append(segments, models.TranscriptSegment{
			Text:     entry.Text,
			Start:    entry.Start,
			Duration: entry.Duration,
		})
	}
	return segments, nil
}

// timedTextSource scrapes the watch page for the caption track URL and
// fetches the timedtext XML, all through an authenticated proxy.
type timedTextSource struct {
	client *http.Client
}

func newTimedTextSource(username, password string) *timedTextSource {
	// Webshare-style rotating residential pool
	proxyURL := &url.URL{
		Scheme: "http",
		Host:   "p.webshare.io:80",
		User:   url.UserPassword(username+"-rotate", password),
	}
	return &timedTextSource{
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
		},
	}
}

func (s *timedTextSource) Fetch(ctx context.Context, videoID string) ([]models.TranscriptSegment, error) {
	pageURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch YouTube page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read YouTube page: %w", err)
	}

	captionURL, err := extractCaptionURL(string(body))
	if err != nil {
		return nil, err
	}

	captionReq, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return nil, err
	}

	captionResp, err := s.client.Do(captionReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch captions: %w", err)
	}
	defer captionResp.Body.Close()

	captionBody, err := io.ReadAll(captionResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read captions: %w", err)
	}

	segments, err := parseCaptionsXML(captionBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse captions XML: %w", err)
	}

	return segments, nil
}

type timedTextXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

func extractCaptionURL(pageHTML string) (string, error) {
	re := regexp.MustCompile(`"captionTracks"\s*:\s*\[(.*?)\],\s*"`)
	matches := re.FindStringSubmatch(pageHTML)
	if len(matches) < 2 {
		return "", fmt.Errorf("no captions available for this video")
	}

	reURL := regexp.MustCompile(`"baseUrl"\s*:\s*"(.*?)"`)
	urlMatches := reURL.FindStringSubmatch(matches[1])
	if len(urlMatches) < 2 {
		return "", fmt.Errorf("caption track found but baseUrl missing")
	}

	u := urlMatches[1]
	u = strings.ReplaceAll(u, `\u0026`, "&")
	u = strings.ReplaceAll(u, `\/`, "/")

	return u, nil
}

func parseCaptionsXML(data []byte) ([]models.TranscriptSegment, error) {
	var tt timedTextXML
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, err
	}

	segments := make([]models.TranscriptSegment, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		start, _ := strconv.ParseFloat(t.Start, 64)
		dur, _ := strconv.ParseFloat(t.Dur, 64)
		segments = append(segments, models.TranscriptSegment{
			Text:     html.UnescapeString(t.Text),
			Start:    start,
			Duration: dur,
		})
	}

	return segments, nil
}
