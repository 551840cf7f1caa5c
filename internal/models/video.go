package models

// VideoMetadata is computed once per transcript fetch and echoed back in
// both the session and the summarize response.
type VideoMetadata struct {
	VideoID         string  `json:"video_id"`
	DurationSeconds float64 `json:"duration_seconds"`
	SegmentCount    int     `json:"segment_count"`
}

// TranscriptSegment is a single timed caption entry as delivered by the
// transcript source. Segments are consumed to build the full text and the
// metadata; they are not retained afterwards.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is the retriever's result: the concatenated spoken text plus
// the derived metadata.
type Transcript struct {
	Text     string
	Metadata VideoMetadata
}
