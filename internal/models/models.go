package models

import (
	"fmt"
	"time"
)

// Platform identifies the social network a post came from.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
)

// Valid reports whether the platform is one of the supported networks.
func (p Platform) Valid() bool {
	switch p {
	case PlatformTwitter, PlatformInstagram, PlatformLinkedIn:
		return true
	}
	return false
}

func (p Platform) String() string {
	return string(p)
}

// MaxContentLength is the hard cap on a single document, in characters.
const MaxContentLength = 50_000

// AnalyzeRequest is the inbound analysis payload.
type AnalyzeRequest struct {
	Content  string   `json:"content"`
	Platform Platform `json:"platform"`
	PostID   string   `json:"post_id,omitempty"`
	Author   string   `json:"author,omitempty"`
}

// Validate enforces the request contract before any analysis work begins.
func (r *AnalyzeRequest) Validate() error {
	if !r.Platform.Valid() {
		return fmt.Errorf("unknown platform %q", r.Platform)
	}
	return nil
}

// Breakdown carries the per-judge evidence behind a combined score.
type Breakdown struct {
	LlmScore       *int     `json:"llm_score,omitempty"`
	HeuristicScore int      `json:"heuristic_score"`
	Signals        []string `json:"signals"`
}

// AnalyzeResponse is the outbound analysis result.
type AnalyzeResponse struct {
	Score      int       `json:"score"`
	Confidence float64   `json:"confidence"`
	Label      string    `json:"label"`
	Breakdown  Breakdown `json:"breakdown"`
}

// AnalysisRecord is the persisted unit, created once per unique fingerprint
// and never mutated.
type AnalysisRecord struct {
	ID             string    `json:"id"`
	ContentHash    string    `json:"content_hash"`
	Platform       string    `json:"platform"`
	PostID         string    `json:"post_id,omitempty"`
	Author         string    `json:"author,omitempty"`
	Score          int       `json:"score"`
	Confidence     float64   `json:"confidence"`
	Label          string    `json:"label"`
	LlmScore       *int      `json:"llm_score,omitempty"`
	HeuristicScore int       `json:"heuristic_score"`
	Signals        string    `json:"signals"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistoryItem is one row of the history view, with a truncated content
// preview instead of the full document.
type HistoryItem struct {
	ID             string    `json:"id"`
	ContentPreview string    `json:"content_preview"`
	Platform       string    `json:"platform"`
	PostID         string    `json:"post_id,omitempty"`
	Author         string    `json:"author,omitempty"`
	Score          int       `json:"score"`
	Confidence     float64   `json:"confidence"`
	Label          string    `json:"label"`
	LlmScore       *int      `json:"llm_score,omitempty"`
	HeuristicScore int       `json:"heuristic_score"`
	Signals        string    `json:"signals"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistoryResponse is the paginated history payload.
type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
	Total int64         `json:"total"`
}

// ScoreToLabel buckets a combined 0-10 score into a coarse label. Without
// an LLM second opinion the 4-5 band is genuinely indeterminate, so it is
// relabeled from "mixed" to "uncertain".
func ScoreToLabel(score int, heuristicsOnly bool) string {
	switch {
	case score <= 3:
		return "human"
	case score <= 5:
		if heuristicsOnly {
			return "uncertain"
		}
		return "mixed"
	case score <= 7:
		return "likely_ai"
	default:
		return "ai"
	}
}
