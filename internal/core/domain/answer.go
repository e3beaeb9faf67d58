package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Answer is a single question/answer exchange. Source order is significant:
// the citation number shown to the user is the position in Sources, so the
// sequence must be preserved verbatim.
type Answer struct {
	Text       string
	Confidence float64
	Sources    []Source
	Guardrail  string
}

// Source is a backend-supplied excerpt supporting an answer.
type Source struct {
	Text    string
	Page    *int
	ChunkID string
}

// UnmarshalJSON accepts both the object shape {text, page?, chunk_id?} and
// the bare-string shape emitted by older backends.
func (s *Source) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("decode source string: %w", err)
		}
		*s = Source{Text: text}
		return nil
	}

	var raw struct {
		Text    string `json:"text"`
		Page    *int   `json:"page"`
		ChunkID string `json:"chunk_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode source: %w", err)
	}
	*s = Source{Text: raw.Text, Page: raw.Page, ChunkID: raw.ChunkID}
	return nil
}

// ConfidenceTier is the visual tier for a confidence score.
type ConfidenceTier string

const (
	TierHigh   ConfidenceTier = "high"
	TierMedium ConfidenceTier = "medium"
	TierLow    ConfidenceTier = "low"
)

// TierFor maps a score to its tier: high at 0.7 and above, medium in
// [0.4, 0.7), low below 0.4.
func TierFor(score float64) ConfidenceTier {
	switch {
	case score >= 0.7:
		return TierHigh
	case score >= 0.4:
		return TierMedium
	default:
		return TierLow
	}
}

// ConfidencePercent converts a score to a display percentage, rounded
// half-up. Scores outside [0,1] are clamped for display only; the stored
// confidence is never altered.
func ConfidencePercent(score float64) int {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return int(math.Round(score * 100))
}

const lowConfidenceThreshold = 0.5

// LowConfidence reports whether an answer needs the extra low-confidence
// warning. The threshold is independent of the tier boundaries.
func LowConfidence(score float64) bool {
	return score < lowConfidenceThreshold
}
