package mention

import (
	"github.com/caribdigital/graphhansard/resolver"
)

// SentimentLabel is the externally classified tone of a mention. The
// engine never computes sentiment itself; labels arrive attached to
// records before graph construction.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// String returns the string representation of the sentiment label
func (s SentimentLabel) String() string {
	return string(s)
}

// IsValid checks if the sentiment label is a known value
func (s SentimentLabel) IsValid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Segment is one speaker-attributed slice of a transcript, as delivered
// by the upstream speech pipeline. Times are seconds from session start.
type Segment struct {
	SpeakerEntityID string  `json:"speaker_entity_id"`
	StartTime       float64 `json:"start_time"`
	EndTime         float64 `json:"end_time"`
	Text            string  `json:"text"`
}

// Record is a single extracted mention with full resolution provenance.
// Records are append-only: once emitted they are never mutated, so the
// extraction log stays auditable.
type Record struct {
	ID                   string          `json:"id"`
	SessionID            string          `json:"session_id"`
	SourceEntityID       string          `json:"source_entity_id"`
	TargetEntityID       string          `json:"target_entity_id,omitempty"`
	RawText              string          `json:"raw_text"`
	ResolutionMethod     resolver.Method `json:"resolution_method"`
	ResolutionConfidence float64         `json:"resolution_confidence"`
	CollisionWarning     string          `json:"collision_warning,omitempty"`
	Sentiment            SentimentLabel  `json:"sentiment_label,omitempty"`
	StartTime            float64         `json:"start_time"`
	EndTime              float64         `json:"end_time"`
	ContextWindow        string          `json:"context_window"`
	SegmentIndex         int             `json:"segment_index"`
	IsSelfReference      bool            `json:"is_self_reference"`
}

// Resolved reports whether the record carries a resolved target.
func (r Record) Resolved() bool {
	return r.TargetEntityID != ""
}

// Unresolved is one entry of the human-review log for mentions no
// resolution stage could place.
type Unresolved struct {
	RawText       string  `json:"raw_text"`
	ContextWindow string  `json:"context_window"`
	SessionID     string  `json:"session_id"`
	SegmentIndex  int     `json:"segment_index"`
	Timestamp     float64 `json:"timestamp"`
}
