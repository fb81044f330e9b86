// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import "time"

// Sentiment is the coarse emotional classification of a message.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentUnknown  Sentiment = "unknown"
)

// ParseSentiment maps a raw label to a known Sentiment, defaulting to unknown.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(s) {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return Sentiment(s)
	default:
		return SentimentUnknown
	}
}

// InterpretationSource tags which producer built an InterpretationResult.
type InterpretationSource string

const (
	SourceInference InterpretationSource = "inference"
	SourceFallback  InterpretationSource = "fallback"
)

// ConversationTurn is one incoming user message threaded through the pipeline.
// Transient - never persisted directly.
type ConversationTurn struct {
	UserID         string
	ConversationID string // empty on the first turn of a new conversation
	Text           string
	Sequence       int // monotonic position within the conversation
}

// InterpretationResult is the normalized outcome of interpreting a turn,
// produced either by the inference service or by the local fallback responder.
type InterpretationResult struct {
	Source             InterpretationSource
	Reply              string
	Sentiment          Sentiment
	Risk               bool
	Keywords           []string           // deduplicated, insertion order
	Emotions           map[string]float64 // emotion category -> intensity
	SuggestedResources []Resource         // optional, inference-supplied
}

// HealthChart is a small structured metrics summary optionally attached to a reply.
// Metric values are in [0, 10].
type HealthChart struct {
	Title   string             `json:"title"`
	Metrics map[string]float64 `json:"metrics"`
}

// InteractionRecord is the durable, immutable log entry for one processed turn.
// Written exactly once; never updated, only read and bulk-deleted on account removal.
type InteractionRecord struct {
	ID             string
	ConversationID string
	UserID         string
	Message        string
	Reply          string
	Sentiment      Sentiment
	Risk           bool
	Emotions       map[string]float64
	Keywords       []string
	Chart          *HealthChart
	CreatedAt      time.Time
}

// Resource is a curated support resource from the catalog.
type Resource struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
}

// ChatResponse is the outward result of processing one turn.
type ChatResponse struct {
	Reply          string
	ConversationID string
	Sentiment      Sentiment
	Risk           bool
	Resources      []Resource
	Chart          *HealthChart
}
