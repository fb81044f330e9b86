// Package chart implements the health-signal chart synthesizer: a
// heuristic that attaches a small metrics object to replies that look
// health-related.
package chart

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
)

// MetricSource supplies uniform values in [0, 1). Randomness is a
// placeholder for signals the inference service does not always supply;
// keeping it behind an interface makes the synthesizer deterministic
// in tests.
type MetricSource interface {
	Float64() float64
}

// Metric names used in HealthChart.Metrics.
const (
	MetricPain    = "painLevel"
	MetricStress  = "stressLevel"
	MetricAnxiety = "anxietyLevel"
	MetricSleep   = "sleepQuality"
	MetricOverall = "overallHealth"
)

// healthTerms trigger chart synthesis for inference-backed results.
var healthTerms = []string{"pain", "hurt", "ache", "symptom", "feel", "health", "sick", "body"}

// fallbackHealthTerms is the narrower trigger list used when the result
// came from the local fallback responder.
var fallbackHealthTerms = []string{"pain", "hurt", "ache", "symptom", "body"}

// metricRange defines the bounded placeholder value low + rand*span.
type metricRange struct {
	low, span float64
}

// Placeholder ranges per metric. Inference-backed charts skew slightly
// healthier on overallHealth; all values stay within [0, 10].
var (
	inferenceRanges = map[string]metricRange{
		MetricPain:    {2, 5}, // [2, 7)
		MetricStress:  {1, 5}, // [1, 6)
		MetricAnxiety: {1, 4}, // [1, 5)
		MetricSleep:   {4, 3}, // [4, 7)
		MetricOverall: {5, 3}, // [5, 8)
	}
	fallbackRanges = map[string]metricRange{
		MetricPain:    {3, 5}, // [3, 8)
		MetricStress:  {2, 5}, // [2, 7)
		MetricAnxiety: {2, 4}, // [2, 6)
		MetricSleep:   {4, 3}, // [4, 7)
		MetricOverall: {4, 3}, // [4, 7)
	}
)

// emotionScale converts an emotion intensity to a 0-10 metric value.
const emotionScale = 2.0

// Synthesizer decides whether a turn warrants a HealthChart and builds it.
type Synthesizer struct {
	src MetricSource
}

// NewSynthesizer creates a Synthesizer. A nil src falls back to a
// process-local pseudo-random source.
func NewSynthesizer(src MetricSource) *Synthesizer {
	if src == nil {
		src = defaultSource()
	}
	return &Synthesizer{src: src}
}

// Synthesize returns a HealthChart when text contains a body/symptom
// term, or nil when the trigger condition does not fire. Never fails.
func (s *Synthesizer) Synthesize(text string, res *entities.InterpretationResult) *entities.HealthChart {
	terms := healthTerms
	title := "Health Analysis"
	ranges := inferenceRanges
	if res != nil && res.Source == entities.SourceFallback {
		terms = fallbackHealthTerms
		title = "Basic Health Analysis"
		ranges = fallbackRanges
	}

	lower := strings.ToLower(text)
	triggered := false
	for _, term := range terms {
		if strings.Contains(lower, term) {
			triggered = true
			break
		}
	}
	if !triggered {
		return nil
	}

	var emotions map[string]float64
	if res != nil {
		emotions = res.Emotions
	}

	metrics := map[string]float64{
		MetricPain:    s.metric(emotions, "pain", ranges[MetricPain]),
		MetricStress:  s.metric(emotions, "stress", ranges[MetricStress]),
		MetricAnxiety: s.metric(emotions, "anxiety", ranges[MetricAnxiety]),
		MetricSleep:   s.placeholder(ranges[MetricSleep]),
		MetricOverall: s.placeholder(ranges[MetricOverall]),
	}

	return &entities.HealthChart{Title: title, Metrics: metrics}
}

// metric derives a value from a matched emotion intensity when present,
// otherwise from the bounded placeholder range.
func (s *Synthesizer) metric(emotions map[string]float64, emotion string, r metricRange) float64 {
	if intensity, ok := emotions[emotion]; ok && intensity > 0 {
		return clamp(intensity*emotionScale, 0, 10)
	}
	return s.placeholder(r)
}

func (s *Synthesizer) placeholder(r metricRange) float64 {
	return r.low + s.src.Float64()*r.span
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lockedSource guards a rand.Rand for concurrent turns.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func defaultSource() MetricSource {
	return &lockedSource{rng: rand.New(rand.NewSource(rand.Int63()))}
}
