package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
)

// fixedSource returns a constant value so chart output is reproducible.
type fixedSource struct{ v float64 }

func (f fixedSource) Float64() float64 { return f.v }

func inferenceResult(emotions map[string]float64) *entities.InterpretationResult {
	return &entities.InterpretationResult{
		Source:   entities.SourceInference,
		Emotions: emotions,
	}
}

func TestSynthesize_TriggersOnHealthTerms(t *testing.T) {
	s := NewSynthesizer(fixedSource{0.5})
	for _, text := range []string{
		"the pain won't stop",
		"my head hurts",
		"I have this ache in my shoulder",
		"a weird symptom showed up",
		"I feel off today",
		"worried about my health",
		"I've been sick all week",
		"my whole body is tense",
	} {
		c := s.Synthesize(text, inferenceResult(nil))
		require.NotNil(t, c, "expected chart for %q", text)
		assert.Equal(t, "Health Analysis", c.Title)
	}
}

func TestSynthesize_NoTriggerNoChart(t *testing.T) {
	s := NewSynthesizer(fixedSource{0.5})
	c := s.Synthesize("I had a lovely walk in the park", inferenceResult(nil))
	assert.Nil(t, c)
}

func TestSynthesize_AllMetricsWithinRange(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 0.9999} {
		s := NewSynthesizer(fixedSource{v})
		c := s.Synthesize("my body aches", inferenceResult(nil))
		require.NotNil(t, c)
		require.Len(t, c.Metrics, 5)
		for name, value := range c.Metrics {
			assert.GreaterOrEqual(t, value, 0.0, name)
			assert.LessOrEqual(t, value, 10.0, name)
		}
	}
}

func TestSynthesize_EmotionIntensitiesDriveMetrics(t *testing.T) {
	s := NewSynthesizer(fixedSource{0.5})
	c := s.Synthesize("the pain is bad", inferenceResult(map[string]float64{
		"pain":    3,
		"stress":  2,
		"anxiety": 1,
	}))
	require.NotNil(t, c)
	assert.Equal(t, 6.0, c.Metrics[MetricPain])
	assert.Equal(t, 4.0, c.Metrics[MetricStress])
	assert.Equal(t, 2.0, c.Metrics[MetricAnxiety])
}

func TestSynthesize_EmotionValuesClampedToTen(t *testing.T) {
	s := NewSynthesizer(fixedSource{0.5})
	c := s.Synthesize("so much pain", inferenceResult(map[string]float64{"pain": 9}))
	require.NotNil(t, c)
	assert.Equal(t, 10.0, c.Metrics[MetricPain])
}

func TestSynthesize_FallbackUsesNarrowTriggerList(t *testing.T) {
	s := NewSynthesizer(fixedSource{0.5})
	res := &entities.InterpretationResult{Source: entities.SourceFallback}

	// "feel" and "sick" only trigger on the inference path.
	assert.Nil(t, s.Synthesize("I feel anxious about my exam", res))

	c := s.Synthesize("my stomach hurts", res)
	require.NotNil(t, c)
	assert.Equal(t, "Basic Health Analysis", c.Title)
	require.Len(t, c.Metrics, 5)
	for name, value := range c.Metrics {
		assert.GreaterOrEqual(t, value, 0.0, name)
		assert.LessOrEqual(t, value, 10.0, name)
	}
}

func TestSynthesize_DeterministicWithInjectedSource(t *testing.T) {
	a := NewSynthesizer(fixedSource{0.3}).Synthesize("body check", inferenceResult(nil))
	b := NewSynthesizer(fixedSource{0.3}).Synthesize("body check", inferenceResult(nil))
	assert.Equal(t, a, b)
}

func TestNewSynthesizer_NilSourceStillWorks(t *testing.T) {
	s := NewSynthesizer(nil)
	c := s.Synthesize("health question", inferenceResult(nil))
	require.NotNil(t, c)
	for _, value := range c.Metrics {
		assert.GreaterOrEqual(t, value, 0.0)
		assert.LessOrEqual(t, value, 10.0)
	}
}
