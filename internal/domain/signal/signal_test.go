package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectRisk_MatchesPhrases(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		risk    bool
		matched []string
	}{
		{"plain crisis phrase", "I want to end it all", true, []string{"end it all"}},
		{"embedded in longer sentence", "sometimes I think about suicide when things get hard", true, []string{"suicide"}},
		{"case insensitive", "I Want To Die", true, []string{"want to die"}},
		{"multiple phrases", "no reason to live, I should just give up", true, []string{"no reason to live", "give up"}},
		{"benign text", "I had a great day at the park", false, nil},
		{"empty text", "", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risk, matched := DetectRisk(tt.text)
			assert.Equal(t, tt.risk, risk)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestDetectRisk_SubstringContainmentIsDeliberate(t *testing.T) {
	// No word-boundary enforcement: phrases match even embedded in
	// longer tokens or sentences.
	risk, matched := DetectRisk("the documentary covered suicide prevention")
	assert.True(t, risk)
	assert.Contains(t, matched, "suicide")
}

func TestDetectEmotions(t *testing.T) {
	emotions := DetectEmotions("I'm so anxious and worried, and honestly a bit sad")
	require.Contains(t, emotions, "anxiety")
	assert.ElementsMatch(t, []string{"anxious", "worried"}, emotions["anxiety"])
	require.Contains(t, emotions, "depression")
	assert.Equal(t, []string{"sad"}, emotions["depression"])
	assert.NotContains(t, emotions, "anger")
}

func TestDetectEmotions_NoMatches(t *testing.T) {
	emotions := DetectEmotions("the weather report said rain tomorrow")
	assert.Empty(t, emotions)
}

func TestExtractKeywords(t *testing.T) {
	keywords := ExtractKeywords("my stomach hurts and I feel sick")
	assert.Equal(t, []string{"stomach", "hurts", "feel", "sick"}, keywords)
}

func TestExtractKeywords_TopFiveByFrequency(t *testing.T) {
	text := "exam exam exam stress stress sleep coffee library notes"
	keywords := ExtractKeywords(text)
	require.Len(t, keywords, 5)
	assert.Equal(t, "exam", keywords[0])
	assert.Equal(t, "stress", keywords[1])
	// Ties broken by first occurrence.
	assert.Equal(t, []string{"sleep", "coffee", "library"}, keywords[2:])
}

func TestExtractKeywords_FiltersStopWordsAndShortTokens(t *testing.T) {
	keywords := ExtractKeywords("I am so up to it, ok no go")
	assert.Empty(t, keywords)

	keywords = ExtractKeywords("the quick brown fox")
	for _, kw := range keywords {
		assert.Greater(t, len(kw), 2)
		assert.NotContains(t, []string{"the", "and", "for"}, kw)
	}
}

func TestExtractKeywords_StripsPunctuation(t *testing.T) {
	keywords := ExtractKeywords("Headaches!!! Terrible, terrible headaches...")
	assert.Equal(t, []string{"headaches", "terrible"}, keywords)
}

func TestExtractKeywords_Deterministic(t *testing.T) {
	text := "feeling anxious about tomorrow, anxious about everything"
	first := ExtractKeywords(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExtractKeywords(text))
	}
}
