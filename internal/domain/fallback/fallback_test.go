package fallback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
)

func TestRespond_TopicTriggers(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantTopic string
		sentiment entities.Sentiment
	}{
		{"anxiety", "I feel anxious about my exam", "anxious", entities.SentimentNegative},
		{"sadness", "I've been so sad lately", "feeling down", entities.SentimentNegative},
		{"stress", "work stress is getting to me", "Stress can be overwhelming", entities.SentimentNegative},
		{"sleep", "I can't sleep at night", "Sleep difficulties", entities.SentimentNeutral},
		{"greeting", "hello", "Hello! I'm here to support you", entities.SentimentNeutral},
		{"pain", "the pain in my back is awful", "experiencing pain", entities.SentimentNegative},
		// "hurts" must not trip the pain topic; only the word "pain" does.
		{"no trigger", "my stomach hurts and I feel sick", "Could you tell me more", entities.SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Respond(tt.text)
			assert.Contains(t, res.Reply, tt.wantTopic)
			assert.Equal(t, tt.sentiment, res.Sentiment)
			assert.Equal(t, entities.SourceFallback, res.Source)
		})
	}
}

func TestRespond_FirstMatchWins(t *testing.T) {
	// Both anxiety and stress triggers present; anxiety has priority.
	res := Respond("anxious and stressed about everything")
	assert.True(t, strings.Contains(res.Reply, "anxious"))
	assert.False(t, strings.Contains(res.Reply, "meditation timer"))
}

func TestRespond_NegativeTopicSetsSentimentEvenWhenNotWinning(t *testing.T) {
	// Sleep wins the reply, but the pain trigger still makes the
	// sentiment negative.
	res := Respond("tired of this pain")
	assert.Contains(t, res.Reply, "Sleep difficulties")
	assert.Equal(t, entities.SentimentNegative, res.Sentiment)

	// Greeting reply plus a pain trigger behaves the same way.
	res = Respond("hello, the pain is back again")
	assert.Contains(t, res.Reply, "Hello! I'm here to support you")
	assert.Equal(t, entities.SentimentNegative, res.Sentiment)
}

func TestRespond_RiskAlwaysFalse(t *testing.T) {
	// The lexical risk check runs upstream; the responder never sets it.
	res := Respond("I want to end it all")
	assert.False(t, res.Risk)
	require.NotEmpty(t, res.Reply)
}

func TestRespond_Deterministic(t *testing.T) {
	text := "I feel anxious and my stomach hurts"
	first := Respond(text)
	for i := 0; i < 5; i++ {
		again := Respond(text)
		assert.Equal(t, first.Reply, again.Reply)
		assert.Equal(t, first.Keywords, again.Keywords)
		assert.Equal(t, first.Sentiment, again.Sentiment)
	}
}

func TestRespond_KeywordsFromExtractor(t *testing.T) {
	res := Respond("my stomach hurts and I feel sick")
	assert.Equal(t, []string{"stomach", "hurts", "feel", "sick"}, res.Keywords)
	assert.LessOrEqual(t, len(res.Keywords), 5)
}

func TestRespond_NeverReturnsEmptyReply(t *testing.T) {
	for _, text := range []string{"", "ok", "zzz", "what a day"} {
		res := Respond(text)
		assert.NotEmpty(t, res.Reply)
	}
}
