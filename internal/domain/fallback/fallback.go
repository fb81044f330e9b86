// Package fallback produces a locally computed reply when the external
// inference service is unavailable. Pure, deterministic, constant time.
package fallback

import (
	"strings"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
	"github.com/mindfulchat/mindfulchat-go/internal/domain/signal"
)

// topic is one canned-response trigger. Topics are scanned in a fixed
// order with first-match-wins priority.
type topic struct {
	name     string
	triggers []string
	reply    string
	negative bool
}

var topics = []topic{
	{
		name:     "anxiety",
		triggers: []string{"anxious", "anxiety"},
		reply:    "I understand feeling anxious can be challenging. Deep breathing can help - try breathing in for 4 counts, holding for 2, and exhaling for 6. Would you like to try our guided breathing exercise?",
		negative: true,
	},
	{
		name:     "sadness",
		triggers: []string{"sad", "depressed"},
		reply:    "I'm sorry to hear you're feeling down. Remember that it's okay to feel this way sometimes. Would it help to talk about what's contributing to these feelings?",
		negative: true,
	},
	{
		name:     "stress",
		triggers: []string{"stress", "stressed"},
		reply:    "Stress can be overwhelming. Consider taking a short break to reset - even 5 minutes of mindfulness can help. Our meditation timer might be useful for this.",
		negative: true,
	},
	{
		name:     "sleep",
		triggers: []string{"sleep", "tired"},
		reply:    "Sleep difficulties can significantly impact mental health. Establishing a consistent bedtime routine and limiting screen time before bed may help. Would you like some more sleep hygiene tips?",
	},
	{
		name:     "greeting",
		triggers: []string{"hello", "hi"},
		reply:    "Hello! I'm here to support you. How are you feeling today?",
	},
	{
		name:     "pain",
		triggers: []string{"pain"},
		reply:    "I'm sorry to hear you're experiencing pain. Physical discomfort can be challenging to deal with. Have you spoken with a healthcare provider about this? In the meantime, gentle relaxation techniques might provide some relief.",
		negative: true,
	},
}

// genericReply is used when no topic trigger matches.
const genericReply = "I'm here to listen and support you. Could you tell me more about how you're feeling?"

// Respond builds an InterpretationResult for text without any network call.
// Risk is always false here; the lexical risk check runs independently
// upstream in the orchestrator.
func Respond(text string) *entities.InterpretationResult {
	lower := strings.ToLower(text)

	reply := genericReply
	for _, tp := range topics {
		if containsAny(lower, tp.triggers) {
			reply = tp.reply
			break
		}
	}

	// The sentiment decision is independent of which reply template won:
	// any negative topic present makes the message negative, even when a
	// neutral topic matched first.
	sentiment := entities.SentimentNeutral
	for _, tp := range topics {
		if tp.negative && containsAny(lower, tp.triggers) {
			sentiment = entities.SentimentNegative
			break
		}
	}

	return &entities.InterpretationResult{
		Source:    entities.SourceFallback,
		Reply:     reply,
		Sentiment: sentiment,
		Risk:      false,
		Keywords:  signal.ExtractKeywords(text),
		Emotions:  map[string]float64{},
	}
}

func containsAny(text string, triggers []string) bool {
	for _, trigger := range triggers {
		if strings.Contains(text, trigger) {
			return true
		}
	}
	return false
}