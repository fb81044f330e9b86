// Package signal implements the lexical signal detector: pure keyword
// classification of raw message text. No dependencies, never fails.
//
// Matching is case-insensitive substring containment. That is deliberate:
// "kill myself" must match even embedded in longer text. It also means
// embedded false positives are possible; the sensitivity/specificity
// tradeoff is a product decision, not something to fix here.
package signal

import (
	"sort"
	"strings"
)

// riskPhrases are the fixed crisis/self-harm phrase variants.
var riskPhrases = []string{
	"suicide", "kill myself", "end my life", "want to die",
	"harm myself", "self harm", "hurt myself", "no reason to live",
	"better off dead", "can't go on", "give up", "end it all",
}

// emotionTriggers maps each emotion category to its trigger words.
var emotionTriggers = map[string][]string{
	"anxiety":    {"anxious", "nervous", "worried", "panic", "fear", "stress", "tense"},
	"depression": {"depressed", "sad", "hopeless", "empty", "worthless", "miserable"},
	"anger":      {"angry", "mad", "frustrated", "irritated", "annoyed", "rage"},
	"happiness":  {"happy", "joy", "excited", "pleased", "content", "grateful"},
	"grief":      {"grief", "loss", "mourning", "missing", "heartbroken"},
}

// DetectRisk reports whether text contains crisis language, along with
// the specific phrases that matched.
func DetectRisk(text string) (bool, []string) {
	lower := strings.ToLower(text)
	var matched []string
	for _, phrase := range riskPhrases {
		if strings.Contains(lower, phrase) {
			matched = append(matched, phrase)
		}
	}
	return len(matched) > 0, matched
}

// DetectEmotions returns the emotion categories whose trigger words appear
// in text, mapped to the list of matched triggers.
func DetectEmotions(text string) map[string][]string {
	lower := strings.ToLower(text)
	detected := make(map[string][]string)
	for emotion, triggers := range emotionTriggers {
		var matches []string
		for _, trigger := range triggers {
			if strings.Contains(lower, trigger) {
				matches = append(matches, trigger)
			}
		}
		if len(matches) > 0 {
			detected[emotion] = matches
		}
	}
	return detected
}

// stopWords are excluded from keyword extraction.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your",
		"yours", "yourself", "yourselves", "he", "him", "his", "himself", "she",
		"her", "hers", "herself", "it", "its", "itself", "they", "them", "their",
		"theirs", "themselves", "what", "which", "who", "whom", "this", "that",
		"these", "those", "am", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "having", "do", "does", "did", "doing", "a", "an",
		"the", "and", "but", "if", "or", "because", "as", "until", "while", "of",
		"at", "by", "for", "with", "about", "against", "between", "into", "through",
		"during", "before", "after", "above", "below", "to", "from", "up", "down",
		"in", "out", "on", "off", "over", "under", "again", "further", "then",
		"once", "here", "there", "when", "where", "why", "how", "all", "any",
		"both", "each", "few", "more", "most", "other", "some", "such", "no",
		"nor", "not", "only", "own", "same", "so", "than", "too", "very",
		"can", "will", "just", "should", "now",
	} {
		stopWords[w] = struct{}{}
	}
}

const maxKeywords = 5

// ExtractKeywords pulls up to 5 salient tokens from text: lowercased,
// punctuation stripped, stop-words and tokens of length <= 2 removed,
// ranked by frequency with ties broken by first occurrence.
func ExtractKeywords(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		case r == ' ', r == '\t', r == '\n', r == '\r':
			return ' '
		default:
			return -1
		}
	}, strings.ToLower(text))

	type wordStat struct {
		word  string
		count int
		first int
	}
	stats := make(map[string]*wordStat)
	order := 0
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if s, ok := stats[word]; ok {
			s.count++
		} else {
			stats[word] = &wordStat{word: word, count: 1, first: order}
			order++
		}
	}

	ranked := make([]*wordStat, 0, len(stats))
	for _, s := range stats {
		ranked = append(ranked, s)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].first < ranked[j].first
	})

	if len(ranked) > maxKeywords {
		ranked = ranked[:maxKeywords]
	}
	keywords := make([]string, len(ranked))
	for i, s := range ranked {
		keywords[i] = s.word
	}
	return keywords
}
