package nlp

import (
	"math"
	"strings"
)

// ScoreKeywordMatches rates how strongly input matches a category keyword
// list. Matching is case-insensitive substring containment, not tokenized:
// "bath" matches inside "bathroom".
//
// Base score is matched/total capped at 0.7. The two bonus branches cascade:
// two or more matches add 0.15 (capped at 0.95), and three or more add a
// further 0.20 (capped at 0.98). The cascade order is deliberate and load
// bearing for the confidence values downstream expects.
func ScoreKeywordMatches(input string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	lower := strings.ToLower(input)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}

	score := math.Min(float64(matched)/float64(len(keywords)), 0.7)
	if matched >= 2 {
		score = math.Min(score+0.15, 0.95)
	}
	if matched >= 3 {
		score = math.Min(score+0.20, 0.98)
	}
	return score
}

// CalculateConfidence combines a keyword score with the ambiguity penalty and
// the time-reference bonus. Result is always in [0,1].
func CalculateConfidence(keywordScore, ambiguityScore float64, hasTimeRef bool) float64 {
	confidence := keywordScore * (1 - ambiguityScore*0.3)
	if hasTimeRef {
		confidence = math.Min(confidence+0.1, 0.95)
	}
	return Clamp01(confidence)
}

// Clamp01 bounds v into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
