package nlp

import "strings"

// vaguePhrases is the fixed vocabulary of underspecified language. The score
// below is occurrences / len(vaguePhrases), so the list length is part of the
// detection contract: "handle that thing" must score above the 0.5 pipeline
// short-circuit threshold.
var vaguePhrases = []string{
	"handle",
	"something",
	"that",
	"deal with",
	"thing",
}

// Ambiguity is the result of scanning input for vague phrasing.
type Ambiguity struct {
	Score     float64
	Ambiguous bool
}

// DetectAmbiguity counts vague-phrase occurrences in text. Any match at all
// flags the input as ambiguous; a score above 0.5 makes the whole pipeline
// short-circuit to a generic clarification before any matcher runs.
func DetectAmbiguity(text string) Ambiguity {
	lower := strings.ToLower(text)
	matches := 0
	for _, phrase := range vaguePhrases {
		matches += strings.Count(lower, phrase)
	}

	score := float64(matches) / float64(len(vaguePhrases))
	if score > 1 {
		score = 1
	}
	return Ambiguity{
		Score:     score,
		Ambiguous: matches > 0,
	}
}
