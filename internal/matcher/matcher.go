// Package matcher implements the deterministic intent-understanding pipeline:
// five independent category matchers, the best-match selector, and the
// clarification policy. Classification never returns an error to its caller;
// every failure mode degrades to a clarification or unknown intent.
package matcher

import (
	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/nlp"
)

// Matcher is one category's keyword matcher plus field extraction. A matcher
// returns nil when none of its keywords appear in the input.
type Matcher interface {
	Match(input string, amb nlp.Ambiguity) *models.Intent
}

// Set runs all five category matchers independently and unconditionally.
// The matchers share no state, so order does not matter here; ranking is the
// selector's job.
type Set struct {
	matchers []Matcher
}

// NewSet builds the standard matcher set. The clock is threaded into every
// matcher that resolves relative dates.
func NewSet(clock nlp.Clock) *Set {
	return &Set{
		matchers: []Matcher{
			&taskMatcher{clock: clock},
			&mealMatcher{clock: clock},
			&shoppingMatcher{},
			&reminderMatcher{clock: clock},
			&appointmentMatcher{clock: clock},
		},
	}
}

// MatchAll returns every non-nil matcher result for input.
func (s *Set) MatchAll(input string, amb nlp.Ambiguity) []*models.Intent {
	var results []*models.Intent
	for _, m := range s.matchers {
		if intent := m.Match(input, amb); intent != nil {
			results = append(results, intent)
		}
	}
	return results
}
