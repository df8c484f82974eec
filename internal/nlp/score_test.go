package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreKeywordMatches(t *testing.T) {
	keywords := []string{"alpha", "beta", "gamma", "delta", "epsilon",
		"zeta", "eta", "theta", "iota", "kappa"}

	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"no match", "nothing relevant here", 0},
		{"single match", "alpha only", 0.1},
		{"two matches cascade once", "alpha and beta", 0.2 + 0.15},
		{"three matches cascade twice", "alpha beta gamma", 0.3 + 0.15 + 0.20},
		{"four matches", "alpha beta gamma delta", 0.4 + 0.15 + 0.20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScoreKeywordMatches(tt.input, keywords), 1e-9)
		})
	}
}

func TestScoreKeywordMatchesCaps(t *testing.T) {
	// With every keyword matching, the base caps at 0.7 and the cascade caps
	// at 0.98.
	keywords := []string{"a", "b", "c"}
	got := ScoreKeywordMatches("abc", keywords)
	assert.InDelta(t, 0.98, got, 1e-9)
}

func TestScoreSubstringContainment(t *testing.T) {
	// Matching is substring containment, not tokenized: "bath" matches
	// inside "bathroom".
	got := ScoreKeywordMatches("clean the bathroom", []string{"bath", "bathroom"})
	assert.Greater(t, got, 0.0)
}

func TestCalculateConfidence(t *testing.T) {
	tests := []struct {
		name       string
		keyword    float64
		ambiguity  float64
		hasTimeRef bool
		want       float64
	}{
		{"plain", 0.5, 0, false, 0.5},
		{"ambiguity penalty", 0.5, 1, false, 0.35},
		{"time bonus", 0.75, 0, true, 0.85},
		{"time bonus capped", 0.9, 0, true, 0.95},
		{"zero stays zero", 0, 0.5, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateConfidence(tt.keyword, tt.ambiguity, tt.hasTimeRef), 1e-9)
		})
	}
}

func TestConfidenceAlwaysInRange(t *testing.T) {
	for _, kw := range []float64{-1, 0, 0.3, 0.7, 1, 2} {
		for _, amb := range []float64{0, 0.5, 1} {
			for _, ref := range []bool{false, true} {
				c := CalculateConfidence(kw, amb, ref)
				require.GreaterOrEqual(t, c, 0.0)
				require.LessOrEqual(t, c, 1.0)
			}
		}
	}
}

func TestDetectAmbiguity(t *testing.T) {
	t.Run("clear request", func(t *testing.T) {
		amb := DetectAmbiguity("add milk to the shopping list")
		assert.False(t, amb.Ambiguous)
		assert.Zero(t, amb.Score)
	})

	t.Run("vague request short-circuits", func(t *testing.T) {
		amb := DetectAmbiguity("handle that thing")
		assert.True(t, amb.Ambiguous)
		assert.Greater(t, amb.Score, 0.5)
	})

	t.Run("single vague word flags without short-circuit", func(t *testing.T) {
		amb := DetectAmbiguity("clean that window")
		assert.True(t, amb.Ambiguous)
		assert.LessOrEqual(t, amb.Score, 0.5)
	})

	t.Run("score never exceeds one", func(t *testing.T) {
		amb := DetectAmbiguity("that that that that that thing thing handle handle something")
		assert.LessOrEqual(t, amb.Score, 1.0)
	})
}
