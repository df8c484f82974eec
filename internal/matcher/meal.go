package matcher

import (
	"regexp"
	"strings"

	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/nlp"
)

var mealKeywords = []string{
	"meal", "breakfast", "lunch", "dinner", "snack",
	"cook", "recipe", "eat", "plan",
}

var mealNamePrefixes = []string{
	"plan a meal of ",
	"plan a meal ",
	"add a meal ",
	"plan ",
	"cook ",
	"make ",
	"have ",
	"eat ",
	"add ",
}

// mealWordRe removes the meal vocabulary itself from a candidate meal name.
var mealWordRe = regexp.MustCompile(`(?i)\b(breakfast|lunch|dinner|snack|meal|recipe|for|on)\b`)

var dietaryNoteWords = []string{"vegetarian", "vegan", "gluten-free", "dairy-free", "nut-free"}

type mealMatcher struct {
	clock nlp.Clock
}

func (m *mealMatcher) Match(input string, amb nlp.Ambiguity) *models.Intent {
	score := nlp.ScoreKeywordMatches(input, mealKeywords)
	if score == 0 {
		return nil
	}

	timeRef := nlp.ExtractTimeRef(input, m.clock)
	confidence := nlp.CalculateConfidence(score, amb.Score, timeRef.Found)

	payload := models.MealPayload{
		Name:     mealName(input),
		MealType: mealType(input),
		Day:      timeRef.Date,
	}
	if payload.Day == "" {
		payload.Day = timeRef.Day
	}
	payload.DietaryNotes = dietaryNotes(input)

	return &models.Intent{
		Type:       models.CategoryMeal,
		Confidence: confidence,
		Raw:        input,
		Payload:    payload,
	}
}

func mealType(input string) string {
	lower := strings.ToLower(input)
	for _, mt := range []string{
		models.MealTypeBreakfast,
		models.MealTypeLunch,
		models.MealTypeSnack,
		models.MealTypeDinner,
	} {
		if strings.Contains(lower, mt) {
			return mt
		}
	}
	// Dinner is the house default.
	return models.MealTypeDinner
}

func mealName(input string) string {
	name := nlp.StripLeadingPhrases(input, mealNamePrefixes)
	name = mealWordRe.ReplaceAllString(name, " ")
	name = strings.Join(strings.Fields(name), " ")
	name = nlp.RemoveTimeWords(name)
	name = stripArticles(name)
	if name == "" {
		return "New meal"
	}
	return nlp.Capitalize(name)
}

// stripArticles drops bare articles so "plan a meal" degrades to the
// placeholder instead of the name "A".
func stripArticles(s string) string {
	var kept []string
	for _, f := range strings.Fields(s) {
		switch strings.ToLower(f) {
		case "a", "an", "the":
		default:
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

func dietaryNotes(input string) string {
	lower := strings.ToLower(input)
	var notes []string
	for _, w := range dietaryNoteWords {
		if strings.Contains(lower, w) {
			notes = append(notes, w)
		}
	}
	return strings.Join(notes, ", ")
}
