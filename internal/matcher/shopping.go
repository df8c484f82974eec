package matcher

import (
	"strings"

	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/nlp"
)

var shoppingKeywords = []string{
	"shopping", "shop", "buy", "purchase", "grocery",
	"groceries", "store", "milk", "bread", "egg", "list",
}

// shoppingVerbPrefixes strips the leading verb off a single-item request
// ("buy milk" -> "milk").
var shoppingVerbPrefixes = []string{
	"add ",
	"buy ",
	"get ",
	"pick up ",
	"purchase ",
	"we need ",
	"need ",
}

// shoppingTrailers are destination phrases removed before item splitting.
var shoppingTrailers = []string{
	" to the shopping list",
	" to shopping list",
	" to the shopping",
	" to shopping",
	" to the list",
	" to my list",
	" to the store list",
	" from the store",
}

// itemCategories infers a shopping category from the first item.
var itemCategories = map[string][]string{
	"dairy":     {"milk", "cheese", "yogurt", "butter", "cream", "egg"},
	"produce":   {"apple", "banana", "lettuce", "tomato", "onion", "carrot", "potato"},
	"bakery":    {"bread", "bagel", "bun", "roll"},
	"meat":      {"chicken", "beef", "pork", "fish", "turkey"},
	"household": {"soap", "detergent", "paper towel", "sponge", "trash bag"},
}

var itemCategoryOrder = []string{"dairy", "produce", "bakery", "meat", "household"}

type shoppingMatcher struct{}

func (m *shoppingMatcher) Match(input string, amb nlp.Ambiguity) *models.Intent {
	score := nlp.ScoreKeywordMatches(input, shoppingKeywords)
	if score == 0 {
		return nil
	}

	confidence := nlp.CalculateConfidence(score, amb.Score, false)

	items := extractItems(input)
	payload := models.ShoppingPayload{Items: items}
	if len(items) > 0 {
		payload.Category = itemCategory(items[0])
	}

	return &models.Intent{
		Type:       models.CategoryShopping,
		Confidence: confidence,
		Raw:        input,
		Payload:    payload,
	}
}

// extractItems splits an item list out of the request. Commas win, then
// " and ", then the whole remainder as a single item with its leading verb
// stripped. Comma pieces drop a leading "and" so "milk, eggs, and bread"
// yields three items.
func extractItems(input string) []string {
	text := strings.ToLower(strings.TrimSpace(input))
	for _, trailer := range shoppingTrailers {
		text = strings.TrimSuffix(text, trailer)
	}
	text = nlp.StripLeadingPhrases(text, shoppingVerbPrefixes)

	var parts []string
	switch {
	case strings.Contains(text, ","):
		parts = strings.Split(text, ",")
	case strings.Contains(text, " and "):
		parts = strings.Split(text, " and ")
	default:
		parts = []string{text}
	}

	var items []string
	for _, p := range parts {
		item := strings.TrimSpace(p)
		item = strings.TrimPrefix(item, "and ")
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func itemCategory(item string) string {
	lower := strings.ToLower(item)
	for _, cat := range itemCategoryOrder {
		for _, kw := range itemCategories[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return "general"
}
