package matcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hearthd/hearth-intent/internal/models"
)

// Selection thresholds. Two results closer than tieMargin are a tie; a tie
// names every category above mentionFloor in its follow-up question.
const (
	tieMargin    = 0.2
	mentionFloor = 0.3
	acceptFloor  = 0.5
)

// GenericClarificationQuestion is the fallback follow-up when the pipeline
// cannot name candidate categories.
const GenericClarificationQuestion = "I'm not sure what you'd like me to do. " +
	"Could you tell me if this is about a task, a meal, shopping, a reminder, or an appointment?"

// BestMatch merges independent matcher results into a single intent.
//
// With no results it returns unknown. With one result it returns that result
// as-is (the caller applies the acceptance floor). With two or more it sorts
// descending by confidence: a top-two gap under tieMargin is a tie and yields
// a clarification whose confidence is the average of the two, naming every
// category above mentionFloor; otherwise the top result wins.
func BestMatch(results []*models.Intent, raw string) *models.Intent {
	switch len(results) {
	case 0:
		return &models.Intent{
			Type:             models.CategoryUnknown,
			Confidence:       0,
			Raw:              raw,
			FollowUpQuestion: GenericClarificationQuestion,
		}
	case 1:
		return results[0]
	}

	sorted := make([]*models.Intent, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	top, second := sorted[0], sorted[1]
	if top.Confidence-second.Confidence < tieMargin {
		return &models.Intent{
			Type:             models.CategoryClarification,
			Confidence:       (top.Confidence + second.Confidence) / 2,
			Raw:              raw,
			FollowUpQuestion: tieQuestion(sorted),
		}
	}
	return top
}

// tieQuestion lists every candidate category above mentionFloor, joined with
// commas and a final "or".
func tieQuestion(sorted []*models.Intent) string {
	var names []string
	for _, r := range sorted {
		if r.Confidence > mentionFloor {
			names = append(names, string(r.Type))
		}
	}
	if len(names) == 0 {
		return GenericClarificationQuestion
	}
	return fmt.Sprintf("Did you mean a %s?", joinOr(names))
}

func joinOr(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}
}
