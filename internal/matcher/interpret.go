package matcher

import (
	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/nlp"
)

// ambiguityShortCircuit is the ambiguity score above which the pipeline gives
// up before running any matcher.
const ambiguityShortCircuit = 0.5

// Interpreter is the deterministic classification pipeline: normalize, detect
// ambiguity, run the matchers, select, and apply the acceptance floor. It
// never returns an error; everything degrades to clarification or unknown.
type Interpreter struct {
	set *Set
}

// NewInterpreter builds a pipeline around the standard matcher set.
func NewInterpreter(clock nlp.Clock) *Interpreter {
	return &Interpreter{set: NewSet(clock)}
}

// Interpret classifies raw user text into an intent.
func (it *Interpreter) Interpret(raw string) *models.Intent {
	input := nlp.Normalize(raw)
	if input == "" {
		return &models.Intent{
			Type:             models.CategoryUnknown,
			Confidence:       0,
			Raw:              raw,
			FollowUpQuestion: GenericClarificationQuestion,
		}
	}

	amb := nlp.DetectAmbiguity(input)
	if amb.Score > ambiguityShortCircuit {
		return &models.Intent{
			Type:             models.CategoryClarification,
			Confidence:       nlp.Clamp01(1 - amb.Score),
			Raw:              input,
			FollowUpQuestion: GenericClarificationQuestion,
		}
	}

	best := BestMatch(it.set.MatchAll(input, amb), input)
	if best.Actionable() && best.Confidence < acceptFloor {
		return &models.Intent{
			Type:             models.CategoryClarification,
			Confidence:       best.Confidence,
			Raw:              input,
			FollowUpQuestion: lowConfidenceQuestion(best.Type),
		}
	}
	return best
}

// lowConfidenceQuestion produces a category-aware follow-up for a weak match.
func lowConfidenceQuestion(c models.Category) string {
	switch c {
	case models.CategoryTask:
		return "It sounds like you want to add a task. What exactly needs doing?"
	case models.CategoryMeal:
		return "It sounds like you're planning a meal. What would you like to cook, and when?"
	case models.CategoryShopping:
		return "It sounds like a shopping request. What items should I add?"
	case models.CategoryReminder:
		return "It sounds like you want a reminder. What should I remind you about?"
	case models.CategoryAppointment:
		return "It sounds like an appointment. What is it for, and when?"
	default:
		return GenericClarificationQuestion
	}
}
