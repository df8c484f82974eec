package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthd/hearth-intent/internal/models"
)

func TestInterpretHighConfidenceTask(t *testing.T) {
	it := NewInterpreter(testClock())

	intent := it.Interpret("clean the bathroom tomorrow")
	require.Equal(t, models.CategoryTask, intent.Type)
	assert.InDelta(t, 0.85, intent.Confidence, 1e-9)

	p, ok := intent.Payload.(models.TaskPayload)
	require.True(t, ok)
	assert.Equal(t, models.TaskCategoryCleaning, p.Category)
	assert.Equal(t, "2025-03-13", p.DueDate)
}

func TestInterpretAmbiguityShortCircuit(t *testing.T) {
	it := NewInterpreter(testClock())

	intent := it.Interpret("handle that thing")
	assert.Equal(t, models.CategoryClarification, intent.Type)
	assert.InDelta(t, 0.4, intent.Confidence, 1e-9)
	assert.Equal(t, GenericClarificationQuestion, intent.FollowUpQuestion)
	assert.False(t, intent.Actionable())
}

func TestInterpretEmptyInput(t *testing.T) {
	it := NewInterpreter(testClock())

	for _, input := range []string{"", "   ", "!!!"} {
		intent := it.Interpret(input)
		assert.Equal(t, models.CategoryUnknown, intent.Type, "%q", input)
		assert.Zero(t, intent.Confidence)
		assert.Equal(t, GenericClarificationQuestion, intent.FollowUpQuestion)
	}
}

func TestInterpretNoMatchIsUnknown(t *testing.T) {
	it := NewInterpreter(testClock())

	intent := it.Interpret("completely unrelated words")
	assert.Equal(t, models.CategoryUnknown, intent.Type)
	assert.NotEmpty(t, intent.FollowUpQuestion)
}

func TestInterpretWeakMatchBecomesClarification(t *testing.T) {
	it := NewInterpreter(testClock())

	// One appointment keyword plus a time reference lands well under the
	// acceptance floor.
	intent := it.Interpret("dentist tomorrow at 3")
	assert.Equal(t, models.CategoryClarification, intent.Type)
	assert.Less(t, intent.Confidence, 0.5)
	assert.Equal(t, lowConfidenceQuestion(models.CategoryAppointment), intent.FollowUpQuestion)
}

func TestInterpretConfidenceAlwaysInRange(t *testing.T) {
	it := NewInterpreter(testClock())

	inputs := []string{
		"",
		"clean the bathroom tomorrow",
		"handle that thing",
		"add milk, eggs, and bread to the shopping list",
		"remind me to call mom asap",
		"dentist tomorrow at 3",
		"plan spaghetti for dinner tomorrow urgent urgent urgent",
		"that that that thing thing handle",
	}
	for _, input := range inputs {
		intent := it.Interpret(input)
		assert.GreaterOrEqual(t, intent.Confidence, 0.0, "%q", input)
		assert.LessOrEqual(t, intent.Confidence, 1.0, "%q", input)
	}
}

func TestBestMatchTie(t *testing.T) {
	results := []*models.Intent{
		{Type: models.CategoryTask, Confidence: 0.60},
		{Type: models.CategoryReminder, Confidence: 0.55},
	}

	intent := BestMatch(results, "raw text")
	require.Equal(t, models.CategoryClarification, intent.Type)
	assert.InDelta(t, 0.575, intent.Confidence, 1e-9)
	assert.Contains(t, intent.FollowUpQuestion, "task")
	assert.Contains(t, intent.FollowUpQuestion, "reminder")
}

func TestBestMatchClearWinner(t *testing.T) {
	results := []*models.Intent{
		{Type: models.CategoryTask, Confidence: 0.85},
		{Type: models.CategoryReminder, Confidence: 0.30},
	}

	intent := BestMatch(results, "raw text")
	assert.Equal(t, models.CategoryTask, intent.Type)
	assert.InDelta(t, 0.85, intent.Confidence, 1e-9)
}

func TestBestMatchSingleResultPassesThrough(t *testing.T) {
	single := &models.Intent{Type: models.CategoryMeal, Confidence: 0.42}
	assert.Same(t, single, BestMatch([]*models.Intent{single}, "raw"))
}

func TestBestMatchEmpty(t *testing.T) {
	intent := BestMatch(nil, "raw text")
	assert.Equal(t, models.CategoryUnknown, intent.Type)
	assert.Zero(t, intent.Confidence)
	assert.Equal(t, GenericClarificationQuestion, intent.FollowUpQuestion)
}

func TestTieQuestionOnlyNamesStrongCandidates(t *testing.T) {
	results := []*models.Intent{
		{Type: models.CategoryTask, Confidence: 0.45},
		{Type: models.CategoryShopping, Confidence: 0.40},
		{Type: models.CategoryMeal, Confidence: 0.10},
	}

	intent := BestMatch(results, "raw")
	require.Equal(t, models.CategoryClarification, intent.Type)
	assert.Contains(t, intent.FollowUpQuestion, "task")
	assert.Contains(t, intent.FollowUpQuestion, "shopping")
	assert.NotContains(t, intent.FollowUpQuestion, "meal")
}

func TestJoinOr(t *testing.T) {
	assert.Equal(t, "task", joinOr([]string{"task"}))
	assert.Equal(t, "task or meal", joinOr([]string{"task", "meal"}))
	assert.Equal(t, "task, meal or shopping", joinOr([]string{"task", "meal", "shopping"}))
}
