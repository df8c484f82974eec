package matcher

import (
	"strings"

	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/nlp"
)

// taskKeywords drives both matching and scoring; the list length feeds the
// matched/total ratio, so additions change confidence values downstream.
var taskKeywords = []string{
	"task", "chore", "clean", "tidy", "fix",
	"organize", "bath", "bathroom", "room", "errand",
}

// taskTitlePrefixes is the ordered leading-phrase strip list. Longer phrases
// come first so "add a task to" wins over "add".
var taskTitlePrefixes = []string{
	"add a task to ",
	"add task to ",
	"create a task to ",
	"i need to ",
	"need to ",
	"add a task ",
	"add task ",
	"todo ",
}

var taskCategoryKeywords = map[string][]string{
	models.TaskCategoryCleaning:    {"clean", "tidy", "wash", "vacuum", "bath", "laundry", "dishes", "sweep", "mop", "dust"},
	models.TaskCategoryErrands:     {"errand", "pick up", "drop off", "mail", "bank", "return"},
	models.TaskCategoryKids:        {"kid", "child", "school", "homework", "daycare"},
	models.TaskCategoryMaintenance: {"fix", "repair", "replace", "install", "leak", "maintenance", "paint"},
}

type taskMatcher struct {
	clock nlp.Clock
}

func (m *taskMatcher) Match(input string, amb nlp.Ambiguity) *models.Intent {
	score := nlp.ScoreKeywordMatches(input, taskKeywords)
	if score == 0 {
		return nil
	}

	timeRef := nlp.ExtractTimeRef(input, m.clock)
	confidence := nlp.CalculateConfidence(score, amb.Score, timeRef.Found)

	title := nlp.CleanTitle(input, taskTitlePrefixes)
	if title == "" {
		title = "New item"
	}

	payload := models.TaskPayload{
		Title:    title,
		Category: taskCategory(input),
		DueDate:  timeRef.Date,
	}
	if timeRef.Urgent {
		payload.Priority = "high"
	}

	return &models.Intent{
		Type:       models.CategoryTask,
		Confidence: confidence,
		Raw:        input,
		Payload:    payload,
	}
}

func taskCategory(input string) string {
	lower := strings.ToLower(input)
	// Check order decides the winner when a request spans categories
	// ("clean up the paint spill" is cleaning, not maintenance).
	for _, cat := range []string{
		models.TaskCategoryCleaning,
		models.TaskCategoryMaintenance,
		models.TaskCategoryErrands,
		models.TaskCategoryKids,
	} {
		for _, kw := range taskCategoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return models.TaskCategoryOther
}
