package matcher

import (
	"strings"

	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/nlp"
)

var reminderKeywords = []string{
	"remind", "reminder", "remember", "forget", "don't forget",
}

// appointmentSignals suppress the reminder matcher entirely. A request that
// mentions an appointment is always the appointment matcher's to win, even
// when it is phrased as "remind me about the dentist".
var appointmentSignals = []string{
	"appointment", "dentist", "doctor", "meeting", "checkup", "vet",
}

var reminderTitlePrefixes = []string{
	"set a reminder to ",
	"set a reminder for ",
	"set a reminder ",
	"remind me to ",
	"remind me about ",
	"remind me ",
	"reminder to ",
	"don't forget to ",
	"don't forget ",
	"remember to ",
	"remember ",
}

type reminderMatcher struct {
	clock nlp.Clock
}

func (m *reminderMatcher) Match(input string, amb nlp.Ambiguity) *models.Intent {
	lower := strings.ToLower(input)
	for _, signal := range appointmentSignals {
		if strings.Contains(lower, signal) {
			return nil
		}
	}

	score := nlp.ScoreKeywordMatches(input, reminderKeywords)
	if score == 0 {
		return nil
	}

	timeRef := nlp.ExtractTimeRef(input, m.clock)
	confidence := nlp.CalculateConfidence(score, amb.Score, timeRef.Found)

	payload := models.ReminderPayload{
		Title: nlp.CleanTitle(input, reminderTitlePrefixes),
		Time:  timeRef.Time,
		Date:  timeRef.Date,
	}

	return &models.Intent{
		Type:       models.CategoryReminder,
		Confidence: confidence,
		Raw:        input,
		Payload:    payload,
	}
}
