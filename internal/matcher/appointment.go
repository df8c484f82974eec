package matcher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/nlp"
)

var appointmentKeywords = []string{
	"appointment", "dentist", "doctor", "meeting",
	"checkup", "visit", "vet", "schedule",
}

// nameableKeywords are appointment keywords that make a usable title on their
// own when nothing else survives the stripping passes.
var nameableKeywords = []string{"dentist", "doctor", "vet", "meeting", "checkup"}

var appointmentVerbPrefixes = []string{
	"schedule a ",
	"schedule an ",
	"schedule ",
	"book a ",
	"book an ",
	"book ",
	"set up a ",
	"set up ",
	"make a ",
	"make an ",
	"add a ",
	"add an ",
	"add ",
}

// The appointment matcher parses clock times itself rather than through the
// shared extractor: its patterns accept "3 pm", "3:30pm" and 24-hour "15:30".
var (
	apptClock12Re = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	apptClock24Re = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	apptAtHourRe  = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})\b`)
)

type appointmentMatcher struct {
	clock nlp.Clock
}

func (m *appointmentMatcher) Match(input string, amb nlp.Ambiguity) *models.Intent {
	score := nlp.ScoreKeywordMatches(input, appointmentKeywords)
	if score == 0 {
		return nil
	}

	timeRef := nlp.ExtractTimeRef(input, m.clock)
	apptTime, timeFound := parseAppointmentTime(input)
	confidence := nlp.CalculateConfidence(score, amb.Score, timeRef.Found || timeFound)

	payload := models.AppointmentPayload{
		Title: appointmentTitle(input),
		Date:  timeRef.Date,
		Time:  apptTime,
	}

	return &models.Intent{
		Type:       models.CategoryAppointment,
		Confidence: confidence,
		Raw:        input,
		Payload:    payload,
	}
}

// parseAppointmentTime tries 12-hour am/pm first, then 24-hour HH:MM, then a
// bare "at N" which defaults into the afternoon for small hours.
func parseAppointmentTime(input string) (string, bool) {
	if m := apptClock12Re.FindStringSubmatch(input); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour >= 1 && hour <= 12 && minute < 60 {
			meridiem := strings.ToLower(m[3])
			if meridiem == "pm" && hour != 12 {
				hour += 12
			}
			if meridiem == "am" && hour == 12 {
				hour = 0
			}
			return fmt.Sprintf("%02d:%02d", hour, minute), true
		}
	}
	if m := apptClock24Re.FindStringSubmatch(input); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%02d:%02d", hour, minute), true
	}
	if m := apptAtHourRe.FindStringSubmatch(input); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour >= 1 && hour <= 12 {
			// "dentist at 3" almost always means 15:00, not 03:00.
			if hour < 8 {
				hour += 12
			}
			return fmt.Sprintf("%02d:00", hour), true
		}
	}
	return "", false
}

// appointmentTitle derives a title by stripping, in order: the leading action
// verb, every configured appointment keyword, then time words and clock
// patterns. When nothing usable remains it falls back to the matched nameable
// keyword ("Dentist") and finally to the literal "Appointment".
func appointmentTitle(input string) string {
	lower := strings.ToLower(input)

	title := nlp.StripLeadingPhrases(input, appointmentVerbPrefixes)
	for _, re := range appointmentKeywordRes {
		title = strings.Join(strings.Fields(re.ReplaceAllString(title, " ")), " ")
	}
	title = nlp.RemoveTimeWords(title)
	title = strings.Trim(title, " ,.-")
	title = strings.TrimSpace(title)
	if cleaned := stripFiller(title); cleaned != "" {
		return nlp.Capitalize(cleaned)
	}

	for _, kw := range nameableKeywords {
		if strings.Contains(lower, kw) {
			return nlp.Capitalize(kw)
		}
	}
	return "Appointment"
}

// appointmentKeywordRes matches each appointment keyword as a whole word.
var appointmentKeywordRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(appointmentKeywords))
	for _, kw := range appointmentKeywords {
		res = append(res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	return res
}()

// stripFiller drops connective words ("a", "an", "the", "for", "with",
// "at", "on") and keeps the rest in its original case.
func stripFiller(s string) string {
	var kept []string
	for _, f := range strings.Fields(s) {
		switch strings.ToLower(f) {
		case "a", "an", "the", "for", "with", "at", "on", "my", "to":
		default:
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
