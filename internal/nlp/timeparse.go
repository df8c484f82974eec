package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeRef is the shared time-reference extraction result. Date is a calendar
// date in YYYY-MM-DD when resolvable, Time is 24-hour HH:MM when a clock time
// was found, Day preserves the word the user wrote.
type TimeRef struct {
	Date   string
	Day    string
	Time   string
	Urgent bool
	Found  bool
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var urgencyWords = []string{"urgent", "asap", "immediately", "right away"}

var (
	clock12Re = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	clock24Re = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
)

// ExtractTimeRef scans input for relative dates, weekday names, clock times,
// and urgency flags. All "today"/"tomorrow" resolution goes through the
// injected clock.
func ExtractTimeRef(input string, clock Clock) TimeRef {
	lower := strings.ToLower(input)
	now := clock.Now()

	var ref TimeRef
	switch {
	case strings.Contains(lower, "tomorrow"):
		ref.Day = "tomorrow"
		ref.Date = now.AddDate(0, 0, 1).Format("2006-01-02")
		ref.Found = true
	case strings.Contains(lower, "today"), strings.Contains(lower, "tonight"):
		ref.Day = "today"
		ref.Date = now.Format("2006-01-02")
		ref.Found = true
	default:
		for name, wd := range weekdays {
			if strings.Contains(lower, name) {
				ref.Day = name
				ref.Date = nextWeekday(now, wd).Format("2006-01-02")
				ref.Found = true
				break
			}
		}
	}

	if t, ok := parseClockTime(lower); ok {
		ref.Time = t
		ref.Found = true
	}

	for _, w := range urgencyWords {
		if strings.Contains(lower, w) {
			ref.Urgent = true
			ref.Found = true
			break
		}
	}

	return ref
}

// nextWeekday returns the next occurrence of wd strictly after today when the
// weekday already passed, or today itself when it matches.
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(now.Weekday()) + 7) % 7
	return now.AddDate(0, 0, days)
}

// parseClockTime tries 12-hour "3pm" / "3:30 pm" first, then 24-hour "15:30".
func parseClockTime(lower string) (string, bool) {
	if m := clock12Re.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour >= 1 && hour <= 12 && minute < 60 {
			if m[3] == "pm" && hour != 12 {
				hour += 12
			}
			if m[3] == "am" && hour == 12 {
				hour = 0
			}
			return fmt.Sprintf("%02d:%02d", hour, minute), true
		}
	}
	if m := clock24Re.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 24 && minute < 60 {
			return fmt.Sprintf("%02d:%02d", hour, minute), true
		}
	}
	return "", false
}
