package nlp

import (
	"regexp"
	"strings"
)

// timeWordRe strips time vocabulary and clock patterns out of a candidate
// title. Word-bounded so "bathroom" keeps its "at".
var timeWordRe = regexp.MustCompile(`(?i)\b(today|tomorrow|tonight|this week|next week|sunday|monday|tuesday|wednesday|thursday|friday|saturday|morning|afternoon|evening|urgent|asap|immediately|at\s+\d{1,2}(:\d{2})?\s*(am|pm)?|\d{1,2}:\d{2}\s*(am|pm)?|\d{1,2}\s*(am|pm))\b`)

// StripLeadingPhrases removes the first matching leading phrase from s.
// The prefix list is ordered: earlier entries win, and ordering is part of
// each matcher's extraction contract. Matching is case-insensitive.
func StripLeadingPhrases(s string, prefixes []string) string {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(trimmed[len(p):])
		}
	}
	return trimmed
}

// RemoveTimeWords deletes time vocabulary and clock patterns from s,
// collapsing any whitespace the deletions leave behind.
func RemoveTimeWords(s string) string {
	out := timeWordRe.ReplaceAllString(s, " ")
	out = strings.Join(strings.Fields(out), " ")
	return strings.TrimSpace(strings.Trim(out, " ,.-"))
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// CleanTitle runs the ordered title-extraction passes: strip one leading
// phrase, remove time words, capitalize. The pass order is a documented
// contract, not an accident.
func CleanTitle(s string, prefixes []string) string {
	out := StripLeadingPhrases(s, prefixes)
	out = RemoveTimeWords(out)
	return Capitalize(out)
}
