package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// equalFold compares titles the way users expect ("Standup" == "STANDUP").
// Casers are stateful, so one is built per call.
func equalFold(a, b string) bool {
	c := cases.Fold()
	return c.String(strings.TrimSpace(a)) == c.String(strings.TrimSpace(b))
}

// Extract Unicode letters with optional trailing numbers (e.g., "q3").
var titleWordRE = regexp.MustCompile(`[\p{L}]+[\p{N}]*`)

// Minimal English stop-words set for compact titles.
var titleStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "to": {}, "in": {},
	"is": {}, "are": {}, "for": {}, "on": {}, "with": {}, "by": {}, "from": {},
	"at": {}, "as": {}, "that": {}, "this": {}, "it": {}, "be": {}, "was": {}, "were": {},
	"we": {}, "our": {}, "notes": {}, "meeting": {},
}

// titleFromNotes derives a short title from the first non-blank line of
// notes, dropping stop-words and title-casing the rest. It returns "" when
// nothing usable remains.
func titleFromNotes(notes string, locale language.Tag, maxWords, maxRunes int) string {
	var first string
	for _, ln := range strings.Split(notes, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			first = ln
			break
		}
	}
	toks := titleWordRE.FindAllString(strings.ToLower(first), -1)
	if len(toks) == 0 {
		return ""
	}
	if locale == language.Und {
		locale = language.English
	}
	caser := cases.Title(locale)

	out := make([]string, 0, maxWords)
	for _, w := range toks {
		if _, skip := titleStopWords[w]; skip {
			continue
		}
		out = append(out, caser.String(w))
		if len(out) >= maxWords {
			break
		}
	}
	title := strings.Join(out, " ")
	if maxRunes > 0 && utf8.RuneCountInString(title) > maxRunes {
		title = strings.TrimSpace(string([]rune(title)[:maxRunes]))
	}
	return title
}

// SplitTags turns "a, b,,c " into [a b c].
func SplitTags(csv string) []string {
	out := []string{}
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
