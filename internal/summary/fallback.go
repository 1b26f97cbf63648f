package summary

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxFallbackItems = 5
	wordsPerMinute   = 150
	keyPointMinRunes = 30
)

// actionWords mark a line as an action item.
var actionWords = []string{
	"todo", "action", "follow up", "next steps", "assign", "complete", "schedule", "deadline",
}

// keyWords mark a line as a key discussion point.
var keyWords = []string{
	"decision", "important", "critical", "deadline", "budget", "timeline", "agreed", "discussed",
}

// Fallback renders a deterministic markdown summary of notes without any
// external call. It is a pure function: identical input yields identical
// output.
func Fallback(notes, meetingName, meetingDate string) string {
	lines := nonBlankLines(notes)
	wordCount := len(strings.Fields(notes))

	var keyPoints, actionItems []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		if len(actionItems) < maxFallbackItems && containsAny(lower, actionWords) {
			actionItems = append(actionItems, strings.TrimSpace(line))
		}
		if len(keyPoints) < maxFallbackItems && isKeyPoint(line, lower) {
			keyPoints = append(keyPoints, strings.TrimSpace(line))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Meeting Summary: %s\n\n", meetingName)
	fmt.Fprintf(&b, "**Date:** %s\n", meetingDate)
	fmt.Fprintf(&b, "**Duration:** ~%d minutes (estimated)\n\n", ceilDiv(wordCount, wordsPerMinute))

	if len(keyPoints) > 0 {
		b.WriteString("## Key Discussion Points\n")
		for i, p := range keyPoints {
			fmt.Fprintf(&b, "%d. %s\n", i+1, p)
		}
		b.WriteString("\n")
	}

	if len(actionItems) > 0 {
		b.WriteString("## Action Items\n")
		for _, item := range actionItems {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "This meeting covered %d discussion points with approximately %d words of notes. ", len(lines), wordCount)
	b.WriteString("The summary above was automatically generated from the meeting content.\n\n")
	b.WriteString("*Note: This is a fallback summary. For AI-powered analysis, ensure your API configuration is correct.*")
	return b.String()
}

func isKeyPoint(line, lower string) bool {
	return utf8.RuneCountInString(line) > keyPointMinRunes ||
		strings.Contains(line, "?") ||
		containsAny(lower, keyWords)
}

func nonBlankLines(s string) []string {
	raw := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
