package summary

import (
	"fmt"
	"unicode/utf8"
)

// TruncationMarker is appended to notes cut down to the prompt budget.
const TruncationMarker = "...\n\n[Note: Content was truncated due to length]"

// DefaultPromptNotes is the default prompt budget for notes, in runes.
const DefaultPromptNotes = 3000

// TruncateNotes cuts notes to maxRunes and appends TruncationMarker when
// anything was dropped. maxRunes <= 0 disables truncation.
func TruncateNotes(notes string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(notes) <= maxRunes {
		return notes
	}
	return string([]rune(notes)[:maxRunes]) + TruncationMarker
}

// BuildPrompt renders the generation prompt for a request.
func BuildPrompt(meetingName, meetingDate, notes string, maxNotes int) string {
	return fmt.Sprintf(`
You are an expert meeting notes summarizer. Create a concise summary in under 500 words.

Meeting: %s
Date: %s

Notes:
%s

Format with:
# Summary
## Key Points (3-5 bullets)
## Decisions Made (if any)
## Action Items (if any)

Be concise and focus on the most important information.
`, meetingName, meetingDate, TruncateNotes(notes, maxNotes))
}
