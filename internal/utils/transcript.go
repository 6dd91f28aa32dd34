package utils

import (
	"strings"

	"intervai/internal/models"
)

// FormatTranscript renders one "- role: content" line per message, in order.
func FormatTranscript(transcript []models.TranscriptMessage) string {
	var b strings.Builder
	for _, m := range transcript {
		b.WriteString("- ")
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// TranscriptText joins the spoken content of every message with single spaces.
func TranscriptText(transcript []models.TranscriptMessage) string {
	parts := make([]string, len(transcript))
	for i, m := range transcript {
		parts[i] = m.Content
	}
	return strings.Join(parts, " ")
}
