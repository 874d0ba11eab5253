// Package export produces a plain-text transcript of a conversation.
package export

import (
	"fmt"
	"strings"
	"time"

	"wanderlust/backend/internal/model"
)

// TimestampLayout is the localized date-time format used in transcripts.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// MimeType is the content type of a transcript.
const MimeType = "text/plain; charset=utf-8"

var separator = strings.Repeat("-", 40)

// SenderLabel returns the transcript label for a role.
func SenderLabel(role model.Role) string {
	if role == model.RoleUser {
		return "You"
	}
	return "Guide"
}

// Transcript renders messages in log order. Each entry is
// "[time] Sender:\ntext\n" followed by a 40-dash separator line; entries are
// joined by a blank line. A nil loc means time.Local.
func Transcript(messages []model.Message, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	entries := make([]string, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, fmt.Sprintf("[%s] %s:\n%s\n%s\n",
			m.Timestamp.In(loc).Format(TimestampLayout),
			SenderLabel(m.Role),
			m.Text,
			separator,
		))
	}
	return strings.Join(entries, "\n")
}

// Filename is the suggested download name for a transcript made at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("wanderlust-itinerary-%s.txt", now.UTC().Format("2006-01-02"))
}
