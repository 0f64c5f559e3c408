package export

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// TextRenderer emits the plain document layout
type TextRenderer struct{}

func (TextRenderer) Render(record entities.MinutesRecord) ([]byte, error) {
	return []byte(plainDocument(record)), nil
}

// plainDocument is shared by the TXT and PDF renderers
func plainDocument(record entities.MinutesRecord) string {
	var b strings.Builder
	info := record.MeetingInfo

	fmt.Fprintf(&b, "Meeting Minutes: %s\n", info.Title)
	fmt.Fprintf(&b, "Date: %s\n", info.Date)
	fmt.Fprintf(&b, "Duration: %s\n", info.Duration)
	fmt.Fprintf(&b, "Participants: %s\n", strings.Join(info.Participants, ", "))

	b.WriteString("\nSummary:\n")
	b.WriteString(record.Summary)
	b.WriteString("\n")

	b.WriteString("\nKey Decisions:\n")
	for _, d := range record.KeyDecisions {
		fmt.Fprintf(&b, "• %s\n", d)
	}

	b.WriteString("\nAction Items:\n")
	for _, item := range record.ActionItems {
		fmt.Fprintf(&b, "• %s: %s\n", item.Assignee, item.Task)
	}

	b.WriteString("\nNext Steps:\n")
	for _, s := range record.NextSteps {
		fmt.Fprintf(&b, "• %s\n", s)
	}

	b.WriteString("\nFull Transcript:\n")
	b.WriteString(record.FullTranscript)
	b.WriteString("\n")

	return b.String()
}
