package minutes

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// WordsPerMinute is the speaking rate used to estimate meeting length
const WordsPerMinute = 150

const demoSummary = "The team meeting covered three main areas: marketing campaign progress, \n" +
	"budget analysis, and technical status updates. Key highlights include:\n\n" +
	"• Marketing campaign has completed design phase and is moving to implementation\n" +
	"• Budget analysis shows 15% under budget, providing flexibility for additional features\n" +
	"• Technical development is on track with no major blockers\n" +
	"• Team agreed to allocate extra budget funds to user testing\n" +
	"• All systems are ready for the planned launch timeline"

// DemoSummary is the canned summary
func DemoSummary() string {
	return demoSummary
}

// DemoDecisions are the canned key decisions
func DemoDecisions() []string {
	return []string{
		"Allocate extra budget funds to user testing",
		"Proceed with campaign launch by end of next week",
	}
}

// DemoActionItems are the canned action items
func DemoActionItems() []entities.ActionItem {
	return []entities.ActionItem{
		{Task: "Finalize campaign launch preparations", Assignee: "John", DueDate: "End of next week", Priority: "High"},
		{Task: "Prepare budget reallocation proposal", Assignee: "Jane", DueDate: "Next meeting", Priority: "Medium"},
	}
}

// DemoNextSteps are the canned next steps
func DemoNextSteps() []string {
	return []string{
		"Review budget reallocation proposal in next meeting",
		"Monitor campaign launch progress",
		"Schedule user testing sessions",
	}
}

// EstimateDuration converts transcript length into "<N> minutes" at 150
// words per minute, never less than one
func EstimateDuration(transcript string) string {
	minutes := len(strings.Fields(transcript)) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// DemoMinutes builds the backend-free record. Output depends only on the
// request and the transcript.
func DemoMinutes(req entities.MeetingRequest, transcript entities.Transcript) entities.MinutesRecord {
	record := entities.MinutesRecord{
		MeetingInfo:    meetingInfo(req, transcript),
		Summary:        DemoSummary(),
		KeyDecisions:   DemoDecisions(),
		ActionItems:    DemoActionItems(),
		NextSteps:      DemoNextSteps(),
		FullTranscript: transcript.Text,
	}
	record.Normalize()
	return record
}

func meetingInfo(req entities.MeetingRequest, transcript entities.Transcript) entities.MeetingInfo {
	title := req.Title
	if title == "" {
		title = entities.DefaultMeetingTitle
	}
	participants := make([]string, len(req.Participants))
	copy(participants, req.Participants)
	return entities.MeetingInfo{
		Title:        title,
		Date:         req.Date,
		Participants: participants,
		Duration:     EstimateDuration(transcript.Text),
	}
}
