package entities

import (
	"strings"
)

// DefaultMeetingTitle is used when a request carries no title
const DefaultMeetingTitle = "Meeting"

// MeetingRequest is the immutable input to one pipeline run
type MeetingRequest struct {
	Title          string   `json:"title" yaml:"title"`
	Date           string   `json:"date" yaml:"date"`
	Participants   []string `json:"participants" yaml:"participants"`
	SourceFilePath string   `json:"source_file_path" yaml:"source_file_path"`
}

// NewMeetingRequest trims metadata and applies the default title
func NewMeetingRequest(title, date string, participants []string, sourcePath string) MeetingRequest {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultMeetingTitle
	}
	return MeetingRequest{
		Title:          title,
		Date:           strings.TrimSpace(date),
		Participants:   CleanParticipants(participants),
		SourceFilePath: sourcePath,
	}
}

// ParseParticipants splits a newline-separated participant list
func ParseParticipants(raw string) []string {
	return CleanParticipants(strings.Split(raw, "\n"))
}

// CleanParticipants trims names and drops blanks, keeping order
func CleanParticipants(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(strings.TrimSuffix(n, "\r"))
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
