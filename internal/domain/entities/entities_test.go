package entities

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSegments(t *testing.T) {
	in := []Segment{
		{Start: 5, End: 9, Text: "second"},
		{Start: 0, End: 6, Text: "first"},
		{Start: 9, End: 8, Text: "backwards"},
		{Start: 12, End: 12},
	}

	out := NormalizeSegments(in)
	require.Len(t, out, 3)
	assert.Equal(t, "first", out[0].Text)
	assert.Equal(t, 5.0, out[0].End, "end is clipped to next start")
	assert.Equal(t, "second", out[1].Text)
	assert.Equal(t, 9.0, out[2].End, "end never precedes start")

	for i := 0; i+1 < len(out); i++ {
		assert.LessOrEqual(t, out[i].Start, out[i+1].Start)
		assert.LessOrEqual(t, out[i].End, out[i+1].Start)
	}
}

func TestNewMeetingRequest(t *testing.T) {
	req := NewMeetingRequest("  ", " 2024-05-01 ", []string{" Ann ", "", "Ben\r"}, "/tmp/a.mp3")
	assert.Equal(t, DefaultMeetingTitle, req.Title)
	assert.Equal(t, "2024-05-01", req.Date)
	assert.Equal(t, []string{"Ann", "Ben"}, req.Participants)
	assert.Equal(t, "/tmp/a.mp3", req.SourceFilePath)
}

func TestParseParticipants(t *testing.T) {
	assert.Equal(t, []string{"Ann", "Ben", "Cy"}, ParseParticipants("Ann\r\nBen\n\n Cy "))
	assert.Empty(t, ParseParticipants(""))
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats([]string{"json, html", "pdf", "JSON", "unknown", ""})
	assert.Equal(t, []ExportFormat{FormatJSON, FormatHTML, FormatPDF, "UNKNOWN"}, got)
}

func TestExportFormat_MIMEAndFileName(t *testing.T) {
	tests := []struct {
		f    ExportFormat
		mime string
		name string
	}{
		{FormatJSON, "application/json", "meeting_minutes.json"},
		{FormatHTML, "text/html", "meeting_minutes.html"},
		{FormatPDF, "application/pdf", "meeting_minutes.pdf"},
		{FormatTXT, "text/plain", "meeting_minutes.txt"},
		{"CSV", "text/plain", "meeting_minutes.csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.mime, tt.f.MIMEType())
		assert.Equal(t, tt.name, tt.f.FileName())
	}
}

func TestExportBundle_Formats(t *testing.T) {
	b := ExportBundle{FormatPDF: nil, FormatJSON: nil, FormatTXT: nil}
	assert.Equal(t, []ExportFormat{FormatJSON, FormatPDF, FormatTXT}, b.Formats())
}

func TestSortFormats(t *testing.T) {
	for i := 0; i < 20; i++ {
		got := SortFormats([]ExportFormat{"CSV", FormatTXT, FormatPDF, "DOCX", FormatHTML, FormatJSON})
		assert.Equal(t, []ExportFormat{FormatJSON, FormatHTML, FormatPDF, FormatTXT, "CSV", "DOCX"}, got)
	}

	b := ExportBundle{"CSV": nil, "DOCX": nil, FormatHTML: nil}
	assert.Equal(t, []ExportFormat{FormatHTML, "CSV", "DOCX"}, b.Formats())
}

func TestMinutesRecord_Normalize(t *testing.T) {
	m := MinutesRecord{
		KeyDecisions: strings.Split("a b c d e f g", " "),
		ActionItems:  make([]ActionItem, 7),
	}
	m.Normalize()
	assert.Len(t, m.KeyDecisions, MaxKeyDecisions)
	assert.Len(t, m.ActionItems, MaxActionItems)
	assert.NotNil(t, m.NextSteps)
	assert.NotNil(t, m.MeetingInfo.Participants)
}

func TestNewActionItem_Defaults(t *testing.T) {
	item := NewActionItem("Write docs", "", "", "")
	assert.Equal(t, ActionItem{Task: "Write docs", Assignee: "Unassigned", DueDate: "TBD", Priority: "Medium"}, item)
}

func TestMinutesRun_Lifecycle(t *testing.T) {
	req := NewMeetingRequest("Sprint Review", "", []string{"Ann"}, "/tmp/x.wav")
	run := NewMinutesRun(uuid.New(), req)
	assert.Equal(t, RunStatusProcessing, run.Status)
	assert.False(t, run.IsFinished())

	run.MarkAsCompleted(MinutesRecord{Summary: "ok"}, nil, []string{"w"})
	assert.Equal(t, RunStatusCompleted, run.Status)
	assert.Equal(t, "ok", run.Minutes.Data().Summary)
	assert.NotNil(t, run.ExportKeys.Data())
	assert.NotNil(t, run.CompletedAt)

	failed := NewMinutesRun(uuid.New(), req)
	failed.MarkAsFailed("MEDIA_PROCESSING_FAILED", "boom", nil)
	assert.True(t, failed.IsFinished())
	assert.Equal(t, "MEDIA_PROCESSING_FAILED", *failed.ErrorCode)
}
