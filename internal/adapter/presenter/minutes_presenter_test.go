package presenter

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

func TestToRunResponse_ExportsInCanonicalOrder(t *testing.T) {
	run := entities.NewMinutesRun(uuid.New(), entities.NewMeetingRequest("Retro", "", nil, "/tmp/retro.wav"))
	run.MarkAsCompleted(entities.MinutesRecord{Summary: "ok"}, map[string]string{
		"TXT":  "minutes/x/meeting_minutes.txt",
		"PDF":  "minutes/x/meeting_minutes.pdf",
		"HTML": "minutes/x/meeting_minutes.html",
		"JSON": "minutes/x/meeting_minutes.json",
	}, nil)

	// map iteration order varies between calls
	for i := 0; i < 25; i++ {
		resp := ToRunResponse(run)
		require.NotNil(t, resp)
		assert.Equal(t, []string{"JSON", "HTML", "PDF", "TXT"}, resp.Exports)
	}
}

func TestToRunResponse_FailedRunHasNoMinutes(t *testing.T) {
	run := entities.NewMinutesRun(uuid.New(), entities.NewMeetingRequest("Retro", "", nil, "/tmp/retro.wav"))
	run.MarkAsFailed("TRANSCRIPTION_FAILED", "backend down", []string{"w"})

	resp := ToRunResponse(run)
	assert.Nil(t, resp.Minutes)
	assert.Empty(t, resp.Exports)
	assert.NotNil(t, resp.Exports)
	assert.Equal(t, "TRANSCRIPTION_FAILED", resp.ErrorCode)
	assert.Equal(t, []string{"w"}, resp.Warnings)
	assert.Empty(t, resp.Participants)
}

func TestToModelResponses_AppendsCustomDefault(t *testing.T) {
	custom, err := ai.ParseModel("org/custom-7b")
	require.NoError(t, err)

	out := ToModelResponses(ai.Presets(), custom)
	require.Len(t, out, len(ai.Presets())+1)
	last := out[len(out)-1]
	assert.True(t, last.Default)
	assert.Equal(t, "org/custom-7b", last.Path)
	for _, m := range out[:len(out)-1] {
		assert.False(t, m.Default)
	}
}
