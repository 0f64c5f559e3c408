package transcription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

func TestDiarize_DemoTranscriptByPrefix(t *testing.T) {
	turns := Diarize(DemoTranscript())

	speakers := make([]string, 0, len(turns))
	for _, turn := range turns {
		speakers = append(speakers, turn.Speaker)
	}
	assert.Equal(t, []string{"Moderator", "John", "Moderator", "Jane", "Moderator", "Bob", "Moderator"}, speakers)

	assert.Equal(t, 0.0, turns[0].Start)
	assert.True(t, turns[1].Start > 0)
	for i := 1; i < len(turns); i++ {
		assert.GreaterOrEqual(t, turns[i].Start, turns[i-1].Start)
	}
	assert.Equal(t, "Sure, the campaign is progressing well. We've completed the design phase and are now moving into the implementation stage. We expect to launch by the end of next week.", turns[1].Text)
}

func TestDiarize_StartEstimateUsesWordsPerMinute(t *testing.T) {
	// 150 words before Ann speaks puts her at one minute
	words := make([]byte, 0, 150*2)
	for i := 0; i < 150; i++ {
		words = append(words, "w "...)
	}
	text := string(words) + "\nAnn: hello"

	turns := Diarize(entities.Transcript{Text: text})
	require.Len(t, turns, 2)
	assert.Equal(t, "Ann", turns[1].Speaker)
	assert.InDelta(t, 60.0, turns[1].Start, 1e-9)
}

func TestDiarize_MergesLabelledSegments(t *testing.T) {
	turns := Diarize(entities.Transcript{Segments: []entities.Segment{
		{Start: 0, End: 2, Text: "hi", Speaker: "A"},
		{Start: 2, End: 4, Text: "there", Speaker: "A"},
		{Start: 4, End: 6, Text: "hello", Speaker: "B"},
		{Start: 6, End: 7, Text: "bye", Speaker: "A"},
	}})

	assert.Equal(t, []entities.SpeakerTurn{
		{Speaker: "A", Text: "hi there", Start: 0},
		{Speaker: "B", Text: "hello", Start: 4},
		{Speaker: "A", Text: "bye", Start: 6},
	}, turns)
}

func TestDiarize_Empty(t *testing.T) {
	assert.Empty(t, Diarize(entities.Transcript{}))
}
