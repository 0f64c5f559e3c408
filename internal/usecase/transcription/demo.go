package transcription

import (
	"context"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

var demoParagraphs = []string{
	"Good morning everyone, thank you for joining today's team meeting. Let's start with our project updates. John, could you please share the status of the marketing campaign?",
	"John: Sure, the campaign is progressing well. We've completed the design phase and are now moving into the implementation stage. We expect to launch by the end of next week.",
	"Great, thank you John. Jane, how are we doing with the budget analysis?",
	"Jane: The budget analysis is complete. We're currently 15% under budget, which gives us some flexibility for additional features. I recommend we allocate the extra funds to user testing.",
	"Excellent suggestion. Let's make that decision official. Bob, any technical blockers we should be aware of?",
	"Bob: No major blockers at the moment. The API integration is complete and all tests are passing. We should be ready for the launch timeline.",
	"Perfect. Let's wrap up with action items. John will finalize the campaign launch, Jane will prepare the budget reallocation proposal, and Bob will conduct final testing. Meeting adjourned.",
}

// DemoTranscript returns the canned team meeting transcript
func DemoTranscript() entities.Transcript {
	return entities.Transcript{
		Text: strings.Join(demoParagraphs, "\n\n"),
		Segments: []entities.Segment{
			{Start: 0, End: 15, Text: "Good morning everyone, thank you for joining today's team meeting."},
		},
		Language: entities.DefaultLanguage,
	}
}

// DemoBackend ignores the audio and returns DemoTranscript. Used offline
// and in tests.
type DemoBackend struct{}

func (DemoBackend) TranscribeFile(ctx context.Context, _ string, _ ai.SpeechOptions) (*ai.SpeechResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := DemoTranscript()
	res := &ai.SpeechResult{Text: t.Text, Language: t.Language}
	for _, s := range t.Segments {
		res.Segments = append(res.Segments, ai.SpeechSegment{Start: s.Start, End: s.End, Text: s.Text})
	}
	return res, nil
}
