package transcription

import (
	"regexp"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Diarization defaults
const (
	DefaultSpeaker = "Moderator"
	WordsPerMinute = 150
)

var speakerPrefix = regexp.MustCompile(`^([A-Z][\p{L}0-9 .'-]{0,40}):\s*(.*)$`)

// Diarize attributes transcript spans to speakers. Speaker labelled segments
// are used when present, merging consecutive segments of one speaker.
// Otherwise lines prefixed with "Name:" are attributed to that name and
// the rest to the moderator, with start times estimated from word count.
func Diarize(t entities.Transcript) []entities.SpeakerTurn {
	if hasSpeakerLabels(t.Segments) {
		return turnsFromSegments(t.Segments)
	}
	return turnsFromText(t.Text)
}

func hasSpeakerLabels(segments []entities.Segment) bool {
	for _, s := range segments {
		if s.Speaker != "" {
			return true
		}
	}
	return false
}

func turnsFromSegments(segments []entities.Segment) []entities.SpeakerTurn {
	turns := make([]entities.SpeakerTurn, 0, len(segments))
	for _, s := range segments {
		speaker := s.Speaker
		if speaker == "" {
			speaker = DefaultSpeaker
		}
		if n := len(turns); n > 0 && turns[n-1].Speaker == speaker {
			turns[n-1].Text = strings.TrimSpace(turns[n-1].Text + " " + s.Text)
			continue
		}
		turns = append(turns, entities.SpeakerTurn{Speaker: speaker, Text: s.Text, Start: s.Start})
	}
	return turns
}

func turnsFromText(text string) []entities.SpeakerTurn {
	turns := []entities.SpeakerTurn{}
	wordsSoFar := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		speaker, body := DefaultSpeaker, line
		if m := speakerPrefix.FindStringSubmatch(line); m != nil {
			speaker, body = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		}

		start := float64(wordsSoFar) * 60 / WordsPerMinute
		wordsSoFar += len(strings.Fields(body))

		if n := len(turns); n > 0 && turns[n-1].Speaker == speaker {
			turns[n-1].Text = strings.TrimSpace(turns[n-1].Text + " " + body)
			continue
		}
		turns = append(turns, entities.SpeakerTurn{Speaker: speaker, Text: body, Start: start})
	}
	return turns
}
