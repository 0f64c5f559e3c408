package entities

import "sort"

// DefaultLanguage is reported when the recognizer cannot detect one
const DefaultLanguage = "en"

// Segment represents a contiguous speech segment
type Segment struct {
	Start   float64 `json:"start" yaml:"start"`
	End     float64 `json:"end" yaml:"end"`
	Text    string  `json:"text" yaml:"text"`
	Speaker string  `json:"speaker,omitempty" yaml:"speaker,omitempty"`
}

// Transcript is the output of speech recognition. Segments are ordered by
// Start and never overlap.
type Transcript struct {
	Text     string    `json:"text" yaml:"text"`
	Segments []Segment `json:"segments" yaml:"segments"`
	Language string    `json:"language" yaml:"language"`
}

// SpeakerTurn attributes a span of the transcript to a speaker
type SpeakerTurn struct {
	Speaker string  `json:"speaker" yaml:"speaker"`
	Text    string  `json:"text" yaml:"text"`
	Start   float64 `json:"start" yaml:"start"`
}

// NormalizeSegments sorts segments by start time and clips each segment's
// end so it never runs past the next segment's start. Empty segments are
// dropped.
func NormalizeSegments(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if s.Text == "" && s.End <= s.Start {
			continue
		}
		if s.End < s.Start {
			s.End = s.Start
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	for i := 0; i+1 < len(out); i++ {
		if out[i].End > out[i+1].Start {
			out[i].End = out[i+1].Start
		}
	}
	return out
}
