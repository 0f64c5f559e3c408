package ai

// SpeechSegment is a timed span returned by a speech recognition backend
type SpeechSegment struct {
	Start   float64
	End     float64
	Text    string
	Speaker string
}

// SpeechResult is the backend-neutral shape of a recognition response
type SpeechResult struct {
	Text            string
	Language        string
	Segments        []SpeechSegment
	DurationSeconds float64
}

// SpeechOptions tunes one recognition request
type SpeechOptions struct {
	// ModelSize is one of tiny, base, small, medium, large
	ModelSize string
	// SpeakerLabels asks the backend to attribute segments to speakers
	SpeakerLabels bool
}
