package evaluation

// TextPair is a reference text and the text produced by the system
type TextPair struct {
	Reference  string `json:"reference"`
	Hypothesis string `json:"hypothesis"`
}

// EvaluateRequest scores a transcription and a summary in one call
type EvaluateRequest struct {
	Transcription *TextPair `json:"transcription" validate:"required"`
	Summarization *TextPair `json:"summarization" validate:"required"`
}
