package evaluation

import "github.com/johnquangdev/meeting-minutes/internal/domain/entities"

// EvaluateResponse carries both metric sets and the formatted report
type EvaluateResponse struct {
	Transcription entities.TranscriptionMetrics `json:"transcription"`
	Summarization entities.SummarizationMetrics `json:"summarization"`
	Report        string                        `json:"report"`
}
