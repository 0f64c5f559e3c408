package entities

import "time"

// ProgressEventType distinguishes stage updates from warnings and the
// terminal events
type ProgressEventType string

const (
	ProgressStage   ProgressEventType = "progress"
	ProgressWarning ProgressEventType = "warning"
	ProgressDone    ProgressEventType = "done"
	ProgressFailed  ProgressEventType = "error"
)

// Pipeline stages in execution order, with the percentage reported when
// each one starts
const (
	StageProcessingAudio    = "Processing audio file"
	StageTranscribing       = "Transcribing speech to text"
	StageGeneratingMinutes  = "Generating meeting minutes"
	StageGeneratingOutputs  = "Generating output files"
	StageProcessingComplete = "Processing complete"
)

// StagePercent maps each stage to its progress percentage
var StagePercent = map[string]int{
	StageProcessingAudio:    20,
	StageTranscribing:       40,
	StageGeneratingMinutes:  60,
	StageGeneratingOutputs:  80,
	StageProcessingComplete: 100,
}

// ProgressEvent is one progress notification for a run
type ProgressEvent struct {
	RunID     string            `json:"run_id"`
	Type      ProgressEventType `json:"type"`
	Stage     string            `json:"stage,omitempty"`
	Percent   int               `json:"percent"`
	Message   string            `json:"message,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// IsTerminal reports whether no further events follow this one
func (e ProgressEvent) IsTerminal() bool {
	return e.Type == ProgressDone || e.Type == ProgressFailed
}
