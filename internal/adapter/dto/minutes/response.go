package minutes

import (
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// ExportResponse is one rendered payload. Content is base64 in JSON.
type ExportResponse struct {
	Format   string `json:"format" example:"HTML"`
	MIMEType string `json:"mime_type" example:"text/html"`
	FileName string `json:"file_name" example:"meeting_minutes.html"`
	Content  []byte `json:"content" swaggertype:"string" format:"base64"`
	URL      string `json:"url,omitempty"`
}

// MinutesResponse is returned by POST /v1/minutes
type MinutesResponse struct {
	RunID                string                 `json:"run_id"`
	Minutes              entities.MinutesRecord `json:"minutes"`
	Speakers             []entities.SpeakerTurn `json:"speakers"`
	Language             string                 `json:"language"`
	AudioDurationSeconds float64                `json:"audio_duration_seconds"`
	Exports              []ExportResponse       `json:"exports"`
	Warnings             []string               `json:"warnings"`
}

// RunResponse is a persisted pipeline run
type RunResponse struct {
	ID                   string                  `json:"id"`
	Status               string                  `json:"status" example:"completed"`
	SourceFile           string                  `json:"source_file"`
	Title                string                  `json:"title"`
	MeetingDate          string                  `json:"meeting_date,omitempty"`
	Participants         []string                `json:"participants"`
	Model                string                  `json:"model"`
	Formats              []string                `json:"formats"`
	ChunkLength          int                     `json:"chunk_length"`
	MaxSummaryWords      int                     `json:"max_summary_words"`
	ErrorCode            string                  `json:"error_code,omitempty"`
	LastError            string                  `json:"last_error,omitempty"`
	AudioDurationSeconds float64                 `json:"audio_duration_seconds"`
	Minutes              *entities.MinutesRecord `json:"minutes,omitempty"`
	Exports              []string                `json:"exports"`
	Warnings             []string                `json:"warnings"`
	StartedAt            time.Time               `json:"started_at"`
	CompletedAt          *time.Time              `json:"completed_at,omitempty"`
}

// ModelResponse describes one generation model preset
type ModelResponse struct {
	Name    string `json:"name" example:"qwen2.5-7b-instruct"`
	Kind    string `json:"kind" example:"qwen"`
	Path    string `json:"path" example:"Qwen/Qwen2.5-7B-Instruct"`
	Default bool   `json:"default"`
}
