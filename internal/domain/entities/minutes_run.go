package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RunStatus represents the status of a pipeline run
type RunStatus string

const (
	RunStatusProcessing RunStatus = "processing" // Pipeline is running
	RunStatusCompleted  RunStatus = "completed"  // Minutes and exports produced
	RunStatusFailed     RunStatus = "failed"     // Aborted by a fatal stage error
)

// MinutesRun records one pipeline execution for later lookup
type MinutesRun struct {
	ID           uuid.UUID                  `json:"id" gorm:"type:uuid;primary_key"`
	SourceFile   string                     `json:"source_file" gorm:"type:text;not null"`
	Title        string                     `json:"title" gorm:"type:varchar(255);not null"`
	MeetingDate  string                     `json:"meeting_date" gorm:"type:varchar(32)"`
	Participants datatypes.JSONSlice[string] `json:"participants" gorm:"type:jsonb"`

	// Options
	Model           string                     `json:"model" gorm:"type:varchar(255)"`
	Formats         datatypes.JSONSlice[string] `json:"formats" gorm:"type:jsonb"`
	ChunkLength     int                        `json:"chunk_length" gorm:"type:integer"`
	MaxSummaryWords int                        `json:"max_summary_words" gorm:"type:integer"`

	// Outcome
	Status               RunStatus                             `json:"status" gorm:"type:varchar(32);not null;index;default:'processing'"`
	ErrorCode            *string                               `json:"error_code,omitempty" gorm:"type:varchar(64)"`
	LastError            *string                               `json:"last_error,omitempty" gorm:"type:text"`
	AudioDurationSeconds float64                               `json:"audio_duration_seconds" gorm:"type:double precision;default:0"`
	Minutes              datatypes.JSONType[MinutesRecord]     `json:"minutes" gorm:"type:jsonb"`
	ExportKeys           datatypes.JSONType[map[string]string] `json:"export_keys" gorm:"type:jsonb"`
	Warnings             datatypes.JSONSlice[string]           `json:"warnings" gorm:"type:jsonb"`

	StartedAt   time.Time  `json:"started_at" gorm:"type:timestamp"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:timestamp"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewMinutesRun creates a run in processing state
func NewMinutesRun(id uuid.UUID, req MeetingRequest) *MinutesRun {
	now := time.Now()
	return &MinutesRun{
		ID:           id,
		SourceFile:   req.SourceFilePath,
		Title:        req.Title,
		MeetingDate:  req.Date,
		Participants: datatypes.JSONSlice[string](req.Participants),
		Status:       RunStatusProcessing,
		StartedAt:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// MarkAsCompleted stores the minutes and the object keys of uploaded exports
func (r *MinutesRun) MarkAsCompleted(record MinutesRecord, exportKeys map[string]string, warnings []string) {
	r.Status = RunStatusCompleted
	r.Minutes = datatypes.NewJSONType(record)
	if exportKeys == nil {
		exportKeys = map[string]string{}
	}
	r.ExportKeys = datatypes.NewJSONType(exportKeys)
	r.Warnings = datatypes.JSONSlice[string](warnings)
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// MarkAsFailed marks run as failed with the error kind and message
func (r *MinutesRun) MarkAsFailed(code, errMsg string, warnings []string) {
	r.Status = RunStatusFailed
	r.ErrorCode = &code
	r.LastError = &errMsg
	r.Warnings = datatypes.JSONSlice[string](warnings)
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// IsFinished reports whether the run reached a terminal status
func (r *MinutesRun) IsFinished() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusFailed
}

// TableName specifies the table name for GORM
func (MinutesRun) TableName() string {
	return "minutes_runs"
}
