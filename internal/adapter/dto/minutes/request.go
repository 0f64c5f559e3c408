package minutes

// CreateMinutesRequest holds the form fields of a multipart upload. The
// recording itself arrives in the "file" part.
type CreateMinutesRequest struct {
	RunID           string   `form:"run_id" validate:"omitempty,uuid"`
	Title           string   `form:"title" validate:"max=255"`
	Date            string   `form:"date" validate:"iso_date"`
	Participants    string   `form:"participants"`
	Model           string   `form:"model" validate:"model_preset"`
	Formats         []string `form:"formats" validate:"dive,minutes_format"`
	ChunkLength     int      `form:"chunk_length" validate:"omitempty,min=10,max=60"`
	MaxSummaryWords int      `form:"max_summary_words" validate:"omitempty,min=100,max=1000"`
}

// RunIDParam binds the :id path parameter
type RunIDParam struct {
	ID string `param:"id" validate:"required,uuid"`
}

// ExportParam binds the export download path
type ExportParam struct {
	ID     string `param:"id" validate:"required,uuid"`
	Format string `param:"format" validate:"required,minutes_format"`
}
