package presenter

import (
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

// ToMinutesResponse converts a pipeline result to the upload response
func ToMinutesResponse(res *pipeline.Result) *minutes.MinutesResponse {
	if res == nil {
		return nil
	}

	exports := make([]minutes.ExportResponse, 0, len(res.Bundle))
	for _, format := range res.Bundle.Formats() {
		exports = append(exports, minutes.ExportResponse{
			Format:   string(format),
			MIMEType: format.MIMEType(),
			FileName: format.FileName(),
			Content:  res.Bundle[format],
			URL:      res.ExportURLs[format],
		})
	}

	speakers := res.Speakers
	if speakers == nil {
		speakers = []entities.SpeakerTurn{}
	}
	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return &minutes.MinutesResponse{
		RunID:                res.RunID,
		Minutes:              res.Minutes,
		Speakers:             speakers,
		Language:             res.Transcript.Language,
		AudioDurationSeconds: res.AudioDurationSeconds,
		Exports:              exports,
		Warnings:             warnings,
	}
}

// ToRunResponse converts a persisted run to its DTO
func ToRunResponse(r *entities.MinutesRun) *minutes.RunResponse {
	if r == nil {
		return nil
	}

	response := &minutes.RunResponse{
		ID:                   r.ID.String(),
		Status:               string(r.Status),
		SourceFile:           r.SourceFile,
		Title:                r.Title,
		MeetingDate:          r.MeetingDate,
		Participants:         orEmpty(r.Participants),
		Model:                r.Model,
		Formats:              orEmpty(r.Formats),
		ChunkLength:          r.ChunkLength,
		MaxSummaryWords:      r.MaxSummaryWords,
		AudioDurationSeconds: r.AudioDurationSeconds,
		Exports:              []string{},
		Warnings:             orEmpty(r.Warnings),
		StartedAt:            r.StartedAt,
		CompletedAt:          r.CompletedAt,
	}
	if r.ErrorCode != nil {
		response.ErrorCode = *r.ErrorCode
	}
	if r.LastError != nil {
		response.LastError = *r.LastError
	}

	// Minutes are only meaningful once the run completed
	if r.Status == entities.RunStatusCompleted {
		record := r.Minutes.Data()
		response.Minutes = &record
		for _, format := range entities.SortFormats(entities.ParseFormats(mapKeys(r.ExportKeys.Data()))) {
			response.Exports = append(response.Exports, string(format))
		}
	}

	return response
}

// ToModelResponses lists the presets, flagging the configured default
func ToModelResponses(presets []ai.PresetInfo, current ai.Model) []minutes.ModelResponse {
	out := make([]minutes.ModelResponse, 0, len(presets)+1)
	found := false
	for _, p := range presets {
		isDefault := p.Path == current.Path()
		found = found || isDefault
		out = append(out, minutes.ModelResponse{
			Name:    p.Name,
			Kind:    string(p.Kind),
			Path:    p.Path,
			Default: isDefault,
		})
	}
	if !found && !current.IsZero() {
		out = append(out, minutes.ModelResponse{
			Name:    current.Name(),
			Kind:    string(current.Kind),
			Path:    current.Path(),
			Default: true,
		})
	}
	return out
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func mapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
