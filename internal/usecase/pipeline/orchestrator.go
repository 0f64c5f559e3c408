package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/transcription"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jobcontext"
	"github.com/johnquangdev/meeting-minutes/pkg/metrics"
)

// MediaConverter prepares uploads for transcription
type MediaConverter interface {
	Normalize(ctx context.Context, path string, chunkLength int) (string, error)
	EstimateDuration(ctx context.Context, path string) float64
	Cleanup(path string)
}

// Exporter renders minutes into payloads
type Exporter interface {
	Export(record entities.MinutesRecord, formats []entities.ExportFormat) (entities.ExportBundle, error)
}

// ArtifactStore keeps rendered payloads for later download
type ArtifactStore interface {
	UploadExport(ctx context.Context, runID string, format entities.ExportFormat, data []byte) (string, error)
	PresignedURL(ctx context.Context, key string) (string, error)
}

// Options tune one run
type Options struct {
	Model           ai.Model
	Formats         []entities.ExportFormat
	ChunkLength     int
	MaxSummaryWords int
}

// Input is one submitted recording
type Input struct {
	// RunID is optional; a new one is generated when empty
	RunID   string
	Request entities.MeetingRequest
	Options Options
}

// Result is everything a run produced
type Result struct {
	RunID                string                          `json:"run_id"`
	Transcript           entities.Transcript             `json:"transcript"`
	Speakers             []entities.SpeakerTurn          `json:"speakers"`
	Minutes              entities.MinutesRecord          `json:"minutes"`
	Bundle               entities.ExportBundle           `json:"-"`
	ExportKeys           map[string]string               `json:"export_keys,omitempty"`
	ExportURLs           map[entities.ExportFormat]string `json:"export_urls,omitempty"`
	AudioDurationSeconds float64                         `json:"audio_duration_seconds"`
	Warnings             []string                        `json:"warnings"`
}

// Orchestrator runs a recording through conversion, transcription, minutes
// generation and export, in that order
type Orchestrator struct {
	converter   MediaConverter
	transcriber transcription.Service
	generators  *GeneratorPool
	exporter    Exporter
	runs        repositories.RunRepository
	artifacts   ArtifactStore
	defaults    config.MinutesConfig
	model       ai.Model
	metrics     *metrics.PipelineMetrics
	logger      *zap.Logger
}

// OrchestratorOption wires optional collaborators
type OrchestratorOption func(*Orchestrator)

// WithRunRepository persists every run
func WithRunRepository(repo repositories.RunRepository) OrchestratorOption {
	return func(o *Orchestrator) { o.runs = repo }
}

// WithArtifactStore uploads export payloads
func WithArtifactStore(store ArtifactStore) OrchestratorOption {
	return func(o *Orchestrator) { o.artifacts = store }
}

// WithMetrics records run and stage metrics
func WithMetrics(m *metrics.PipelineMetrics) OrchestratorOption {
	return func(o *Orchestrator) { o.metrics = m }
}

// NewOrchestrator creates an orchestrator. defaultModel is used when a run
// does not name one.
func NewOrchestrator(
	converter MediaConverter,
	transcriber transcription.Service,
	generators *GeneratorPool,
	exporter Exporter,
	defaults config.MinutesConfig,
	defaultModel ai.Model,
	logger *zap.Logger,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		converter:   converter,
		transcriber: transcriber,
		generators:  generators,
		exporter:    exporter,
		defaults:    defaults,
		model:       defaultModel,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ResolveOptions fills zero values from the configured defaults and
// validates ranges
func (o *Orchestrator) ResolveOptions(opts Options) (Options, error) {
	if opts.Model.IsZero() {
		opts.Model = o.model
	}
	if len(opts.Formats) == 0 {
		opts.Formats = entities.ParseFormats(o.defaults.Formats)
	}
	if opts.ChunkLength == 0 {
		opts.ChunkLength = o.defaults.ChunkLength
	}
	if opts.MaxSummaryWords == 0 {
		opts.MaxSummaryWords = o.defaults.MaxSummaryWords
	}

	if opts.ChunkLength < config.MinChunkLength || opts.ChunkLength > config.MaxChunkLength {
		return opts, errors.ErrInvalidRequest(fmt.Sprintf("chunk length must be between %d and %d seconds",
			config.MinChunkLength, config.MaxChunkLength))
	}
	if opts.MaxSummaryWords < config.MinMaxSummaryWords || opts.MaxSummaryWords > config.MaxMaxSummaryWords {
		return opts, errors.ErrInvalidRequest(fmt.Sprintf("max summary words must be between %d and %d",
			config.MinMaxSummaryWords, config.MaxMaxSummaryWords))
	}
	return opts, nil
}

// Process runs the whole pipeline for one recording. Media and transcription
// failures abort the run; generation problems become warnings; an export
// failure aborts with no partial bundle. The normalized audio is removed on
// every path.
func (o *Orchestrator) Process(ctx context.Context, in Input, observer Observer) (*Result, error) {
	if observer == nil {
		observer = Nop
	}

	opts, err := o.ResolveOptions(in.Options)
	if err != nil {
		notifyFailure(observer, err)
		return nil, err
	}
	if in.Request.SourceFilePath == "" {
		err := errors.ErrInvalidRequest("source file is required")
		notifyFailure(observer, err)
		return nil, err
	}

	runID := in.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = jobcontext.WithRunID(ctx, runID)

	run := &runState{
		orchestrator: o,
		observer:     observer,
		result:       &Result{RunID: runID, Warnings: []string{}},
	}
	run.record = o.createRun(ctx, run, runID, in.Request, opts)

	result, err := run.execute(ctx, in.Request, opts)
	if err != nil {
		o.finishFailed(ctx, run, err)
		notifyFailure(observer, err)
		return nil, err
	}
	o.finishCompleted(ctx, run)
	return result, nil
}

type runState struct {
	orchestrator *Orchestrator
	observer     Observer
	result       *Result
	record       *entities.MinutesRun
}

func (r *runState) progress(stage string) {
	r.observer.OnProgress(stage, entities.StagePercent[stage])
}

func (r *runState) warn(ctx context.Context, message string) {
	r.result.Warnings = append(r.result.Warnings, message)
	r.observer.OnWarning(message)
	if log := r.orchestrator.logger; log != nil {
		log.Warn("⚠️ Pipeline warning",
			zap.String("run_id", jobcontext.GetRunID(ctx)),
			zap.String("warning", message),
		)
	}
}

func (r *runState) timed(stage string, start time.Time) {
	r.orchestrator.metrics.ObserveStage(stage, time.Since(start))
}

func (r *runState) execute(ctx context.Context, req entities.MeetingRequest, opts Options) (*Result, error) {
	o := r.orchestrator

	// Stage 1: media
	r.progress(entities.StageProcessingAudio)
	start := time.Now()
	audioPath, err := o.converter.Normalize(ctx, req.SourceFilePath, opts.ChunkLength)
	if err != nil {
		return nil, err
	}
	defer o.converter.Cleanup(audioPath)
	r.result.AudioDurationSeconds = o.converter.EstimateDuration(ctx, req.SourceFilePath)
	r.timed("media", start)

	// Stage 2: transcription
	r.progress(entities.StageTranscribing)
	start = time.Now()
	transcript, err := o.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	r.result.Transcript = *transcript
	r.result.Speakers = o.transcriber.Diarize(*transcript)
	r.timed("transcription", start)

	// Stage 3: minutes
	r.progress(entities.StageGeneratingMinutes)
	start = time.Now()
	generator := o.generators.Get(opts.Model)
	if err := generator.Load(ctx); err != nil {
		r.warn(ctx, fmt.Sprintf("model %s unavailable, using demo minutes: %v", opts.Model.Name(), err))
	}
	record, fallbacks := generator.GenerateMinutes(ctx, req, *transcript, opts.MaxSummaryWords)
	for _, f := range fallbacks {
		r.warn(ctx, f.String())
	}
	r.result.Minutes = record
	r.timed("minutes", start)

	// Stage 4: outputs
	r.progress(entities.StageGeneratingOutputs)
	start = time.Now()
	bundle, err := o.exporter.Export(record, opts.Formats)
	if err != nil {
		return nil, err
	}
	r.result.Bundle = bundle
	o.storeArtifacts(ctx, r, bundle)
	r.timed("export", start)

	r.progress(entities.StageProcessingComplete)
	return r.result, nil
}

func (o *Orchestrator) storeArtifacts(ctx context.Context, r *runState, bundle entities.ExportBundle) {
	if o.artifacts == nil || len(bundle) == 0 {
		return
	}
	keys := make(map[string]string, len(bundle))
	urls := make(map[entities.ExportFormat]string, len(bundle))
	for _, format := range bundle.Formats() {
		key, err := o.artifacts.UploadExport(ctx, r.result.RunID, format, bundle[format])
		if err != nil {
			r.warn(ctx, errors.ErrStorageFailed("upload "+string(format), err).Error())
			continue
		}
		keys[string(format)] = key
		url, err := o.artifacts.PresignedURL(ctx, key)
		if err != nil {
			r.warn(ctx, errors.ErrStorageFailed("presign "+string(format), err).Error())
			continue
		}
		urls[format] = url
	}
	r.result.ExportKeys = keys
	r.result.ExportURLs = urls
}

func (o *Orchestrator) createRun(ctx context.Context, r *runState, runID string, req entities.MeetingRequest, opts Options) *entities.MinutesRun {
	if o.runs == nil {
		return nil
	}
	id, err := uuid.Parse(runID)
	if err != nil {
		r.warn(ctx, fmt.Sprintf("run id %q is not a UUID, run will not be persisted", runID))
		return nil
	}

	formats := make([]string, 0, len(opts.Formats))
	for _, f := range opts.Formats {
		formats = append(formats, string(f))
	}

	record := entities.NewMinutesRun(id, req)
	record.Model = opts.Model.Path()
	record.Formats = datatypes.JSONSlice[string](formats)
	record.ChunkLength = opts.ChunkLength
	record.MaxSummaryWords = opts.MaxSummaryWords

	if err := o.runs.CreateRun(ctx, record); err != nil {
		r.warn(ctx, errors.ErrDBQueryFailed("create run", err).Error())
		return nil
	}
	return record
}

func (o *Orchestrator) finishCompleted(ctx context.Context, r *runState) {
	o.metrics.ObserveRun(string(entities.RunStatusCompleted))
	if o.logger != nil {
		o.logger.Info("✅ Minutes generated",
			zap.String("run_id", r.result.RunID),
			zap.Int("exports", len(r.result.Bundle)),
			zap.Int("warnings", len(r.result.Warnings)),
		)
	}
	if r.record == nil {
		return
	}
	r.record.AudioDurationSeconds = r.result.AudioDurationSeconds
	r.record.MarkAsCompleted(r.result.Minutes, r.result.ExportKeys, nil)
	o.saveRun(ctx, r)
}

func (o *Orchestrator) finishFailed(ctx context.Context, r *runState, cause error) {
	o.metrics.ObserveRun(string(entities.RunStatusFailed))
	if o.logger != nil {
		o.logger.Error("❌ Pipeline failed",
			zap.String("run_id", r.result.RunID),
			zap.String("code", errors.CodeOf(cause).String()),
			zap.Error(cause),
		)
	}
	if r.record == nil {
		return
	}
	r.record.AudioDurationSeconds = r.result.AudioDurationSeconds
	r.record.MarkAsFailed(errors.CodeOf(cause).String(), cause.Error(), nil)
	o.saveRun(ctx, r)
}

// saveRun writes the final state. The write uses a context that survives
// request cancellation, and its own failure is only a warning.
func (o *Orchestrator) saveRun(ctx context.Context, r *runState) {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	r.record.Warnings = datatypes.JSONSlice[string](r.result.Warnings)
	if err := o.runs.UpdateRun(saveCtx, r.record); err != nil {
		r.warn(ctx, errors.ErrDBQueryFailed("update run", err).Error())
	}
}

func notifyFailure(observer Observer, err error) {
	if f, ok := observer.(FailureObserver); ok {
		f.OnFailure(err)
	}
}
