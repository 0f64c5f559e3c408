package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	minutesdto "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/media"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

// MinutesProcessor runs one recording through the pipeline
type MinutesProcessor interface {
	Process(ctx context.Context, in pipeline.Input, observer pipeline.Observer) (*pipeline.Result, error)
}

// ExportLinker issues download URLs for stored exports
type ExportLinker interface {
	PresignedURL(ctx context.Context, key string) (string, error)
}

// MinutesController handles recording uploads and run lookups
type MinutesController struct {
	processor MinutesProcessor
	progress  cache.ProgressStore
	runs      repositories.RunRepository
	links     ExportLinker
	maxUpload int64
	tempDir   string
	logger    *zap.Logger
}

// MinutesOption wires optional collaborators into the controller
type MinutesOption func(*MinutesController)

// WithProgressStore enables progress snapshots and the SSE stream
func WithProgressStore(store cache.ProgressStore) MinutesOption {
	return func(mc *MinutesController) { mc.progress = store }
}

// WithRuns enables run lookups
func WithRuns(repo repositories.RunRepository) MinutesOption {
	return func(mc *MinutesController) { mc.runs = repo }
}

// WithExportLinker enables export download redirects
func WithExportLinker(links ExportLinker) MinutesOption {
	return func(mc *MinutesController) { mc.links = links }
}

// WithUploadLimit rejects uploads larger than maxBytes
func WithUploadLimit(maxBytes int64) MinutesOption {
	return func(mc *MinutesController) { mc.maxUpload = maxBytes }
}

// WithTempDir sets where uploads are spooled
func WithTempDir(dir string) MinutesOption {
	return func(mc *MinutesController) { mc.tempDir = dir }
}

// NewMinutesController creates a new minutes controller
func NewMinutesController(processor MinutesProcessor, logger *zap.Logger, opts ...MinutesOption) *MinutesController {
	mc := &MinutesController{processor: processor, logger: logger}
	for _, opt := range opts {
		opt(mc)
	}
	return mc
}

// Create processes an uploaded recording
// @Summary      Generate meeting minutes
// @Description  Uploads an audio or video recording and runs conversion, transcription, minutes generation and export synchronously
// @Tags         Minutes
// @Accept       multipart/form-data
// @Produce      json
// @Param        file               formData  file    true   "Recording (.mp3 .wav .mp4 .avi .mov .mkv)"
// @Param        title              formData  string  false  "Meeting title"
// @Param        date               formData  string  false  "Meeting date (YYYY-MM-DD)"
// @Param        participants       formData  string  false  "Participants, one per line"
// @Param        model              formData  string  false  "Model preset or custom identifier"
// @Param        formats            formData  []string  false  "Export formats (JSON, HTML, PDF, TXT)" collectionFormat(multi)
// @Param        chunk_length       formData  int     false  "Chunk length in seconds (10-60)"
// @Param        max_summary_words  formData  int     false  "Summary word limit (100-1000)"
// @Param        run_id             formData  string  false  "Client supplied run ID (UUID) for progress tracking"
// @Success      200  {object}  common.SuccessResponse{data=minutesdto.MinutesResponse}
// @Failure      400  {object}  common.ErrorResponse  "Invalid request"
// @Failure      415  {object}  common.ErrorResponse  "Unsupported media format"
// @Failure      422  {object}  common.ErrorResponse  "Media processing failed"
// @Failure      502  {object}  common.ErrorResponse  "Transcription failed"
// @Failure      500  {object}  common.ErrorResponse  "Export failed"
// @Router       /minutes [post]
func (mc *MinutesController) Create(c echo.Context) error {
	var req minutesdto.CreateMinutesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(mc.logger, c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return HandleError(mc.logger, c, errors.ErrInvalidRequest("file is required"))
	}
	if mc.maxUpload > 0 && fh.Size > mc.maxUpload {
		return HandleError(mc.logger, c, errors.ErrInvalidRequest(
			fmt.Sprintf("file exceeds the %d MB upload limit", mc.maxUpload>>20)))
	}
	if !media.IsSupported(fh.Filename) {
		return HandleError(mc.logger, c, media.UnsupportedFormat(fh.Filename))
	}

	opts, err := toOptions(req)
	if err != nil {
		return HandleError(mc.logger, c, err)
	}

	path, err := mc.spool(fh)
	if err != nil {
		return HandleError(mc.logger, c, errors.ErrInternal(err))
	}
	defer os.Remove(path)

	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	ctx := c.Request().Context()
	observer := pipeline.Nop
	if mc.progress != nil {
		observer = pipeline.NewProgressPublisher(ctx, mc.progress, runID, mc.logger)
	}

	meeting := entities.NewMeetingRequest(req.Title, req.Date, entities.ParseParticipants(req.Participants), path)
	res, err := mc.processor.Process(ctx, pipeline.Input{RunID: runID, Request: meeting, Options: opts}, observer)
	if err != nil {
		return HandleError(mc.logger, c, err)
	}

	return HandleSuccess(mc.logger, c, presenter.ToMinutesResponse(res))
}

// Get returns a persisted run
// @Summary      Get a run
// @Tags         Minutes
// @Produce      json
// @Param        id   path      string  true  "Run ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=minutesdto.RunResponse}
// @Failure      404  {object}  common.ErrorResponse  "Run not found"
// @Router       /minutes/{id} [get]
func (mc *MinutesController) Get(c echo.Context) error {
	run, err := mc.loadRun(c)
	if err != nil {
		return HandleError(mc.logger, c, err)
	}
	return HandleSuccess(mc.logger, c, presenter.ToRunResponse(run))
}

// Progress returns the latest progress snapshot of a run
// @Summary      Get run progress
// @Tags         Minutes
// @Produce      json
// @Param        id   path      string  true  "Run ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=entities.ProgressEvent}
// @Failure      404  {object}  common.ErrorResponse  "No progress recorded"
// @Failure      501  {object}  common.ErrorResponse  "Progress tracking disabled"
// @Router       /minutes/{id}/progress [get]
func (mc *MinutesController) Progress(c echo.Context) error {
	var p minutesdto.RunIDParam
	if err := bindAndValidate(c, &p); err != nil {
		return HandleError(mc.logger, c, err)
	}
	if mc.progress == nil {
		return HandleError(mc.logger, c, errors.ErrNotConfigured("progress"))
	}

	event, err := mc.progress.Latest(c.Request().Context(), p.ID)
	if err != nil {
		return HandleError(mc.logger, c, errors.ErrCacheFailed("read progress", err))
	}
	if event == nil {
		return HandleError(mc.logger, c, errors.ErrNotFound("progress"))
	}
	return HandleSuccess(mc.logger, c, event)
}

// Events streams progress as server-sent events until the run finishes or
// the client disconnects
// @Summary      Stream run progress
// @Tags         Minutes
// @Produce      text/event-stream
// @Param        id   path  string  true  "Run ID (UUID)"
// @Success      200  {string}  string  "event stream"
// @Failure      501  {object}  common.ErrorResponse  "Progress tracking disabled"
// @Router       /minutes/{id}/events [get]
func (mc *MinutesController) Events(c echo.Context) error {
	var p minutesdto.RunIDParam
	if err := bindAndValidate(c, &p); err != nil {
		return HandleError(mc.logger, c, err)
	}
	if mc.progress == nil {
		return HandleError(mc.logger, c, errors.ErrNotConfigured("progress"))
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	// Subscribe before reading the snapshot so no event falls in between
	events, err := mc.progress.Subscribe(ctx, p.ID)
	if err != nil {
		return HandleError(mc.logger, c, errors.ErrCacheFailed("subscribe progress", err))
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if last, err := mc.progress.Latest(ctx, p.ID); err == nil && last != nil {
		writeEvent(w, *last)
		if last.IsTerminal() {
			return nil
		}
	}
	w.Flush()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			writeEvent(w, event)
			if event.IsTerminal() {
				return nil
			}
		case <-ctx.Done():
			if mc.logger != nil {
				mc.logger.Debug("sse client disconnected", zap.String("run_id", p.ID))
			}
			return nil
		}
	}
}

// Export redirects to a fresh download URL for one stored export
// @Summary      Download an export
// @Tags         Minutes
// @Param        id      path  string  true  "Run ID (UUID)"
// @Param        format  path  string  true  "Export format (JSON, HTML, PDF, TXT)"
// @Success      302  {string}  string  "Redirect to the presigned URL"
// @Failure      404  {object}  common.ErrorResponse  "Run or export not found"
// @Failure      501  {object}  common.ErrorResponse  "Artifact storage disabled"
// @Router       /minutes/{id}/exports/{format} [get]
func (mc *MinutesController) Export(c echo.Context) error {
	var p minutesdto.ExportParam
	if err := bindAndValidate(c, &p); err != nil {
		return HandleError(mc.logger, c, err)
	}
	if mc.links == nil {
		return HandleError(mc.logger, c, errors.ErrNotConfigured("storage"))
	}

	run, err := mc.loadRun(c)
	if err != nil {
		return HandleError(mc.logger, c, err)
	}

	key, ok := run.ExportKeys.Data()[strings.ToUpper(p.Format)]
	if !ok || key == "" {
		return HandleError(mc.logger, c, errors.ErrNotFound("export"))
	}
	url, err := mc.links.PresignedURL(c.Request().Context(), key)
	if err != nil {
		return HandleError(mc.logger, c, errors.ErrStorageFailed("presign", err))
	}
	return c.Redirect(http.StatusFound, url)
}

func (mc *MinutesController) loadRun(c echo.Context) (*entities.MinutesRun, error) {
	var p minutesdto.RunIDParam
	if err := bindAndValidate(c, &p); err != nil {
		return nil, err
	}
	if mc.runs == nil {
		return nil, errors.ErrNotFound("run")
	}

	id, err := uuid.Parse(p.ID)
	if err != nil {
		return nil, errors.ErrInvalidArgument("invalid run id")
	}
	run, err := mc.runs.GetRunByID(c.Request().Context(), id)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("get run", err)
	}
	if run == nil {
		return nil, errors.ErrNotFound("run")
	}
	return run, nil
}

// spool writes the upload to a temp file that keeps the original extension
func (mc *MinutesController) spool(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp(mc.tempDir, "upload-*"+strings.ToLower(filepath.Ext(fh.Filename)))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

func toOptions(req minutesdto.CreateMinutesRequest) (pipeline.Options, error) {
	opts := pipeline.Options{
		Formats:         entities.ParseFormats(req.Formats),
		ChunkLength:     req.ChunkLength,
		MaxSummaryWords: req.MaxSummaryWords,
	}
	if strings.TrimSpace(req.Model) != "" {
		model, err := ai.ParseModel(req.Model)
		if err != nil {
			return opts, errors.ErrInvalidRequest(err.Error())
		}
		opts.Model = model
	}
	return opts, nil
}

func writeEvent(w *echo.Response, event entities.ProgressEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	w.Flush()
}
