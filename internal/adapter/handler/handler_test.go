package handler

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/evaluation"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/metrics"
	pkgvalidator "github.com/johnquangdev/meeting-minutes/pkg/validator"
)

type fakeProcessor struct {
	err error

	mu         sync.Mutex
	input      pipeline.Input
	fileExists bool
	fileData   []byte
}

func (f *fakeProcessor) Process(_ context.Context, in pipeline.Input, observer pipeline.Observer) (*pipeline.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = in
	data, err := os.ReadFile(in.Request.SourceFilePath)
	f.fileExists = err == nil
	f.fileData = data

	observer.OnProgress(entities.StageProcessingAudio, 20)
	if f.err != nil {
		return nil, f.err
	}
	observer.OnProgress(entities.StageProcessingComplete, 100)

	return &pipeline.Result{
		RunID:      in.RunID,
		Transcript: entities.Transcript{Text: "hello", Language: "en"},
		Minutes: entities.MinutesRecord{
			MeetingInfo: entities.MeetingInfo{Title: in.Request.Title, Participants: in.Request.Participants},
			Summary:     "short",
		},
		Bundle:     entities.ExportBundle{entities.FormatJSON: []byte(`{"a":1}`)},
		ExportURLs: map[entities.ExportFormat]string{entities.FormatJSON: "https://files.test/x.json"},
		Warnings:   []string{"next_steps generation failed"},
	}, nil
}

type memRuns struct {
	runs map[uuid.UUID]*entities.MinutesRun
	err  error
}

func (m *memRuns) CreateRun(context.Context, *entities.MinutesRun) error { return nil }
func (m *memRuns) UpdateRun(context.Context, *entities.MinutesRun) error { return nil }

func (m *memRuns) GetRunByID(_ context.Context, id uuid.UUID) (*entities.MinutesRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.runs[id], nil
}

func (m *memRuns) ListRunsByStatus(context.Context, entities.RunStatus, int) ([]entities.MinutesRun, error) {
	return nil, nil
}

type fakeLinker struct{}

func (fakeLinker) PresignedURL(_ context.Context, key string) (string, error) {
	return "https://files.test/" + key + "?sig=1", nil
}

type envelope struct {
	Code    json.RawMessage `json:"code"`
	Message string          `json:"message"`
	Info    string          `json:"info"`
	Data    json.RawMessage `json:"data"`
}

func newServer(t *testing.T, proc MinutesProcessor, opts ...MinutesOption) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = pkgvalidator.New()

	mc := NewMinutesController(proc, nil, opts...)
	ec := NewEvaluationController(evaluation.NewEvaluator(), nil)
	models := NewModelsController(ai.Qwen(), nil)

	reg := prometheus.NewRegistry()
	metrics.NewPipelineMetrics(reg).ObserveRun("completed")
	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	NewRouter(cfg, mc, ec, models, WithGatherer(reg)).Setup(e)
	return e
}

func do(e *echo.Echo, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func uploadRequest(t *testing.T, fileName string, content []byte, fields map[string][]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, values := range fields {
		for _, v := range values {
			require.NoError(t, w.WriteField(k, v))
		}
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/minutes", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func errorCode(t *testing.T, env envelope) string {
	t.Helper()
	var code string
	require.NoError(t, json.Unmarshal(env.Code, &code))
	return code
}

func TestCreate_Success(t *testing.T) {
	proc := &fakeProcessor{}
	store := cache.NewMemoryProgressStore(time.Minute)
	defer store.Close()
	tmp := t.TempDir()
	e := newServer(t, proc, WithProgressStore(store), WithTempDir(tmp))

	runID := uuid.NewString()
	req := uploadRequest(t, "Review.MP3", []byte("audio-bytes"), map[string][]string{
		"title":        {"Sprint Review"},
		"date":         {"2024-05-01"},
		"participants": {"Ann\r\nBen\n"},
		"model":        {"llama"},
		"formats":      {"json,pdf", "txt"},
		"chunk_length": {"20"},
		"run_id":       {runID},
	})
	rec, env := do(e, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		RunID    string   `json:"run_id"`
		Warnings []string `json:"warnings"`
		Exports  []struct {
			Format   string `json:"format"`
			MIMEType string `json:"mime_type"`
			FileName string `json:"file_name"`
			Content  []byte `json:"content"`
			URL      string `json:"url"`
		} `json:"exports"`
		Minutes entities.MinutesRecord `json:"minutes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, runID, data.RunID)
	assert.Equal(t, []string{"next_steps generation failed"}, data.Warnings)
	require.Len(t, data.Exports, 1)
	assert.Equal(t, "application/json", data.Exports[0].MIMEType)
	assert.Equal(t, "meeting_minutes.json", data.Exports[0].FileName)
	assert.Equal(t, []byte(`{"a":1}`), data.Exports[0].Content)
	assert.Equal(t, "https://files.test/x.json", data.Exports[0].URL)

	in := proc.input
	assert.Equal(t, runID, in.RunID)
	assert.Equal(t, "Sprint Review", in.Request.Title)
	assert.Equal(t, "2024-05-01", in.Request.Date)
	assert.Equal(t, []string{"Ann", "Ben"}, in.Request.Participants)
	assert.Equal(t, ai.Llama(), in.Options.Model)
	assert.Equal(t, []entities.ExportFormat{entities.FormatJSON, entities.FormatPDF, entities.FormatTXT}, in.Options.Formats)
	assert.Equal(t, 20, in.Options.ChunkLength)
	assert.Equal(t, 0, in.Options.MaxSummaryWords, "left for the orchestrator defaults")

	assert.True(t, proc.fileExists)
	assert.Equal(t, []byte("audio-bytes"), proc.fileData)
	assert.Equal(t, ".mp3", filepath.Ext(in.Request.SourceFilePath))
	assert.Equal(t, tmp, filepath.Dir(in.Request.SourceFilePath))
	_, err := os.Stat(in.Request.SourceFilePath)
	assert.True(t, os.IsNotExist(err), "upload is removed after the request")

	last, err := store.Latest(context.Background(), runID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, entities.ProgressDone, last.Type)
}

func TestCreate_GeneratesRunID(t *testing.T) {
	proc := &fakeProcessor{}
	e := newServer(t, proc)

	rec, _ := do(e, uploadRequest(t, "a.wav", []byte("x"), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(proc.input.RunID)
	assert.NoError(t, err)
	assert.Equal(t, entities.DefaultMeetingTitle, proc.input.Request.Title)
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  []byte
		fields   map[string][]string
		opts     []MinutesOption
		status   int
		code     string
	}{
		{"missing file", "", nil, nil, nil, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unsupported extension", "notes.txt", []byte("x"), nil, nil, http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT"},
		{"chunk length out of range", "a.mp3", []byte("x"), map[string][]string{"chunk_length": {"5"}}, nil, http.StatusBadRequest, "INVALID_REQUEST"},
		{"summary words out of range", "a.mp3", []byte("x"), map[string][]string{"max_summary_words": {"2000"}}, nil, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad date", "a.mp3", []byte("x"), map[string][]string{"date": {"01/05/2024"}}, nil, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad run id", "a.mp3", []byte("x"), map[string][]string{"run_id": {"abc"}}, nil, http.StatusBadRequest, "INVALID_REQUEST"},
		{"too large", "a.mp3", bytes.Repeat([]byte("x"), 64), nil, []MinutesOption{WithUploadLimit(16)}, http.StatusBadRequest, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := &fakeProcessor{}
			e := newServer(t, proc, tt.opts...)

			rec, env := do(e, uploadRequest(t, tt.fileName, tt.content, tt.fields))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, errorCode(t, env))
			assert.Empty(t, proc.input.RunID, "pipeline not invoked")
		})
	}
}

func TestCreate_PipelineErrorMapsToStatus(t *testing.T) {
	proc := &fakeProcessor{err: errors.ErrMediaProcessing(stdErrors.New("exit status 1"), "moov atom not found")}
	store := cache.NewMemoryProgressStore(time.Minute)
	defer store.Close()
	e := newServer(t, proc, WithProgressStore(store))

	rec, env := do(e, uploadRequest(t, "broken.mp4", []byte("x"), nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "MEDIA_PROCESSING_FAILED", errorCode(t, env))
	assert.Equal(t, "exit status 1", env.Info)
}

func TestProgress(t *testing.T) {
	store := cache.NewMemoryProgressStore(time.Minute)
	defer store.Close()
	e := newServer(t, &fakeProcessor{}, WithProgressStore(store))

	id := uuid.NewString()
	require.NoError(t, store.Publish(context.Background(), entities.ProgressEvent{
		RunID: id, Type: entities.ProgressStage, Stage: entities.StageTranscribing, Percent: 40,
	}))

	rec, env := do(e, httptest.NewRequest(http.MethodGet, "/v1/minutes/"+id+"/progress", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var event entities.ProgressEvent
	require.NoError(t, json.Unmarshal(env.Data, &event))
	assert.Equal(t, 40, event.Percent)
	assert.Equal(t, entities.StageTranscribing, event.Stage)

	rec, env = do(e, httptest.NewRequest(http.MethodGet, "/v1/minutes/"+uuid.NewString()+"/progress", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, env))

	disabled := newServer(t, &fakeProcessor{})
	rec, _ = do(disabled, httptest.NewRequest(http.MethodGet, "/v1/minutes/"+id+"/progress", nil))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestEvents_StreamsUntilTerminal(t *testing.T) {
	store := cache.NewMemoryProgressStore(time.Minute)
	defer store.Close()
	e := newServer(t, &fakeProcessor{}, WithProgressStore(store))
	id := uuid.NewString()

	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/minutes/"+id+"/events", nil))
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	ctx := context.Background()
	require.NoError(t, store.Publish(ctx, entities.ProgressEvent{RunID: id, Type: entities.ProgressStage, Stage: entities.StageGeneratingMinutes, Percent: 60}))
	require.NoError(t, store.Publish(ctx, entities.ProgressEvent{RunID: id, Type: entities.ProgressDone, Stage: entities.StageProcessingComplete, Percent: 100}))

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("stream did not end on the terminal event")
	}

	assert.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "no", rec.Header().Get("X-Accel-Buffering"))
	body := rec.Body.String()
	assert.Contains(t, body, `"type":"done"`)
	for _, line := range strings.Split(strings.TrimSpace(body), "\n\n") {
		assert.True(t, strings.HasPrefix(line, "data: "), line)
	}
}

func TestEvents_ReplaysFinishedRun(t *testing.T) {
	store := cache.NewMemoryProgressStore(time.Minute)
	defer store.Close()
	e := newServer(t, &fakeProcessor{}, WithProgressStore(store))
	id := uuid.NewString()
	require.NoError(t, store.Publish(context.Background(), entities.ProgressEvent{RunID: id, Type: entities.ProgressFailed, Percent: 40, Message: "boom"}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/minutes/"+id+"/events", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"boom"`)
}

func completedRun() *entities.MinutesRun {
	run := entities.NewMinutesRun(uuid.New(), entities.NewMeetingRequest("Sprint Review", "", []string{"Ann"}, "/tmp/a.mp3"))
	run.MarkAsCompleted(entities.MinutesRecord{Summary: "done"}, map[string]string{
		"PDF":  "minutes/" + run.ID.String() + "/meeting_minutes.pdf",
		"JSON": "minutes/" + run.ID.String() + "/meeting_minutes.json",
	}, []string{"w1"})
	return run
}

func TestGetRun(t *testing.T) {
	run := completedRun()
	repo := &memRuns{runs: map[uuid.UUID]*entities.MinutesRun{run.ID: run}}
	e := newServer(t, &fakeProcessor{}, WithRuns(repo))

	rec, env := do(e, httptest.NewRequest(http.MethodGet, "/v1/minutes/"+run.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		ID      string                  `json:"id"`
		Status  string                  `json:"status"`
		Minutes *entities.MinutesRecord `json:"minutes"`
		Exports []string                `json:"exports"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, run.ID.String(), data.ID)
	assert.Equal(t, "completed", data.Status)
	require.NotNil(t, data.Minutes)
	assert.Equal(t, "done", data.Minutes.Summary)
	assert.Equal(t, []string{"JSON", "PDF"}, data.Exports)

	rec, _ = do(e, httptest.NewRequest(http.MethodGet, "/v1/minutes/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(e, httptest.NewRequest(http.MethodGet, "/v1/minutes/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	repo.err = stdErrors.New("connection refused")
	rec, env = do(e, httptest.NewRequest(http.MethodGet, "/v1/minutes/"+run.ID.String(), nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "DB_QUERY_FAILED", errorCode(t, env))
}

func TestGetRun_PersistenceDisabled(t *testing.T) {
	e := newServer(t, &fakeProcessor{})
	rec, _ := do(e, httptest.NewRequest(http.MethodGet, "/v1/minutes/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportRedirect(t *testing.T) {
	run := completedRun()
	repo := &memRuns{runs: map[uuid.UUID]*entities.MinutesRun{run.ID: run}}
	e := newServer(t, &fakeProcessor{}, WithRuns(repo), WithExportLinker(fakeLinker{}))

	rec, _ := do(e, httptest.NewRequest(http.MethodGet, "/v1/minutes/"+run.ID.String()+"/exports/pdf", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://files.test/minutes/"+run.ID.String()+"/meeting_minutes.pdf?sig=1", rec.Header().Get("Location"))

	rec, _ = do(e, httptest.NewRequest(http.MethodGet, "/v1/minutes/"+run.ID.String()+"/exports/TXT", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	noStorage := newServer(t, &fakeProcessor{}, WithRuns(repo))
	rec, _ = do(noStorage, httptest.NewRequest(http.MethodGet, "/v1/minutes/"+run.ID.String()+"/exports/PDF", nil))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestEvaluate(t *testing.T) {
	e := newServer(t, &fakeProcessor{})

	body := `{"transcription":{"reference":"the cat sat","hypothesis":"the cat sat"},"summarization":{"reference":"a b c","hypothesis":"a b"}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/evaluations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec, env := do(e, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Transcription entities.TranscriptionMetrics `json:"transcription"`
		Summarization entities.SummarizationMetrics `json:"summarization"`
		Report        string                        `json:"report"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1.0, data.Transcription.Accuracy)
	assert.InDelta(t, 2.0/3.0, data.Summarization.Rouge1, 1e-9)
	assert.True(t, strings.HasPrefix(data.Report, "📊 EVALUATION REPORT"))

	req = httptest.NewRequest(http.MethodPost, "/v1/evaluations", strings.NewReader(`{"transcription":{}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec, env = do(e, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, env))

	req = httptest.NewRequest(http.MethodPost, "/v1/evaluations", strings.NewReader(`{`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec, env = do(e, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PAYLOAD", errorCode(t, env))
}

func TestModelsHealthAndMetrics(t *testing.T) {
	e := newServer(t, &fakeProcessor{})

	rec, env := do(e, httptest.NewRequest(http.MethodGet, "/v1/models", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var models []struct {
		Name    string `json:"name"`
		Default bool   `json:"default"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &models))
	require.Len(t, models, 2)
	assert.Equal(t, ai.PresetQwen, models[0].Name)
	assert.True(t, models[0].Default)
	assert.False(t, models[1].Default)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","environment":"test"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `minutes_runs_total{status="completed"} 1`)
}
