package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meeting-minutes/internal/bootstrap"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Redis:  config.RedisConfig{ProgressTTL: time.Minute},
		Media:  config.MediaConfig{Timeout: 5 * time.Second, TempDir: t.TempDir()},
		Transcriber: config.TranscriberConfig{
			Backend:   config.TranscriberDemo,
			ModelSize: "base",
			Timeout:   5 * time.Second,
		},
		LLM: config.LLMConfig{
			Model:          ai.PresetQwen,
			MaxConcurrency: 1,
			CallTimeout:    time.Second,
			DemoMode:       true,
		},
		Minutes: config.MinutesConfig{ChunkLength: 30, MaxSummaryWords: 500, Formats: []string{"JSON", "HTML"}},
	}
	return cfg
}

// withFakeMedia points the converter at shell scripts standing in for
// ffmpeg and ffprobe
func withFakeMedia(t *testing.T, cfg *config.Config) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	bin := t.TempDir()
	ffmpeg := filepath.Join(bin, "ffmpeg")
	ffprobe := filepath.Join(bin, "ffprobe")
	require.NoError(t, os.WriteFile(ffmpeg, []byte("#!/bin/sh\nfor last; do :; done\nprintf 'RIFF' > \"$last\"\n"), 0o755))
	require.NoError(t, os.WriteFile(ffprobe, []byte("#!/bin/sh\necho 95\n"), 0o755))
	cfg.Media.FFmpegPath = ffmpeg
	cfg.Media.FFprobePath = ffprobe
}

func testDeps(cfg *config.Config) *commandDeps {
	return &commandDeps{
		LoadConfig: func() (*config.Config, error) { return cfg, nil },
		NewApp: func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*bootstrap.App, error) {
			return bootstrap.New(ctx, cfg, logger)
		},
	}
}

func execute(t *testing.T, deps *commandDeps, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand(deps)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func recording(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("fake media"), 0o644))
	return path
}

func TestProcess_WritesExportsAndPrintsJSON(t *testing.T) {
	cfg := testConfig(t)
	withFakeMedia(t, cfg)
	src := recording(t, t.TempDir(), "standup.mp4")
	out := filepath.Join(t.TempDir(), "out")

	stdout, _, err := execute(t, testDeps(cfg), "process", src,
		"--title", "Daily standup",
		"--date", "2024-03-01",
		"--participants", "Ann,Ben",
		"--format", "json,txt",
		"--out", out,
		"-o", "json",
	)
	require.NoError(t, err)

	var got processOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.NotEmpty(t, got.RunID)
	assert.Equal(t, "Daily standup", got.Minutes.MeetingInfo.Title)
	assert.Equal(t, []string{"Ann", "Ben"}, got.Minutes.MeetingInfo.Participants)
	assert.Equal(t, 95.0, got.AudioDurationSeconds)
	require.Len(t, got.Files, 2)
	assert.Equal(t, "JSON", got.Files[0].Format)
	assert.Equal(t, "TXT", got.Files[1].Format)

	for _, name := range []string{"meeting_minutes.json", "meeting_minutes.txt"} {
		info, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size())
	}
}

func TestProcess_TextOutputShowsProgress(t *testing.T) {
	cfg := testConfig(t)
	withFakeMedia(t, cfg)
	src := recording(t, t.TempDir(), "review.wav")

	stdout, stderr, err := execute(t, testDeps(cfg), "process", src, "--out", t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, stderr, "[ 20%] Processing audio file")
	assert.Contains(t, stderr, "[100%] Processing complete")
	assert.Contains(t, stdout, "Meeting\n")
	assert.Contains(t, stdout, "Summary:")
	assert.Contains(t, stdout, "meeting_minutes.html")
}

func TestProcess_Rejections(t *testing.T) {
	cfg := testConfig(t)
	withFakeMedia(t, cfg)
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unsupported file", []string{"process", recording(t, dir, "notes.txt")}, "UNSUPPORTED_FORMAT"},
		{"chunk length out of range", []string{"process", recording(t, dir, "a.mp3"), "--chunk-length", "5"}, "chunk length"},
		{"bad output format", []string{"process", recording(t, dir, "b.mp3"), "-o", "xml"}, "invalid output format"},
		{"missing argument", []string{"process"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, testDeps(cfg), append(tt.args, "--out", t.TempDir())...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEvaluate_Outputs(t *testing.T) {
	dir := t.TempDir()
	write := func(name, text string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
		return path
	}
	args := []string{"evaluate",
		"--reference-transcript", write("ref.txt", "the team agreed to ship on friday"),
		"--transcript", write("hyp.txt", "the team agreed to ship on friday"),
		"--reference-summary", write("ref_sum.txt", "ship friday"),
		"--summary", write("sum.txt", "ship friday"),
	}

	stdout, _, err := execute(t, testDeps(testConfig(t)), args...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "📊 EVALUATION REPORT")
	assert.Contains(t, stdout, "• Accuracy: 100.0%")

	stdout, _, err = execute(t, testDeps(testConfig(t)), append(args, "-o", "yaml")...)
	require.NoError(t, err)
	var got evaluateOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, 1.0, got.Transcription.Accuracy)
	assert.Equal(t, 1.0, got.Summarization.Rouge1)
	assert.Contains(t, got.Report, "ROUGE-1: 1.000")
}

func TestEvaluate_MissingFile(t *testing.T) {
	_, _, err := execute(t, testDeps(testConfig(t)), "evaluate",
		"--reference-transcript", "missing.txt",
		"--transcript", "missing.txt",
		"--reference-summary", "missing.txt",
		"--summary", "missing.txt",
	)
	assert.ErrorContains(t, err, "reading missing.txt")
}

func TestModels(t *testing.T) {
	cfg := testConfig(t)

	stdout, _, err := execute(t, testDeps(cfg), "models")
	require.NoError(t, err)
	assert.Contains(t, stdout, "* qwen2.5-7b-instruct")
	assert.Contains(t, stdout, "  llama-3.1-8b-instruct")

	cfg.LLM.Model = "my-org/meeting-7b"
	stdout, _, err = execute(t, testDeps(cfg), "models", "-o", "json")
	require.NoError(t, err)
	var got []modelEntry
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 3)
	assert.False(t, got[0].Default)
	assert.Equal(t, modelEntry{Name: "my-org/meeting-7b", Kind: ai.ModelCustom, Path: "my-org/meeting-7b", Default: true}, got[2])
}

func TestRecordingHandler_WritesPerRecordingDirectory(t *testing.T) {
	cfg := testConfig(t)
	withFakeMedia(t, cfg)
	app, err := bootstrap.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer app.Close()

	out := t.TempDir()
	flags := &watchFlags{processFlags: processFlags{outDir: out, formats: []string{"TXT"}}}
	var stdout bytes.Buffer
	handle := recordingHandler(app, flags, OutputFormatText, &stdout)

	src := recording(t, t.TempDir(), "weekly sync.mkv")
	require.NoError(t, handle(context.Background(), src))

	_, err = os.Stat(filepath.Join(out, "weekly sync", "meeting_minutes.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout.String(), "✓ weekly sync.mkv -> "))

	// failures are reported and returned so the watcher can log them
	stdout.Reset()
	bad := recording(t, t.TempDir(), "broken.mp3")
	cfg.Media.FFmpegPath = filepath.Join(t.TempDir(), "missing-ffmpeg")
	app2, err := bootstrap.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer app2.Close()
	err = recordingHandler(app2, flags, OutputFormatText, &stdout)(context.Background(), bad)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(stdout.String(), "✗ broken.mp3: "))
}

func TestWatch_RejectsMissingDirectory(t *testing.T) {
	_, _, err := execute(t, testDeps(testConfig(t)), "watch", filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "is not a directory")
}

func TestMigrate_FlagValidation(t *testing.T) {
	_, _, err := execute(t, testDeps(testConfig(t)), "migrate", "--down", "-1")
	assert.ErrorContains(t, err, "--down must be positive")

	_, _, err = execute(t, testDeps(testConfig(t)), "migrate", "--down", "1", "--status")
	assert.ErrorContains(t, err, "none of the others can be")
}

func TestProcess_HelpListsSupportedInputs(t *testing.T) {
	stdout, _, err := execute(t, testDeps(testConfig(t)), "process", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Supported inputs: .mp3 .wav .mp4 .avi .mov .mkv")
}

func TestRecordingName(t *testing.T) {
	assert.Equal(t, "standup", recordingName("/tmp/in/standup.mp4"))
	assert.Equal(t, "a.b", recordingName("a.b.wav"))
}

type fakeRuns struct {
	runs []entities.MinutesRun
}

func (f *fakeRuns) CreateRun(context.Context, *entities.MinutesRun) error { return nil }
func (f *fakeRuns) UpdateRun(context.Context, *entities.MinutesRun) error { return nil }
func (f *fakeRuns) GetRunByID(context.Context, uuid.UUID) (*entities.MinutesRun, error) {
	return nil, nil
}
func (f *fakeRuns) ListRunsByStatus(_ context.Context, status entities.RunStatus, limit int) ([]entities.MinutesRun, error) {
	var out []entities.MinutesRun
	for _, r := range f.runs {
		if r.Status == status && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestRuns(t *testing.T) {
	code := "MEDIA_PROCESSING_FAILED"
	repo := &fakeRuns{runs: []entities.MinutesRun{
		{ID: uuid.New(), Title: "Standup", Status: entities.RunStatusFailed, ErrorCode: &code, StartedAt: time.Now().Add(-time.Hour)},
		{ID: uuid.New(), Title: "Review", Status: entities.RunStatusCompleted, StartedAt: time.Now()},
	}}
	deps := testDeps(testConfig(t))
	deps.NewApp = func(context.Context, *config.Config, *zap.Logger) (*bootstrap.App, error) {
		return &bootstrap.App{Runs: repo}, nil
	}

	stdout, _, err := execute(t, deps, "runs")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Runs (1):")
	assert.Contains(t, stdout, "Standup")
	assert.Contains(t, stdout, "1 hour ago")
	assert.Contains(t, stdout, code)
	assert.NotContains(t, stdout, "Review")

	stdout, _, err = execute(t, deps, "runs", "--status", "completed", "-o", "json")
	require.NoError(t, err)
	var got []runSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Review", got[0].Title)

	_, _, err = execute(t, deps, "runs", "--status", "stuck")
	assert.ErrorContains(t, err, "invalid status")
}

func TestRuns_PersistenceDisabled(t *testing.T) {
	_, _, err := execute(t, testDeps(testConfig(t)), "runs")
	assert.ErrorContains(t, err, "DB_ENABLED")
}
