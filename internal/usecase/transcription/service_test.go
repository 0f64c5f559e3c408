package transcription

import (
	"context"
	stdErrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jobcontext"
)

type fakeBackend struct {
	results []*ai.SpeechResult
	errs    []error
	calls   int
	opts    ai.SpeechOptions
}

func (f *fakeBackend) TranscribeFile(ctx context.Context, _ string, opts ai.SpeechOptions) (*ai.SpeechResult, error) {
	i := f.calls
	f.calls++
	f.opts = opts
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.results) {
		return f.results[i], nil
	}
	return f.results[len(f.results)-1], nil
}

var fastRetry = jobcontext.RetryPolicy{
	InitialInterval: time.Millisecond,
	MaxInterval:     2 * time.Millisecond,
	MaxElapsedTime:  time.Second,
	MaxRetries:      3,
}

func newTestService(b Backend) Service {
	return NewService(b, &config.TranscriberConfig{ModelSize: "small", Timeout: time.Second}, nil, WithRetryPolicy(fastRetry))
}

func TestTranscribe_DemoBackend(t *testing.T) {
	svc := newTestService(DemoBackend{})

	got, err := svc.Transcribe(context.Background(), "ignored.wav")
	require.NoError(t, err)
	assert.Equal(t, DemoTranscript(), *got)
	assert.Equal(t, "en", got.Language)
	require.Len(t, got.Segments, 1)
	assert.Equal(t, 15.0, got.Segments[0].End)
}

func TestTranscribe_NormalizesBackendResult(t *testing.T) {
	backend := &fakeBackend{results: []*ai.SpeechResult{{
		Segments: []ai.SpeechSegment{
			{Start: 4, End: 9, Text: " second "},
			{Start: 0, End: 5, Text: "first"},
		},
	}}}
	svc := newTestService(backend)

	got, err := svc.Transcribe(context.Background(), "a.wav")
	require.NoError(t, err)

	assert.Equal(t, "en", got.Language)
	assert.Equal(t, "first second", got.Text)
	require.Len(t, got.Segments, 2)
	assert.Equal(t, "first", got.Segments[0].Text)
	assert.Equal(t, 4.0, got.Segments[0].End, "overlap clipped")
	assert.Equal(t, "small", backend.opts.ModelSize)
	assert.True(t, backend.opts.SpeakerLabels)
}

func TestTranscribe_TextWithoutSegments(t *testing.T) {
	backend := &fakeBackend{results: []*ai.SpeechResult{{Text: "hello there", Language: "FR", DurationSeconds: 3}}}

	got, err := newTestService(backend).Transcribe(context.Background(), "a.wav")
	require.NoError(t, err)
	assert.Equal(t, "fr", got.Language)
	assert.Equal(t, []entities.Segment{{Start: 0, End: 3, Text: "hello there"}}, got.Segments)
}

func TestTranscribe_RetriesTransientErrors(t *testing.T) {
	backend := &fakeBackend{
		errs:    []error{fmt.Errorf("whisper returned status 503: busy"), nil},
		results: []*ai.SpeechResult{nil, {Text: "ok"}},
	}

	got, err := newTestService(backend).Transcribe(context.Background(), "a.wav")
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Text)
	assert.Equal(t, 2, backend.calls)
}

func TestTranscribe_PermanentErrorIsTranscriptionError(t *testing.T) {
	backend := &fakeBackend{errs: []error{fmt.Errorf("invalid api key")}}

	_, err := newTestService(backend).Transcribe(context.Background(), "a.wav")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrorCode_TRANSCRIPTION_FAILED))
	assert.Equal(t, 1, backend.calls)
}

type slowBackend struct{}

func (slowBackend) TranscribeFile(ctx context.Context, _ string, _ ai.SpeechOptions) (*ai.SpeechResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestTranscribe_TimeoutIsMarked(t *testing.T) {
	svc := NewService(slowBackend{}, &config.TranscriberConfig{Timeout: 20 * time.Millisecond}, nil, WithRetryPolicy(fastRetry))

	_, err := svc.Transcribe(context.Background(), "a.wav")
	require.Error(t, err)

	var appErr errors.AppError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_TRANSCRIPTION_FAILED, appErr.Code)
	assert.True(t, appErr.IsTimeout())
}

func TestNewBackend(t *testing.T) {
	cfg := &config.Config{}

	cfg.Transcriber.Backend = config.TranscriberDemo
	b, err := NewBackend(cfg)
	require.NoError(t, err)
	assert.IsType(t, DemoBackend{}, b)

	cfg.Transcriber.Backend = config.TranscriberWhisper
	b, err = NewBackend(cfg)
	require.NoError(t, err)
	assert.IsType(t, &ai.WhisperClient{}, b)

	cfg.Transcriber.Backend = "vosk"
	_, err = NewBackend(cfg)
	assert.Error(t, err)
}
