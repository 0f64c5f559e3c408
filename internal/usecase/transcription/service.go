package transcription

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jobcontext"
)

const stageName = "transcription"

// Service defines speech-to-text operations
type Service interface {
	Transcribe(ctx context.Context, audioPath string) (*entities.Transcript, error)
	Diarize(transcript entities.Transcript) []entities.SpeakerTurn
}

type transcriptionService struct {
	backend   Backend
	modelSize string
	timeout   time.Duration
	retry     jobcontext.RetryPolicy
	logger    *zap.Logger
}

// Option customizes the service
type Option func(*transcriptionService)

// WithRetryPolicy overrides the default backoff policy
func WithRetryPolicy(p jobcontext.RetryPolicy) Option {
	return func(s *transcriptionService) { s.retry = p }
}

// NewService constructs a transcription service around a backend
func NewService(backend Backend, cfg *config.TranscriberConfig, logger *zap.Logger, opts ...Option) Service {
	s := &transcriptionService{
		backend:   backend,
		modelSize: cfg.ModelSize,
		timeout:   cfg.Timeout,
		retry:     jobcontext.DefaultRetryPolicy(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transcribe runs the backend under the transcription deadline. Transient
// backend errors are retried; anything left over is a TranscriptionError.
func (s *transcriptionService) Transcribe(ctx context.Context, audioPath string) (*entities.Transcript, error) {
	stageCtx, cancel := jobcontext.StageBegin(ctx, jobcontext.GetRunID(ctx), stageName, s.timeout)
	defer cancel()

	opts := ai.SpeechOptions{ModelSize: s.modelSize, SpeakerLabels: true}

	var result *ai.SpeechResult
	attempt := 0
	err := jobcontext.Retry(stageCtx, s.retry, func() error {
		attempt++
		res, err := s.backend.TranscribeFile(stageCtx, audioPath, opts)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("transcription attempt failed",
					zap.String("run_id", jobcontext.GetRunID(ctx)),
					zap.Int("attempt", attempt),
					zap.Error(err),
				)
			}
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, errors.WithTimeout(errors.ErrTranscriptionFailed(err), stageCtx.Err())
	}

	transcript := toTranscript(result)
	if s.logger != nil {
		s.logger.Info("✅ Transcription complete",
			zap.String("run_id", jobcontext.GetRunID(ctx)),
			zap.String("language", transcript.Language),
			zap.Int("segments", len(transcript.Segments)),
		)
	}
	return transcript, nil
}

func (s *transcriptionService) Diarize(transcript entities.Transcript) []entities.SpeakerTurn {
	return Diarize(transcript)
}

// toTranscript fills every transcript field: language defaults to "en" and
// a result without segments gets one segment spanning the whole text
func toTranscript(res *ai.SpeechResult) *entities.Transcript {
	if res == nil {
		res = &ai.SpeechResult{}
	}

	segments := make([]entities.Segment, 0, len(res.Segments))
	for _, seg := range res.Segments {
		segments = append(segments, entities.Segment{
			Start:   seg.Start,
			End:     seg.End,
			Text:    strings.TrimSpace(seg.Text),
			Speaker: seg.Speaker,
		})
	}
	segments = entities.NormalizeSegments(segments)

	text := strings.TrimSpace(res.Text)
	if text == "" && len(segments) > 0 {
		parts := make([]string, 0, len(segments))
		for _, seg := range segments {
			parts = append(parts, seg.Text)
		}
		text = strings.Join(parts, " ")
	}
	if len(segments) == 0 && text != "" {
		segments = []entities.Segment{{Start: 0, End: res.DurationSeconds, Text: text}}
	}

	language := strings.ToLower(strings.TrimSpace(res.Language))
	if language == "" {
		language = entities.DefaultLanguage
	}

	return &entities.Transcript{Text: text, Segments: segments, Language: language}
}
