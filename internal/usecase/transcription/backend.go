package transcription

import (
	"context"
	"fmt"

	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Backend is a speech recognition engine
type Backend interface {
	TranscribeFile(ctx context.Context, path string, opts ai.SpeechOptions) (*ai.SpeechResult, error)
}

// NewBackend builds the backend selected by TRANSCRIBER_BACKEND
func NewBackend(cfg *config.Config) (Backend, error) {
	switch cfg.Transcriber.Backend {
	case config.TranscriberDemo, "":
		return DemoBackend{}, nil
	case config.TranscriberAssemblyAI:
		return ai.NewAssemblyAIClient(&cfg.Assembly), nil
	case config.TranscriberWhisper:
		return ai.NewWhisperClient(&cfg.Transcriber), nil
	default:
		return nil, fmt.Errorf("unknown transcriber backend %q", cfg.Transcriber.Backend)
	}
}
