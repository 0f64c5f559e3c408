package ai

import (
	"context"
	"fmt"
	"os"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// AssemblyAIClient wraps the official AssemblyAI SDK
type AssemblyAIClient struct {
	sdk *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIClient{sdk: aai.NewClient(apiKey)}
}

// SpeechModelForSize maps a local model-size tier onto the hosted speech models
func SpeechModelForSize(size string) aai.SpeechModel {
	switch size {
	case "medium", "large":
		return aai.SpeechModelBest
	default:
		return aai.SpeechModelNano
	}
}

// TranscribeFile uploads a local audio file and waits for the transcript
func (c *AssemblyAIClient) TranscribeFile(ctx context.Context, path string, opts SpeechOptions) (*SpeechResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	defer f.Close()

	uploadURL, err := c.sdk.Upload(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}

	params := &aai.TranscriptOptionalParams{
		LanguageDetection: aai.Bool(true),
		SpeakerLabels:     aai.Bool(opts.SpeakerLabels),
		SpeechModel:       SpeechModelForSize(opts.ModelSize),
	}

	transcript, err := c.sdk.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return nil, err
	}
	if string(transcript.Status) == "error" {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai transcript failed: %s", msg)
	}

	return fromAssemblyTranscript(transcript), nil
}

func fromAssemblyTranscript(t aai.Transcript) *SpeechResult {
	res := &SpeechResult{Language: string(t.LanguageCode)}
	if t.Text != nil {
		res.Text = *t.Text
	}
	if t.AudioDuration != nil {
		res.DurationSeconds = float64(*t.AudioDuration)
	}

	// Utterances carry speaker labels; fall back to words grouped as one span
	if len(t.Utterances) > 0 {
		res.Segments = make([]SpeechSegment, 0, len(t.Utterances))
		for _, utt := range t.Utterances {
			seg := SpeechSegment{}
			if utt.Text != nil {
				seg.Text = *utt.Text
			}
			if utt.Speaker != nil {
				seg.Speaker = *utt.Speaker
			}
			if utt.Start != nil {
				seg.Start = float64(*utt.Start) / 1000.0 // ms to seconds
			}
			if utt.End != nil {
				seg.End = float64(*utt.End) / 1000.0
			}
			res.Segments = append(res.Segments, seg)
		}
		return res
	}

	if len(t.Words) > 0 && res.Text != "" {
		first, last := t.Words[0], t.Words[len(t.Words)-1]
		seg := SpeechSegment{Text: res.Text}
		if first.Start != nil {
			seg.Start = float64(*first.Start) / 1000.0
		}
		if last.End != nil {
			seg.End = float64(*last.End) / 1000.0
		}
		res.Segments = []SpeechSegment{seg}
	}
	return res
}
