package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// WhisperClient talks to an OpenAI-compatible /v1/audio/transcriptions endpoint
// (faster-whisper-server, whisper.cpp server, hosted Whisper)
type WhisperClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewWhisperClient creates a Whisper client from the transcriber config
func NewWhisperClient(cfg *config.TranscriberConfig) *WhisperClient {
	var apiKey, base string
	timeout := 15 * time.Minute
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.WhisperURL
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if base == "" {
		base = "http://localhost:8000"
	}
	return &WhisperClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type whisperResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// TranscribeFile posts the audio as multipart form data and decodes the
// verbose_json response
func (c *WhisperClient) TranscribeFile(ctx context.Context, path string, opts SpeechOptions) (*SpeechResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to buffer audio: %w", err)
	}
	model := opts.ModelSize
	if model == "" {
		model = "base"
	}
	_ = w.WriteField("model", model)
	_ = w.WriteField("response_format", "verbose_json")
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/audio/transcriptions", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("whisper returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var wr whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("malformed whisper response: %w", err)
	}

	res := &SpeechResult{
		Text:            strings.TrimSpace(wr.Text),
		Language:        wr.Language,
		DurationSeconds: wr.Duration,
		Segments:        make([]SpeechSegment, 0, len(wr.Segments)),
	}
	for _, s := range wr.Segments {
		res.Segments = append(res.Segments, SpeechSegment{
			Start: s.Start,
			End:   s.End,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	return res, nil
}
