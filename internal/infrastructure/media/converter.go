package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jobcontext"
)

// Output format handed to the transcriber
const (
	SampleRate = 16000
	Channels   = 1
	Codec      = "pcm_s16le"
)

const stageName = "media"

var supportedExtensions = []string{".mp3", ".wav", ".mp4", ".avi", ".mov", ".mkv"}

// SupportedExtensions lists accepted upload extensions
func SupportedExtensions() []string {
	return append([]string(nil), supportedExtensions...)
}

// IsSupported checks the file extension only, case-insensitively
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range supportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// UnsupportedFormat builds the rejection for path, listing what is accepted
func UnsupportedFormat(path string) errors.AppError {
	return errors.ErrUnsupportedFormat(strings.ToLower(filepath.Ext(path))).
		WithDetail("supported", strings.Join(supportedExtensions, ","))
}

// Converter turns uploaded audio or video into 16kHz mono PCM WAV
type Converter struct {
	ffmpegPath  string
	ffprobePath string
	tempDir     string
	timeout     time.Duration
	logger      *zap.Logger
}

// NewConverter creates a converter from media config
func NewConverter(cfg *config.MediaConfig, logger *zap.Logger) *Converter {
	ffmpeg := cfg.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	ffprobe := cfg.FFprobePath
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	return &Converter{
		ffmpegPath:  ffmpeg,
		ffprobePath: ffprobe,
		tempDir:     cfg.TempDir,
		timeout:     cfg.Timeout,
		logger:      logger,
	}
}

// IsSupported checks the file extension only
func (c *Converter) IsSupported(path string) bool {
	return IsSupported(path)
}

// Normalize transcodes path into a new temporary WAV file and returns its
// path. chunkLength is accepted for later chunked processing and does not
// change the output. The caller owns the returned file and must Cleanup it.
func (c *Converter) Normalize(ctx context.Context, path string, chunkLength int) (string, error) {
	if !IsSupported(path) {
		return "", UnsupportedFormat(path)
	}
	if _, err := os.Stat(path); err != nil {
		return "", errors.ErrMediaProcessing(err, "input file not readable")
	}

	out, err := os.CreateTemp(c.tempDir, "minutes-*.wav")
	if err != nil {
		return "", errors.ErrMediaProcessing(fmt.Errorf("failed to create temp file: %w", err), "")
	}
	outPath := out.Name()
	_ = out.Close()

	ctx, cancel := jobcontext.StageBegin(ctx, jobcontext.GetRunID(ctx), stageName, c.timeout)
	defer cancel()

	args := []string{
		"-y",
		"-i", path,
		"-vn",
		"-acodec", Codec,
		"-ar", strconv.Itoa(SampleRate),
		"-ac", strconv.Itoa(Channels),
		outPath,
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	cmd.Stderr = &stderr
	cmd.WaitDelay = 2 * time.Second

	if err := cmd.Run(); err != nil {
		c.Cleanup(outPath)
		appErr := errors.ErrMediaProcessing(err, strings.TrimSpace(stderr.String()))
		return "", errors.WithTimeout(appErr, ctx.Err())
	}

	if c.logger != nil {
		md := jobcontext.GetStageMetadata(ctx)
		c.logger.Debug("media normalized",
			zap.String("run_id", md.RunID),
			zap.String("stage", md.Stage),
			zap.String("source", filepath.Base(path)),
			zap.Int("chunk_length", chunkLength),
			zap.Duration("took", time.Since(md.StartTime)),
		)
	}
	return outPath, nil
}

// EstimateDuration asks ffprobe for the container duration in seconds.
// Returns 0 when it cannot be determined.
func (c *Converter) EstimateDuration(ctx context.Context, path string) float64 {
	cmd := exec.CommandContext(ctx, c.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		if c.logger != nil {
			c.logger.Debug("duration probe failed", zap.String("path", path), zap.Error(err))
		}
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}

// Cleanup removes a file produced by Normalize. Missing files are ignored.
func (c *Converter) Cleanup(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) && c.logger != nil {
		c.logger.Warn("⚠️ Failed to remove temp audio", zap.String("path", path), zap.Error(err))
	}
}
