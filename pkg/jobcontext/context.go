package jobcontext

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

type KeyContext string

var (
	keyRunID      KeyContext = "run_id"
	keyStage      KeyContext = "stage"
	keyStageStart KeyContext = "stage_start_time"
)

// StageMetadata holds metadata for one pipeline stage execution
type StageMetadata struct {
	RunID     string
	Stage     string
	StartTime time.Time
}

// StageBegin derives a stage context carrying run metadata and, when
// timeout > 0, a deadline. The caller must always invoke the cancel func.
func StageBegin(parentCtx context.Context, runID, stage string, timeout time.Duration) (context.Context, context.CancelFunc) {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parentCtx, timeout)
	} else {
		ctx, cancel = context.WithCancel(parentCtx)
	}

	ctx = context.WithValue(ctx, keyRunID, runID)
	ctx = context.WithValue(ctx, keyStage, stage)
	ctx = context.WithValue(ctx, keyStageStart, time.Now())
	return ctx, cancel
}

// WithRunID attaches a run id without creating a stage
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, keyRunID, runID)
}

// GetRunID extracts run ID from context
func GetRunID(ctx context.Context) string {
	runID, _ := ctx.Value(keyRunID).(string)
	return runID
}

// GetStage extracts the stage name from context
func GetStage(ctx context.Context) string {
	stage, _ := ctx.Value(keyStage).(string)
	return stage
}

// GetStageMetadata extracts all stage metadata from context
func GetStageMetadata(ctx context.Context) *StageMetadata {
	start, _ := ctx.Value(keyStageStart).(time.Time)
	return &StageMetadata{
		RunID:     GetRunID(ctx),
		Stage:     GetStage(ctx),
		StartTime: start,
	}
}

// RetryPolicy bounds the exponential backoff used around external calls
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	MaxRetries      uint64
}

// DefaultRetryPolicy matches the upload retry settings used for hosted APIs
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialInterval: 2 * time.Second,
		MaxInterval:     10 * time.Second,
		MaxElapsedTime:  30 * time.Second,
		MaxRetries:      3,
	}
}

// NewBackOff builds a context-aware backoff for backoff.Retry
func (p RetryPolicy) NewBackOff(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialInterval
	bo.MaxInterval = p.MaxInterval
	bo.MaxElapsedTime = p.MaxElapsedTime

	var b backoff.BackOff = bo
	if p.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, p.MaxRetries)
	}
	return backoff.WithContext(b, ctx)
}

// Retry runs fn under the policy. Errors that IsRetryableError rejects stop
// the loop immediately.
func Retry(ctx context.Context, p RetryPolicy, fn func() error) error {
	op := func() error {
		err := fn()
		if err != nil && !IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	err := backoff.Retry(op, p.NewBackOff(ctx))
	var perm *backoff.PermanentError
	if stdErrors.As(err, &perm) {
		return perm.Err
	}
	return err
}

// IsRetryableError checks if an error should trigger a retry
// Retryable errors include: network errors, timeouts, rate limits, 5xx
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// A cancelled parent never gets better
	if stdErrors.Is(err, context.Canceled) {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Per-attempt timeouts
	if strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "client.timeout exceeded") {
		return true
	}

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "eof") {
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429") {
		return true
	}

	// Server errors (5xx)
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}
