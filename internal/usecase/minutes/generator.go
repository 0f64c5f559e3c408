package minutes

import (
	"context"
	stdErrors "errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jobcontext"
	"github.com/johnquangdev/meeting-minutes/pkg/metrics"
)

const defaultLoadTimeout = 30 * time.Second

// TextGenerator is the text generation backend
type TextGenerator interface {
	Ping(ctx context.Context, model ai.Model) error
	Generate(ctx context.Context, model ai.Model, prompt string, opts ai.GenerateOptions) (string, error)
}

// State is the availability of the generation backend
type State int

const (
	StateUnloaded State = iota
	StateReady
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateUnavailable:
		return "unavailable"
	default:
		return "unloaded"
	}
}

// Generator produces minutes records. A failed load leaves it unavailable
// for its whole lifetime; a failed call only replaces that call's output
// with demo content.
type Generator struct {
	client      TextGenerator
	model       ai.Model
	demoMode    bool
	callTimeout time.Duration
	sem         *semaphore.Weighted
	retry       jobcontext.RetryPolicy
	parser      *Parser
	metrics     *metrics.PipelineMetrics
	logger      *zap.Logger

	loadMu  sync.Mutex
	mu      sync.RWMutex
	state   State
	loadErr error
}

// Option customizes a Generator
type Option func(*Generator)

// WithRetryPolicy overrides the per-call backoff policy
func WithRetryPolicy(p jobcontext.RetryPolicy) Option {
	return func(g *Generator) { g.retry = p }
}

// WithMetrics records fallbacks
func WithMetrics(m *metrics.PipelineMetrics) Option {
	return func(g *Generator) { g.metrics = m }
}

// NewGenerator creates a generator for one model. client may be nil, in
// which case the generator is always in demo mode.
func NewGenerator(client TextGenerator, model ai.Model, cfg *config.LLMConfig, logger *zap.Logger, opts ...Option) *Generator {
	concurrency := int64(cfg.MaxConcurrency)
	if concurrency < 1 {
		concurrency = 1
	}
	g := &Generator{
		client:      client,
		model:       model,
		demoMode:    cfg.DemoMode || client == nil,
		callTimeout: cfg.CallTimeout,
		sem:         semaphore.NewWeighted(concurrency),
		retry:       jobcontext.DefaultRetryPolicy(),
		parser:      NewParser(),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the model this generator serves
func (g *Generator) Model() ai.Model {
	return g.model
}

// State reports the current availability
func (g *Generator) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Load pings the backend on first use. Later calls return the first
// result. The ping is detached from ctx cancellation and bounded by its own
// deadline, so a caller that goes away cannot mark the model unavailable.
func (g *Generator) Load(ctx context.Context) error {
	g.loadMu.Lock()
	defer g.loadMu.Unlock()

	if state := g.State(); state != StateUnloaded {
		g.mu.RLock()
		defer g.mu.RUnlock()
		return g.loadErr
	}

	state, err := StateReady, error(nil)
	if g.demoMode {
		state = StateUnavailable
	} else if pingErr := g.checkBackend(ctx); pingErr != nil {
		state = StateUnavailable
		err = errors.WithTimeout(errors.ErrModelLoad(g.model.Name(), pingErr), pingErr)
	}

	g.mu.Lock()
	g.state, g.loadErr = state, err
	g.mu.Unlock()

	if g.logger != nil {
		if err != nil {
			g.logger.Warn("⚠️ Model load failed, falling back to demo mode",
				zap.String("model", g.model.String()),
				zap.Error(err),
			)
		} else {
			g.logger.Info("🤖 Model ready",
				zap.String("model", g.model.String()),
				zap.String("state", state.String()),
			)
		}
	}
	return err
}

func (g *Generator) checkBackend(ctx context.Context) error {
	timeout := g.callTimeout
	if timeout <= 0 {
		timeout = defaultLoadTimeout
	}
	pingCtx, cancel := jobcontext.StageBegin(context.WithoutCancel(ctx), jobcontext.GetRunID(ctx), "model_load", timeout)
	defer cancel()

	return jobcontext.Retry(pingCtx, g.retry, func() error {
		return g.client.Ping(pingCtx, g.model)
	})
}

// Fallback describes one extraction that used demo content
type Fallback struct {
	Extraction string
	Err        error
}

func (f Fallback) String() string {
	return fmt.Sprintf("%s generation failed, using demo content: %v", f.Extraction, f.Err)
}

// GenerateMinutes builds the minutes record. It never fails: backend
// problems are reported as fallbacks and replaced by demo content.
func (g *Generator) GenerateMinutes(ctx context.Context, req entities.MeetingRequest, transcript entities.Transcript, maxSummaryWords int) (entities.MinutesRecord, []Fallback) {
	_ = g.Load(ctx)
	if g.State() != StateReady {
		return DemoMinutes(req, transcript), nil
	}

	record := entities.MinutesRecord{
		MeetingInfo:    meetingInfo(req, transcript),
		FullTranscript: transcript.Text,
	}

	var (
		mu        sync.Mutex
		fallbacks []Fallback
	)
	fallback := func(name string, err error) {
		mu.Lock()
		fallbacks = append(fallbacks, Fallback{Extraction: name, Err: err})
		mu.Unlock()
		g.observeFallback(ctx, name, err)
	}

	text := transcript.Text
	var eg errgroup.Group

	eg.Go(func() error {
		out, err := g.call(ctx, summaryExtraction(text, maxSummaryWords))
		if err != nil {
			fallback(ExtractionSummary, err)
			record.Summary = DemoSummary()
			return nil
		}
		record.Summary = g.parser.ParseSummary(out, maxSummaryWords)
		return nil
	})
	eg.Go(func() error {
		out, err := g.call(ctx, decisionsExtraction(text))
		if err != nil {
			fallback(ExtractionDecisions, err)
			record.KeyDecisions = DemoDecisions()
			return nil
		}
		record.KeyDecisions = g.parser.ParseDecisions(out)
		return nil
	})
	eg.Go(func() error {
		out, err := g.call(ctx, actionItemsExtraction(text))
		if err != nil {
			fallback(ExtractionActionItems, err)
			record.ActionItems = DemoActionItems()
			return nil
		}
		record.ActionItems = g.parser.ParseActionItems(out)
		return nil
	})
	eg.Go(func() error {
		out, err := g.call(ctx, nextStepsExtraction(text))
		if err != nil {
			fallback(ExtractionNextSteps, err)
			record.NextSteps = DemoNextSteps()
			return nil
		}
		record.NextSteps = g.parser.ParseNextSteps(out)
		return nil
	})
	_ = eg.Wait()

	record.Normalize()
	return record, fallbacks
}

// call runs one prompt within the concurrency limit and the per-call
// deadline, retrying transient failures
func (g *Generator) call(ctx context.Context, ex extraction) (string, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", errors.ErrGenerationCall(ex.name, err)
	}
	defer g.sem.Release(1)

	callCtx, cancel := jobcontext.StageBegin(ctx, jobcontext.GetRunID(ctx), "generation:"+ex.name, g.callTimeout)
	defer cancel()

	var out string
	err := jobcontext.Retry(callCtx, g.retry, func() error {
		res, err := g.client.Generate(callCtx, g.model, ex.prompt, ex.opts)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return "", errors.WithTimeout(errors.ErrGenerationCall(ex.name, err), callCtx.Err())
	}
	return out, nil
}

func (g *Generator) observeFallback(ctx context.Context, extraction string, err error) {
	reason := "error"
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) && appErr.IsTimeout() {
		reason = "timeout"
	}
	g.metrics.ObserveFallback(extraction, reason)

	if g.logger != nil {
		g.logger.Warn("generation call failed, using demo content",
			zap.String("run_id", jobcontext.GetRunID(ctx)),
			zap.String("extraction", extraction),
			zap.String("reason", reason),
			zap.Error(err),
		)
	}
}
