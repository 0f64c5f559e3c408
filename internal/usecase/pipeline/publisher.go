package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
)

// ProgressPublisher forwards pipeline progress to a ProgressStore so other
// clients can poll or stream it
type ProgressPublisher struct {
	ctx    context.Context
	store  cache.ProgressStore
	runID  string
	logger *zap.Logger
}

// NewProgressPublisher publishes events for one run. Publishing uses a
// context detached from ctx's cancellation so the terminal event still goes
// out after the request ends.
func NewProgressPublisher(ctx context.Context, store cache.ProgressStore, runID string, logger *zap.Logger) *ProgressPublisher {
	return &ProgressPublisher{
		ctx:    context.WithoutCancel(ctx),
		store:  store,
		runID:  runID,
		logger: logger,
	}
}

func (p *ProgressPublisher) OnProgress(stage string, percent int) {
	eventType := entities.ProgressStage
	if percent >= 100 {
		eventType = entities.ProgressDone
	}
	p.publish(entities.ProgressEvent{Type: eventType, Stage: stage, Percent: percent})
}

func (p *ProgressPublisher) OnWarning(message string) {
	percent := 0
	if last, err := p.store.Latest(p.ctx, p.runID); err == nil && last != nil {
		percent = last.Percent
	}
	p.publish(entities.ProgressEvent{Type: entities.ProgressWarning, Percent: percent, Message: message})
}

func (p *ProgressPublisher) OnFailure(err error) {
	percent := 0
	if last, lerr := p.store.Latest(p.ctx, p.runID); lerr == nil && last != nil {
		percent = last.Percent
	}
	p.publish(entities.ProgressEvent{Type: entities.ProgressFailed, Percent: percent, Message: err.Error()})
}

func (p *ProgressPublisher) publish(event entities.ProgressEvent) {
	event.RunID = p.runID
	event.Timestamp = time.Now().UTC()

	ctx, cancel := context.WithTimeout(p.ctx, 3*time.Second)
	defer cancel()
	if err := p.store.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("⚠️ Failed to publish progress",
			zap.String("run_id", p.runID),
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
	}
}
