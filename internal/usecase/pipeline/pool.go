package pipeline

import (
	"sync"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// GeneratorPool keeps one generator per model so a model is probed once per
// process rather than once per request
type GeneratorPool struct {
	client minutes.TextGenerator
	cfg    *config.LLMConfig
	logger *zap.Logger
	opts   []minutes.Option

	mu         sync.Mutex
	generators map[string]*minutes.Generator
}

// NewGeneratorPool creates an empty pool. Generators are created on first use.
func NewGeneratorPool(client minutes.TextGenerator, cfg *config.LLMConfig, logger *zap.Logger, opts ...minutes.Option) *GeneratorPool {
	return &GeneratorPool{
		client:     client,
		cfg:        cfg,
		logger:     logger,
		opts:       opts,
		generators: make(map[string]*minutes.Generator),
	}
}

// Get returns the generator for model, creating it if needed
func (p *GeneratorPool) Get(model ai.Model) *minutes.Generator {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := model.Path()
	if g, ok := p.generators[key]; ok {
		return g
	}
	g := minutes.NewGenerator(p.client, model, p.cfg, p.logger, p.opts...)
	p.generators[key] = g
	return g
}

// Len returns the number of generators created so far
func (p *GeneratorPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.generators)
}
