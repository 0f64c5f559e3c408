package bootstrap

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/media"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/evaluation"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/export"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/transcription"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/metrics"
)

// staleRunAge is how long a run may stay in processing before startup marks
// it failed
const staleRunAge = time.Hour

// App is the service graph shared by the API server and the CLI
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	Registry     *prometheus.Registry
	Metrics      *metrics.PipelineMetrics
	Model        ai.Model
	Orchestrator *pipeline.Orchestrator
	Evaluator    *evaluation.Evaluator
	Progress     cache.ProgressStore

	// Runs is nil when DB_ENABLED is false
	Runs repositories.RunRepository
	// Artifacts is nil when STORAGE_ENABLED is false
	Artifacts *storage.MinIOClient

	closers []func() error
}

// Option tweaks how the graph is built
type Option func(*settings)

type settings struct {
	migrationsDir string
}

// WithMigrationsDir reads migrations from dir instead of the embedded set
func WithMigrationsDir(dir string) Option {
	return func(s *settings) { s.migrationsDir = dir }
}

// New wires every component from configuration. Optional backends (Postgres,
// Redis, MinIO) are connected only when enabled; a failing connection to an
// enabled backend is an error.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	model, err := ai.ParseModel(cfg.LLM.Model)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MODEL: %w", err)
	}
	if cfg.Database.Enabled && cfg.Database.AutoMigrate && cfg.IsProduction() {
		return nil, fmt.Errorf("DB_AUTO_MIGRATE is enabled in production; apply migrations with `minutes migrate` instead")
	}

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Registry:  prometheus.NewRegistry(),
		Model:     model,
		Evaluator: evaluation.NewEvaluator(),
	}
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.Metrics = metrics.NewPipelineMetrics(app.Registry)

	if err := app.connect(ctx, s); err != nil {
		_ = app.Close()
		return nil, err
	}

	backend, err := transcription.NewBackend(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	transcriber := transcription.NewService(backend, &cfg.Transcriber, logger)

	// a nil client keeps every generator in demo mode
	var client minutes.TextGenerator
	if !cfg.LLM.DemoMode {
		client = ai.NewChatClient(&cfg.LLM)
	}
	pool := pipeline.NewGeneratorPool(client, &cfg.LLM, logger, minutes.WithMetrics(app.Metrics))
	exporter := export.NewExporter(logger, export.WithMetrics(app.Metrics), export.WithPDFFont(cfg.Export.PDFFont))

	orchestratorOpts := []pipeline.OrchestratorOption{pipeline.WithMetrics(app.Metrics)}
	if app.Runs != nil {
		orchestratorOpts = append(orchestratorOpts, pipeline.WithRunRepository(app.Runs))
	}
	if app.Artifacts != nil {
		orchestratorOpts = append(orchestratorOpts, pipeline.WithArtifactStore(app.Artifacts))
	}
	app.Orchestrator = pipeline.NewOrchestrator(
		media.NewConverter(&cfg.Media, logger),
		transcriber,
		pool,
		exporter,
		cfg.Minutes,
		model,
		logger,
		orchestratorOpts...,
	)

	logger.Info("✅ Pipeline ready",
		zap.String("model", model.String()),
		zap.String("transcriber", cfg.Transcriber.Backend),
		zap.Bool("llm_demo_mode", cfg.LLM.DemoMode),
		zap.Bool("persistence", app.Runs != nil),
		zap.Bool("artifact_storage", app.Artifacts != nil),
	)
	return app, nil
}

func (a *App) connect(ctx context.Context, s settings) error {
	cfg, logger := a.Config, a.Logger

	if cfg.Database.Enabled {
		logger.Info("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg, logger)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() error { return database.CloseDB(db) })

		if cfg.Database.AutoMigrate {
			if _, err := database.Migrate(ctx, db, database.Source(s.migrationsDir), logger); err != nil {
				return err
			}
		}

		repo := repository.NewRunRepository(db)
		n, err := repo.MarkStaleRunsAsFailed(ctx, staleRunAge)
		if err != nil {
			logger.Warn("⚠️ Failed to mark stale runs", zap.Error(err))
		} else if n > 0 {
			logger.Info("🧹 Marked stale runs as failed", zap.Int64("count", n))
		}
		a.Runs = repo
	}

	if cfg.Redis.Enabled {
		logger.Info("📦 Connecting to Redis...")
		rdb, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, rdb.Close)
		a.Progress = cache.NewRedisProgressStore(rdb, cfg.Redis.ProgressTTL, logger)
	} else {
		store := cache.NewMemoryProgressStore(cfg.Redis.ProgressTTL)
		a.closers = append(a.closers, store.Close)
		a.Progress = store
	}

	if cfg.Storage.Enabled {
		logger.Info("🗄️ Connecting to object storage...", zap.String("endpoint", cfg.Storage.Endpoint))
		client, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			return err
		}
		a.Artifacts = client
	}
	return nil
}

// Close releases connections in reverse order of creation
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return stdErrors.Join(errs...)
}
