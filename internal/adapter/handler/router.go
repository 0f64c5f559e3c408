package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg          *config.Config
	minutes      *MinutesController
	evaluation   *EvaluationController
	models       *ModelsController
	gatherer     prometheus.Gatherer
	serveSwagger bool
}

// RouterOption configures optional routes
type RouterOption func(*Router)

// WithGatherer serves /metrics from the given registry instead of the
// default one
func WithGatherer(g prometheus.Gatherer) RouterOption {
	return func(rt *Router) { rt.gatherer = g }
}

// WithSwagger serves the API docs under /swagger
func WithSwagger() RouterOption {
	return func(rt *Router) { rt.serveSwagger = true }
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, minutes *MinutesController, evaluation *EvaluationController, models *ModelsController, opts ...RouterOption) *Router {
	rt := &Router{
		cfg:        cfg,
		minutes:    minutes,
		evaluation: evaluation,
		models:     models,
		gatherer:   prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{})))
	if rt.serveSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMinutesRoutes(v1)
	rt.setupEvaluationRoutes(v1)
	v1.GET("/models", rt.models.List)
}

// setupMinutesRoutes configures upload and run routes
func (rt *Router) setupMinutesRoutes(g *echo.Group) {
	minutesGroup := g.Group("/minutes")

	minutesGroup.POST("", rt.minutes.Create)
	minutesGroup.GET("/:id", rt.minutes.Get)
	minutesGroup.GET("/:id/progress", rt.minutes.Progress)
	minutesGroup.GET("/:id/events", rt.minutes.Events)
	minutesGroup.GET("/:id/exports/:format", rt.minutes.Export)
}

// setupEvaluationRoutes configures quality evaluation routes
func (rt *Router) setupEvaluationRoutes(g *echo.Group) {
	g.POST("/evaluations", rt.evaluation.Evaluate)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "development"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, common.HealthResponse{
		Status:      "ok",
		Environment: env,
	})
}
