package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipelineMetrics holds all Prometheus metrics for the minutes pipeline.
// A nil *PipelineMetrics is valid and records nothing.
type PipelineMetrics struct {
	RunsTotal           *prometheus.CounterVec
	StageDuration       *prometheus.HistogramVec
	GenerationFallbacks *prometheus.CounterVec
	ExportsTotal        *prometheus.CounterVec
}

// DefaultPipelineMetrics registers metrics on the default registry
func DefaultPipelineMetrics() *PipelineMetrics {
	return NewPipelineMetrics(prometheus.DefaultRegisterer)
}

// NewPipelineMetrics creates a new set of pipeline metrics
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)

	return &PipelineMetrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minutes_runs_total",
				Help: "Total pipeline runs by final status",
			},
			[]string{"status"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "minutes_stage_duration_seconds",
				Help:    "Wall time spent in each pipeline stage",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 180, 600, 1800},
			},
			[]string{"stage"},
		),
		GenerationFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minutes_generation_fallbacks_total",
				Help: "Extractions answered with demo content",
			},
			[]string{"extraction", "reason"},
		),
		ExportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minutes_exports_total",
				Help: "Rendered export payloads by format",
			},
			[]string{"format"},
		),
	}
}

// ObserveRun counts a finished run
func (m *PipelineMetrics) ObserveRun(status string) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(status).Inc()
}

// ObserveStage records how long a stage took
func (m *PipelineMetrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveFallback counts a demo fallback for one extraction
func (m *PipelineMetrics) ObserveFallback(extraction, reason string) {
	if m == nil {
		return
	}
	m.GenerationFallbacks.WithLabelValues(extraction, reason).Inc()
}

// ObserveExport counts a rendered payload
func (m *PipelineMetrics) ObserveExport(format string) {
	if m == nil {
		return
	}
	m.ExportsTotal.WithLabelValues(format).Inc()
}
