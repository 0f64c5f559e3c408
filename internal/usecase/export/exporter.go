package export

import (
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/metrics"
)

// Renderer turns a minutes record into one payload
type Renderer interface {
	Render(record entities.MinutesRecord) ([]byte, error)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(record entities.MinutesRecord) ([]byte, error)

func (f RendererFunc) Render(record entities.MinutesRecord) ([]byte, error) {
	return f(record)
}

// Exporter dispatches each requested format to its renderer
type Exporter struct {
	renderers map[entities.ExportFormat]Renderer
	overrides map[entities.ExportFormat]Renderer
	now       func() time.Time
	pdfFont   string
	metrics   *metrics.PipelineMetrics
	logger    *zap.Logger
}

// Option customizes an Exporter
type Option func(*Exporter)

// WithRenderer registers or replaces the renderer of a format
func WithRenderer(format entities.ExportFormat, r Renderer) Option {
	return func(e *Exporter) { e.overrides[format] = r }
}

// WithMetrics counts rendered payloads
func WithMetrics(m *metrics.PipelineMetrics) Option {
	return func(e *Exporter) { e.metrics = m }
}

// WithClock fixes the generation timestamp, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// WithPDFFont embeds the TrueType font at path in PDF exports
func WithPDFFont(path string) Option {
	return func(e *Exporter) { e.pdfFont = path }
}

// NewExporter creates an exporter with JSON, HTML, PDF and TXT renderers
func NewExporter(logger *zap.Logger, opts ...Option) *Exporter {
	e := &Exporter{
		overrides: map[entities.ExportFormat]Renderer{},
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.renderers = map[entities.ExportFormat]Renderer{
		entities.FormatJSON: JSONRenderer{},
		entities.FormatHTML: NewHTMLRenderer(e.now),
		entities.FormatPDF:  NewPDFRenderer(e.now, e.pdfFont),
		entities.FormatTXT:  TextRenderer{},
	}
	for format, r := range e.overrides {
		e.renderers[format] = r
	}
	return e
}

// Supports reports whether a format has a renderer
func (e *Exporter) Supports(format entities.ExportFormat) bool {
	_, ok := e.renderers[format]
	return ok
}

// Export renders every known format. Unknown formats are skipped. Any
// renderer failure aborts the call and no partial bundle is returned.
func (e *Exporter) Export(record entities.MinutesRecord, formats []entities.ExportFormat) (entities.ExportBundle, error) {
	record.Normalize()

	bundle := make(entities.ExportBundle, len(formats))
	for _, format := range formats {
		renderer, ok := e.renderers[format]
		if !ok {
			if e.logger != nil {
				e.logger.Debug("skipping unknown export format", zap.String("format", string(format)))
			}
			continue
		}
		if _, done := bundle[format]; done {
			continue
		}

		data, err := renderer.Render(record)
		if err != nil {
			return nil, errors.ErrExportFailed(string(format), err)
		}
		bundle[format] = data
	}

	for format := range bundle {
		e.metrics.ObserveExport(string(format))
	}
	return bundle, nil
}
