package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/mehedi-hridoy/creator-pulse/internal/config"
	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts"
)

// MeterName is the instrumentation scope for every tracer and meter
const MeterName = "creatorpulse"

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout", "none"
	MetricExporter string // "prometheus", "none"
	SampleRatio    float64
}

// OTelProviders holds the OpenTelemetry providers. Tracer and Meter are
// never nil; when an exporter is disabled they come from the global
// (no-op) providers.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// NewOTelConfig maps the telemetry section of the application config
func NewOTelConfig(cfg config.TelemetryConfig) *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	return &OTelConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: contracts.Version,
		Environment:    env,
		TraceExporter:  cfg.TraceExporter,
		MetricExporter: cfg.MetricExporter,
		SampleRatio:    1.0,
	}
}

// DefaultOTelConfig returns the configuration for the default telemetry section
func DefaultOTelConfig() *OTelConfig {
	return NewOTelConfig(config.Default().Telemetry)
}

// InitializeOTel sets up tracing and metrics according to cfg
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()
	logger.DebugContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.String("environment", cfg.Environment),
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metric_exporter", cfg.MetricExporter))

	res := createResource(cfg)
	providers := &OTelProviders{Logger: logger}

	if err := initializeTracing(ctx, cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

func createResource(cfg *OTelConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", uuid.NewString()),
	)
}

func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "stdout":
		// stdout carries reports in the CLI, so spans go to stderr
		exporter, err = stdouttrace.New(
			stdouttrace.WithWriter(os.Stderr),
			stdouttrace.WithPrettyPrint(),
		)
	case "none", "":
		providers.Tracer = otel.Tracer(MeterName)
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)
	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetTracerProvider(tp)

	providers.Logger.DebugContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))
	return nil
}

func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.MetricExporter {
	case "prometheus":
		// one registry per provider set, so repeated initialisation never collides
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
		providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		otel.SetMeterProvider(mp)
	case "none", "":
		providers.Meter = otel.Meter(MeterName)
		providers.PrometheusHTTP = http.NotFoundHandler()
		return nil
	default:
		return fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	providers.Logger.DebugContext(ctx, "Metrics initialized",
		slog.String("exporter", cfg.MetricExporter))
	return nil
}

// BusinessMetrics holds the application specific instruments
type BusinessMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Analysis metrics
	AnalysisRunsTotal   metric.Int64Counter
	AnalysisDuration    metric.Float64Histogram
	AnalysisErrors      metric.Int64Counter
	RecordsAnalyzed     metric.Int64Counter
	AlertsEmitted       metric.Int64Counter
	ThemeFallbacks      metric.Int64Counter
	IngestFilesSkipped  metric.Int64Counter
	SectionsUnavailable metric.Int64Counter
}

// CreateBusinessMetrics registers every instrument on meter
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	var (
		m    BusinessMetrics
		err  error
		errs []error
	)
	collect := func(e error) {
		if e != nil {
			errs = append(errs, e)
		}
	}

	m.HTTPRequestsTotal, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"))
	collect(err)

	m.HTTPRequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10))
	collect(err)

	m.HTTPActiveRequests, err = meter.Int64UpDownCounter("http_active_requests",
		metric.WithDescription("Number of HTTP requests in flight"),
		metric.WithUnit("{request}"))
	collect(err)

	m.AnalysisRunsTotal, err = meter.Int64Counter("analysis_runs_total",
		metric.WithDescription("Total number of analysis runs"),
		metric.WithUnit("{run}"))
	collect(err)

	m.AnalysisDuration, err = meter.Float64Histogram("analysis_duration_seconds",
		metric.WithDescription("Analysis run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30))
	collect(err)

	m.AnalysisErrors, err = meter.Int64Counter("analysis_errors_total",
		metric.WithDescription("Total number of failed analysis runs"),
		metric.WithUnit("{error}"))
	collect(err)

	m.RecordsAnalyzed, err = meter.Int64Counter("analysis_records_total",
		metric.WithDescription("Total number of records analyzed"),
		metric.WithUnit("{record}"))
	collect(err)

	m.AlertsEmitted, err = meter.Int64Counter("analysis_alerts_total",
		metric.WithDescription("Total number of growth alerts emitted"),
		metric.WithUnit("{alert}"))
	collect(err)

	m.ThemeFallbacks, err = meter.Int64Counter("analysis_theme_fallbacks_total",
		metric.WithDescription("Platforms whose themes fell back to the tertile split"),
		metric.WithUnit("{platform}"))
	collect(err)

	m.IngestFilesSkipped, err = meter.Int64Counter("ingest_files_skipped_total",
		metric.WithDescription("Input files skipped because they could not be read or decoded"),
		metric.WithUnit("{file}"))
	collect(err)

	m.SectionsUnavailable, err = meter.Int64Counter("analysis_sections_unavailable_total",
		metric.WithDescription("Report sections left empty because their analyzer failed"),
		metric.WithUnit("{section}"))
	collect(err)

	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to create business metrics: %w", errors.Join(errs...))
	}
	return &m, nil
}

// AnalysisOutcome summarises one analysis run for metric recording
type AnalysisOutcome struct {
	Backend     string
	Source      string // "cli" or "http"
	Records     int
	Alerts      int
	Fallbacks   int
	Unavailable int
	Skipped     int
	Duration    time.Duration
	Err         error
}

// RecordAnalysisMetrics records one analysis run. A nil metrics is a no-op.
func RecordAnalysisMetrics(ctx context.Context, metrics *BusinessMetrics, o AnalysisOutcome) {
	if metrics == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("backend", o.Backend),
		attribute.String("source", o.Source),
	}
	status := attribute.String("status", "success")
	if o.Err != nil {
		status = attribute.String("status", "failure")
	}

	metrics.AnalysisRunsTotal.Add(ctx, 1, metric.WithAttributes(append(attrs, status)...))
	metrics.AnalysisDuration.Record(ctx, o.Duration.Seconds(), metric.WithAttributes(append(attrs, status)...))

	if o.Err != nil {
		metrics.AnalysisErrors.Add(ctx, 1, metric.WithAttributes(
			append(attrs, attribute.String("error.type", fmt.Sprintf("%T", o.Err)))...))
	}
	if o.Skipped > 0 {
		metrics.IngestFilesSkipped.Add(ctx, int64(o.Skipped), metric.WithAttributes(attrs...))
	}
	if o.Err != nil {
		return
	}

	metrics.RecordsAnalyzed.Add(ctx, int64(o.Records), metric.WithAttributes(attrs...))
	metrics.AlertsEmitted.Add(ctx, int64(o.Alerts), metric.WithAttributes(attrs...))
	if o.Fallbacks > 0 {
		metrics.ThemeFallbacks.Add(ctx, int64(o.Fallbacks), metric.WithAttributes(attrs...))
	}
	if o.Unavailable > 0 {
		metrics.SectionsUnavailable.Add(ctx, int64(o.Unavailable), metric.WithAttributes(attrs...))
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("analysis.metrics_recorded",
			trace.WithAttributes(
				attribute.Int("records", o.Records),
				attribute.Int("alerts", o.Alerts),
				attribute.Float64("duration_seconds", o.Duration.Seconds()),
			),
		)
	}
}

// RecordHTTPMetrics records a completed HTTP request
func RecordHTTPMetrics(ctx context.Context, metrics *BusinessMetrics, method, route string, status int, duration time.Duration) {
	if metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)
	metrics.HTTPRequestsTotal.Add(ctx, 1, attrs)
	metrics.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// TraceIDFromContext returns the OpenTelemetry trace id of the active span,
// or "" when there is none
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.HasTraceID() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError marks the current span as failed
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			span.SetAttributes(attribute.String(k, val))
		case int:
			span.SetAttributes(attribute.Int(k, val))
		case int64:
			span.SetAttributes(attribute.Int64(k, val))
		case float64:
			span.SetAttributes(attribute.Float64(k, val))
		case bool:
			span.SetAttributes(attribute.Bool(k, val))
		default:
			span.SetAttributes(attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
}
