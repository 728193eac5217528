package infrastructure

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehedi-hridoy/creator-pulse/internal/config"
	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts"
)

func scrape(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestNewOTelConfig(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	cfg := NewOTelConfig(config.TelemetryConfig{
		ServiceName:    "svc",
		TraceExporter:  "stdout",
		MetricExporter: "none",
	})

	assert.Equal(t, "svc", cfg.ServiceName)
	assert.Equal(t, contracts.Version, cfg.ServiceVersion)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "stdout", cfg.TraceExporter)
	assert.Equal(t, "none", cfg.MetricExporter)
	assert.Equal(t, 1.0, cfg.SampleRatio)
}

func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(nil, NewDiscardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	// defaults: no trace exporter, prometheus metrics
	assert.Nil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.PrometheusHTTP)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelStdoutTracing(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "stdout"
	cfg.MetricExporter = "none"

	providers, err := InitializeOTel(cfg, NewDiscardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	require.NotNil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)

	ctx, span := providers.Tracer.Start(context.Background(), "test-operation")
	traceID := TraceIDFromContext(ctx)
	span.End()

	assert.Len(t, traceID, 32)
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestOTelUnsupportedExporters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OTelConfig)
	}{
		{"trace", func(c *OTelConfig) { c.TraceExporter = "jaeger" }},
		{"metric", func(c *OTelConfig) { c.MetricExporter = "statsd" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultOTelConfig()
			tt.mutate(cfg)
			_, err := InitializeOTel(cfg, NewDiscardLogger())
			assert.Error(t, err)
		})
	}
}

func TestRepeatedInitialization(t *testing.T) {
	for i := 0; i < 2; i++ {
		providers, err := InitializeOTel(DefaultOTelConfig(), NewDiscardLogger())
		require.NoError(t, err)
		require.NoError(t, providers.Shutdown(context.Background()))
	}
}

func TestBusinessMetricsExposedToPrometheus(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), NewDiscardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	RecordAnalysisMetrics(ctx, metrics, AnalysisOutcome{
		Backend:   "manual",
		Source:    "cli",
		Records:   12,
		Alerts:    2,
		Fallbacks: 1,
		Skipped:   1,
		Duration:  25 * time.Millisecond,
	})
	RecordAnalysisMetrics(ctx, metrics, AnalysisOutcome{
		Backend:  "manual",
		Source:   "http",
		Duration: time.Millisecond,
		Err:      errors.New("boom"),
	})
	RecordHTTPMetrics(ctx, metrics, http.MethodPost, "/api/v1/analyze", http.StatusOK, 30*time.Millisecond)

	body := scrape(t, providers.PrometheusHTTP)
	for _, name := range []string{
		"analysis_runs_total",
		"analysis_duration_seconds",
		"analysis_errors_total",
		"analysis_records_total",
		"analysis_alerts_total",
		"analysis_theme_fallbacks_total",
		"ingest_files_skipped_total",
		"http_requests_total",
		"http_request_duration_seconds",
		"go_goroutines",
	} {
		assert.Contains(t, body, name)
	}
	assert.NotContains(t, body, "analysis_sections_unavailable_total")
}

func TestRecordMetricsNilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordAnalysisMetrics(context.Background(), nil, AnalysisOutcome{Records: 1})
		RecordHTTPMetrics(context.Background(), nil, http.MethodGet, "/", http.StatusOK, time.Second)
	})
}

func TestSpanHelpersWithoutSpan(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordError(ctx, errors.New("ignored"))
		RecordError(ctx, nil)
		SetSpanAttributes(ctx, map[string]interface{}{"k": "v", "n": 1})
	})
}

func TestMetricsDisabledHandler(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.MetricExporter = "none"
	providers, err := InitializeOTel(cfg, NewDiscardLogger())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, err = CreateBusinessMetrics(providers.Meter)
	assert.NoError(t, err)
}
