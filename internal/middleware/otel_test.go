package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/mehedi-hridoy/creator-pulse/internal/infrastructure"
)

func newInstrumentedRouter(t *testing.T) (http.Handler, *sdkmetric.ManualReader, *tracetest.SpanRecorder, *string) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	metrics, err := infrastructure.CreateBusinessMetrics(meter)
	require.NoError(t, err)

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	m := NewOTelMiddleware(&infrastructure.OTelProviders{
		Tracer: tp.Tracer("test"),
		Logger: infrastructure.NewDiscardLogger(),
	}, metrics)

	var seenTraceID string
	r := chi.NewRouter()
	r.Use(RequestID, m.Handler)
	r.Get("/api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = infrastructure.GetTraceID(r.Context())
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	})
	return r, reader, spans, &seenTraceID
}

func TestOTelMiddlewareRecordsRoutePattern(t *testing.T) {
	router, reader, spans, seenTraceID := newInstrumentedRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items/42", nil))
	require.Equal(t, http.StatusAccepted, w.Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http_requests_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)
			dp := sum.DataPoints[0]
			assert.Equal(t, int64(1), dp.Value)
			route, _ := dp.Attributes.Value(attribute.Key("http.route"))
			assert.Equal(t, "/api/items/{id}", route.AsString())
			status, _ := dp.Attributes.Value(attribute.Key("http.status_code"))
			assert.Equal(t, int64(http.StatusAccepted), status.AsInt64())
			found = true
		}
	}
	assert.True(t, found, "http_requests_total not recorded")

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "GET /api/items/{id}", ended[0].Name())
	assert.Equal(t, ended[0].SpanContext().TraceID().String(), *seenTraceID)
	assert.NotEqual(t, w.Header().Get(RequestIDHeader), *seenTraceID)
}

func TestOTelMiddlewareWithoutMetrics(t *testing.T) {
	m := NewOTelMiddleware(nil, nil)
	h := m.Handler(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	_, err := rw.Write([]byte("body"))
	require.NoError(t, err)
	rw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusOK, rw.statusCode)
	assert.Equal(t, int64(4), rw.bytesWritten)
	assert.Equal(t, rec, rw.Unwrap())
}
