package errors

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedMiddleware() (*ErrorMiddleware, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewErrorMiddleware(NewErrorHandler(logger, false), logger), &buf
}

func TestErrorMiddlewareLogsRequests(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"ok", http.StatusOK, "INFO"},
		{"client error", http.StatusBadRequest, "WARN"},
		{"server error", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, buf := newBufferedMiddleware()
			h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health?verbose=1", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, buf.String(), `"level":"`+tt.wantLevel+`"`)
			assert.Contains(t, buf.String(), `"query":"verbose=1"`)
		})
	}
}

func TestErrorMiddlewarePreservesBody(t *testing.T) {
	m, _ := newBufferedMiddleware()
	payload := `{"platforms":{"youtube":[]},"pad":"` + strings.Repeat("x", 2000) + `"}`

	var got []byte
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		got, err = io.ReadAll(r.Body)
		require.NoError(t, err)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(payload)))
	assert.Equal(t, payload, string(got))
}

func TestErrorMiddlewareRedactsFailedBody(t *testing.T) {
	m, buf := newBufferedMiddleware()
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusBadRequest)
	}))

	body := `{"access_token":"hunter2","platforms":{}}`
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body)))

	assert.NotContains(t, buf.String(), "hunter2")
	assert.Contains(t, buf.String(), "REDACTED")
}

func TestErrorMiddlewareRecoversPanic(t *testing.T) {
	m, buf := newBufferedMiddleware()
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestRecoveryMiddleware(t *testing.T) {
	m, _ := newBufferedMiddleware()
	h := RecoveryMiddleware(m.handler)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() { h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil)) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	abort := RecoveryMiddleware(m.handler)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.Panics(t, func() { abort.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)) })
}

func TestSanitizeRequestBody(t *testing.T) {
	assert.Equal(t, `{"api_key":"[REDACTED]","n":1}`, sanitizeRequestBody([]byte(`{"api_key":"k","n":1}`)))
	assert.Equal(t, "not json", sanitizeRequestBody([]byte("not json")))

	long := sanitizeRequestBody([]byte(strings.Repeat("a", 600)))
	assert.Len(t, long, maxLoggedBody+3)
}
