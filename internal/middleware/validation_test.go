package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/mehedi-hridoy/creator-pulse/internal/errors"
	"github.com/mehedi-hridoy/creator-pulse/internal/exporter"
	"github.com/mehedi-hridoy/creator-pulse/internal/infrastructure"
)

func TestAnalyzeParams(t *testing.T) {
	v := NewQueryParamValidator(infrastructure.NewDiscardLogger())

	tests := []struct {
		name       string
		query      string
		want       AnalyzeParams
		wantStatus int
		wantField  string
	}{
		{name: "defaults", query: "", want: AnalyzeParams{Format: exporter.FormatJSON}},
		{name: "all set", query: "k=5&top=3&format=XLSX", want: AnalyzeParams{K: 5, Top: 3, Format: exporter.FormatXLSX}},
		{name: "non integer k", query: "k=abc", wantStatus: http.StatusBadRequest, wantField: "k"},
		{name: "explicit zero k", query: "k=0", wantStatus: http.StatusBadRequest, wantField: "k"},
		{name: "k too large", query: "k=51", wantStatus: http.StatusBadRequest, wantField: "k"},
		{name: "top too large", query: "top=101", wantStatus: http.StatusBadRequest, wantField: "top"},
		{name: "csv not acceptable", query: "format=csv", wantStatus: http.StatusNotAcceptable},
		{name: "unknown format", query: "format=pdf", wantStatus: http.StatusNotAcceptable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze?"+tt.query, nil)
			got, err := v.AnalyzeParams(req)

			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			var apiErr *apierrors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			if tt.wantField != "" {
				details, ok := apiErr.Details.([]apierrors.ValidationError)
				require.True(t, ok)
				require.Len(t, details, 1)
				assert.Equal(t, tt.wantField, details[0].Field)
			}
		})
	}
}

func TestValidateStructMessages(t *testing.T) {
	v := NewQueryParamValidator(nil)

	type sample struct {
		Name string `json:"name" validate:"required"`
		Mode string `json:"mode" validate:"oneof=fast slow"`
	}

	err := v.ValidateStruct(sample{Mode: "medium"})
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))

	details := apiErr.Details.([]apierrors.ValidationError)
	require.Len(t, details, 2)
	assert.Equal(t, "name", details[0].Field)
	assert.Equal(t, "name is required", details[0].Message)
	assert.Equal(t, "mode must be one of: fast, slow", details[1].Message)
}

func TestContentTypeValidator(t *testing.T) {
	eh := apierrors.NewErrorHandler(infrastructure.NewDiscardLogger(), false)
	h := ContentTypeValidator(eh, "application/json", "text/plain")(okHandler())

	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{"json", http.MethodPost, "application/json; charset=utf-8", http.StatusOK},
		{"missing", http.MethodPost, "", http.StatusOK},
		{"get ignored", http.MethodGet, "image/png", http.StatusOK},
		{"rejected", http.MethodPost, "image/png", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/analyze", strings.NewReader("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Contains(t, w.Body.String(), CodeUnsupportedMediaType)
			}
		})
	}
}
