package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/mehedi-hridoy/creator-pulse/internal/errors"
	"github.com/mehedi-hridoy/creator-pulse/internal/exporter"
	"github.com/mehedi-hridoy/creator-pulse/internal/middleware"
	"github.com/mehedi-hridoy/creator-pulse/internal/services"
)

// requestSourceName labels HTTP bodies in input errors
const requestSourceName = "request body"

// AnalysisHandler serves the analyze endpoint
type AnalysisHandler struct {
	service      AnalysisServiceInterface
	exporter     *exporter.Exporter
	validator    *middleware.QueryParamValidator
	errorHandler *apierrors.ErrorHandler
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler. maxBodyBytes caps the
// request body; zero or less disables the cap.
func NewAnalysisHandler(service AnalysisServiceInterface, errorHandler *apierrors.ErrorHandler, maxBodyBytes int64, logger *slog.Logger) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		service:      service,
		exporter:     exporter.NewExporter(logger),
		validator:    middleware.NewQueryParamValidator(logger),
		errorHandler: errorHandler,
		maxBodyBytes: maxBodyBytes,
		logger:       logger.With(slog.String("component", "analysis_handler")),
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/analyze", h.Analyze)
	return r
}

// Analyze handles POST /api/v1/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params, err := h.validator.AnalyzeParams(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	report, err := h.service.AnalyzeReader(ctx, requestSourceName, body, services.SourceHTTP, services.Overrides{
		ClusterK:  params.K,
		TopThemes: params.Top,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.DebugContext(ctx, "analysis served",
		slog.String("format", string(params.Format)),
		slog.String("engine", report.Meta.Engine))

	if params.Format != exporter.FormatXLSX {
		render.JSON(w, r, report)
		return
	}

	// Buffer the workbook so an encoding failure can still become a problem response.
	var buf bytes.Buffer
	if err := h.exporter.Write(&buf, report, exporter.FormatXLSX, exporter.Options{}); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewExportError("failed to build workbook", err))
		return
	}

	w.Header().Set("Content-Type", exporter.FormatXLSX.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "creatorpulse-report"+exporter.FormatXLSX.Extension()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(ctx, "failed to write workbook", slog.String("error", err.Error()))
	}
}
