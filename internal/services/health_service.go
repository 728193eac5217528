package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/mehedi-hridoy/creator-pulse/internal/insights"
	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	version   contracts.VersionInfo
	backend   insights.NumericBackend
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Engine  string `json:"engine,omitempty"`
}

// NewHealthService creates a health service reporting on backend
func NewHealthService(backend insights.NumericBackend, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   contracts.GetVersionInfo(),
		backend:   backend,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status including the analysis engine
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	analysis := hs.checkAnalysisHealth()
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   hs.version.Version,
		Services:  map[string]interface{}{"analysis": analysis},
	}
	if analysis.Status != "ready" {
		status.Status = "degraded"
	}

	hs.logger.DebugContext(ctx, "HealthCheck: completed",
		slog.String("status", status.Status))
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now().UTC(),
		Version:   hs.version.Version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version and engine information
func (hs *HealthService) Version() map[string]interface{} {
	result := map[string]interface{}{
		"name":          contracts.GetVersionString(),
		"version":       hs.version.Version,
		"stage":         hs.version.Stage,
		"report_format": hs.version.ReportFormat,
		"api_version":   hs.version.APIVersion,
		"go_version":    hs.version.GoVersion,
		"os":            hs.version.OS,
		"arch":          hs.version.Architecture,
		"uptime":        time.Since(hs.startTime).Seconds(),
		"start_time":    hs.startTime.UTC().Format(time.RFC3339),
	}
	if hs.backend != nil {
		result["backend"] = hs.backend.Name()
		result["engine"] = hs.backend.Capabilities().Engine()
	}
	if hs.version.BuildTime != "unknown" {
		result["build_time"] = hs.version.BuildTime
	}
	if hs.version.GitCommit != "unknown" {
		result["git_commit"] = hs.version.GitCommit
	}
	return result
}

func (hs *HealthService) checkAnalysisHealth() ServiceHealth {
	if hs.backend == nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: "no numeric backend configured",
		}
	}
	return ServiceHealth{
		Status:  "ready",
		Message: "analysis engine is healthy",
		Engine:  hs.backend.Capabilities().Engine(),
	}
}
