package http

import (
	"context"
	"io"

	"github.com/mehedi-hridoy/creator-pulse/internal/services"
	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

// AnalysisServiceInterface defines the analysis operations used by handlers
type AnalysisServiceInterface interface {
	AnalyzeReader(ctx context.Context, name string, r io.Reader, source string, o services.Overrides) (*domain.Report, error)
}

// HealthServiceInterface defines the health operations used by handlers
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}
