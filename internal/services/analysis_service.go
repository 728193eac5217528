package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mehedi-hridoy/creator-pulse/internal/config"
	"github.com/mehedi-hridoy/creator-pulse/internal/infrastructure"
	"github.com/mehedi-hridoy/creator-pulse/internal/ingest"
	"github.com/mehedi-hridoy/creator-pulse/internal/insights"
	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

// Sources label where an analysis request came from
const (
	SourceCLI  = "cli"
	SourceHTTP = "http"
)

// Overrides adjusts engine options for a single call. Zero fields keep the
// service defaults.
type Overrides struct {
	ClusterK  int
	TopThemes int
	Now       func() time.Time
}

// AnalysisService turns raw creator data into reports
type AnalysisService struct {
	backend insights.NumericBackend
	opts    insights.Options
	loader  *ingest.FileLoader
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger
}

// NewAnalysisService creates a service computing with backend. metrics may
// be nil.
func NewAnalysisService(backend insights.NumericBackend, opts insights.Options, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *AnalysisService {
	if backend == nil {
		backend = insights.NewManualBackend()
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "analysis_service"))

	logger.Debug("AnalysisService initialized",
		slog.String("backend", backend.Name()),
		slog.String("engine", backend.Capabilities().Engine()),
		slog.Bool("parallel", opts.Parallel))

	return &AnalysisService{
		backend: backend,
		opts:    opts,
		loader:  ingest.NewFileLoader(logger),
		metrics: metrics,
		logger:  logger,
	}
}

// NewAnalysisServiceFromConfig selects the configured backend and maps the
// analysis section onto engine options
func NewAnalysisServiceFromConfig(cfg config.AnalysisConfig, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) (*AnalysisService, error) {
	backend, err := insights.SelectBackend(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("failed to select backend: %w", err)
	}
	return NewAnalysisService(backend, OptionsFromConfig(cfg), metrics, logger), nil
}

// OptionsFromConfig maps the analysis config section onto engine options
func OptionsFromConfig(cfg config.AnalysisConfig) insights.Options {
	opts := insights.DefaultOptions()
	opts.ClusterK = cfg.ClusterK
	opts.ClusterSeed = cfg.ClusterSeed
	opts.ClusterRestarts = cfg.ClusterRestarts
	opts.ClusterMaxIter = cfg.ClusterMaxIter
	opts.TopThemes = cfg.TopThemes
	opts.Parallel = cfg.Parallel
	return opts
}

// Backend returns the numeric backend reports are computed with
func (s *AnalysisService) Backend() insights.NumericBackend {
	return s.backend
}

// Analyze runs the engine over an already decoded input
func (s *AnalysisService) Analyze(ctx context.Context, in domain.Input, source string, o Overrides) (*domain.Report, error) {
	return s.run(ctx, in, source, o, 0)
}

// AnalyzeReader decodes one document from r and analyzes it. name labels
// the input in errors and drives filename platform inference.
func (s *AnalysisService) AnalyzeReader(ctx context.Context, name string, r io.Reader, source string, o Overrides) (*domain.Report, error) {
	in, err := ingest.Read(name, r)
	if err != nil {
		s.recordFailure(ctx, source, err)
		return nil, err
	}
	return s.run(ctx, in, source, o, 0)
}

// AnalyzeFiles merges the given export files and analyzes them. Files that
// cannot be read or decoded are skipped.
func (s *AnalysisService) AnalyzeFiles(ctx context.Context, paths []string, o Overrides) (*domain.Report, error) {
	res, err := s.loader.Load(ctx, paths)
	if err != nil {
		s.recordFailure(ctx, SourceCLI, err)
		return nil, err
	}
	if len(res.Skipped) > 0 {
		s.logger.WarnContext(ctx, "Some input files were skipped",
			slog.Int("skipped", len(res.Skipped)),
			slog.Any("files", res.Skipped))
	}
	return s.run(ctx, res.Input, SourceCLI, o, len(res.Skipped))
}

func (s *AnalysisService) run(ctx context.Context, in domain.Input, source string, o Overrides, skipped int) (*domain.Report, error) {
	start := time.Now()
	engine := insights.NewEngine(s.backend, s.options(o), s.logger)

	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"analysis.source":  source,
		"analysis.backend": s.backend.Name(),
		"analysis.records": in.RecordCount(),
	})
	s.logger.DebugContext(ctx, "Analysis started",
		slog.String("source", source),
		slog.Int("platforms", len(in.Platforms)),
		slog.Int("records", in.RecordCount()))

	report, err := engine.Run(ctx, in)
	outcome := infrastructure.AnalysisOutcome{
		Backend:  s.backend.Name(),
		Source:   source,
		Records:  in.RecordCount(),
		Skipped:  skipped,
		Duration: time.Since(start),
		Err:      err,
	}
	if err != nil {
		infrastructure.RecordAnalysisMetrics(ctx, s.metrics, outcome)
		infrastructure.RecordError(ctx, err)
		s.logger.WarnContext(ctx, "Analysis aborted",
			slog.String("source", source),
			slog.String("error", err.Error()))
		return nil, err
	}

	outcome.Alerts = len(report.Alerts)
	outcome.Unavailable, outcome.Fallbacks = insights.Degraded(report)
	infrastructure.RecordAnalysisMetrics(ctx, s.metrics, outcome)

	s.logger.InfoContext(ctx, "Analysis completed",
		slog.String("source", source),
		slog.String("engine", report.Meta.Engine),
		slog.Int("records", outcome.Records),
		slog.Int("alerts", outcome.Alerts),
		slog.Int("themes", len(report.ContentThemes)),
		slog.Int("unavailable_sections", outcome.Unavailable),
		slog.Duration("duration", outcome.Duration))
	return report, nil
}

func (s *AnalysisService) options(o Overrides) insights.Options {
	opts := s.opts
	if o.ClusterK > 0 {
		opts.ClusterK = o.ClusterK
	}
	if o.TopThemes > 0 {
		opts.TopThemes = o.TopThemes
	}
	if o.Now != nil {
		opts.Now = o.Now
	}
	return opts
}

func (s *AnalysisService) recordFailure(ctx context.Context, source string, err error) {
	infrastructure.RecordAnalysisMetrics(ctx, s.metrics, infrastructure.AnalysisOutcome{
		Backend: s.backend.Name(),
		Source:  source,
		Err:     err,
	})
	infrastructure.RecordError(ctx, err)

	if ingest.IsInputError(err) {
		s.logger.WarnContext(ctx, "Input rejected",
			slog.String("source", source),
			slog.String("error", err.Error()))
		return
	}
	s.logger.ErrorContext(ctx, "Input could not be loaded",
		slog.String("source", source),
		slog.String("error", err.Error()))
}
