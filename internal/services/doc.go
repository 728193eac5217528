// Package services implements the application layer of CreatorPulse. It sits
// between the transports (CLI and HTTP) and the analytics core, so that both
// surfaces decode input, run the engine and record metrics the same way.
//
// # Services
//
//	AnalysisService  decodes input (request bodies, stdin, export files),
//	                 runs the insights engine with per-call overrides and
//	                 records analysis metrics
//	HealthService    liveness, readiness and version information for the
//	                 HTTP API
//
// # Pattern
//
// Services take their collaborators and a *slog.Logger through constructors
// and accept a context.Context on every blocking method:
//
//	svc, err := services.NewAnalysisServiceFromConfig(cfg.Analysis, metrics, logger)
//	if err != nil {
//	    return err
//	}
//	report, err := svc.AnalyzeFiles(ctx, paths, services.Overrides{})
//
// # Errors
//
// Structural input corruption surfaces as *ingest.InputError. Analysis only
// fails on context cancellation; analyzer failures degrade the report and
// are listed in its meta notes instead.
package services
