// Package insights implements the CreatorPulse Data Brain: the analytics
// pipeline that turns per-platform post metrics into a recommendation report.
//
// # Pipeline
//
//	raw input -> Normalize -> Dataset (platform -> []Record, read-only)
//	          -> ScheduleAnalyzer   best weekday/hour posting windows
//	          -> FocusScorer        invest_more / maintain / deprioritize
//	          -> AlertDetector      declining_trend / high_volatility / stagnation
//	          -> ThemeClusterer     behavioral clusters, global top-N
//	          -> Assembler          domain.Report
//
// The four analyzers share the Dataset without locking and have no data
// dependencies on each other; Engine may run them concurrently. A panic in
// one analyzer is contained and its section is reported as unavailable.
//
// # Numeric backends
//
// Every analyzer is written against NumericBackend. Two implementations
// exist:
//
//   - VectorizedBackend: gonum floats/stat/mat plus seeded k-means.
//   - ManualBackend: scalar loops, no clustering.
//
// The backend is selected once with SelectBackend and injected into the
// analyzers. Both produce the same report shape; only content themes may
// differ because ManualBackend always uses the deterministic tertile split.
// Building with the nogonum tag leaves only ManualBackend available.
//
// # Degenerate input
//
// No analyzer fails on valid input. Missing fields coerce to zero, platforms
// with too few timestamps get an "insufficient timestamps" note, series with
// fewer than three points raise no alert, and empty platforms are skipped.
package insights
