// Package shared holds helpers used across CreatorPulse packages that do
// not belong to a single layer.
//
// The testutil subpackage captures slog output and builds raw platform
// records for tests:
//
//	logger, logs := testutil.NewTestLogger(t)
//	in := testutil.NewInputBuilder(start).
//	    Platform("youtube", 12, 1000).
//	    Build()
//	...
//	testutil.AssertLogContains(t, logs, slog.LevelWarn, "skipped")
package shared
