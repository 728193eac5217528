package config

import "time"

// Application constants
const (
	// EnvPrefix namespaces every environment override, e.g.
	// CREATORPULSE_ANALYSIS_BACKEND=manual
	EnvPrefix = "CREATORPULSE"

	// Config file names searched when no explicit path is given
	ConfigFileName = "creatorpulse.yaml"
	ConfigDirName  = "configs"

	// Analysis defaults
	DefaultBackend         = "auto"
	DefaultClusterK        = 3
	DefaultClusterSeed     = 42
	DefaultClusterRestarts = 5
	DefaultClusterMaxIter  = 300
	DefaultTopThemes       = 9

	// Log settings
	DefaultLogLevel  = "info"
	DefaultLogOutput = "console"
	DefaultLogFile   = "logs/creatorpulse.log"

	// Server defaults
	DefaultPort            = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
	DefaultMaxBodyBytes    = 32 << 20 // 32MB
	DefaultRateLimit       = 20       // requests per second
	DefaultBurstSize       = 40

	// MetricsEndpoint serves the Prometheus scrape
	MetricsEndpoint = "/metrics"
)
