// Package config provides centralized configuration management for
// CreatorPulse. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for the CLI and HTTP server.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// A .env file in the working directory is loaded into the environment first
// when LoadDotEnv is called.
//
// # Environment Variables
//
// All environment variables follow the pattern CREATORPULSE_<SECTION>_<KEY>:
//
//	CREATORPULSE_LOGGING_LEVEL=debug
//	CREATORPULSE_ANALYSIS_BACKEND=manual
//	CREATORPULSE_ANALYSIS_CLUSTER_K=4
//	CREATORPULSE_SERVER_PORT=9090
//	CREATORPULSE_SERVER_RATE_LIMIT_RPS=50
//
// # Configuration File
//
// Without an explicit path, Load looks for creatorpulse.yaml in the working
// directory, in configs/, and in the same two places next to the executable:
//
//	logging:
//	  level: info
//	  output: console
//	analysis:
//	  backend: auto
//	  cluster_k: 3
//	  top_themes: 9
//	server:
//	  port: 8080
//	  request_timeout: 30s
//
// # Validation
//
// All configuration is validated at load time with go-playground/validator
// struct tags: enumerations, numeric ranges and positive durations.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
