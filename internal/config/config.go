// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-card-sync engine. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage holds configuration for the local persistent store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cloud holds connection settings for the remote cloud store.
	Cloud Cloud `envPrefix:"CLOUD_"`

	// Server holds the address and timeout of the HTTP surface exposed to
	// the UI/telemetry layer.
	Server Server `envPrefix:"SERVER_"`

	// Sync holds session-history and retry settings for the orchestrator.
	Sync Sync `envPrefix:"SYNC_"`

	// Validation configures the consistency validator.
	Validation Validation `envPrefix:"VALIDATION_"`

	// Batch configures the batch strategy planner.
	Batch Batch `envPrefix:"BATCH_"`

	// Workers holds intervals for the background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the local store backend.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite data source name, typically a file path
	// (e.g. "/var/lib/cardsync/local.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Cloud holds connection settings for the remote cloud store adapter.
type Cloud struct {
	// BaseURL is the root URL of the remote store API
	// (e.g. "https://sync.example.com").
	// Env: CLOUD_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Token is the bearer token identifying the owning user. The adapter
	// derives the owner id from the token subject claim.
	// Env: CLOUD_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout is the per-request timeout for cloud calls
	// (e.g. "15s").
	// Env: CLOUD_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Server holds network settings for the inbound HTTP surface.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on,
	// in "host:port" format (e.g. "127.0.0.1:8484").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request (e.g. "30s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds orchestrator-level settings.
type Sync struct {
	// RetryBudget is the number of automatic retries for a failed session
	// before the error is surfaced to listeners.
	// Env: SYNC_RETRY_BUDGET
	RetryBudget int `env:"RETRY_BUDGET"`

	// HistoryLimit caps the number of completed sessions kept in memory.
	// Env: SYNC_HISTORY_LIMIT
	HistoryLimit int `env:"HISTORY_LIMIT"`

	// HistoryMaxAge drops completed sessions older than this from history
	// (e.g. "168h").
	// Env: SYNC_HISTORY_MAX_AGE
	HistoryMaxAge time.Duration `env:"HISTORY_MAX_AGE"`
}

// Validation configures the consistency validator and its scheduled runs.
type Validation struct {
	// Level is the default check depth: "basic", "relaxed" or "strict".
	// Env: VALIDATION_LEVEL
	Level string `env:"LEVEL"`

	// AutoRepair enables automatic repair of auto-fixable issues found by
	// post-sync and scheduled checks.
	// Env: VALIDATION_AUTO_REPAIR
	AutoRepair bool `env:"AUTO_REPAIR"`

	// Scheduled enables the periodic full validation job.
	// Env: VALIDATION_SCHEDULED
	Scheduled bool `env:"SCHEDULED"`
}

// Batch configures the batch strategy planner.
type Batch struct {
	// Enabled turns dynamic batch planning on. When false the planner
	// returns static defaults.
	// Env: BATCH_ENABLED
	Enabled bool `env:"ENABLED"`

	// DynamicBatchSize scales batch sizes from rolling metrics.
	// Env: BATCH_DYNAMIC_SIZE
	DynamicBatchSize bool `env:"DYNAMIC_SIZE"`

	// AdaptiveDelay derives inter-batch delays from measured latency
	// instead of the static per-target table.
	// Env: BATCH_ADAPTIVE_DELAY
	AdaptiveDelay bool `env:"ADAPTIVE_DELAY"`

	// NetworkAware allows the planner to probe cloud latency before
	// planning a remote batch run.
	// Env: BATCH_NETWORK_AWARE
	NetworkAware bool `env:"NETWORK_AWARE"`
}

// Workers holds intervals for the background jobs. The incremental sync
// interval is adaptive and derived from the reliability metric at runtime,
// so it is not configured here.
type Workers struct {
	// ValidationInterval is how often the scheduled full validation runs
	// when the engine is idle (e.g. "30m").
	// Env: WORKERS_VALIDATION_INTERVAL
	ValidationInterval time.Duration `env:"VALIDATION_INTERVAL"`

	// CleanupInterval is how often session history is pruned (e.g. "24h").
	// Env: WORKERS_CLEANUP_INTERVAL
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL"`

	// HealthCheckInterval is how often both stores are probed (e.g. "10m").
	// Env: WORKERS_HEALTH_CHECK_INTERVAL
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the engine configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
