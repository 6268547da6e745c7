// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"
)

// applyDefaults fills zero-valued fields with the engine defaults after all
// sources have been merged. Defaults follow the scheduling surface: health
// check every 10 minutes, validation every 30 minutes, cleanup daily,
// session history capped at 100 entries / 7 days.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Cloud.RequestTimeout <= 0 {
		cfg.Cloud.RequestTimeout = 15 * time.Second
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Sync.RetryBudget <= 0 {
		cfg.Sync.RetryBudget = 3
	}
	if cfg.Sync.HistoryLimit <= 0 {
		cfg.Sync.HistoryLimit = 100
	}
	if cfg.Sync.HistoryMaxAge <= 0 {
		cfg.Sync.HistoryMaxAge = 7 * 24 * time.Hour
	}
	if cfg.Validation.Level == "" {
		cfg.Validation.Level = "relaxed"
	}
	if cfg.Workers.ValidationInterval <= 0 {
		cfg.Workers.ValidationInterval = 30 * time.Minute
	}
	if cfg.Workers.CleanupInterval <= 0 {
		cfg.Workers.CleanupInterval = 24 * time.Hour
	}
	if cfg.Workers.HealthCheckInterval <= 0 {
		cfg.Workers.HealthCheckInterval = 10 * time.Minute
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// engine invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Cloud.BaseURL == "" {
		return ErrInvalidCloudConfigs
	}

	switch strings.ToLower(cfg.Validation.Level) {
	case "basic", "relaxed", "strict":
	default:
		return ErrInvalidValidationConfigs
	}

	return nil
}
