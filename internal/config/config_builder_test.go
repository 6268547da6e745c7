// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesConfigsAndAppliesDefaults verifies that fields from
// multiple sources are merged and that zero-valued fields end up with the
// engine defaults.
func TestBuild_MergesConfigsAndAppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			Storage: Storage{DB: DB{DSN: "/tmp/local.db"}},
		},
		&StructuredConfig{
			Cloud: Cloud{BaseURL: "https://sync.example.com"},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	// merged from both sources
	assert.Equal(t, "/tmp/local.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://sync.example.com", cfg.Cloud.BaseURL)

	// defaults
	assert.Equal(t, 15*time.Second, cfg.Cloud.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 3, cfg.Sync.RetryBudget)
	assert.Equal(t, 100, cfg.Sync.HistoryLimit)
	assert.Equal(t, 7*24*time.Hour, cfg.Sync.HistoryMaxAge)
	assert.Equal(t, "relaxed", cfg.Validation.Level)
	assert.Equal(t, 30*time.Minute, cfg.Workers.ValidationInterval)
	assert.Equal(t, 24*time.Hour, cfg.Workers.CleanupInterval)
	assert.Equal(t, 10*time.Minute, cfg.Workers.HealthCheckInterval)
}

// TestBuild_FirstSourceWins verifies mergo semantics: an already populated
// field is not overwritten by a later source.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			Storage: Storage{DB: DB{DSN: "/from-env.db"}},
			Cloud:   Cloud{BaseURL: "https://env.example.com"},
		},
		&StructuredConfig{
			Storage: Storage{DB: DB{DSN: "/from-flags.db"}},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "/from-env.db", cfg.Storage.DB.DSN)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestBuild_MissingDSN(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Cloud: Cloud{BaseURL: "https://sync.example.com"},
	})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestBuild_MissingCloudBaseURL(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "/tmp/local.db"}},
	})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidCloudConfigs)
}

func TestBuild_InvalidValidationLevel(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Storage:    Storage{DB: DB{DSN: "/tmp/local.db"}},
		Cloud:      Cloud{BaseURL: "https://sync.example.com"},
		Validation: Validation{Level: "paranoid"},
	})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidValidationConfigs)
}

func TestValidate_LevelIsCaseInsensitive(t *testing.T) {
	cfg := &StructuredConfig{
		Storage:    Storage{DB: DB{DSN: "/tmp/local.db"}},
		Cloud:      Cloud{BaseURL: "https://sync.example.com"},
		Validation: Validation{Level: "STRICT"},
	}

	assert.NoError(t, cfg.validate())
}
