// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-card-sync/internal/adapter"
	"github.com/MKhiriev/go-card-sync/internal/config"
	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/internal/store"
)

// Services bundles the engine's collaborators for the HTTP layer and the
// background jobs.
type Services struct {
	Orchestrator SyncOrchestrator
	Validator    ConsistencyValidator
	Planner      BatchPlanner
	Resolver     ConflictResolver
	Retry        RetryController
	Metrics      *MetricsTracker
}

// NewServices wires the full service graph on top of the two stores.
func NewServices(repo store.EntityRepository, cloud adapter.CloudStore, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	metrics := NewMetricsTracker()
	retry := NewRetryController()
	planner := NewBatchPlanner(cfg.Batch, metrics, cloud, log)
	resolver := NewConflictResolver(NewMergoMerger(), log)
	validator := NewConsistencyValidator(repo, cloud, resolver, log)
	orchestrator := NewSyncOrchestrator(repo, cloud, planner, resolver, validator, retry, metrics, cfg.Sync, cfg.Validation, log)

	return &Services{
		Orchestrator: orchestrator,
		Validator:    validator,
		Planner:      planner,
		Resolver:     resolver,
		Retry:        retry,
		Metrics:      metrics,
	}
}
