// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the engine's background jobs: the adaptive
// incremental sync scheduler, scheduled consistency validation, session
// history cleanup and the store health check.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-card-sync/internal/adapter"
	"github.com/MKhiriev/go-card-sync/internal/config"
	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/internal/service"
	"github.com/MKhiriev/go-card-sync/internal/store"
	"github.com/MKhiriev/go-card-sync/models"
)

// Incremental sync cadence tiers, selected by session reliability. A run of
// failures backs the scheduler off; recovery speeds it back up.
const (
	syncIntervalFast   = 30 * time.Second
	syncIntervalMedium = time.Minute
	syncIntervalSlow   = 2 * time.Minute
	syncIntervalIdle   = 3 * time.Minute
)

// Runner owns the background job goroutines. Start launches them, Stop
// cancels and waits for all of them to drain.
type Runner struct {
	services *service.Services
	repo     store.EntityRepository
	cloud    adapter.CloudStore
	cfg      config.Workers
	valCfg   config.Validation
	logger   *logger.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewRunner(services *service.Services, repo store.EntityRepository, cloud adapter.CloudStore, cfg config.Workers, valCfg config.Validation, log *logger.Logger) *Runner {
	return &Runner{
		services: services,
		repo:     repo,
		cloud:    cloud,
		cfg:      cfg,
		valCfg:   valCfg,
		logger:   log,
	}
}

// Start launches every background job. Calling Start twice without Stop in
// between is a caller bug.
func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	ctx = r.logger.GetChildLogger().WithContext(ctx)

	r.spawn(ctx, "incremental-sync", r.runIncrementalSync)
	r.spawn(ctx, "history-cleanup", r.runHistoryCleanup)
	r.spawn(ctx, "health-check", r.runHealthCheck)

	if r.valCfg.Scheduled {
		r.spawn(ctx, "consistency-validation", r.runValidation)
	}

	r.logger.Info().Msg("background jobs started")
}

// Stop cancels all jobs and blocks until they exit.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	r.logger.Info().Msg("background jobs stopped")
}

func (r *Runner) spawn(ctx context.Context, name string, job func(ctx context.Context)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.logger.Debug().Str("job", name).Msg("background job running")
		job(ctx)
		r.logger.Debug().Str("job", name).Msg("background job exited")
	}()
}

// runIncrementalSync triggers incremental sessions on an adaptive cadence:
// the interval is re-derived from the reliability metric after every run.
func (r *Runner) runIncrementalSync(ctx context.Context) {
	timer := time.NewTimer(r.syncInterval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if _, err := r.services.Orchestrator.PerformIncrementalSync(ctx); err != nil {
			r.logger.Warn().Err(err).Msg("scheduled incremental sync failed")
		}

		timer.Reset(r.syncInterval())
	}
}

func (r *Runner) syncInterval() time.Duration {
	reliability := r.services.Metrics.Reliability()
	switch {
	case reliability >= 0.95:
		return syncIntervalFast
	case reliability >= 0.8:
		return syncIntervalMedium
	case reliability >= 0.5:
		return syncIntervalSlow
	default:
		return syncIntervalIdle
	}
}

// runValidation periodically validates consistency at the configured level
// and hands auto-fixable issues to the repairer. Skipped while a sync
// session is active: a half-applied pass looks inconsistent by definition.
func (r *Runner) runValidation(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.ValidationInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if r.services.Orchestrator.State() != models.SyncStateIdle {
			r.logger.Debug().Msg("sync in progress, skipping scheduled validation")
			continue
		}

		report, err := r.services.Validator.Validate(ctx, models.ValidationLevel(r.valCfg.Level))
		if err != nil {
			r.logger.Warn().Err(err).Msg("scheduled validation failed")
			continue
		}

		r.logger.Info().
			Str("status", report.OverallStatus).
			Int("issues", report.TotalIssues).
			Float64("confidence", report.Confidence).
			Msg("scheduled validation finished")

		if r.valCfg.AutoRepair && report.TotalIssues > 0 {
			if _, err := r.services.Validator.Repair(ctx, report.Issues, false); err != nil {
				r.logger.Warn().Err(err).Msg("scheduled repair failed")
			}
		}
	}
}

func (r *Runner) runHistoryCleanup(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.services.Orchestrator.CleanupHistory()
		}
	}
}

// runHealthCheck pings both stores and feeds the measured cloud latency
// into the rolling metrics the planner reads.
func (r *Runner) runHealthCheck(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := r.repo.Ping(ctx); err != nil {
			r.logger.Error().Err(err).Msg("local store health check failed")
		}

		latency, err := r.cloud.Ping(ctx)
		if err != nil {
			r.logger.Warn().Err(err).Msg("cloud store health check failed")
			continue
		}
		r.services.Metrics.ObserveLatency(latency)
	}
}
