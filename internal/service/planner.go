// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-card-sync/internal/config"
	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/models"
)

const (
	baseBatchSizeCloud = 50
	baseBatchSizeLocal = 100
	minBatchSize       = 10
	maxBatchSize       = 200

	staticDelayCloud = 200 * time.Millisecond
	staticDelayLocal = 50 * time.Millisecond

	minAdaptiveDelay = 50 * time.Millisecond
	maxAdaptiveDelay = 2 * time.Second
)

// latencyProber is the slice of the cloud adapter the planner needs for its
// network-aware delay probe.
type latencyProber interface {
	Ping(ctx context.Context) (time.Duration, error)
}

type batchPlanner struct {
	metrics *MetricsTracker
	prober  latencyProber
	logger  *logger.Logger

	mu  sync.RWMutex
	cfg config.Batch
}

// NewBatchPlanner constructs the batch strategy planner. prober may be nil,
// in which case the network-aware probe is skipped and the adaptive delay
// falls back to the rolling latency metric.
func NewBatchPlanner(cfg config.Batch, metrics *MetricsTracker, prober latencyProber, log *logger.Logger) BatchPlanner {
	return &batchPlanner{cfg: cfg, metrics: metrics, prober: prober, logger: log}
}

// SetConfig atomically replaces the planner configuration. Called by the
// orchestrator's ConfigureBatchOptimization.
func (p *batchPlanner) SetConfig(cfg config.Batch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
}

// Plan implements BatchPlanner. The strategy is derived per invocation from
// the rolling metrics and never persisted.
func (p *batchPlanner) Plan(ctx context.Context, target models.BatchTarget, operationCount int, priority models.OperationPriority) models.BatchStrategy {
	p.mu.RLock()
	cfg := p.cfg
	p.mu.RUnlock()

	rolling := p.metrics.Rolling()

	size := baseBatchSizeLocal
	if target == models.TargetCloud {
		size = baseBatchSizeCloud
	}

	if cfg.Enabled && cfg.DynamicBatchSize {
		size = scaleBatchSize(size, rolling)
	}

	strategy := models.BatchStrategy{
		BatchSize: size,
		// remote entity writes stay individually retryable; local batches
		// commit atomically
		UseTransaction:  target == models.TargetLocal,
		Parallel:        operationCount > 2*size && target == models.TargetCloud,
		InterBatchDelay: p.interBatchDelay(ctx, cfg, target, rolling),
		Priority:        priority,
	}

	p.logger.Debug().
		Str("target", string(target)).
		Int("operations", operationCount).
		Int("batch_size", strategy.BatchSize).
		Bool("parallel", strategy.Parallel).
		Dur("delay", strategy.InterBatchDelay).
		Msg("planned batch strategy")

	return strategy
}

// scaleBatchSize applies the step-function factors to the base size and
// clamps the result.
func scaleBatchSize(base int, rolling models.RollingMetrics) int {
	size := float64(base)

	switch {
	case rolling.SuccessRate > 0.95:
		size *= 1.2
	case rolling.SuccessRate < 0.8:
		size *= 0.8
	}

	switch {
	case rolling.AvgBatchTimeMs > 1000:
		size *= 0.8
	case rolling.AvgBatchTimeMs > 0 && rolling.AvgBatchTimeMs < 300:
		size *= 1.1
	}

	if rolling.NetworkLatencyMs > 500 {
		size *= 0.7
	}

	result := int(size)
	if result < minBatchSize {
		return minBatchSize
	}
	if result > maxBatchSize {
		return maxBatchSize
	}
	return result
}

func (p *batchPlanner) interBatchDelay(ctx context.Context, cfg config.Batch, target models.BatchTarget, rolling models.RollingMetrics) time.Duration {
	if !cfg.Enabled || !cfg.AdaptiveDelay {
		return staticDelay(target)
	}

	if cfg.NetworkAware && target == models.TargetCloud && p.prober != nil {
		latency, err := p.prober.Ping(ctx)
		if err == nil {
			p.metrics.ObserveLatency(latency)
			return clampDelay(2 * latency)
		}
		p.logger.Debug().Err(err).Msg("latency probe failed, using rolling metric")
	}

	if rolling.NetworkLatencyMs > 0 && target == models.TargetCloud {
		return clampDelay(2 * time.Duration(rolling.NetworkLatencyMs) * time.Millisecond)
	}

	return staticDelay(target)
}

func staticDelay(target models.BatchTarget) time.Duration {
	if target == models.TargetCloud {
		return staticDelayCloud
	}
	return staticDelayLocal
}

func clampDelay(d time.Duration) time.Duration {
	if d < minAdaptiveDelay {
		return minAdaptiveDelay
	}
	if d > maxAdaptiveDelay {
		return maxAdaptiveDelay
	}
	return d
}
