// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-card-sync/internal/config"
	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/models"
)

type stubProber struct {
	latency time.Duration
	err     error
	calls   int
}

func (s *stubProber) Ping(context.Context) (time.Duration, error) {
	s.calls++
	return s.latency, s.err
}

func TestBatchPlanner_StaticDefaultsWhenDisabled(t *testing.T) {
	metrics := NewMetricsTracker()
	planner := NewBatchPlanner(config.Batch{}, metrics, nil, logger.Nop())

	strategy := planner.Plan(context.Background(), models.TargetCloud, 10, models.PriorityNormal)
	assert.Equal(t, baseBatchSizeCloud, strategy.BatchSize)
	assert.Equal(t, staticDelayCloud, strategy.InterBatchDelay)
	assert.False(t, strategy.UseTransaction)
	assert.Equal(t, models.PriorityNormal, strategy.Priority)

	strategy = planner.Plan(context.Background(), models.TargetLocal, 10, models.PriorityNormal)
	assert.Equal(t, baseBatchSizeLocal, strategy.BatchSize)
	assert.Equal(t, staticDelayLocal, strategy.InterBatchDelay)
	assert.True(t, strategy.UseTransaction)
}

func TestBatchPlanner_ParallelOnlyForLargeCloudRuns(t *testing.T) {
	metrics := NewMetricsTracker()
	planner := NewBatchPlanner(config.Batch{}, metrics, nil, logger.Nop())

	small := planner.Plan(context.Background(), models.TargetCloud, 20, models.PriorityNormal)
	assert.False(t, small.Parallel)

	large := planner.Plan(context.Background(), models.TargetCloud, 500, models.PriorityNormal)
	assert.True(t, large.Parallel)

	// локальные батчи никогда не параллелятся: одна пишущая транзакция
	local := planner.Plan(context.Background(), models.TargetLocal, 5000, models.PriorityNormal)
	assert.False(t, local.Parallel)
}

func TestBatchPlanner_DynamicSizeScalesUp(t *testing.T) {
	metrics := NewMetricsTracker()
	// быстрый и успешный батч: size растёт
	metrics.ObserveBatch(100*time.Millisecond, 100, 100)

	planner := NewBatchPlanner(config.Batch{Enabled: true, DynamicBatchSize: true}, metrics, nil, logger.Nop())

	strategy := planner.Plan(context.Background(), models.TargetCloud, 10, models.PriorityNormal)
	assert.Greater(t, strategy.BatchSize, baseBatchSizeCloud)
	assert.LessOrEqual(t, strategy.BatchSize, maxBatchSize)
}

func TestBatchPlanner_DynamicSizeScalesDown(t *testing.T) {
	metrics := NewMetricsTracker()
	// медленный и ненадёжный батч: size падает
	metrics.ObserveBatch(2*time.Second, 50, 100)

	planner := NewBatchPlanner(config.Batch{Enabled: true, DynamicBatchSize: true}, metrics, nil, logger.Nop())

	strategy := planner.Plan(context.Background(), models.TargetCloud, 10, models.PriorityNormal)
	assert.Less(t, strategy.BatchSize, baseBatchSizeCloud)
	assert.GreaterOrEqual(t, strategy.BatchSize, minBatchSize)
}

func TestBatchPlanner_NetworkAwareDelayFromProbe(t *testing.T) {
	metrics := NewMetricsTracker()
	prober := &stubProber{latency: 100 * time.Millisecond}

	planner := NewBatchPlanner(config.Batch{Enabled: true, AdaptiveDelay: true, NetworkAware: true}, metrics, prober, logger.Nop())

	strategy := planner.Plan(context.Background(), models.TargetCloud, 10, models.PriorityNormal)
	assert.Equal(t, 1, prober.calls)
	assert.Equal(t, 200*time.Millisecond, strategy.InterBatchDelay)

	// измеренная латентность попала в скользящие метрики
	assert.InDelta(t, 100, metrics.Rolling().NetworkLatencyMs, 0.1)
}

func TestBatchPlanner_DelayClamped(t *testing.T) {
	metrics := NewMetricsTracker()
	prober := &stubProber{latency: 5 * time.Second}

	planner := NewBatchPlanner(config.Batch{Enabled: true, AdaptiveDelay: true, NetworkAware: true}, metrics, prober, logger.Nop())

	strategy := planner.Plan(context.Background(), models.TargetCloud, 10, models.PriorityNormal)
	assert.Equal(t, maxAdaptiveDelay, strategy.InterBatchDelay)
}

func TestBatchPlanner_ProbeFailureFallsBackToRollingMetric(t *testing.T) {
	metrics := NewMetricsTracker()
	metrics.ObserveLatency(100 * time.Millisecond)
	prober := &stubProber{err: errors.New("unreachable")}

	planner := NewBatchPlanner(config.Batch{Enabled: true, AdaptiveDelay: true, NetworkAware: true}, metrics, prober, logger.Nop())

	strategy := planner.Plan(context.Background(), models.TargetCloud, 10, models.PriorityNormal)
	assert.Equal(t, 200*time.Millisecond, strategy.InterBatchDelay)
}

func TestBatchPlanner_SetConfig(t *testing.T) {
	metrics := NewMetricsTracker()
	planner := NewBatchPlanner(config.Batch{}, metrics, nil, logger.Nop()).(*batchPlanner)

	planner.SetConfig(config.Batch{Enabled: true, DynamicBatchSize: true})

	planner.mu.RLock()
	defer planner.mu.RUnlock()
	assert.True(t, planner.cfg.Enabled)
}
