package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-card-sync/models"
)

// emaAlpha is the smoothing factor for the rolling performance metrics.
const emaAlpha = 0.3

// MetricsTracker keeps the exponentially-smoothed batch metrics the planner
// reads and the session-level aggregates exposed to the UI layer. Updated
// after every batch and session, read-mostly elsewhere.
type MetricsTracker struct {
	mu sync.RWMutex

	rolling models.RollingMetrics
	seeded  bool

	totalSessions      int64
	successfulSessions int64
	failedSessions     int64
	totalSessionTime   time.Duration
	totalBytes         int64
	totalConflicts     int64
	totalOperations    int64
}

func NewMetricsTracker() *MetricsTracker {
	return &MetricsTracker{
		rolling: models.RollingMetrics{SuccessRate: 1.0},
	}
}

// ObserveBatch folds one batch outcome into the rolling metrics.
func (m *MetricsTracker) ObserveBatch(duration time.Duration, successful, total int) {
	if total <= 0 {
		return
	}

	batchMs := float64(duration.Milliseconds())
	rate := float64(successful) / float64(total)

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.seeded {
		m.rolling.AvgBatchTimeMs = batchMs
		m.rolling.SuccessRate = rate
		m.seeded = true
		return
	}

	m.rolling.AvgBatchTimeMs = ema(m.rolling.AvgBatchTimeMs, batchMs)
	m.rolling.SuccessRate = ema(m.rolling.SuccessRate, rate)
}

// ObserveLatency folds one measured cloud round-trip into the rolling
// metrics.
func (m *MetricsTracker) ObserveLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rolling.NetworkLatencyMs == 0 {
		m.rolling.NetworkLatencyMs = float64(d.Milliseconds())
		return
	}
	m.rolling.NetworkLatencyMs = ema(m.rolling.NetworkLatencyMs, float64(d.Milliseconds()))
}

// ObserveSession folds one completed session into the aggregates.
func (m *MetricsTracker) ObserveSession(session models.SyncSession) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalSessions++
	if session.State == models.SyncStateCompleted {
		m.successfulSessions++
	} else {
		m.failedSessions++
	}

	if session.EndTime != nil {
		m.totalSessionTime += session.EndTime.Sub(session.StartTime)
	}
	m.totalBytes += session.BytesTransferred
	m.totalConflicts += int64(session.Conflicts)
	m.totalOperations += int64(session.Processed)
}

// Reliability is the fraction of sessions that completed successfully.
// Before the first session it is 1.0 so the background scheduler starts at
// the fast tier.
func (m *MetricsTracker) Reliability() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalSessions == 0 {
		return 1.0
	}
	return float64(m.successfulSessions) / float64(m.totalSessions)
}

// Rolling returns a copy of the current rolling metrics.
func (m *MetricsTracker) Rolling() models.RollingMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rolling
}

// Snapshot returns the full metrics view exposed to the UI layer.
func (m *MetricsTracker) Snapshot() models.SyncMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	metrics := models.SyncMetrics{
		TotalSessions:      m.totalSessions,
		SuccessfulSessions: m.successfulSessions,
		FailedSessions:     m.failedSessions,
		Rolling:            m.rolling,
	}

	if m.totalSessions > 0 {
		metrics.AverageSessionTime = m.totalSessionTime / time.Duration(m.totalSessions)
		metrics.Reliability = float64(m.successfulSessions) / float64(m.totalSessions)
	} else {
		metrics.Reliability = 1.0
	}
	if m.totalOperations > 0 {
		metrics.ConflictRate = float64(m.totalConflicts) / float64(m.totalOperations)
	}
	if m.totalSessionTime > 0 {
		metrics.DataThroughput = float64(m.totalBytes) / m.totalSessionTime.Seconds()
	}

	return metrics
}

func ema(current, sample float64) float64 {
	return emaAlpha*sample + (1-emaAlpha)*current
}
