package models

import "time"

// BatchTarget names the store a batch is written to.
type BatchTarget string

const (
	TargetLocal BatchTarget = "local"
	TargetCloud BatchTarget = "cloud"
)

// OperationPriority drives retry budgets and batch ordering.
type OperationPriority string

const (
	PriorityLow    OperationPriority = "low"
	PriorityNormal OperationPriority = "normal"
	PriorityHigh   OperationPriority = "high"
)

// BatchStrategy is the planner's answer for one group of entities. It is
// recomputed on every planning call and never persisted.
type BatchStrategy struct {
	BatchSize       int               `json:"batch_size"`
	InterBatchDelay time.Duration     `json:"inter_batch_delay"`
	Parallel        bool              `json:"parallel"`
	UseTransaction  bool              `json:"use_transaction"`
	Priority        OperationPriority `json:"priority"`
}

// RollingMetrics are the exponentially-smoothed performance numbers the
// planner reads. Updated after every batch, read-mostly elsewhere.
type RollingMetrics struct {
	AvgBatchTimeMs   float64 `json:"avg_batch_time_ms"`
	SuccessRate      float64 `json:"success_rate"`
	NetworkLatencyMs float64 `json:"network_latency_ms"`
}

// SyncMetrics aggregates session-level statistics exposed to the UI layer.
type SyncMetrics struct {
	TotalSessions      int64          `json:"total_sessions"`
	SuccessfulSessions int64          `json:"successful_sessions"`
	FailedSessions     int64          `json:"failed_sessions"`
	AverageSessionTime time.Duration  `json:"average_session_time"`
	DataThroughput     float64        `json:"data_throughput"`
	ConflictRate       float64        `json:"conflict_rate"`
	Reliability        float64        `json:"reliability"`
	Rolling            RollingMetrics `json:"rolling"`
}
