package service

import (
	"context"

	"github.com/MKhiriev/go-card-sync/internal/config"
	"github.com/MKhiriev/go-card-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// RetryController wraps operations with exponential backoff and a retry
// budget derived from the operation priority. Only transport errors are
// retried; application rejections surface immediately.
type RetryController interface {
	// Budget returns the maximum number of attempts for the priority.
	Budget(priority models.OperationPriority) int

	// Do runs op, retrying transport failures with exponential backoff
	// (base 1s, cap 30s) until it succeeds or the budget is exhausted.
	Do(ctx context.Context, priority models.OperationPriority, op func(ctx context.Context) error) error
}

// BatchPlanner decides how a group of entity operations is split into
// batches and dispatched against one target store.
type BatchPlanner interface {
	Plan(ctx context.Context, target models.BatchTarget, operationCount int, priority models.OperationPriority) models.BatchStrategy
}

// ResolutionSource names which side's payload won a conflict.
type ResolutionSource string

const (
	ResolvedMerged ResolutionSource = "merged"
	ResolvedLocal  ResolutionSource = "local"
	ResolvedRemote ResolutionSource = "remote"
	ResolvedNone   ResolutionSource = "none"
)

// Resolution is the resolver's decision for one conflicting entity pair.
// WriteLocal/WriteCloud say which side must be overwritten with Winner;
// RequeueUpstream flags a merged result that still differs from the cloud
// copy and must go out on the next upstream write.
type Resolution struct {
	Winner          models.SyncableEntity
	Source          ResolutionSource
	WriteLocal      bool
	WriteCloud      bool
	RequeueUpstream bool
}

// ConflictResolver decides the winning version when both sides changed the
// same entity. Implementations must be idempotent and safe to invoke
// concurrently on different entities.
type ConflictResolver interface {
	Resolve(ctx context.Context, local, remote models.SyncableEntity) (Resolution, error)
}

// MergeResolver is the external resolution collaborator tried before the
// last-writer-wins fallback. A nil error means the merge succeeded and the
// returned entity is the merged result.
type MergeResolver interface {
	Merge(ctx context.Context, local, remote models.SyncableEntity) (models.SyncableEntity, error)
}

// ConsistencyValidator compares aggregate counts and structural integrity
// between the two stores and can repair a subset of the discrepancies it
// finds.
type ConsistencyValidator interface {
	// Validate runs the checks for the given level. Reports are cached for
	// a short TTL per level to avoid redundant full scans.
	Validate(ctx context.Context, level models.ValidationLevel) (models.ConsistencyReport, error)

	// Repair attempts to fix the given issues in descending severity
	// order. Issues not flagged AutoFixable are skipped unless force is
	// set. Every attempt is recorded in the returned summary.
	Repair(ctx context.Context, issues []models.ConsistencyIssue, force bool) (models.RepairSummary, error)

	// InvalidateCache drops all cached reports, forcing the next Validate
	// to rescan.
	InvalidateCache()
}

// SyncOrchestrator is the engine's public surface: it owns sync sessions,
// drives the passes, and exposes metrics and consistency reports to the
// UI/telemetry layer.
type SyncOrchestrator interface {
	// PerformFullSync runs one complete session in the given direction.
	// Fails fast with ErrSyncInProgress while another session is active
	// and fails closed with ErrPreCheckCritical if the pre-sync
	// consistency check reports a critical issue.
	PerformFullSync(ctx context.Context, direction models.SyncDirection) (models.SyncSession, error)

	// PerformIncrementalSync processes only pending and recently-changed
	// entities. If a session is already active it returns that session
	// unchanged (no-op) instead of failing.
	PerformIncrementalSync(ctx context.Context) (models.SyncSession, error)

	GetMetrics() models.SyncMetrics
	GetConsistencyReport(ctx context.Context, level models.ValidationLevel) (models.ConsistencyReport, error)

	// Subscribe registers a listener for session state transitions. The
	// returned function unregisters it and closes the channel.
	Subscribe() (<-chan models.SessionEvent, func())

	Pause() error
	Resume(ctx context.Context) (models.SyncSession, error)

	ConfigureValidation(cfg config.Validation)
	ConfigureBatchOptimization(cfg config.Batch)

	// State returns the current lifecycle state.
	State() models.SyncState

	// Sessions returns a copy of the bounded session history, newest first.
	Sessions() []models.SyncSession

	// CleanupHistory drops sessions past the history cap or max age.
	CleanupHistory()

	// Close stops pending retries and closes all subscriber channels.
	Close()
}
