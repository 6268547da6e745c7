package service

import "errors"

var (
	// ErrSyncInProgress is returned by PerformFullSync while another
	// session is active. This is the only precondition surfaced as an
	// error rather than through session state.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrPreCheckCritical blocks a sync from starting when the pre-sync
	// consistency check reports a critical issue.
	ErrPreCheckCritical = errors.New("pre-sync consistency check reported critical issues")

	ErrNotPaused  = errors.New("sync is not paused")
	ErrNotSyncing = errors.New("sync is not running")

	// ErrMergeUnavailable is returned by a MergeResolver that cannot
	// produce a merged result for the given pair; the resolver then falls
	// back to last-writer-wins.
	ErrMergeUnavailable = errors.New("merge resolution unavailable")
)
