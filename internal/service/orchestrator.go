// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-card-sync/internal/adapter"
	"github.com/MKhiriev/go-card-sync/internal/config"
	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/internal/store"
	"github.com/MKhiriev/go-card-sync/internal/utils"
	"github.com/MKhiriev/go-card-sync/models"
)

// quickCheckThreshold is the entity-count delta on the dominant entity type
// (cards) that bumps the session conflict count during the cheap post-sync
// check.
const quickCheckThreshold = 5

type syncOrchestrator struct {
	repo      store.EntityRepository
	cloud     adapter.CloudStore
	planner   BatchPlanner
	resolver  ConflictResolver
	validator ConsistencyValidator
	retry     RetryController
	metrics   *MetricsTracker
	events    *eventBus
	uuid      *utils.UUIDGenerator
	logger    *logger.Logger

	historyLimit  int
	historyMaxAge time.Duration
	retryBudget   int

	mu            sync.Mutex
	state         models.SyncState
	current       *models.SyncSession
	lastDirection models.SyncDirection
	lastSyncAt    time.Time
	retryAttempts int
	retryTimer    *time.Timer
	history       []models.SyncSession
	validationCfg config.Validation
}

// NewSyncOrchestrator wires the engine's top-level state machine. All
// collaborators are injected; the orchestrator owns only session, history
// and metrics state.
func NewSyncOrchestrator(
	repo store.EntityRepository,
	cloud adapter.CloudStore,
	planner BatchPlanner,
	resolver ConflictResolver,
	validator ConsistencyValidator,
	retry RetryController,
	metrics *MetricsTracker,
	syncCfg config.Sync,
	validationCfg config.Validation,
	log *logger.Logger,
) SyncOrchestrator {
	return &syncOrchestrator{
		repo:          repo,
		cloud:         cloud,
		planner:       planner,
		resolver:      resolver,
		validator:     validator,
		retry:         retry,
		metrics:       metrics,
		events:        newEventBus(log),
		uuid:          utils.NewUUIDGenerator(),
		logger:        log,
		historyLimit:  syncCfg.HistoryLimit,
		historyMaxAge: syncCfg.HistoryMaxAge,
		retryBudget:   syncCfg.RetryBudget,
		state:         models.SyncStateIdle,
		validationCfg: validationCfg,
	}
}

// PerformFullSync implements SyncOrchestrator.
func (o *syncOrchestrator) PerformFullSync(ctx context.Context, direction models.SyncDirection) (session models.SyncSession, err error) {
	if _, err = o.beginSession(direction); err != nil {
		return models.SyncSession{}, err
	}

	// the session always returns to Idle, whatever happens below
	var passErr error
	defer func() {
		session = o.finishSession(passErr)
		err = passErr
	}()

	o.mu.Lock()
	level := models.ValidationLevel(o.validationCfg.Level)
	autoRepair := o.validationCfg.AutoRepair
	o.mu.Unlock()

	preReport, validateErr := o.validator.Validate(ctx, level)
	switch {
	case validateErr != nil:
		// an unreachable validator is not a critical verdict; the sync
		// itself will surface real transport problems
		o.logger.Warn().Err(validateErr).Msg("pre-sync consistency check unavailable")
	case preReport.HasCritical():
		passErr = ErrPreCheckCritical
		return
	}

	passErr = o.runDirection(ctx, direction, models.PriorityNormal)

	o.postSyncChecks(ctx, level, autoRepair)

	return
}

// PerformIncrementalSync implements SyncOrchestrator. While a session is
// active the in-flight session is returned unchanged.
func (o *syncOrchestrator) PerformIncrementalSync(ctx context.Context) (session models.SyncSession, err error) {
	o.mu.Lock()
	if o.state == models.SyncStateSyncing || o.state == models.SyncStatePaused {
		session = *o.current
		o.mu.Unlock()
		return session, nil
	}
	o.mu.Unlock()

	if _, err = o.beginSession(models.DirectionBidirectional); err != nil {
		return models.SyncSession{}, err
	}

	var passErr error
	defer func() {
		session = o.finishSession(passErr)
		err = passErr
	}()

	// incremental passes touch only pending and recently-changed
	// entities, so they skip the consistency checks and run at high
	// priority
	passErr = o.runDirection(ctx, models.DirectionBidirectional, models.PriorityHigh)

	return
}

func (o *syncOrchestrator) beginSession(direction models.SyncDirection) (models.SyncSession, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == models.SyncStateSyncing || o.state == models.SyncStatePaused {
		return models.SyncSession{}, ErrSyncInProgress
	}

	session := models.SyncSession{
		ID:        o.uuid.Generate(),
		StartTime: time.Now().UTC(),
		State:     models.SyncStateSyncing,
		Direction: direction,
	}

	o.state = models.SyncStateSyncing
	o.current = &session
	o.lastDirection = direction

	o.publishLocked(models.SyncStateSyncing, "")

	o.logger.Info().
		Str("session_id", session.ID).
		Str("direction", string(direction)).
		Msg("sync session started")

	return session, nil
}

// finishSession closes the current session and transitions back to Idle,
// returning a copy of it. Paused sessions are left open so Resume can pick
// them up.
func (o *syncOrchestrator) finishSession(passErr error) models.SyncSession {
	o.mu.Lock()

	if o.state == models.SyncStatePaused {
		paused := *o.current
		o.mu.Unlock()
		return paused
	}

	session := o.current
	now := time.Now().UTC()
	session.EndTime = &now

	errText := ""
	if passErr != nil {
		session.State = models.SyncStateError
		errText = passErr.Error()
	} else {
		session.State = models.SyncStateCompleted
		o.lastSyncAt = session.StartTime
		o.retryAttempts = 0
	}

	o.history = append(o.history, *session)
	o.pruneHistoryLocked(now)

	finished := *session
	o.state = models.SyncStateIdle
	o.current = nil
	direction := o.lastDirection

	o.publishSessionLocked(finished, errText)
	o.publishLocked(models.SyncStateIdle, "")
	o.mu.Unlock()

	o.metrics.ObserveSession(finished)

	log := o.logger.Info()
	if passErr != nil {
		log = o.logger.Error().Err(passErr)
	}
	log.
		Str("session_id", finished.ID).
		Str("state", string(finished.State)).
		Int("processed", finished.Processed).
		Int("failed", finished.Failed).
		Int("conflicts", finished.Conflicts).
		Msg("sync session finished")

	if passErr != nil && !errors.Is(passErr, ErrPreCheckCritical) {
		o.scheduleRetry(direction)
	}

	return finished
}

// postSyncChecks runs the post-sync consistency check, the cheap count-delta
// quick check on cards, and auto-repair when enabled. None of these fail
// the session.
func (o *syncOrchestrator) postSyncChecks(ctx context.Context, level models.ValidationLevel, autoRepair bool) {
	o.validator.InvalidateCache()

	report, err := o.validator.Validate(ctx, level)
	if err != nil {
		o.logger.Warn().Err(err).Msg("post-sync consistency check unavailable")
		return
	}

	localCards := report.LocalCounts[models.KindCard]
	cloudCards := report.CloudCounts[models.KindCard]
	delta := localCards - cloudCards
	if delta < 0 {
		delta = -delta
	}
	if delta > quickCheckThreshold {
		o.mu.Lock()
		if o.current != nil {
			o.current.Conflicts++
		}
		o.mu.Unlock()
		o.logger.Warn().
			Int64("local_cards", localCards).
			Int64("cloud_cards", cloudCards).
			Msg("quick check: card count delta above threshold")
	}

	if autoRepair && report.TotalIssues > 0 {
		if _, repairErr := o.validator.Repair(ctx, report.Issues, false); repairErr != nil {
			o.logger.Warn().Err(repairErr).Msg("post-sync auto-repair failed")
		}
	}
}

// scheduleRetry arms a one-shot retry with exponential backoff after a
// failed session, until the retry budget is exhausted.
func (o *syncOrchestrator) scheduleRetry(direction models.SyncDirection) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.retryAttempts >= o.retryBudget {
		o.logger.Error().
			Int("attempts", o.retryAttempts).
			Msg("sync retry budget exhausted, giving up")
		return
	}

	delay := retryBaseDelay << o.retryAttempts
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	o.retryAttempts++

	o.logger.Info().
		Dur("delay", delay).
		Int("attempt", o.retryAttempts).
		Msg("scheduling sync retry")

	o.retryTimer = time.AfterFunc(delay, func() {
		if _, err := o.PerformFullSync(context.Background(), direction); err != nil && !errors.Is(err, ErrSyncInProgress) {
			o.logger.Warn().Err(err).Msg("scheduled sync retry failed")
		}
	})
}

// Pause implements SyncOrchestrator. The executor stops pulling new batches
// at the next pass checkpoint; the batch in flight runs to completion.
func (o *syncOrchestrator) Pause() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != models.SyncStateSyncing {
		return ErrNotSyncing
	}

	o.state = models.SyncStatePaused
	o.current.State = models.SyncStatePaused
	o.publishLocked(models.SyncStatePaused, "")

	o.logger.Info().Str("session_id", o.current.ID).Msg("sync paused")
	return nil
}

// Resume implements SyncOrchestrator. The last direction is re-invoked on
// the open session; entities already synced are no longer pending, so the
// pass naturally picks up where it left off.
func (o *syncOrchestrator) Resume(ctx context.Context) (session models.SyncSession, err error) {
	o.mu.Lock()
	if o.state != models.SyncStatePaused {
		o.mu.Unlock()
		return models.SyncSession{}, ErrNotPaused
	}

	o.state = models.SyncStateSyncing
	o.current.State = models.SyncStateSyncing
	direction := o.lastDirection
	sessionID := o.current.ID
	o.publishLocked(models.SyncStateSyncing, "")
	o.mu.Unlock()

	o.logger.Info().Str("session_id", sessionID).Msg("sync resumed")

	var passErr error
	defer func() {
		session = o.finishSession(passErr)
		err = passErr
	}()

	passErr = o.runDirection(ctx, direction, models.PriorityNormal)

	return
}

func (o *syncOrchestrator) GetMetrics() models.SyncMetrics {
	return o.metrics.Snapshot()
}

func (o *syncOrchestrator) GetConsistencyReport(ctx context.Context, level models.ValidationLevel) (models.ConsistencyReport, error) {
	return o.validator.Validate(ctx, level)
}

func (o *syncOrchestrator) Subscribe() (<-chan models.SessionEvent, func()) {
	return o.events.Subscribe()
}

func (o *syncOrchestrator) ConfigureValidation(cfg config.Validation) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.validationCfg = cfg
}

func (o *syncOrchestrator) ConfigureBatchOptimization(cfg config.Batch) {
	type configurablePlanner interface {
		SetConfig(cfg config.Batch)
	}
	if p, ok := o.planner.(configurablePlanner); ok {
		p.SetConfig(cfg)
	}
}

func (o *syncOrchestrator) State() models.SyncState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Sessions implements SyncOrchestrator: a copy of history, newest first.
func (o *syncOrchestrator) Sessions() []models.SyncSession {
	o.mu.Lock()
	defer o.mu.Unlock()

	sessions := make([]models.SyncSession, len(o.history))
	for i, s := range o.history {
		sessions[len(o.history)-1-i] = s
	}
	return sessions
}

// CleanupHistory implements SyncOrchestrator.
func (o *syncOrchestrator) CleanupHistory() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pruneHistoryLocked(time.Now().UTC())
}

// Close stops the retry timer and closes all subscriber channels.
func (o *syncOrchestrator) Close() {
	o.mu.Lock()
	if o.retryTimer != nil {
		o.retryTimer.Stop()
	}
	o.mu.Unlock()

	o.events.close()
}

func (o *syncOrchestrator) pruneHistoryLocked(now time.Time) {
	cutoff := now.Add(-o.historyMaxAge)

	kept := o.history[:0]
	for _, s := range o.history {
		if s.EndTime != nil && s.EndTime.Before(cutoff) {
			continue
		}
		kept = append(kept, s)
	}
	o.history = kept

	if len(o.history) > o.historyLimit {
		o.history = o.history[len(o.history)-o.historyLimit:]
	}
}

// publishSessionLocked emits an event attributed to an explicit session.
// Terminal transitions are published after o.current is cleared, so they
// carry the finished copy instead. Callers must hold o.mu.
func (o *syncOrchestrator) publishSessionLocked(session models.SyncSession, errText string) {
	o.events.publish(models.SessionEvent{
		SessionID: session.ID,
		State:     session.State,
		Direction: session.Direction,
		At:        time.Now().UTC(),
		Error:     errText,
	})
}

// publishLocked emits a session event. Callers must hold o.mu.
func (o *syncOrchestrator) publishLocked(state models.SyncState, errText string) {
	event := models.SessionEvent{
		State: state,
		At:    time.Now().UTC(),
		Error: errText,
	}
	if o.current != nil {
		event.SessionID = o.current.ID
		event.Direction = o.current.Direction
	}
	o.events.publish(event)
}

// isPaused is the pass checkpoint: executors call it before pulling the
// next batch.
func (o *syncOrchestrator) isPaused() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state == models.SyncStatePaused
}

func (o *syncOrchestrator) mergePassResults(results []models.SyncOperationResult, conflicts int, bytes int64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current == nil {
		return
	}

	for _, r := range results {
		o.current.Processed++
		if r.Success {
			o.current.Successful++
		} else {
			o.current.Failed++
		}
	}
	o.current.Operations = append(o.current.Operations, results...)
	o.current.Conflicts += conflicts
	o.current.BytesTransferred += bytes
}

func (o *syncOrchestrator) watermark() time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastSyncAt
}
