// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-card-sync/internal/adapter"
	"github.com/MKhiriev/go-card-sync/internal/store"
	"github.com/MKhiriev/go-card-sync/models"
)

// passOutcome aggregates one pass segment before it is folded into the
// session under the orchestrator's lock.
type passOutcome struct {
	results   []models.SyncOperationResult
	conflicts int
	bytes     int64
}

func (p *passOutcome) add(other passOutcome) {
	p.results = append(p.results, other.results...)
	p.conflicts += other.conflicts
	p.bytes += other.bytes
}

func (o *syncOrchestrator) runDirection(ctx context.Context, direction models.SyncDirection, priority models.OperationPriority) error {
	switch direction {
	case models.DirectionUpstream:
		return o.runUpstream(ctx, priority)
	case models.DirectionDownstream:
		return o.runDownstream(ctx, priority)
	case models.DirectionBidirectional:
		// the passes are independent: a failure on one side never blocks
		// progress on the other
		var wg sync.WaitGroup
		var upErr, downErr error

		wg.Add(2)
		go func() {
			defer wg.Done()
			upErr = o.runUpstream(ctx, priority)
		}()
		go func() {
			defer wg.Done()
			downErr = o.runDownstream(ctx, priority)
		}()
		wg.Wait()

		return errors.Join(upErr, downErr)
	default:
		return fmt.Errorf("unknown sync direction %q", direction)
	}
}

// runUpstream pushes every pending local entity to the cloud, one kind at a
// time in dependency order so referenced entities exist before their
// referents.
func (o *syncOrchestrator) runUpstream(ctx context.Context, priority models.OperationPriority) error {
	ownerID := o.cloud.OwnerID()

	pending := true
	entities, err := o.repo.QueryByFilter(ctx, ownerID, store.Filter{PendingSync: &pending})
	if err != nil {
		return fmt.Errorf("query pending entities: %w", err)
	}
	if len(entities) == 0 {
		return nil
	}

	byKind := make(map[models.EntityKind][]models.SyncableEntity)
	for _, entity := range entities {
		byKind[entity.Kind] = append(byKind[entity.Kind], entity)
	}

	for _, kind := range models.KindsInDependencyOrder {
		group := byKind[kind]
		if len(group) == 0 {
			continue
		}

		strategy := o.planner.Plan(ctx, models.TargetCloud, len(group), priority)

		outcome, pushErr := o.pushBatches(ctx, group, strategy, priority)
		o.mergePassResults(outcome.results, outcome.conflicts, outcome.bytes)
		if pushErr != nil {
			return fmt.Errorf("push %s entities: %w", kind, pushErr)
		}
	}

	return nil
}

func (o *syncOrchestrator) pushBatches(ctx context.Context, group []models.SyncableEntity, strategy models.BatchStrategy, priority models.OperationPriority) (passOutcome, error) {
	batches := chunk(group, strategy.BatchSize)

	if strategy.Parallel {
		return o.pushBatchesParallel(ctx, batches, strategy, priority)
	}

	var total passOutcome
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		if o.isPaused() {
			return total, nil
		}
		if i > 0 && strategy.InterBatchDelay > 0 {
			time.Sleep(strategy.InterBatchDelay)
		}

		total.add(o.pushBatch(ctx, batch, priority))
	}
	return total, nil
}

// pushBatchesParallel dispatches all batches at once, staggered by half the
// inter-batch delay per index to avoid a thundering herd on the cloud API.
func (o *syncOrchestrator) pushBatchesParallel(ctx context.Context, batches [][]models.SyncableEntity, strategy models.BatchStrategy, priority models.OperationPriority) (passOutcome, error) {
	outcomes := make([]passOutcome, len(batches))

	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		go func(i int, batch []models.SyncableEntity) {
			defer wg.Done()
			time.Sleep(time.Duration(i) * strategy.InterBatchDelay / 2)
			outcomes[i] = o.pushBatch(ctx, batch, priority)
		}(i, batch)
	}
	wg.Wait()

	var total passOutcome
	for _, outcome := range outcomes {
		total.add(outcome)
	}
	return total, ctx.Err()
}

func (o *syncOrchestrator) pushBatch(ctx context.Context, batch []models.SyncableEntity, priority models.OperationPriority) passOutcome {
	start := time.Now()

	var outcome passOutcome
	successful := 0
	for _, entity := range batch {
		result, conflicts, bytes := o.pushEntity(ctx, entity, priority)
		outcome.results = append(outcome.results, result)
		outcome.conflicts += conflicts
		outcome.bytes += bytes
		if result.Success {
			successful++
		}
	}

	o.metrics.ObserveBatch(time.Since(start), successful, len(batch))
	return outcome
}

// pushEntity writes one pending entity to the cloud and clears its pending
// flag on success. A version rejection from the cloud is treated as a
// conflict and handed to the resolver.
func (o *syncOrchestrator) pushEntity(ctx context.Context, entity models.SyncableEntity, priority models.OperationPriority) (models.SyncOperationResult, int, int64) {
	start := time.Now()

	result := models.SyncOperationResult{
		ID:         o.uuid.Generate(),
		EntityKind: entity.Kind,
		EntityID:   entity.ID,
		Operation:  upstreamOperation(entity),
		Metadata:   models.OperationMetadata{LocalVersion: entity.SyncVersion},
	}
	finish := func() (models.SyncOperationResult, int, int64) {
		result.DurationMs = time.Since(start).Milliseconds()
		var bytes int64
		if result.Success {
			bytes = int64(result.Metadata.DataSize)
		}
		return result, result.Metadata.ConflictCount, bytes
	}

	// a tombstone the cloud never saw needs no remote write at all
	if entity.Deleted && entity.LastSyncAt == nil {
		if err := o.repo.MarkSynced(ctx, entity.OwnerID, entity.ID, entity.SyncVersion, time.Now().UTC()); err != nil {
			result.Error = err.Error()
			return finish()
		}
		result.Success = true
		return finish()
	}

	record, err := ToCloudRecord(entity)
	if err != nil {
		result.Error = err.Error()
		return finish()
	}
	result.Metadata.DataSize = len(record.Payload)

	write := o.cloud.Update
	if entity.LastSyncAt == nil {
		write = func(ctx context.Context, _ string, record models.CloudRecord) error {
			return o.cloud.Insert(ctx, record)
		}
	}

	err = o.retry.Do(ctx, priority, func(ctx context.Context) error {
		return write(ctx, record.ID, record)
	})

	switch {
	case err == nil:
	case errors.Is(err, adapter.ErrRejected):
		result.Metadata.ConflictCount = 1
		if resolveErr := o.resolveUpstreamConflict(ctx, entity, priority); resolveErr != nil {
			result.Error = resolveErr.Error()
			return finish()
		}
		// the resolver already stamped sync bookkeeping on both sides
		result.Success = true
		return finish()
	default:
		result.Error = err.Error()
		return finish()
	}

	if err := o.repo.MarkSynced(ctx, entity.OwnerID, entity.ID, entity.SyncVersion, time.Now().UTC()); err != nil {
		result.Error = err.Error()
		return finish()
	}

	result.Success = true
	return finish()
}

// resolveUpstreamConflict fetches the current cloud copy of a rejected
// entity and applies the resolver's decision.
func (o *syncOrchestrator) resolveUpstreamConflict(ctx context.Context, local models.SyncableEntity, priority models.OperationPriority) error {
	var records []models.CloudRecord
	err := o.retry.Do(ctx, priority, func(ctx context.Context) error {
		var selectErr error
		records, selectErr = o.cloud.Select(ctx, models.CloudFilter{IDs: []string{local.ID}})
		return selectErr
	})
	if err != nil {
		return fmt.Errorf("fetch conflicting entity %s: %w", local.ID, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("conflicting entity %s disappeared from cloud", local.ID)
	}

	remote, err := FromCloudRecord(records[0])
	if err != nil {
		return err
	}

	resolution, err := o.resolver.Resolve(ctx, local, remote)
	if err != nil {
		return err
	}

	return applyResolution(ctx, o.repo, o.cloud, resolution, time.Now().UTC())
}

// runDownstream pulls remote changes since the last successful session and
// merges them into the local store, one kind at a time in dependency order.
func (o *syncOrchestrator) runDownstream(ctx context.Context, priority models.OperationPriority) error {
	filter := models.CloudFilter{}
	if since := o.watermark(); !since.IsZero() {
		filter.UpdatedSince = &since
	}

	var records []models.CloudRecord
	err := o.retry.Do(ctx, priority, func(ctx context.Context) error {
		var selectErr error
		records, selectErr = o.cloud.Select(ctx, filter)
		return selectErr
	})
	if err != nil {
		return fmt.Errorf("select changed cloud entities: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	byKind := make(map[models.EntityKind][]models.CloudRecord)
	for _, record := range records {
		byKind[record.Kind] = append(byKind[record.Kind], record)
	}

	for _, kind := range models.KindsInDependencyOrder {
		group := byKind[kind]
		if len(group) == 0 {
			continue
		}

		strategy := o.planner.Plan(ctx, models.TargetLocal, len(group), priority)

		outcome, pullErr := o.pullBatches(ctx, group, strategy)
		o.mergePassResults(outcome.results, outcome.conflicts, outcome.bytes)
		if pullErr != nil {
			return fmt.Errorf("pull %s entities: %w", kind, pullErr)
		}
	}

	return nil
}

func (o *syncOrchestrator) pullBatches(ctx context.Context, group []models.CloudRecord, strategy models.BatchStrategy) (passOutcome, error) {
	var total passOutcome

	for i, batch := range chunk(group, strategy.BatchSize) {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		if o.isPaused() {
			return total, nil
		}
		if i > 0 && strategy.InterBatchDelay > 0 {
			time.Sleep(strategy.InterBatchDelay)
		}

		start := time.Now()
		var outcome passOutcome
		var err error
		if strategy.UseTransaction {
			err = o.repo.WithTransaction(ctx, func(ctx context.Context, repo store.EntityRepository) error {
				var txErr error
				outcome, txErr = o.pullBatch(ctx, repo, batch)
				return txErr
			})
		} else {
			outcome, err = o.pullBatch(ctx, o.repo, batch)
		}
		if err != nil {
			return total, err
		}

		successful := 0
		for _, r := range outcome.results {
			if r.Success {
				successful++
			}
		}
		o.metrics.ObserveBatch(time.Since(start), successful, len(batch))

		total.add(outcome)
	}

	return total, nil
}

func (o *syncOrchestrator) pullBatch(ctx context.Context, repo store.EntityRepository, batch []models.CloudRecord) (passOutcome, error) {
	var outcome passOutcome
	for _, record := range batch {
		result, applied, conflict, err := o.pullRecord(ctx, repo, record)
		if err != nil {
			return outcome, err
		}
		if !applied {
			continue
		}
		outcome.results = append(outcome.results, result)
		outcome.conflicts += conflict
		if result.Success {
			outcome.bytes += int64(len(record.Payload))
		}
	}
	return outcome, nil
}

// pullRecord merges one remote record into the local store. Applying the
// same record twice is a no-op: an entity already at the record's sync
// version is skipped without a write. The returned error aborts the whole
// batch; per-record failures come back in the result instead.
func (o *syncOrchestrator) pullRecord(ctx context.Context, repo store.EntityRepository, record models.CloudRecord) (models.SyncOperationResult, bool, int, error) {
	start := time.Now()
	now := time.Now().UTC()
	ownerID := o.cloud.OwnerID()

	result := models.SyncOperationResult{
		ID:         o.uuid.Generate(),
		EntityKind: record.Kind,
		EntityID:   record.ID,
		Operation:  models.OpUpdate,
		Metadata:   models.OperationMetadata{CloudVersion: record.SyncVersion, DataSize: len(record.Payload)},
	}
	finish := func(applied bool, conflict int) (models.SyncOperationResult, bool, int, error) {
		result.DurationMs = time.Since(start).Milliseconds()
		return result, applied, conflict, nil
	}

	remote, err := FromCloudRecord(record)
	if err != nil {
		result.Error = err.Error()
		return finish(true, 0)
	}

	existing, getErr := repo.Get(ctx, ownerID, record.ID)
	switch {
	case errors.Is(getErr, store.ErrEntityNotFound):
		if record.Deleted {
			// a tombstone for an entity this device never had
			return result, false, 0, nil
		}
		remote.PendingSync = false
		remote.LastSyncAt = &now
		if putErr := repo.BulkPut(ctx, remote); putErr != nil {
			return result, false, 0, putErr
		}
		result.Operation = models.OpCreate
		result.Success = true
		return finish(true, 0)

	case errors.Is(getErr, store.ErrCorruptPayload):
		// left for the validator's corruption repair
		result.Error = getErr.Error()
		return finish(true, 0)

	case getErr != nil:
		return result, false, 0, getErr
	}

	result.Metadata.LocalVersion = existing.SyncVersion

	switch {
	case existing.SyncVersion == record.SyncVersion:
		// already applied, no second write
		return result, false, 0, nil

	case existing.PendingSync:
		// both sides changed since the last sync
		resolution, resolveErr := o.resolver.Resolve(ctx, existing, remote)
		if resolveErr != nil {
			result.Error = resolveErr.Error()
			return finish(true, 1)
		}
		if resolution.WriteLocal {
			winner := resolution.Winner
			// cloud writes never happen inside a local transaction; a
			// winner the cloud still needs goes out on the next upstream
			// pass instead
			winner.PendingSync = resolution.WriteCloud || resolution.RequeueUpstream
			if !winner.PendingSync {
				winner.LastSyncAt = &now
			}
			if putErr := repo.BulkPut(ctx, winner); putErr != nil {
				return result, false, 0, putErr
			}
		}
		result.Success = true
		return finish(true, 1)

	case record.SyncVersion > existing.SyncVersion:
		remote.PendingSync = false
		remote.LastSyncAt = &now
		if putErr := repo.BulkPut(ctx, remote); putErr != nil {
			return result, false, 0, putErr
		}
		if record.Deleted {
			result.Operation = models.OpDelete
		}
		result.Success = true
		return finish(true, 0)

	default:
		// local copy is ahead but already synced; nothing to apply
		return result, false, 0, nil
	}
}

func upstreamOperation(entity models.SyncableEntity) models.SyncOperation {
	switch {
	case entity.Deleted:
		return models.OpDelete
	case entity.LastSyncAt == nil:
		return models.OpCreate
	default:
		return models.OpUpdate
	}
}

// chunk splits items into slices of at most size elements.
func chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}

	var batches [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
