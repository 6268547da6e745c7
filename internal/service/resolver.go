package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-card-sync/internal/adapter"
	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/internal/store"
	"github.com/MKhiriev/go-card-sync/models"
)

type conflictResolver struct {
	merger MergeResolver
	logger *logger.Logger
}

// NewConflictResolver constructs the resolver invoked when both sides carry
// a version newer than the last common sync version. merger may be nil to
// skip straight to last-writer-wins.
func NewConflictResolver(merger MergeResolver, log *logger.Logger) ConflictResolver {
	return &conflictResolver{merger: merger, logger: log}
}

// Resolve implements ConflictResolver. Decision policy, first applicable
// rule wins:
//
//  1. If the merge collaborator succeeds, its result wins on both sides;
//     when the merge differs from the remote copy the entity is re-queued
//     for an upstream write.
//  2. Otherwise the later UpdatedAt timestamp wins outright at entity
//     granularity. Equal timestamps within the same millisecond: local
//     wins if it is still pending sync, else the pair is already
//     consistent and nothing is written.
func (r *conflictResolver) Resolve(ctx context.Context, local, remote models.SyncableEntity) (Resolution, error) {
	log := logger.FromContext(ctx)

	if r.merger != nil {
		merged, err := r.merger.Merge(ctx, local, remote)
		if err == nil {
			differs := !payloadsEqual(merged.Payload, remote.Payload)
			return Resolution{
				Winner:          merged,
				Source:          ResolvedMerged,
				WriteLocal:      true,
				WriteCloud:      differs,
				RequeueUpstream: differs,
			}, nil
		}
		log.Debug().Err(err).
			Str("entity_id", local.ID).
			Msg("merge resolution failed, falling back to last-writer-wins")
	}

	localAt := local.UpdatedAt.Truncate(time.Millisecond)
	remoteAt := remote.UpdatedAt.Truncate(time.Millisecond)

	switch {
	case localAt.After(remoteAt):
		return Resolution{
			Winner:     local,
			Source:     ResolvedLocal,
			WriteCloud: true,
		}, nil

	case remoteAt.After(localAt):
		return Resolution{
			Winner:     remote,
			Source:     ResolvedRemote,
			WriteLocal: true,
		}, nil

	case local.PendingSync:
		return Resolution{
			Winner:     local,
			Source:     ResolvedLocal,
			WriteCloud: true,
		}, nil

	default:
		// same millisecond, nothing pending: both sides already agree
		return Resolution{Winner: local, Source: ResolvedNone}, nil
	}
}

// mergoMerger is the default merge collaborator: a coarse field-level merge
// where the newer payload is the base and fields present only in the older
// payload are carried over.
type mergoMerger struct{}

// NewMergoMerger constructs the default MergeResolver.
func NewMergoMerger() MergeResolver {
	return &mergoMerger{}
}

// Merge implements MergeResolver.
func (m *mergoMerger) Merge(_ context.Context, local, remote models.SyncableEntity) (models.SyncableEntity, error) {
	newer, older := local, remote
	if remote.UpdatedAt.After(local.UpdatedAt) {
		newer, older = remote, local
	}

	if newer.Deleted || older.Deleted {
		// a tombstone cannot be merged field by field
		return models.SyncableEntity{}, ErrMergeUnavailable
	}

	merged := newer
	merged.Payload = make(map[string]any, len(newer.Payload))
	for k, v := range newer.Payload {
		merged.Payload[k] = v
	}

	if err := mergo.Merge(&merged.Payload, older.Payload); err != nil {
		return models.SyncableEntity{}, err
	}

	if older.SyncVersion > merged.SyncVersion {
		merged.SyncVersion = older.SyncVersion
	}

	return merged, nil
}

// applyResolution writes the resolver's decision to the stores. A winner
// re-queued for upstream keeps its pending flag so the next upstream pass
// pushes it; everything else gets its sync bookkeeping stamped immediately.
func applyResolution(ctx context.Context, repo store.EntityRepository, cloud adapter.CloudStore, resolution Resolution, now time.Time) error {
	if resolution.WriteLocal {
		winner := resolution.Winner
		winner.PendingSync = resolution.RequeueUpstream
		if !resolution.RequeueUpstream {
			winner.LastSyncAt = &now
		}
		if err := repo.BulkPut(ctx, winner); err != nil {
			return err
		}
	}

	if resolution.WriteCloud {
		record, err := ToCloudRecord(resolution.Winner)
		if err != nil {
			return err
		}
		if err := cloud.Update(ctx, record.ID, record); err != nil {
			return fmt.Errorf("update cloud entity %s: %w", record.ID, err)
		}
		if err := repo.MarkSynced(ctx, resolution.Winner.OwnerID, resolution.Winner.ID, resolution.Winner.SyncVersion, now); err != nil {
			return err
		}
	}

	return nil
}

func payloadsEqual(a, b map[string]any) bool {
	aJSON, errA := json.Marshal(a)
	bJSON, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(aJSON) == string(bJSON)
}
