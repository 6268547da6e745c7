package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/internal/store"
	"github.com/MKhiriev/go-card-sync/models"
)

// Repair implements ConsistencyValidator. Issues are processed in
// descending severity order; issues not flagged AutoFixable are skipped
// unless force is set. A failed repair is recorded and reported, never
// silently dropped.
func (v *consistencyValidator) Repair(ctx context.Context, issues []models.ConsistencyIssue, force bool) (models.RepairSummary, error) {
	log := logger.FromContext(ctx)
	start := v.now()

	ordered := make([]models.ConsistencyIssue, len(issues))
	copy(ordered, issues)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Severity > ordered[j].Severity
	})

	var summary models.RepairSummary
	for _, issue := range ordered {
		if !issue.AutoFixable && !force {
			summary.Skipped++
			continue
		}

		summary.Attempted++
		if err := v.repairIssue(ctx, issue); err != nil {
			summary.Failed++
			summary.Unresolved = append(summary.Unresolved, issue)
			log.Warn().Err(err).
				Str("issue_id", issue.ID).
				Str("type", string(issue.Type)).
				Str("entity_id", issue.EntityID).
				Msg("repair attempt failed")
			continue
		}
		summary.Repaired++
	}

	summary.Duration = v.now().Sub(start)

	if summary.Repaired > 0 {
		// the stores changed under every cached report
		v.InvalidateCache()
	}

	log.Info().
		Int("attempted", summary.Attempted).
		Int("repaired", summary.Repaired).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Dur("duration", summary.Duration).
		Msg("auto-repair finished")

	return summary, nil
}

func (v *consistencyValidator) repairIssue(ctx context.Context, issue models.ConsistencyIssue) error {
	switch issue.Type {
	case models.IssueMissingLocal:
		return v.repairMissingLocal(ctx, issue)
	case models.IssueMissingCloud:
		return v.repairMissingCloud(ctx, issue)
	case models.IssueVersionMismatch:
		return v.repairVersionMismatch(ctx, issue)
	case models.IssueDataCorruption:
		return v.repairCorruption(ctx, issue)
	case models.IssueRelationshipViolation:
		return v.repairRelationship(ctx, issue)
	default:
		return fmt.Errorf("unknown issue type %q", issue.Type)
	}
}

// repairMissingLocal fetches the cloud copies absent locally and inserts
// them. Kind-level issues (no EntityID) reconcile the whole kind.
func (v *consistencyValidator) repairMissingLocal(ctx context.Context, issue models.ConsistencyIssue) error {
	ownerID := v.cloud.OwnerID()

	filter := models.CloudFilter{Kind: issue.EntityKind}
	if issue.EntityID != "" {
		filter = models.CloudFilter{IDs: []string{issue.EntityID}}
	}

	records, err := v.cloud.Select(ctx, filter)
	if err != nil {
		return fmt.Errorf("select cloud entities: %w", err)
	}

	now := v.now().UTC()
	var missing []models.SyncableEntity
	for _, record := range records {
		if record.Deleted {
			continue
		}
		if _, getErr := v.repo.Get(ctx, ownerID, record.ID); getErr == nil {
			continue
		}

		entity, convErr := FromCloudRecord(record)
		if convErr != nil {
			return convErr
		}
		entity.PendingSync = false
		entity.LastSyncAt = &now
		missing = append(missing, entity)
	}

	if len(missing) == 0 {
		return nil
	}
	return v.repo.BulkPut(ctx, missing...)
}

// repairMissingCloud converts local entities absent remotely and inserts
// them into the cloud store.
func (v *consistencyValidator) repairMissingCloud(ctx context.Context, issue models.ConsistencyIssue) error {
	ownerID := v.cloud.OwnerID()

	var entities []models.SyncableEntity
	if issue.EntityID != "" {
		entity, err := v.repo.Get(ctx, ownerID, issue.EntityID)
		if err != nil {
			return err
		}
		entities = []models.SyncableEntity{entity}
	} else {
		live := false
		all, err := v.repo.QueryByFilter(ctx, ownerID, store.Filter{Kind: issue.EntityKind, Deleted: &live})
		if err != nil {
			return err
		}

		records, err := v.cloud.Select(ctx, models.CloudFilter{Kind: issue.EntityKind})
		if err != nil {
			return fmt.Errorf("select cloud entities: %w", err)
		}
		inCloud := make(map[string]struct{}, len(records))
		for _, r := range records {
			inCloud[r.ID] = struct{}{}
		}

		for _, entity := range all {
			if _, exists := inCloud[entity.ID]; !exists {
				entities = append(entities, entity)
			}
		}
	}

	now := v.now().UTC()
	for _, entity := range entities {
		record, err := ToCloudRecord(entity)
		if err != nil {
			return err
		}
		if err := v.cloud.Insert(ctx, record); err != nil {
			return fmt.Errorf("insert entity %s: %w", entity.ID, err)
		}
		if err := v.repo.MarkSynced(ctx, entity.OwnerID, entity.ID, entity.SyncVersion, now); err != nil {
			return err
		}
	}

	return nil
}

// repairVersionMismatch fetches both sides and delegates to the conflict
// resolver so the decision rule stays in one place.
func (v *consistencyValidator) repairVersionMismatch(ctx context.Context, issue models.ConsistencyIssue) error {
	ownerID := v.cloud.OwnerID()

	local, err := v.repo.Get(ctx, ownerID, issue.EntityID)
	if err != nil {
		return err
	}

	records, err := v.cloud.Select(ctx, models.CloudFilter{IDs: []string{issue.EntityID}})
	if err != nil {
		return fmt.Errorf("select cloud entity: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("cloud entity %s disappeared during repair", issue.EntityID)
	}

	remote, err := FromCloudRecord(records[0])
	if err != nil {
		return err
	}

	resolution, err := v.resolver.Resolve(ctx, local, remote)
	if err != nil {
		return err
	}

	return applyResolution(ctx, v.repo, v.cloud, resolution, v.now().UTC())
}

// repairCorruption backs up the corrupted local record to the side table
// and restores it from the cloud copy. An equally broken or absent cloud
// copy leaves the issue unresolved.
func (v *consistencyValidator) repairCorruption(ctx context.Context, issue models.ConsistencyIssue) error {
	if issue.EntityID == "" {
		return fmt.Errorf("corruption issue carries no entity id")
	}

	ownerID := v.cloud.OwnerID()
	if err := v.repo.BackupCorrupt(ctx, ownerID, issue.EntityID); err != nil {
		return err
	}

	records, err := v.cloud.Select(ctx, models.CloudFilter{IDs: []string{issue.EntityID}})
	if err != nil {
		return fmt.Errorf("select cloud entity: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no cloud copy to restore entity %s from", issue.EntityID)
	}

	entity, err := FromCloudRecord(records[0])
	if err != nil {
		return fmt.Errorf("cloud copy of %s is also unusable: %w", issue.EntityID, err)
	}
	if entity.Payload == nil {
		return fmt.Errorf("cloud copy of %s is also corrupt", issue.EntityID)
	}

	now := v.now().UTC()
	entity.PendingSync = false
	entity.LastSyncAt = &now

	return v.repo.BulkPut(ctx, entity)
}

// repairRelationship nulls out the broken reference; the referencing entity
// itself is never deleted. Put's local-mutation semantics make the fix
// visible to the next upstream pass.
func (v *consistencyValidator) repairRelationship(ctx context.Context, issue models.ConsistencyIssue) error {
	ownerID := v.cloud.OwnerID()

	entity, err := v.repo.Get(ctx, ownerID, issue.EntityID)
	if err != nil {
		return err
	}

	if _, ok := entity.FolderRef(); !ok {
		// already fixed by a concurrent pass
		return nil
	}

	entity.Payload["folder_id"] = nil
	entity.UpdatedAt = time.Now().UTC()

	return v.repo.Put(ctx, entity)
}
