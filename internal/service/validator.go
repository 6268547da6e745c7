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
	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/internal/store"
	"github.com/MKhiriev/go-card-sync/internal/utils"
	"github.com/MKhiriev/go-card-sync/models"
)

const (
	// reportCacheTTL is how long a report stays valid per level before a
	// rescan is forced.
	reportCacheTTL = 5 * time.Minute

	// sampleLimit bounds the per-entity comparison at the relaxed level.
	sampleLimit = 100

	// countMismatchThreshold tolerates small count drift below the strict
	// level; strict uses zero.
	countMismatchThreshold = 5

	// maxTimestampSkew is how far in the future an entity timestamp may sit
	// before the strict scan flags it.
	maxTimestampSkew = 5 * time.Minute
)

type cachedReport struct {
	report models.ConsistencyReport
	at     time.Time
}

type consistencyValidator struct {
	repo     store.EntityRepository
	cloud    adapter.CloudStore
	resolver ConflictResolver
	uuid     *utils.UUIDGenerator
	logger   *logger.Logger

	mu    sync.Mutex
	cache map[models.ValidationLevel]cachedReport
	now   func() time.Time
}

// NewConsistencyValidator constructs the validator. The resolver is reused
// for version-mismatch repair so conflict handling stays in one place.
func NewConsistencyValidator(repo store.EntityRepository, cloud adapter.CloudStore, resolver ConflictResolver, log *logger.Logger) ConsistencyValidator {
	return &consistencyValidator{
		repo:     repo,
		cloud:    cloud,
		resolver: resolver,
		uuid:     utils.NewUUIDGenerator(),
		logger:   log,
		cache:    make(map[models.ValidationLevel]cachedReport),
		now:      time.Now,
	}
}

// Validate implements ConsistencyValidator.
func (v *consistencyValidator) Validate(ctx context.Context, level models.ValidationLevel) (models.ConsistencyReport, error) {
	v.mu.Lock()
	if cached, ok := v.cache[level]; ok && v.now().Sub(cached.at) < reportCacheTTL {
		v.mu.Unlock()
		return cached.report, nil
	}
	v.mu.Unlock()

	report, err := v.scan(ctx, level)
	if err != nil {
		return models.ConsistencyReport{}, err
	}

	v.mu.Lock()
	v.cache[level] = cachedReport{report: report, at: v.now()}
	v.mu.Unlock()

	return report, nil
}

// InvalidateCache implements ConsistencyValidator.
func (v *consistencyValidator) InvalidateCache() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cache = make(map[models.ValidationLevel]cachedReport)
}

func (v *consistencyValidator) scan(ctx context.Context, level models.ValidationLevel) (models.ConsistencyReport, error) {
	log := logger.FromContext(ctx)
	ownerID := v.cloud.OwnerID()

	report := models.ConsistencyReport{
		Timestamp:   v.now().UTC(),
		Level:       level,
		LocalCounts: make(models.EntityCounts),
		CloudCounts: make(models.EntityCounts),
	}

	if err := v.checkCounts(ctx, ownerID, level, &report); err != nil {
		return models.ConsistencyReport{}, err
	}

	if level == models.ValidationRelaxed || level == models.ValidationStrict {
		if err := v.checkSampledEntities(ctx, ownerID, &report); err != nil {
			return models.ConsistencyReport{}, err
		}
		if err := v.checkRelationships(ctx, ownerID, &report); err != nil {
			return models.ConsistencyReport{}, err
		}
	}

	if level == models.ValidationStrict {
		if err := v.checkStructure(ctx, ownerID, &report); err != nil {
			return models.ConsistencyReport{}, err
		}
	}

	v.finalize(&report)

	log.Info().
		Str("level", string(level)).
		Str("status", report.OverallStatus).
		Int("issues", report.TotalIssues).
		Float64("confidence", report.Confidence).
		Msg("consistency check finished")

	return report, nil
}

// checkCounts compares aggregate per-kind entity counts between the stores.
func (v *consistencyValidator) checkCounts(ctx context.Context, ownerID int64, level models.ValidationLevel, report *models.ConsistencyReport) error {
	live := false
	threshold := int64(countMismatchThreshold)
	if level == models.ValidationStrict {
		threshold = 0
	}

	for _, kind := range models.KindsInDependencyOrder {
		localCount, err := v.repo.Count(ctx, ownerID, store.Filter{Kind: kind, Deleted: &live})
		if err != nil {
			return fmt.Errorf("count local %s entities: %w", kind, err)
		}

		cloudCount, err := v.cloud.CountWhere(ctx, models.CloudFilter{Kind: kind, Deleted: &live})
		if err != nil {
			return fmt.Errorf("count cloud %s entities: %w", kind, err)
		}

		report.LocalCounts[kind] = localCount
		report.CloudCounts[kind] = cloudCount

		diff := localCount - cloudCount
		if diff < 0 {
			diff = -diff
		}
		if diff <= threshold {
			continue
		}

		issueType := models.IssueMissingCloud
		action := "insert missing local entities into the cloud store"
		if cloudCount > localCount {
			issueType = models.IssueMissingLocal
			action = "fetch missing cloud entities into the local store"
		}

		report.Issues = append(report.Issues, models.ConsistencyIssue{
			ID:              v.uuid.Generate(),
			Type:            issueType,
			EntityKind:      kind,
			Severity:        models.SeverityError,
			AutoFixable:     true,
			SuggestedAction: action,
		})
	}

	return nil
}

// checkSampledEntities compares version and timestamps on a bounded sample
// of live local entities against their cloud counterparts.
func (v *consistencyValidator) checkSampledEntities(ctx context.Context, ownerID int64, report *models.ConsistencyReport) error {
	live := false
	entities, err := v.repo.QueryByFilter(ctx, ownerID, store.Filter{Deleted: &live})
	if err != nil {
		return fmt.Errorf("query local entities for sampling: %w", err)
	}
	if len(entities) > sampleLimit {
		entities = entities[:sampleLimit]
	}
	if len(entities) == 0 {
		return nil
	}

	ids := make([]string, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.ID)
	}

	records, err := v.cloud.Select(ctx, models.CloudFilter{IDs: ids})
	if err != nil {
		return fmt.Errorf("select cloud entities for sampling: %w", err)
	}

	cloudIndex := make(map[string]models.CloudRecord, len(records))
	for _, rec := range records {
		cloudIndex[rec.ID] = rec
	}

	for _, entity := range entities {
		record, existsInCloud := cloudIndex[entity.ID]

		if !existsInCloud {
			if entity.PendingSync {
				// never uploaded yet, the next upstream pass handles it
				continue
			}
			// synced locally but gone remotely: deletes are only inferred
			// from tombstones, never from absence, so this is a missing
			// cloud copy
			report.Issues = append(report.Issues, models.ConsistencyIssue{
				ID:              v.uuid.Generate(),
				Type:            models.IssueMissingCloud,
				EntityKind:      entity.Kind,
				EntityID:        entity.ID,
				Severity:        models.SeverityError,
				AutoFixable:     true,
				SuggestedAction: "re-insert the entity into the cloud store",
			})
			continue
		}

		if record.SyncVersion != entity.SyncVersion {
			report.Issues = append(report.Issues, models.ConsistencyIssue{
				ID:              v.uuid.Generate(),
				Type:            models.IssueVersionMismatch,
				EntityKind:      entity.Kind,
				EntityID:        entity.ID,
				Severity:        models.SeverityError,
				AutoFixable:     true,
				SuggestedAction: "resolve by last-writer-wins",
			})
		}
	}

	return nil
}

// checkRelationships verifies that every card's folder reference resolves
// to an existing live folder.
func (v *consistencyValidator) checkRelationships(ctx context.Context, ownerID int64, report *models.ConsistencyReport) error {
	live := false
	cards, err := v.repo.QueryByFilter(ctx, ownerID, store.Filter{Kind: models.KindCard, Deleted: &live})
	if err != nil {
		return fmt.Errorf("query cards for relationship check: %w", err)
	}

	folders, err := v.repo.QueryByFilter(ctx, ownerID, store.Filter{Kind: models.KindFolder, Deleted: &live})
	if err != nil {
		return fmt.Errorf("query folders for relationship check: %w", err)
	}

	folderIDs := make(map[string]struct{}, len(folders))
	for _, f := range folders {
		folderIDs[f.ID] = struct{}{}
	}

	for _, card := range cards {
		folderID, ok := card.FolderRef()
		if !ok {
			continue
		}
		if _, exists := folderIDs[folderID]; exists {
			continue
		}

		report.Issues = append(report.Issues, models.ConsistencyIssue{
			ID:              v.uuid.Generate(),
			Type:            models.IssueRelationshipViolation,
			EntityKind:      models.KindCard,
			EntityID:        card.ID,
			Severity:        models.SeverityWarning,
			AutoFixable:     true,
			SuggestedAction: "null out the dangling folder reference",
		})
	}

	return nil
}

// checkStructure runs the full corruption and timestamp-skew scans.
func (v *consistencyValidator) checkStructure(ctx context.Context, ownerID int64, report *models.ConsistencyReport) error {
	entities, err := v.repo.QueryByFilter(ctx, ownerID, store.Filter{})
	if err != nil {
		if errors.Is(err, store.ErrCorruptPayload) {
			// the scan itself tripped over an unparsable payload; the row
			// cannot be attributed to a single entity here
			report.Issues = append(report.Issues, models.ConsistencyIssue{
				ID:              v.uuid.Generate(),
				Type:            models.IssueDataCorruption,
				Severity:        models.SeverityCritical,
				AutoFixable:     false,
				SuggestedAction: "inspect the local store for unparsable payloads",
			})
			return nil
		}
		return fmt.Errorf("query entities for structure scan: %w", err)
	}

	skewLimit := v.now().Add(maxTimestampSkew)

	for _, entity := range entities {
		if !entity.Deleted && (entity.Payload == nil || !entity.Kind.Valid() || entity.SyncVersion < 1) {
			report.Issues = append(report.Issues, models.ConsistencyIssue{
				ID:              v.uuid.Generate(),
				Type:            models.IssueDataCorruption,
				EntityKind:      entity.Kind,
				EntityID:        entity.ID,
				Severity:        models.SeverityCritical,
				AutoFixable:     true,
				SuggestedAction: "back up the local record and restore from the cloud copy",
			})
			continue
		}

		if entity.UpdatedAt.After(skewLimit) {
			report.Issues = append(report.Issues, models.ConsistencyIssue{
				ID:              v.uuid.Generate(),
				Type:            models.IssueDataCorruption,
				EntityKind:      entity.Kind,
				EntityID:        entity.ID,
				Severity:        models.SeverityWarning,
				AutoFixable:     false,
				SuggestedAction: "entity timestamp is in the future, check device clock",
			})
		}
	}

	return nil
}

// finalize computes the summary counts, overall status and confidence.
func (v *consistencyValidator) finalize(report *models.ConsistencyReport) {
	for _, issue := range report.Issues {
		switch issue.Severity {
		case models.SeverityCritical:
			report.Criticals++
		case models.SeverityError:
			report.Errors++
		case models.SeverityWarning:
			report.Warnings++
		}
	}
	report.TotalIssues = len(report.Issues)

	switch {
	case report.Criticals > 0:
		report.OverallStatus = models.SeverityCritical.String()
	case report.Errors > 0:
		report.OverallStatus = models.SeverityError.String()
	case report.Warnings > 0:
		report.OverallStatus = models.SeverityWarning.String()
	default:
		report.OverallStatus = "valid"
	}

	confidence := 1.0
	if report.Criticals > 0 {
		confidence -= 0.5
	}
	if report.Errors > 0 {
		confidence -= 0.3
	}
	if report.Warnings > 0 {
		confidence -= 0.1
	}
	if confidence < 0 {
		confidence = 0
	}

	report.Confidence = confidence * levelFactor(report.Level)
}

func levelFactor(level models.ValidationLevel) float64 {
	switch level {
	case models.ValidationBasic:
		return 0.8
	case models.ValidationRelaxed:
		return 0.9
	default:
		return 1.0
	}
}
