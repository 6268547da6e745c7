// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-card-sync/internal/adapter"
	"github.com/MKhiriev/go-card-sync/internal/store"
	"github.com/MKhiriev/go-card-sync/models"
)

// fakeRepo — in-memory EntityRepository, не требует mockgen (избегаем цикл
// импортов с internal/mock).
type fakeRepo struct {
	mu       sync.Mutex
	entities map[string]models.SyncableEntity

	// failGet ломает Get; пустой failGetID ломает все записи сразу
	failGet   error
	failGetID string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entities: make(map[string]models.SyncableEntity)}
}

func (f *fakeRepo) seed(entities ...models.SyncableEntity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range entities {
		f.entities[e.ID] = e
	}
}

func (f *fakeRepo) get(id string) (models.SyncableEntity, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entities[id]
	return e, ok
}

func (f *fakeRepo) Get(_ context.Context, _ int64, id string) (models.SyncableEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failGet != nil && (f.failGetID == "" || f.failGetID == id) {
		return models.SyncableEntity{}, f.failGet
	}

	entity, ok := f.entities[id]
	if !ok {
		return models.SyncableEntity{}, store.ErrEntityNotFound
	}
	return entity, nil
}

func (f *fakeRepo) Put(_ context.Context, entity models.SyncableEntity) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.entities[entity.ID]; ok {
		entity.SyncVersion = existing.SyncVersion + 1
	} else if entity.SyncVersion < 1 {
		entity.SyncVersion = 1
	}
	entity.PendingSync = true
	entity.UpdatedAt = time.Now().UTC()

	f.entities[entity.ID] = entity
	return nil
}

func (f *fakeRepo) BulkPut(_ context.Context, entities ...models.SyncableEntity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range entities {
		f.entities[e.ID] = e
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, _ int64, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entity, ok := f.entities[id]
	if !ok {
		return store.ErrEntityNotFound
	}
	entity.Deleted = true
	entity.PendingSync = true
	entity.SyncVersion++
	f.entities[id] = entity
	return nil
}

func (f *fakeRepo) Count(ctx context.Context, ownerID int64, filter store.Filter) (int64, error) {
	matched, err := f.QueryByFilter(ctx, ownerID, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

func (f *fakeRepo) QueryByFilter(_ context.Context, _ int64, filter store.Filter) ([]models.SyncableEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []models.SyncableEntity
	for _, e := range f.entities {
		if filter.Kind != "" && e.Kind != filter.Kind {
			continue
		}
		if filter.PendingSync != nil && e.PendingSync != *filter.PendingSync {
			continue
		}
		if filter.Deleted != nil && e.Deleted != *filter.Deleted {
			continue
		}
		if filter.UpdatedSince != nil && e.UpdatedAt.Before(*filter.UpdatedSince) {
			continue
		}
		if len(filter.IDs) > 0 && !containsID(filter.IDs, e.ID) {
			continue
		}
		matched = append(matched, e)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (f *fakeRepo) MarkSynced(_ context.Context, _ int64, id string, syncVersion int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entity, ok := f.entities[id]
	if !ok || entity.SyncVersion != syncVersion {
		// version advanced, stays pending
		return nil
	}
	entity.PendingSync = false
	entity.LastSyncAt = &at
	f.entities[id] = entity
	return nil
}

func (f *fakeRepo) BackupCorrupt(_ context.Context, _ int64, _ string) error { return nil }

func (f *fakeRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo store.EntityRepository) error) error {
	return fn(ctx, f)
}

func (f *fakeRepo) Ping(context.Context) error { return nil }

// fakeCloud — in-memory CloudStore.
type fakeCloud struct {
	mu      sync.Mutex
	records map[string]models.CloudRecord
	ownerID int64

	insertErr error
	updateErr error
	selectErr error
	pingErr   error
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{records: make(map[string]models.CloudRecord), ownerID: 1}
}

func (f *fakeCloud) seed(records ...models.CloudRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range records {
		f.records[r.ID] = r
	}
}

func (f *fakeCloud) get(id string) (models.CloudRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	return r, ok
}

func (f *fakeCloud) Insert(_ context.Context, record models.CloudRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertErr != nil {
		return f.insertErr
	}
	if _, exists := f.records[record.ID]; exists {
		return fmt.Errorf("%w: http 409: already exists", adapter.ErrRejected)
	}
	f.records[record.ID] = record
	return nil
}

func (f *fakeCloud) Update(_ context.Context, id string, record models.CloudRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}
	existing, exists := f.records[id]
	if exists && existing.SyncVersion >= record.SyncVersion {
		return fmt.Errorf("%w: http 409: stale version", adapter.ErrRejected)
	}
	f.records[id] = record
	return nil
}

func (f *fakeCloud) Select(_ context.Context, filter models.CloudFilter) ([]models.CloudRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.selectErr != nil {
		return nil, f.selectErr
	}

	var matched []models.CloudRecord
	for _, r := range f.records {
		if filter.Kind != "" && r.Kind != filter.Kind {
			continue
		}
		if len(filter.IDs) > 0 && !containsID(filter.IDs, r.ID) {
			continue
		}
		if filter.UpdatedSince != nil && r.UpdatedAt.Before(*filter.UpdatedSince) {
			continue
		}
		if filter.Deleted != nil && r.Deleted != *filter.Deleted {
			continue
		}
		matched = append(matched, r)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (f *fakeCloud) CountWhere(ctx context.Context, filter models.CloudFilter) (int64, error) {
	records, err := f.Select(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(records)), nil
}

func (f *fakeCloud) Ping(context.Context) (time.Duration, error) {
	if f.pingErr != nil {
		return 0, f.pingErr
	}
	return 10 * time.Millisecond, nil
}

func (f *fakeCloud) OwnerID() int64 { return f.ownerID }

func (f *fakeCloud) SetToken(string) error { return nil }

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
