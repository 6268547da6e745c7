package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-card-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Filter narrows Count and QueryByFilter calls against the local store.
// Nil pointer fields mean "no constraint".
type Filter struct {
	Kind         models.EntityKind
	PendingSync  *bool
	Deleted      *bool
	UpdatedSince *time.Time
	IDs          []string
}

// EntityRepository is the local persistent store for syncable entities.
//
// Put applies local-mutation semantics: the entity's sync version is bumped
// and pending_sync is set, so every user edit becomes visible to the next
// upstream pass. BulkPut writes entities exactly as given and is reserved
// for the sync engine itself (downstream merges, repairs), which manages
// version and pending flags explicitly.
type EntityRepository interface {
	Get(ctx context.Context, ownerID int64, id string) (models.SyncableEntity, error)
	Put(ctx context.Context, entity models.SyncableEntity) error
	BulkPut(ctx context.Context, entities ...models.SyncableEntity) error
	Delete(ctx context.Context, ownerID int64, id string) error
	Count(ctx context.Context, ownerID int64, filter Filter) (int64, error)
	QueryByFilter(ctx context.Context, ownerID int64, filter Filter) ([]models.SyncableEntity, error)

	// MarkSynced clears pending_sync and stamps last_sync_at, but only if
	// the stored row still carries exactly syncVersion. A concurrent local
	// edit that bumped the version keeps the entity pending.
	MarkSynced(ctx context.Context, ownerID int64, id string, syncVersion int64, at time.Time) error

	// BackupCorrupt copies a structurally broken row into the side backup
	// table before any repair touches it.
	BackupCorrupt(ctx context.Context, ownerID int64, id string) error

	// WithTransaction runs fn against a repository bound to one write
	// transaction. The transaction commits if fn returns nil and rolls
	// back otherwise. Nested transactions are not supported.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo EntityRepository) error) error

	// Ping verifies the underlying database connection is alive.
	Ping(ctx context.Context) error
}
