package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/models"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so the repository can run
// inside or outside a transaction with the same code.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type entityRepository struct {
	db     *DB
	conn   dbtx
	logger *logger.Logger
}

// NewEntityRepository constructs the SQLite-backed local entity repository.
func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	return &entityRepository{db: db, conn: db.DB, logger: logger}
}

func (r *entityRepository) Get(ctx context.Context, ownerID int64, id string) (models.SyncableEntity, error) {
	log := logger.FromContext(ctx)

	row := r.conn.QueryRowContext(ctx, getEntity, ownerID, id)
	entity, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SyncableEntity{}, ErrEntityNotFound
		}
		log.Err(err).
			Str("func", "entityRepository.Get").
			Int64("owner_id", ownerID).
			Str("id", id).
			Msg("failed to scan entity row")
		return models.SyncableEntity{}, fmt.Errorf("failed to get entity (id=%s): %w", id, err)
	}

	return entity, nil
}

// Put applies local-mutation semantics: an existing row gets its sync
// version bumped by one, a new row starts at version 1 (or the version the
// caller supplied, whichever is higher). pending_sync is always set. The
// bump lives inside the upsert itself, so concurrent local edits serialize
// on the row and each one advances the version.
func (r *entityRepository) Put(ctx context.Context, entity models.SyncableEntity) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(entity.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode entity payload: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, putEntity,
		entity.ID,
		entity.OwnerID,
		string(entity.Kind),
		string(payload),
		entity.SyncVersion,
		entity.Deleted,
		entity.LastSyncAt,
		time.Now().UTC(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.Put").
			Int64("owner_id", entity.OwnerID).
			Str("id", entity.ID).
			Msg("failed to execute upsert for entity")
		return fmt.Errorf("failed to put entity (id=%s): %w", entity.ID, err)
	}

	return nil
}

// BulkPut writes entities exactly as given. The sync engine uses it for
// downstream merges and repairs where it controls version and pending flags
// itself.
func (r *entityRepository) BulkPut(ctx context.Context, entities ...models.SyncableEntity) error {
	log := logger.FromContext(ctx)

	for _, entity := range entities {
		if err := r.save(ctx, entity); err != nil {
			log.Err(err).
				Str("func", "entityRepository.BulkPut").
				Int64("owner_id", entity.OwnerID).
				Str("id", entity.ID).
				Msg("failed to execute upsert for entity")
			return fmt.Errorf("failed to save entity (id=%s): %w", entity.ID, err)
		}
	}

	return nil
}

func (r *entityRepository) save(ctx context.Context, entity models.SyncableEntity) error {
	payload, err := json.Marshal(entity.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode entity payload: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, saveEntity,
		entity.ID,
		entity.OwnerID,
		string(entity.Kind),
		string(payload),
		entity.SyncVersion,
		entity.PendingSync,
		entity.Deleted,
		entity.LastSyncAt,
		entity.UpdatedAt,
	)
	return err
}

// Delete soft-deletes: the row stays as a tombstone with a bumped version so
// the deletion propagates upstream on the next pass.
func (r *entityRepository) Delete(ctx context.Context, ownerID int64, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.conn.ExecContext(ctx, softDeleteEntity, ownerID, id, time.Now().UTC())
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.Delete").
			Int64("owner_id", ownerID).
			Str("id", id).
			Msg("failed to execute soft delete for entity")
		return fmt.Errorf("failed to delete entity (id=%s): %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (id=%s): %w", id, err)
	}
	if affected == 0 {
		return ErrEntityNotFound
	}

	return nil
}

func (r *entityRepository) Count(ctx context.Context, ownerID int64, filter Filter) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := filterQuery(sq.Select("COUNT(*)"), ownerID, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "entityRepository.Count").
			Int64("owner_id", ownerID).
			Msg("failed to execute count query")
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}

	return count, nil
}

func (r *entityRepository) QueryByFilter(ctx context.Context, ownerID int64, filter Filter) ([]models.SyncableEntity, error) {
	log := logger.FromContext(ctx)

	query, args, err := filterQuery(sq.Select(entityColumns), ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build filter query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.QueryByFilter").
			Int64("owner_id", ownerID).
			Msg("failed to execute filter query")
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	var entities []models.SyncableEntity
	for rows.Next() {
		entity, scanErr := scanEntity(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "entityRepository.QueryByFilter").
				Int64("owner_id", ownerID).
				Msg("failed to scan entity row")
			return nil, fmt.Errorf("failed to scan entity row: %w", scanErr)
		}
		entities = append(entities, entity)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "entityRepository.QueryByFilter").
			Int64("owner_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating entity rows: %w", rowsErr)
	}

	return entities, nil
}

func (r *entityRepository) MarkSynced(ctx context.Context, ownerID int64, id string, syncVersion int64, at time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.conn.ExecContext(ctx, markEntitySynced, ownerID, id, syncVersion, at)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.MarkSynced").
			Int64("owner_id", ownerID).
			Str("id", id).
			Msg("failed to execute mark synced for entity")
		return fmt.Errorf("failed to mark entity synced (id=%s): %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (id=%s): %w", id, err)
	}
	if affected == 0 {
		// the row moved on to a newer version while the write was in
		// flight; it stays pending for the next pass
		log.Debug().
			Str("func", "entityRepository.MarkSynced").
			Str("id", id).
			Int64("sync_version", syncVersion).
			Msg("entity version advanced during sync, left pending")
	}

	return nil
}

func (r *entityRepository) BackupCorrupt(ctx context.Context, ownerID int64, id string) error {
	log := logger.FromContext(ctx)

	if _, err := r.conn.ExecContext(ctx, backupCorruptEntity, ownerID, id); err != nil {
		log.Err(err).
			Str("func", "entityRepository.BackupCorrupt").
			Int64("owner_id", ownerID).
			Str("id", id).
			Msg("failed to back up corrupt entity")
		return fmt.Errorf("failed to back up corrupt entity (id=%s): %w", id, err)
	}

	return nil
}

func (r *entityRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo EntityRepository) error) error {
	if _, alreadyInTx := r.conn.(*sql.Tx); alreadyInTx {
		return ErrNestedTransaction
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txRepo := &entityRepository{db: r.db, conn: tx, logger: r.logger}
	if err := fn(ctx, txRepo); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *entityRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// filterQuery applies ownerID plus the optional filter constraints to a
// squirrel select builder and returns the final SQL and args.
func filterQuery(builder sq.SelectBuilder, ownerID int64, filter Filter) (string, []any, error) {
	b := builder.
		From("entities").
		Where(sq.Eq{"owner_id": ownerID}).
		PlaceholderFormat(sq.Dollar)

	if filter.Kind != "" {
		b = b.Where(sq.Eq{"kind": string(filter.Kind)})
	}
	if filter.PendingSync != nil {
		b = b.Where(sq.Eq{"pending_sync": *filter.PendingSync})
	}
	if filter.Deleted != nil {
		b = b.Where(sq.Eq{"deleted": *filter.Deleted})
	}
	if filter.UpdatedSince != nil {
		b = b.Where(sq.GtOrEq{"updated_at": *filter.UpdatedSince})
	}
	if len(filter.IDs) > 0 {
		b = b.Where(sq.Eq{"id": filter.IDs})
	}

	return b.ToSql()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (models.SyncableEntity, error) {
	var entity models.SyncableEntity
	var kind string
	var payload string

	err := row.Scan(
		&entity.ID,
		&entity.OwnerID,
		&kind,
		&payload,
		&entity.SyncVersion,
		&entity.PendingSync,
		&entity.Deleted,
		&entity.LastSyncAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return models.SyncableEntity{}, err
	}

	entity.Kind = models.EntityKind(kind)
	if err := json.Unmarshal([]byte(payload), &entity.Payload); err != nil {
		return models.SyncableEntity{}, fmt.Errorf("%w: %s", ErrCorruptPayload, err)
	}

	return entity, nil
}
