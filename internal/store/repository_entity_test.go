package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/models"
)

func newTestEntityRepo(t *testing.T) (*entityRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &entityRepository{
		db:     &DB{DB: db, logger: l},
		conn:   db,
		logger: l,
	}
	return repo, mock, db
}

func entityRows(t *testing.T, entities ...models.SyncableEntity) *sqlmock.Rows {
	t.Helper()

	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "kind", "payload", "sync_version",
		"pending_sync", "deleted", "last_sync_at", "updated_at",
	})
	for _, e := range entities {
		rows.AddRow(e.ID, e.OwnerID, string(e.Kind), `{"title":"visa"}`,
			e.SyncVersion, e.PendingSync, e.Deleted, e.LastSyncAt, e.UpdatedAt)
	}
	return rows
}

func TestGetEntity_Success(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT").
		WithArgs(int64(1), "c1").
		WillReturnRows(entityRows(t, models.SyncableEntity{
			ID: "c1", OwnerID: 1, Kind: models.KindCard,
			SyncVersion: 2, PendingSync: true, UpdatedAt: now,
		}))

	entity, err := repo.Get(context.Background(), 1, "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entity.Kind != models.KindCard {
		t.Errorf("expected kind card, got %s", entity.Kind)
	}
	if entity.SyncVersion != 2 {
		t.Errorf("expected sync_version=2, got %d", entity.SyncVersion)
	}
	if entity.Payload["title"] != "visa" {
		t.Errorf("payload was not decoded: %v", entity.Payload)
	}
}

func TestGetEntity_NotFound(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WithArgs(int64(1), "missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 1, "missing")
	if !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestGetEntity_CorruptPayload(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "kind", "payload", "sync_version",
		"pending_sync", "deleted", "last_sync_at", "updated_at",
	}).AddRow("c1", int64(1), "card", `{not json`, int64(1), false, false, nil, time.Now())

	mock.ExpectQuery("SELECT").
		WithArgs(int64(1), "c1").
		WillReturnRows(rows)

	_, err := repo.Get(context.Background(), 1, "c1")
	if !errors.Is(err, ErrCorruptPayload) {
		t.Fatalf("expected ErrCorruptPayload, got %v", err)
	}
}

func TestPutEntity_BumpsVersionInsideUpsert(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	// один атомарный upsert, без предварительного SELECT: две
	// конкурентные записи не могут прочитать одну и ту же версию
	mock.ExpectExec(`sync_version = sync_version \+ 1`).
		WithArgs("c1", int64(1), "card", `{"title":"visa"}`,
			int64(0), false, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Put(context.Background(), models.SyncableEntity{
		ID: "c1", OwnerID: 1, Kind: models.KindCard,
		Payload: map[string]any{"title": "visa"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPutEntity_NewRowVersionFloorsAtOne(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	mock.ExpectExec(`VALUES \(\$1, \$2, \$3, \$4, MAX\(\$5, 1\), 1, \$6, \$7, \$8\)`).
		WithArgs("c1", int64(1), "card", `{"title":"visa"}`,
			int64(0), false, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Put(context.Background(), models.SyncableEntity{
		ID: "c1", OwnerID: 1, Kind: models.KindCard,
		Payload: map[string]any{"title": "visa"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteEntity_Success(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE entities SET").
		WithArgs(int64(1), "c1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 1, "c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteEntity_NotFound(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE entities SET").
		WithArgs(int64(1), "missing", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 1, "missing")
	if !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestMarkSynced_VersionAdvancedIsNotAnError(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	// строка успела уйти на новую версию, гонка не считается ошибкой
	mock.ExpectExec("UPDATE entities SET").
		WithArgs(int64(1), "c1", int64(2), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.MarkSynced(context.Background(), 1, "c1", 2, time.Now().UTC()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCountEntities(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(1), "card").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

	count, err := repo.Count(context.Background(), 1, Filter{Kind: models.KindCard})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 5 {
		t.Errorf("expected count=5, got %d", count)
	}
}

func TestQueryByFilter_ReturnsAllRows(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT").
		WillReturnRows(entityRows(t,
			models.SyncableEntity{ID: "c1", OwnerID: 1, Kind: models.KindCard, SyncVersion: 1, UpdatedAt: now},
			models.SyncableEntity{ID: "c2", OwnerID: 1, Kind: models.KindCard, SyncVersion: 2, UpdatedAt: now},
		))

	pending := true
	entities, err := repo.QueryByFilter(context.Background(), 1, Filter{PendingSync: &pending})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(entities))
	}
}

func TestWithTransaction_Commit(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO entities").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.WithTransaction(context.Background(), func(ctx context.Context, txRepo EntityRepository) error {
		return txRepo.BulkPut(ctx, models.SyncableEntity{
			ID: "c1", OwnerID: 1, Kind: models.KindCard,
			Payload: map[string]any{"title": "visa"}, SyncVersion: 1,
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("batch failed")
	err := repo.WithTransaction(context.Background(), func(context.Context, EntityRepository) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the callback error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestWithTransaction_NestedRejected(t *testing.T) {
	repo, mock, db := newTestEntityRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.WithTransaction(context.Background(), func(ctx context.Context, txRepo EntityRepository) error {
		return txRepo.WithTransaction(ctx, func(context.Context, EntityRepository) error {
			return nil
		})
	})
	if !errors.Is(err, ErrNestedTransaction) {
		t.Fatalf("expected ErrNestedTransaction, got %v", err)
	}
}

func TestFilterQuery_AppliesAllConstraints(t *testing.T) {
	pending := true
	deleted := false
	since := time.Now().UTC()

	query, args, err := filterQuery(sq.Select("COUNT(*)"), 1, Filter{
		Kind:         models.KindCard,
		PendingSync:  &pending,
		Deleted:      &deleted,
		UpdatedSince: &since,
		IDs:          []string{"c1", "c2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, clause := range []string{"owner_id = $1", "kind = $2", "pending_sync = $3", "deleted = $4", "updated_at >= $5", "id IN ($6,$7)"} {
		if !strings.Contains(query, clause) {
			t.Errorf("query is missing clause %q: %s", clause, query)
		}
	}
	if len(args) != 7 {
		t.Errorf("expected 7 args, got %d", len(args))
	}
}
