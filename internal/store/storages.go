package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-card-sync/internal/config"
	"github.com/MKhiriev/go-card-sync/internal/logger"
)

// Storages groups the local repositories into a single value that can be
// passed to the service layer. Currently it holds only [EntityRepository];
// additional repositories can be added here as the feature set grows.
type Storages struct {
	// Entities is the SQLite-backed repository for syncable entities
	// stored locally on the device.
	Entities EntityRepository

	db *DB
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [Storages] value wired to a fresh
//     [EntityRepository].
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Entities: NewEntityRepository(db, logger),
		db:       db,
	}, nil
}
