// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	entityColumns = `
		id,
		owner_id,
		kind,
		payload,
		sync_version,
		pending_sync,
		deleted,
		last_sync_at,
		updated_at`

	saveEntity = `
		INSERT INTO entities (` + entityColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (owner_id, id) DO UPDATE SET
			kind         = excluded.kind,
			payload      = excluded.payload,
			sync_version = excluded.sync_version,
			pending_sync = excluded.pending_sync,
			deleted      = excluded.deleted,
			last_sync_at = excluded.last_sync_at,
			updated_at   = excluded.updated_at;`

	putEntity = `
		INSERT INTO entities (` + entityColumns + `
		) VALUES ($1, $2, $3, $4, MAX($5, 1), 1, $6, $7, $8)
		ON CONFLICT (owner_id, id) DO UPDATE SET
			kind         = excluded.kind,
			payload      = excluded.payload,
			sync_version = sync_version + 1,
			pending_sync = 1,
			deleted      = excluded.deleted,
			last_sync_at = excluded.last_sync_at,
			updated_at   = excluded.updated_at;`

	getEntity = `
		SELECT` + entityColumns + `
		FROM entities
		WHERE owner_id = $1 AND id = $2;`

	softDeleteEntity = `
		UPDATE entities SET
			deleted      = 1,
			pending_sync = 1,
			sync_version = sync_version + 1,
			updated_at   = $3
		WHERE owner_id = $1 AND id = $2;`

	markEntitySynced = `
		UPDATE entities SET
			pending_sync = 0,
			last_sync_at = $4
		WHERE owner_id = $1 AND id = $2 AND sync_version = $3;`

	backupCorruptEntity = `
		INSERT INTO corrupt_backup (id, owner_id, kind, raw_payload)
		SELECT id, owner_id, kind, payload
		FROM entities
		WHERE owner_id = $1 AND id = $2;`
)
