// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EntityKind identifies which user-owned collection an entity belongs to.
type EntityKind string

const (
	KindTag    EntityKind = "tag"
	KindFolder EntityKind = "folder"
	KindCard   EntityKind = "card"
	KindImage  EntityKind = "image"
)

// KindsInDependencyOrder lists entity kinds in the order local batches must
// be written: cards reference folders and tags, images reference cards.
var KindsInDependencyOrder = []EntityKind{KindTag, KindFolder, KindCard, KindImage}

// Valid reports whether k is one of the known entity kinds.
func (k EntityKind) Valid() bool {
	switch k {
	case KindTag, KindFolder, KindCard, KindImage:
		return true
	}
	return false
}

// SyncableEntity is the local representation of one user-owned record
// (card, folder, tag or image) subject to synchronization.
//
// SyncVersion increases monotonically with every local mutation.
// PendingSync stays true until a cloud write for that exact SyncVersion
// succeeds. Deleted is a soft-delete tombstone: deleted entities keep their
// row and keep participating in version comparison so that a deletion made
// on one device propagates to the others instead of being mistaken for
// "never synced".
type SyncableEntity struct {
	ID          string         `json:"id"`
	OwnerID     int64          `json:"owner_id"`
	Kind        EntityKind     `json:"kind"`
	Payload     map[string]any `json:"payload"`
	SyncVersion int64          `json:"sync_version"`
	PendingSync bool           `json:"pending_sync"`
	Deleted     bool           `json:"deleted"`
	LastSyncAt  *time.Time     `json:"last_sync_at,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// FolderRef returns the folder id referenced by a card payload, if any.
// Only cards carry folder references.
func (e SyncableEntity) FolderRef() (string, bool) {
	if e.Kind != KindCard || e.Payload == nil {
		return "", false
	}
	id, ok := e.Payload["folder_id"].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
