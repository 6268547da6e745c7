// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-card-sync/models"
)

// ToCloudRecord maps a local entity to its remote wire shape. Pure and
// stateless: the payload map is serialized to raw JSON, sync bookkeeping
// fields that only exist locally (PendingSync, LastSyncAt) are dropped.
func ToCloudRecord(entity models.SyncableEntity) (models.CloudRecord, error) {
	if !entity.Kind.Valid() {
		return models.CloudRecord{}, fmt.Errorf("convert entity %s: unknown kind %q", entity.ID, entity.Kind)
	}

	payload, err := json.Marshal(entity.Payload)
	if err != nil {
		return models.CloudRecord{}, fmt.Errorf("convert entity %s: encode payload: %w", entity.ID, err)
	}

	return models.CloudRecord{
		ID:          entity.ID,
		OwnerID:     entity.OwnerID,
		Kind:        entity.Kind,
		Payload:     payload,
		SyncVersion: entity.SyncVersion,
		Deleted:     entity.Deleted,
		UpdatedAt:   entity.UpdatedAt,
	}, nil
}

// FromCloudRecord maps a remote record to the local entity shape. The
// entity comes back with PendingSync=false and LastSyncAt unset: the caller
// decides how to stamp sync bookkeeping.
func FromCloudRecord(record models.CloudRecord) (models.SyncableEntity, error) {
	if !record.Kind.Valid() {
		return models.SyncableEntity{}, fmt.Errorf("convert record %s: unknown kind %q", record.ID, record.Kind)
	}

	var payload map[string]any
	if len(record.Payload) > 0 {
		if err := json.Unmarshal(record.Payload, &payload); err != nil {
			return models.SyncableEntity{}, fmt.Errorf("convert record %s: decode payload: %w", record.ID, err)
		}
	}

	return models.SyncableEntity{
		ID:          record.ID,
		OwnerID:     record.OwnerID,
		Kind:        record.Kind,
		Payload:     payload,
		SyncVersion: record.SyncVersion,
		Deleted:     record.Deleted,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}
