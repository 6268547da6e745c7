// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-card-sync/models"
)

func TestToCloudRecord_DropsLocalBookkeeping(t *testing.T) {
	now := time.Now().UTC()
	entity := models.SyncableEntity{
		ID:          "c1",
		OwnerID:     7,
		Kind:        models.KindCard,
		Payload:     map[string]any{"title": "visa", "folder_id": "f1"},
		SyncVersion: 4,
		PendingSync: true,
		LastSyncAt:  &now,
		UpdatedAt:   now,
	}

	record, err := ToCloudRecord(entity)
	require.NoError(t, err)

	assert.Equal(t, "c1", record.ID)
	assert.Equal(t, int64(7), record.OwnerID)
	assert.Equal(t, models.KindCard, record.Kind)
	assert.Equal(t, int64(4), record.SyncVersion)
	assert.JSONEq(t, `{"title":"visa","folder_id":"f1"}`, string(record.Payload))
}

func TestToCloudRecord_UnknownKind(t *testing.T) {
	_, err := ToCloudRecord(models.SyncableEntity{ID: "x1", Kind: "note"})
	assert.Error(t, err)
}

func TestFromCloudRecord_RoundTrip(t *testing.T) {
	now := time.Now().UTC()
	record := models.CloudRecord{
		ID:          "f1",
		OwnerID:     7,
		Kind:        models.KindFolder,
		Payload:     []byte(`{"name":"work"}`),
		SyncVersion: 2,
		Deleted:     true,
		UpdatedAt:   now,
	}

	entity, err := FromCloudRecord(record)
	require.NoError(t, err)

	assert.Equal(t, "f1", entity.ID)
	assert.Equal(t, models.KindFolder, entity.Kind)
	assert.Equal(t, "work", entity.Payload["name"])
	assert.Equal(t, int64(2), entity.SyncVersion)
	assert.True(t, entity.Deleted)

	// бухгалтерию синхронизации проставляет вызывающая сторона
	assert.False(t, entity.PendingSync)
	assert.Nil(t, entity.LastSyncAt)
}

func TestFromCloudRecord_BadPayload(t *testing.T) {
	_, err := FromCloudRecord(models.CloudRecord{
		ID:      "c1",
		Kind:    models.KindCard,
		Payload: []byte(`{not json`),
	})
	assert.Error(t, err)
}

func TestFromCloudRecord_EmptyPayload(t *testing.T) {
	entity, err := FromCloudRecord(models.CloudRecord{ID: "c1", Kind: models.KindCard})
	require.NoError(t, err)
	assert.Nil(t, entity.Payload)
}
