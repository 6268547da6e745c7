package models

import (
	"encoding/json"
	"time"
)

// CloudRecord is the wire representation of one entity in the remote store.
// Payload is kept as raw JSON so the adapter never has to understand the
// per-kind payload schema.
type CloudRecord struct {
	ID          string          `json:"id"`
	OwnerID     int64           `json:"owner_id"`
	Kind        EntityKind      `json:"kind"`
	Payload     json.RawMessage `json:"payload"`
	SyncVersion int64           `json:"sync_version"`
	Deleted     bool            `json:"deleted"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CloudFilter narrows Select and CountWhere calls against the remote store.
// Zero values mean "no constraint". The owning user is implied by the
// adapter's bearer token and never part of the filter.
type CloudFilter struct {
	Kind         EntityKind `json:"kind,omitempty"`
	IDs          []string   `json:"ids,omitempty"`
	UpdatedSince *time.Time `json:"updated_since,omitempty"`
	Deleted      *bool      `json:"deleted,omitempty"`
}
