// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncState is the lifecycle state of a sync session.
type SyncState string

const (
	SyncStateIdle      SyncState = "idle"
	SyncStateSyncing   SyncState = "syncing"
	SyncStatePaused    SyncState = "paused"
	SyncStateCompleted SyncState = "completed"
	SyncStateError     SyncState = "error"
)

// SyncDirection selects which passes a session runs.
type SyncDirection string

const (
	DirectionUpstream      SyncDirection = "upstream"
	DirectionDownstream    SyncDirection = "downstream"
	DirectionBidirectional SyncDirection = "bidirectional"
)

// SyncOperation is the kind of write a single operation performed.
type SyncOperation string

const (
	OpCreate SyncOperation = "create"
	OpUpdate SyncOperation = "update"
	OpDelete SyncOperation = "delete"
)

// OperationMetadata carries optional per-operation diagnostics.
type OperationMetadata struct {
	LocalVersion  int64 `json:"local_version,omitempty"`
	CloudVersion  int64 `json:"cloud_version,omitempty"`
	ConflictCount int   `json:"conflict_count,omitempty"`
	DataSize      int   `json:"data_size,omitempty"`
}

// SyncOperationResult records the outcome of one entity write during a sync
// pass. Immutable once produced; the orchestrator appends it to the owning
// session.
type SyncOperationResult struct {
	ID         string            `json:"id"`
	EntityKind EntityKind        `json:"entity_kind"`
	EntityID   string            `json:"entity_id"`
	Operation  SyncOperation     `json:"operation"`
	Success    bool              `json:"success"`
	DurationMs int64             `json:"duration_ms"`
	Error      string            `json:"error,omitempty"`
	Metadata   OperationMetadata `json:"metadata"`
}

// SyncSession describes one execution of a sync pass, full or incremental.
// It is created when the pass starts and mutated only by the orchestrator's
// own goroutine; everything else receives copies.
type SyncSession struct {
	ID               string                `json:"id"`
	StartTime        time.Time             `json:"start_time"`
	EndTime          *time.Time            `json:"end_time,omitempty"`
	State            SyncState             `json:"state"`
	Direction        SyncDirection         `json:"direction"`
	Processed        int                   `json:"processed"`
	Successful       int                   `json:"successful"`
	Failed           int                   `json:"failed"`
	Conflicts        int                   `json:"conflicts"`
	BytesTransferred int64                 `json:"bytes_transferred"`
	Operations       []SyncOperationResult `json:"operations"`
}

// SessionEvent is delivered to subscribers on every session state
// transition.
type SessionEvent struct {
	SessionID string        `json:"session_id"`
	State     SyncState     `json:"state"`
	Direction SyncDirection `json:"direction"`
	At        time.Time     `json:"at"`
	Error     string        `json:"error,omitempty"`
}
