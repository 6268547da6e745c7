// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ValidationLevel controls how deep a consistency check goes.
type ValidationLevel string

const (
	// ValidationBasic compares aggregate entity counts only.
	ValidationBasic ValidationLevel = "basic"
	// ValidationRelaxed adds sampled version/timestamp comparison and
	// relationship integrity checks.
	ValidationRelaxed ValidationLevel = "relaxed"
	// ValidationStrict adds a full structural corruption scan and a
	// timestamp-skew scan.
	ValidationStrict ValidationLevel = "strict"
)

// IssueType classifies a single discrepancy between the two stores.
type IssueType string

const (
	IssueMissingLocal          IssueType = "missing_local"
	IssueMissingCloud          IssueType = "missing_cloud"
	IssueVersionMismatch       IssueType = "version_mismatch"
	IssueDataCorruption        IssueType = "data_corruption"
	IssueRelationshipViolation IssueType = "relationship_violation"
)

// IssueSeverity orders issues for reporting and repair.
type IssueSeverity int

const (
	SeverityWarning IssueSeverity = iota + 1
	SeverityError
	SeverityCritical
)

func (s IssueSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	}
	return "valid"
}

// ConsistencyIssue is one detected discrepancy. Issues live only inside the
// report that produced them.
type ConsistencyIssue struct {
	ID              string        `json:"id"`
	Type            IssueType     `json:"type"`
	EntityKind      EntityKind    `json:"entity_kind"`
	EntityID        string        `json:"entity_id,omitempty"`
	Severity        IssueSeverity `json:"severity"`
	AutoFixable     bool          `json:"auto_fixable"`
	SuggestedAction string        `json:"suggested_action"`
}

// EntityCounts holds per-kind totals for one side of the comparison.
type EntityCounts map[EntityKind]int64

// ConsistencyReport is a point-in-time comparison of local vs cloud state.
type ConsistencyReport struct {
	Timestamp     time.Time          `json:"timestamp"`
	Level         ValidationLevel    `json:"level"`
	OverallStatus string             `json:"overall_status"`
	TotalIssues   int                `json:"total_issues"`
	Criticals     int                `json:"criticals"`
	Errors        int                `json:"errors"`
	Warnings      int                `json:"warnings"`
	LocalCounts   EntityCounts       `json:"local_counts"`
	CloudCounts   EntityCounts       `json:"cloud_counts"`
	Issues        []ConsistencyIssue `json:"issues"`
	Confidence    float64            `json:"confidence"`
}

// HasCritical reports whether any issue in the report is critical.
func (r ConsistencyReport) HasCritical() bool {
	return r.Criticals > 0
}

// RepairSummary describes the outcome of one auto-repair run.
type RepairSummary struct {
	Attempted  int                `json:"attempted"`
	Repaired   int                `json:"repaired"`
	Failed     int                `json:"failed"`
	Skipped    int                `json:"skipped"`
	Duration   time.Duration      `json:"duration"`
	Unresolved []ConsistencyIssue `json:"unresolved,omitempty"`
}
