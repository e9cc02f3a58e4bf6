package model

import (
	"encoding/json"
	"time"
)

// AuditStatus is the lifecycle state shared by audits and reports.
type AuditStatus string

const (
	StatusPending    AuditStatus = "PENDING"
	StatusInProgress AuditStatus = "IN_PROGRESS"
	StatusCompleted  AuditStatus = "COMPLETED"
	StatusFailed     AuditStatus = "FAILED"
)

// Audit is a recorded SEO audit of a site.
type Audit struct {
	ID              string          `db:"id" json:"id"`
	SiteID          string          `db:"site_id" json:"site_id"`
	UserID          string          `db:"user_id" json:"user_id"`
	Status          AuditStatus     `db:"status" json:"status"`
	Score           *int            `db:"score" json:"score"`
	Issues          json.RawMessage `db:"issues" json:"issues"`
	Recommendations json.RawMessage `db:"recommendations" json:"recommendations"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}
