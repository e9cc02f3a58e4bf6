package model

import (
	"encoding/json"
	"time"
)

// ReportType classifies a report.
type ReportType string

const (
	ReportSEOAudit           ReportType = "SEO_AUDIT"
	ReportKeywordAnalysis    ReportType = "KEYWORD_ANALYSIS"
	ReportPerformance        ReportType = "PERFORMANCE"
	ReportCompetitorAnalysis ReportType = "COMPETITOR_ANALYSIS"
)

// Report is a generated report for one of the user's sites.
type Report struct {
	ID        string          `db:"id" json:"id"`
	Title     string          `db:"title" json:"title"`
	Type      ReportType      `db:"type" json:"type"`
	SiteID    string          `db:"site_id" json:"site_id"`
	UserID    string          `db:"user_id" json:"user_id"`
	Status    AuditStatus     `db:"status" json:"status"`
	Content   json.RawMessage `db:"content" json:"content"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
	SiteName  string          `db:"site_name" json:"-"`
}
