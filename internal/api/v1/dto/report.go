package dto

import (
	"encoding/json"
	"time"
)

// ReportCreateDTO is the body of POST /api/reports.
type ReportCreateDTO struct {
	Title  string `json:"title" validate:"required" msg:"Report title is required"`
	Type   string `json:"type" validate:"required,oneof=SEO_AUDIT KEYWORD_ANALYSIS PERFORMANCE COMPETITOR_ANALYSIS" msg:"Invalid report type"`
	SiteID string `json:"siteId" validate:"required" msg:"Site ID is required"`
}

type ReportResponseDTO struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	SiteID    string          `json:"site_id"`
	UserID    string          `json:"user_id"`
	Status    string          `json:"status"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ReportListItemDTO struct {
	ReportResponseDTO
	Sites SiteNameDTO `json:"sites"`
}
