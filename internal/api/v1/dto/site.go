package dto

import (
	"encoding/json"
	"time"
)

// SiteCreateDTO is the body of POST /api/sites.
type SiteCreateDTO struct {
	Name        string  `json:"name" validate:"required" msg:"Site name is required"`
	URL         string  `json:"url" validate:"required,absurl" msg:"Invalid URL format"`
	Description *string `json:"description,omitempty"`
}

// SiteResponseDTO is a site as returned by POST /api/sites.
type SiteResponseDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description *string   `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SiteListItemDTO is a site as returned by GET /api/sites.
type SiteListItemDTO struct {
	SiteResponseDTO
	Audits       []AuditDTO           `json:"audits"`
	Keywords     []KeywordResponseDTO `json:"keywords"`
	AuditCount   []CountDTO           `json:"audit_count"`
	KeywordCount []CountDTO           `json:"keyword_count"`
}

type AuditDTO struct {
	ID              string          `json:"id"`
	SiteID          string          `json:"site_id"`
	UserID          string          `json:"user_id"`
	Status          string          `json:"status"`
	Score           *int            `json:"score"`
	Issues          json.RawMessage `json:"issues"`
	Recommendations json.RawMessage `json:"recommendations"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
