package dto

import "time"

// KeywordCreateDTO is the body of POST /api/keywords.
type KeywordCreateDTO struct {
	Keyword string `json:"keyword" validate:"required" msg:"Keyword is required"`
	SiteID  string `json:"siteId" validate:"required" msg:"Site ID is required"`
}

type KeywordResponseDTO struct {
	ID         string    `json:"id"`
	Keyword    string    `json:"keyword"`
	SiteID     string    `json:"site_id"`
	UserID     string    `json:"user_id"`
	Position   *int      `json:"position"`
	Volume     *int      `json:"volume"`
	Difficulty *int      `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// KeywordListItemDTO is a keyword with its site's name, as returned by GET /api/keywords.
type KeywordListItemDTO struct {
	KeywordResponseDTO
	Sites SiteNameDTO `json:"sites"`
}
