package model

import "time"

// Site is a website tracked by a user.
type Site struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	URL         string    `db:"url" json:"url"`
	Description *string   `db:"description" json:"description"`
	UserID      string    `db:"user_id" json:"user_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SiteOverview is a site together with its audits and keywords.
type SiteOverview struct {
	Site
	Audits   []Audit
	Keywords []Keyword
}
