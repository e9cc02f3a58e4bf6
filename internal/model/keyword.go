package model

import "time"

// Keyword is a search term tracked for one of the user's sites.
type Keyword struct {
	ID         string    `db:"id" json:"id"`
	Keyword    string    `db:"keyword" json:"keyword"`
	SiteID     string    `db:"site_id" json:"site_id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Position   *int      `db:"position" json:"position"`
	Volume     *int      `db:"volume" json:"volume"`
	Difficulty *int      `db:"difficulty" json:"difficulty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
	// SiteName is populated by list queries that join the owning site.
	SiteName string `db:"site_name" json:"-"`
}
