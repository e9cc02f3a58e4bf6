package dto

import "time"

// ProfileResponseDTO is returned by GET /api/profile
type ProfileResponseDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Role      string    `json:"role"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminUserDTO is one entry of GET /api/admin/users
type AdminUserDTO struct {
	ID           string     `json:"id"`
	FullName     *string    `json:"full_name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Plan         string     `json:"plan"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	SiteCount    []CountDTO `json:"site_count"`
	AuditCount   []CountDTO `json:"audit_count"`
	KeywordCount []CountDTO `json:"keyword_count"`
}
