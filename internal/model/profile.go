package model

import "time"

// Role is the authorization role stored on a profile.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Plan is the billing plan stored on a profile.
type Plan string

const (
	PlanFree       Plan = "FREE"
	PlanPro        Plan = "PRO"
	PlanEnterprise Plan = "ENTERPRISE"
)

// Profile represents a user profile row. Its ID equals the auth provider's user id.
type Profile struct {
	ID               string    `db:"id" json:"id"`
	Email            string    `db:"email" json:"email"`
	FullName         *string   `db:"full_name" json:"full_name"`
	Role             Role      `db:"role" json:"role"`
	Plan             Plan      `db:"plan" json:"plan"`
	StripeCustomerID *string   `db:"stripe_customer_id" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// UserSummary is a profile with per-user resource counts, used by the admin user list.
type UserSummary struct {
	Profile
	SiteCount    int `db:"site_count"`
	AuditCount   int `db:"audit_count"`
	KeywordCount int `db:"keyword_count"`
}
