package repository

import (
	"context"
	"errors"
	"fmt"

	"seocontrol/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository defines methods for accessing user profiles.
type ProfileRepository interface {
	// GetByID returns nil, nil when no profile exists.
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	ListWithCounts(ctx context.Context) ([]model.UserSummary, error)
	// Upsert creates the profile for a newly registered user, keeping any
	// existing role and plan.
	Upsert(ctx context.Context, p *model.Profile) error
	UpdatePlan(ctx context.Context, id string, plan model.Plan, stripeCustomerID *string) error
	UpdatePlanByCustomer(ctx context.Context, stripeCustomerID string, plan model.Plan) error
}

type profileRepo struct {
	pool *pgxpool.Pool
}

// NewProfileRepo creates a new ProfileRepository.
func NewProfileRepo(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepo{pool: pool}
}

const profileColumns = `id, email, full_name, role, plan, stripe_customer_id, created_at, updated_at`

func (r *profileRepo) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var p model.Profile
	err := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Role, &p.Plan, &p.StripeCustomerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch profile %s: %w", id, err)
	}
	return &p, nil
}

func (r *profileRepo) ListWithCounts(ctx context.Context) ([]model.UserSummary, error) {
	const q = `
        SELECT p.id, p.email, p.full_name, p.role, p.plan, p.stripe_customer_id, p.created_at, p.updated_at,
               (SELECT count(*) FROM sites s WHERE s.user_id = p.id),
               (SELECT count(*) FROM audits a WHERE a.user_id = p.id),
               (SELECT count(*) FROM keywords k WHERE k.user_id = p.id)
        FROM profiles p
        ORDER BY p.created_at DESC, p.id
    `
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	users := []model.UserSummary{}
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(
			&u.ID, &u.Email, &u.FullName, &u.Role, &u.Plan, &u.StripeCustomerID, &u.CreatedAt, &u.UpdatedAt,
			&u.SiteCount, &u.AuditCount, &u.KeywordCount,
		); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return users, nil
}

func (r *profileRepo) Upsert(ctx context.Context, p *model.Profile) error {
	const q = `
        INSERT INTO profiles (id, email, full_name)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE
            SET email = EXCLUDED.email,
                full_name = COALESCE(EXCLUDED.full_name, profiles.full_name),
                updated_at = now()
        RETURNING role, plan, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, q, p.ID, p.Email, p.FullName).Scan(&p.Role, &p.Plan, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", p.ID, err)
	}
	return nil
}

func (r *profileRepo) UpdatePlan(ctx context.Context, id string, plan model.Plan, stripeCustomerID *string) error {
	const q = `
        UPDATE profiles
        SET plan = $2,
            stripe_customer_id = COALESCE($3, stripe_customer_id),
            updated_at = now()
        WHERE id = $1
    `
	tag, err := r.pool.Exec(ctx, q, id, plan, stripeCustomerID)
	if err != nil {
		return fmt.Errorf("update plan for profile %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update plan for profile %s: %w", id, ErrNoRows)
	}
	return nil
}

func (r *profileRepo) UpdatePlanByCustomer(ctx context.Context, stripeCustomerID string, plan model.Plan) error {
	const q = `UPDATE profiles SET plan = $2, updated_at = now() WHERE stripe_customer_id = $1`
	tag, err := r.pool.Exec(ctx, q, stripeCustomerID, plan)
	if err != nil {
		return fmt.Errorf("update plan for customer %s: %w", stripeCustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update plan for customer %s: %w", stripeCustomerID, ErrNoRows)
	}
	return nil
}
