package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"seocontrol/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SiteRepository defines methods for accessing sites and their nested audits
// and keywords. Every method is scoped to a single owner.
type SiteRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.SiteOverview, error)
	Create(ctx context.Context, s *model.Site) error
	ExistsForUser(ctx context.Context, siteID, userID string) (bool, error)
}

type siteRepo struct {
	pool *pgxpool.Pool
}

// NewSiteRepo creates a new SiteRepository.
func NewSiteRepo(pool *pgxpool.Pool) SiteRepository {
	return &siteRepo{pool: pool}
}

// ListByUser returns the user's sites, newest first, each with its audits and
// keywords attached.
func (r *siteRepo) ListByUser(ctx context.Context, userID string) ([]model.SiteOverview, error) {
	sites := []model.SiteOverview{}
	if !isUUID(userID) {
		return sites, nil
	}

	const q = `
        SELECT id, name, url, description, user_id, created_at, updated_at
        FROM sites
        WHERE user_id = $1
        ORDER BY created_at DESC, id
    `
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query sites for user %s: %w", userID, err)
	}
	defer rows.Close()

	index := map[string]int{}
	for rows.Next() {
		var s model.SiteOverview
		if err := rows.Scan(&s.ID, &s.Name, &s.URL, &s.Description, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		s.Audits = []model.Audit{}
		s.Keywords = []model.Keyword{}
		index[s.ID] = len(sites)
		sites = append(sites, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sites: %w", err)
	}
	if len(sites) == 0 {
		return sites, nil
	}

	audits, err := r.auditsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range audits {
		if i, ok := index[a.SiteID]; ok {
			sites[i].Audits = append(sites[i].Audits, a)
		}
	}

	keywords, err := r.keywordsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, k := range keywords {
		if i, ok := index[k.SiteID]; ok {
			sites[i].Keywords = append(sites[i].Keywords, k)
		}
	}
	return sites, nil
}

func (r *siteRepo) auditsByUser(ctx context.Context, userID string) ([]model.Audit, error) {
	const q = `
        SELECT id, site_id, user_id, status, score, issues, recommendations, created_at, updated_at
        FROM audits
        WHERE user_id = $1
        ORDER BY created_at DESC, id
    `
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query audits for user %s: %w", userID, err)
	}
	defer rows.Close()

	var audits []model.Audit
	for rows.Next() {
		var a model.Audit
		var issues, recommendations []byte
		if err := rows.Scan(&a.ID, &a.SiteID, &a.UserID, &a.Status, &a.Score, &issues, &recommendations, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		a.Issues = rawJSON(issues)
		a.Recommendations = rawJSON(recommendations)
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audits: %w", err)
	}
	return audits, nil
}

func (r *siteRepo) keywordsByUser(ctx context.Context, userID string) ([]model.Keyword, error) {
	const q = `
        SELECT id, keyword, site_id, user_id, position, volume, difficulty, created_at, updated_at
        FROM keywords
        WHERE user_id = $1
        ORDER BY created_at DESC, id
    `
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query keywords for user %s: %w", userID, err)
	}
	defer rows.Close()

	var keywords []model.Keyword
	for rows.Next() {
		var k model.Keyword
		if err := rows.Scan(&k.ID, &k.Keyword, &k.SiteID, &k.UserID, &k.Position, &k.Volume, &k.Difficulty, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		keywords = append(keywords, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keywords: %w", err)
	}
	return keywords, nil
}

func (r *siteRepo) Create(ctx context.Context, s *model.Site) error {
	const q = `
        INSERT INTO sites (name, url, description, user_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, q, s.Name, s.URL, s.Description, s.UserID).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

func (r *siteRepo) ExistsForUser(ctx context.Context, siteID, userID string) (bool, error) {
	if !isUUID(siteID) || !isUUID(userID) {
		return false, nil
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sites WHERE id = $1 AND user_id = $2)`, siteID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check site %s ownership: %w", siteID, err)
	}
	return exists, nil
}

func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}
