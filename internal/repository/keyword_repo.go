package repository

import (
	"context"
	"fmt"

	"seocontrol/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// KeywordRepository defines methods for accessing tracked keywords.
type KeywordRepository interface {
	// ListByUser returns the user's keywords with SiteName populated.
	ListByUser(ctx context.Context, userID string) ([]model.Keyword, error)
	Create(ctx context.Context, k *model.Keyword) error
}

type keywordRepo struct {
	pool *pgxpool.Pool
}

// NewKeywordRepo creates a new KeywordRepository.
func NewKeywordRepo(pool *pgxpool.Pool) KeywordRepository {
	return &keywordRepo{pool: pool}
}

func (r *keywordRepo) ListByUser(ctx context.Context, userID string) ([]model.Keyword, error) {
	keywords := []model.Keyword{}
	if !isUUID(userID) {
		return keywords, nil
	}

	const q = `
        SELECT k.id, k.keyword, k.site_id, k.user_id, k.position, k.volume, k.difficulty,
               k.created_at, k.updated_at, s.name
        FROM keywords k
        JOIN sites s ON s.id = k.site_id
        WHERE k.user_id = $1
        ORDER BY k.created_at DESC, k.id
    `
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query keywords for user %s: %w", userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var k model.Keyword
		if err := rows.Scan(
			&k.ID, &k.Keyword, &k.SiteID, &k.UserID, &k.Position, &k.Volume, &k.Difficulty,
			&k.CreatedAt, &k.UpdatedAt, &k.SiteName,
		); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		keywords = append(keywords, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keywords: %w", err)
	}
	return keywords, nil
}

func (r *keywordRepo) Create(ctx context.Context, k *model.Keyword) error {
	const q = `
        INSERT INTO keywords (keyword, site_id, user_id)
        VALUES ($1, $2, $3)
        RETURNING id, position, volume, difficulty, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, q, k.Keyword, k.SiteID, k.UserID).Scan(
		&k.ID, &k.Position, &k.Volume, &k.Difficulty, &k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert keyword: %w", err)
	}
	return nil
}
