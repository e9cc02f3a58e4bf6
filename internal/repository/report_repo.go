package repository

import (
	"context"
	"fmt"

	"seocontrol/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository defines methods for accessing generated reports.
type ReportRepository interface {
	// ListByUser returns the user's reports with SiteName populated.
	ListByUser(ctx context.Context, userID string) ([]model.Report, error)
	Create(ctx context.Context, rep *model.Report) error
}

type reportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepo creates a new ReportRepository.
func NewReportRepo(pool *pgxpool.Pool) ReportRepository {
	return &reportRepo{pool: pool}
}

func (r *reportRepo) ListByUser(ctx context.Context, userID string) ([]model.Report, error) {
	reports := []model.Report{}
	if !isUUID(userID) {
		return reports, nil
	}

	const q = `
        SELECT r.id, r.title, r.type, r.site_id, r.user_id, r.status, r.content,
               r.created_at, r.updated_at, s.name
        FROM reports r
        JOIN sites s ON s.id = r.site_id
        WHERE r.user_id = $1
        ORDER BY r.created_at DESC, r.id
    `
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query reports for user %s: %w", userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rep model.Report
		var content []byte
		if err := rows.Scan(
			&rep.ID, &rep.Title, &rep.Type, &rep.SiteID, &rep.UserID, &rep.Status, &content,
			&rep.CreatedAt, &rep.UpdatedAt, &rep.SiteName,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		rep.Content = rawJSON(content)
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

func (r *reportRepo) Create(ctx context.Context, rep *model.Report) error {
	const q = `
        INSERT INTO reports (title, type, site_id, user_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, status, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, q, rep.Title, rep.Type, rep.SiteID, rep.UserID).Scan(
		&rep.ID, &rep.Status, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}
