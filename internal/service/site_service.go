package service

import (
	"context"

	"seocontrol/internal/model"
	"seocontrol/internal/repository"
)

type SiteService interface {
	List(ctx context.Context, userID string) ([]model.SiteOverview, error)
	Create(ctx context.Context, s *model.Site) (*model.Site, error)
}

type siteService struct {
	siteRepo repository.SiteRepository
}

func NewSiteService(siteRepo repository.SiteRepository) SiteService {
	return &siteService{siteRepo: siteRepo}
}

func (s *siteService) List(ctx context.Context, userID string) ([]model.SiteOverview, error) {
	return s.siteRepo.ListByUser(ctx, userID)
}

// Create stores a site owned by s.UserID, which callers set from the
// authenticated identity.
func (s *siteService) Create(ctx context.Context, site *model.Site) (*model.Site, error) {
	if site.UserID == "" {
		return nil, ErrUnauthorized
	}
	if err := s.siteRepo.Create(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}
