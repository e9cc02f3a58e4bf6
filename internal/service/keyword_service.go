package service

import (
	"context"

	"seocontrol/internal/model"
	"seocontrol/internal/repository"
)

type KeywordService interface {
	List(ctx context.Context, userID string) ([]model.Keyword, error)
	Create(ctx context.Context, k *model.Keyword) (*model.Keyword, error)
}

type keywordService struct {
	keywordRepo repository.KeywordRepository
	siteRepo    repository.SiteRepository
}

func NewKeywordService(keywordRepo repository.KeywordRepository, siteRepo repository.SiteRepository) KeywordService {
	return &keywordService{keywordRepo: keywordRepo, siteRepo: siteRepo}
}

func (s *keywordService) List(ctx context.Context, userID string) ([]model.Keyword, error) {
	return s.keywordRepo.ListByUser(ctx, userID)
}

// Create stores k after checking that k.SiteID belongs to k.UserID.
// A foreign or unknown site yields ErrSiteNotFound and nothing is written.
func (s *keywordService) Create(ctx context.Context, k *model.Keyword) (*model.Keyword, error) {
	if err := requireOwnedSite(ctx, s.siteRepo, k.SiteID, k.UserID); err != nil {
		return nil, err
	}
	if err := s.keywordRepo.Create(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

func requireOwnedSite(ctx context.Context, siteRepo repository.SiteRepository, siteID, userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	owned, err := siteRepo.ExistsForUser(ctx, siteID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrSiteNotFound
	}
	return nil
}
