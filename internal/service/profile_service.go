package service

import (
	"context"

	"seocontrol/internal/model"
	"seocontrol/internal/repository"
)

type ProfileService interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	ListUsers(ctx context.Context) ([]model.UserSummary, error)
	// RoleOf returns the stored role of userID, or ErrProfileNotFound.
	RoleOf(ctx context.Context, userID string) (model.Role, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (s *profileService) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	return s.profileRepo.ListWithCounts(ctx)
}

func (s *profileService) RoleOf(ctx context.Context, userID string) (model.Role, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return p.Role, nil
}
