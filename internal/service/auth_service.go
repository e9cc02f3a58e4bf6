package service

import (
	"context"
	"fmt"

	"seocontrol/internal/model"
	"seocontrol/internal/repository"

	"github.com/rs/zerolog"
)

// SignUpInput is a validated signup request.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// SignUpResult describes the account created by the auth provider.
type SignUpResult struct {
	UserID string
	Name   string
	Email  string
}

// AuthProvider registers users with the external auth service. Errors the
// caller should see are returned as *ProviderError.
type AuthProvider interface {
	SignUp(ctx context.Context, req ProviderSignUpRequest) (userID string, err error)
}

// ProviderSignUpRequest is what the auth provider needs to register a user.
type ProviderSignUpRequest struct {
	Email      string
	Password   string
	FullName   string
	RedirectTo string
}

type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error)
}

type authService struct {
	provider    AuthProvider
	profiles    repository.ProfileRepository
	redirectURL string
	logger      zerolog.Logger
}

// NewAuthService creates an AuthService. profiles may be nil when the
// database creates profiles itself from the provider's user table.
func NewAuthService(provider AuthProvider, profiles repository.ProfileRepository, redirectURL string, logger zerolog.Logger) AuthService {
	return &authService{
		provider:    provider,
		profiles:    profiles,
		redirectURL: redirectURL,
		logger:      logger.With().Str("service", "AuthService").Logger(),
	}
}

func (s *authService) SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error) {
	userID, err := s.provider.SignUp(ctx, ProviderSignUpRequest{
		Email:      in.Email,
		Password:   in.Password,
		FullName:   in.Name,
		RedirectTo: s.redirectURL,
	})
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	s.logger.Info().Str("user_id", userID).Msg("User created successfully")

	if s.profiles != nil && userID != "" {
		name := in.Name
		p := &model.Profile{ID: userID, Email: in.Email, FullName: &name}
		// The account already exists at the provider, so a failed profile
		// write must not fail the signup.
		if err := s.profiles.Upsert(ctx, p); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to create profile for new user")
		}
	}

	return &SignUpResult{UserID: userID, Name: in.Name, Email: in.Email}, nil
}
