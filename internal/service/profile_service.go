package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/careers-portal/internal/domain"
	"github.com/spec-kit/careers-portal/internal/repository"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

// ProfileService manages the caller's own profile.
type ProfileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService constructs the service.
func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the caller's profile.
func (s *ProfileService) Get(ctx context.Context, actor *domain.User) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("profile", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// Update applies a partial edit to the caller's profile. Omitted fields keep
// their stored values.
func (s *ProfileService) Update(ctx context.Context, actor *domain.User, update repository.ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.profiles.Update(ctx, actor.ID, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("profile", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}
