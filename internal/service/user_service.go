package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/careers-portal/internal/auth"
	"github.com/spec-kit/careers-portal/internal/domain"
	"github.com/spec-kit/careers-portal/internal/repository"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

// UserService handles the admin-facing account operations.
type UserService struct {
	users        repository.UserRepository
	profiles     repository.ProfileRepository
	applications repository.ApplicationRepository
}

// UserDependencies bundles repositories for the user service.
type UserDependencies struct {
	UserRepo        repository.UserRepository
	ProfileRepo     repository.ProfileRepository
	ApplicationRepo repository.ApplicationRepository
}

// UserDetail pairs an account with its profile and applications.
type UserDetail struct {
	User         domain.User
	Profile      *domain.Profile
	Applications []domain.Application
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:        deps.UserRepo,
		profiles:     deps.ProfileRepo,
		applications: deps.ApplicationRepo,
	}
}

// List returns all accounts with profiles, admin only.
func (s *UserService) List(ctx context.Context, actor *domain.User, limit, offset int) ([]UserDetail, error) {
	if err := auth.Authorize(actor, auth.ActionUserList, auth.Resource{}); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	details := make([]UserDetail, 0, len(users))
	for _, user := range users {
		profile, err := s.profiles.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		details = append(details, UserDetail{User: user, Profile: profile})
	}
	return details, nil
}

// Get returns one account with profile and applications, admin only.
func (s *UserService) Get(ctx context.Context, actor *domain.User, userID string) (*UserDetail, error) {
	if err := auth.Authorize(actor, auth.ActionUserInspect, auth.Resource{ID: userID}); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}

	detail := &UserDetail{User: *user}
	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	detail.Profile = profile

	apps, err := s.applications.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	detail.Applications = apps
	return detail, nil
}

// ChangeRole assigns a new role. The self-target guard denies an admin
// demoting their own account.
func (s *UserService) ChangeRole(ctx context.Context, actor *domain.User, userID, roleLabel string) (*domain.User, error) {
	role, ok := domain.ParseRole(roleLabel)
	if !ok {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{
			"valid_roles": []domain.Role{domain.RoleStudent, domain.RoleEmployer, domain.RoleAdmin},
		})
	}
	if err := auth.Authorize(actor, auth.ActionUserChangeRole, auth.Resource{ID: userID}); err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete removes an account along with its profile and applications. The
// self-target guard denies deleting your own account.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, userID string) error {
	if err := auth.Authorize(actor, auth.ActionUserDelete, auth.Resource{ID: userID}); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}
