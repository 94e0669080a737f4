package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/careers-portal/internal/api/dto"
	"github.com/spec-kit/careers-portal/internal/auth"
	"github.com/spec-kit/careers-portal/internal/domain"
	"github.com/spec-kit/careers-portal/internal/repository"
	"github.com/spec-kit/careers-portal/internal/service"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

// ProfileHandler manages the caller's own profile.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: profileService}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	profile, err := h.service.Get(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profileResponse(profile)})
}

// Update handles PUT /profile. Omitted fields keep their stored values.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.MBTIType != nil && *req.MBTIType != "" && len(*req.MBTIType) != 4 {
		return apperrors.NewValidationError("mbtiType must be a four-letter code", nil)
	}

	profile, err := h.service.Update(c.Context(), principal.User, repository.ProfileUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		MBTIType:       req.MBTIType,
		MBTICompleted:  req.MBTICompleted,
		ResumeURL:      req.ResumeURL,
		CertificateURL: req.CertificateURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profileResponse(profile)})
}

func profileResponse(profile *domain.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:             profile.ID,
		UserID:         profile.UserID,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		Phone:          profile.Phone,
		MBTIType:       profile.MBTIType,
		MBTICompleted:  profile.MBTICompleted,
		ResumeURL:      profile.ResumeURL,
		CertificateURL: profile.CertificateURL,
		CreatedAt:      profile.CreatedAt,
		UpdatedAt:      profile.UpdatedAt,
	}
}
