package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/careers-portal/internal/api/dto"
	"github.com/spec-kit/careers-portal/internal/auth"
	"github.com/spec-kit/careers-portal/internal/domain"
	"github.com/spec-kit/careers-portal/internal/service"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

// AdminHandler exposes the account management and portal-wide application
// views reserved for admins.
type AdminHandler struct {
	users        *service.UserService
	applications *service.ApplicationService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(userService *service.UserService, applicationService *service.ApplicationService) *AdminHandler {
	return &AdminHandler{users: userService, applications: applicationService}
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	limit, offset := parsePagination(c)
	details, err := h.users.List(c.Context(), principal.User, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.UserDetailResponse, 0, len(details))
	for i := range details {
		items = append(items, userDetailResponse(&details[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetUser handles GET /admin/users/:id.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	detail, err := h.users.Get(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userDetailResponse(detail)})
}

// ChangeRole handles PATCH /admin/users/:id/role.
func (h *AdminHandler) ChangeRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	var req dto.UserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.ChangeRole(c.Context(), principal.User, c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user, nil)})
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	if err := h.users.Delete(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "user deleted"}})
}

// ListApplications handles GET /admin/applications across all postings.
func (h *AdminHandler) ListApplications(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	limit, offset := parsePagination(c)
	details, err := h.applications.ListAll(c.Context(), principal.User, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationDetailResponses(details)})
}

func userResponse(user *domain.User, profile *domain.Profile) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if profile != nil {
		resp.Name = profile.FullName()
	}
	return resp
}

func userDetailResponse(detail *service.UserDetail) dto.UserDetailResponse {
	resp := dto.UserDetailResponse{
		UserResponse: userResponse(&detail.User, detail.Profile),
		Applications: make([]dto.ApplicationResponse, 0, len(detail.Applications)),
	}
	if detail.Profile != nil {
		profile := profileResponse(detail.Profile)
		resp.Profile = &profile
	}
	for i := range detail.Applications {
		resp.Applications = append(resp.Applications, applicationResponse(&detail.Applications[i]))
	}
	return resp
}
