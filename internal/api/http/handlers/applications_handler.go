package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/careers-portal/internal/api/dto"
	"github.com/spec-kit/careers-portal/internal/auth"
	"github.com/spec-kit/careers-portal/internal/domain"
	"github.com/spec-kit/careers-portal/internal/service"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

// ApplicationsHandler manages application lifecycle endpoints.
type ApplicationsHandler struct {
	service *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{service: applicationService}
}

// Apply handles POST /applications.
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.JobPostingID == "" {
		return apperrors.NewValidationError("jobPostingId required", nil)
	}

	app, err := h.service.Apply(c.Context(), principal.User, req.JobPostingID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": applicationResponse(app)})
}

// ListMine handles GET /applications for the applicant.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	details, err := h.service.ListForUser(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationDetailResponses(details)})
}

// Get handles GET /applications/:id.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	detail, err := h.service.Get(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationDetailResponse(detail)})
}

// Cancel handles DELETE /applications/:id. Only the applicant may cancel.
func (h *ApplicationsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	if err := h.service.Cancel(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "application cancelled"}})
}

// UpdateStatus handles PATCH /applications/:id/status for the owning employer
// or an admin. Omitted notes keep the stored notes.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	var req dto.ApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	app, err := h.service.UpdateStatus(c.Context(), principal.User, c.Params("id"), req.Status, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

func applicationResponse(app *domain.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:           app.ID,
		UserID:       app.UserID,
		JobPostingID: app.JobPostingID,
		Status:       app.Status,
		Notes:        app.Notes,
		CreatedAt:    app.CreatedAt,
		UpdatedAt:    app.UpdatedAt,
	}
}

func applicationDetailResponse(detail *service.ApplicationDetail) dto.ApplicationDetailResponse {
	resp := dto.ApplicationDetailResponse{
		ApplicationResponse: applicationResponse(&detail.Application),
		Compatibility: dto.CompatibilityResponse{
			Compatible: detail.Compatibility.Compatible,
			Reason:     detail.Compatibility.Reason,
		},
	}
	if detail.Job != nil {
		job := jobResponse(detail.Job)
		resp.Job = &job
	}
	if detail.Applicant != nil {
		applicant := dto.ApplicantResponse{
			ID:    detail.Applicant.ID,
			Email: detail.Applicant.Email,
		}
		if detail.Profile != nil {
			applicant.Name = detail.Profile.FullName()
			applicant.MBTIType = detail.Profile.MBTIType
		}
		resp.Applicant = &applicant
	}
	return resp
}

func applicationDetailResponses(details []service.ApplicationDetail) []dto.ApplicationDetailResponse {
	items := make([]dto.ApplicationDetailResponse, 0, len(details))
	for i := range details {
		items = append(items, applicationDetailResponse(&details[i]))
	}
	return items
}
