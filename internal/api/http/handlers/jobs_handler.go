package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/careers-portal/internal/api/dto"
	"github.com/spec-kit/careers-portal/internal/auth"
	"github.com/spec-kit/careers-portal/internal/domain"
	"github.com/spec-kit/careers-portal/internal/service"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

// JobsHandler serves public job browsing plus the employer posting and
// dashboard endpoints.
type JobsHandler struct {
	jobs         *service.JobService
	applications *service.ApplicationService
	stats        *service.StatsService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService, applicationService *service.ApplicationService, statsService *service.StatsService) *JobsHandler {
	return &JobsHandler{jobs: jobService, applications: applicationService, stats: statsService}
}

// ListOpen handles GET /jobs. Only postings accepting applications are shown.
func (h *JobsHandler) ListOpen(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	jobs, err := h.jobs.ListOpen(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobResponse(&jobs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetOpen handles GET /jobs/:id.
func (h *JobsHandler) GetOpen(c *fiber.Ctx) error {
	job, err := h.jobs.GetOpen(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// Create handles POST /employer/jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	var req dto.JobCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return err
	}

	job, err := h.jobs.Create(c.Context(), principal.User, service.JobCreateInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		Deadline:     deadline,
		MBTITypes:    req.MBTITypes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": jobResponse(job)})
}

// Update handles PUT /employer/jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	var req dto.JobUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.JobUpdateInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		MBTITypes:    req.MBTITypes,
	}
	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			return err
		}
		input.Deadline = &deadline
	}

	job, err := h.jobs.Update(c.Context(), principal.User, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// SetStatus handles PATCH /employer/jobs/:id/status.
func (h *JobsHandler) SetStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	var req dto.JobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	job, err := h.jobs.SetStatus(c.Context(), principal.User, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// ListOwned handles GET /employer/jobs with per-posting application tallies.
func (h *JobsHandler) ListOwned(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	jobs, err := h.jobs.ListOwned(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.JobSummary, 0, len(jobs))
	for i := range jobs {
		items = append(items, dto.JobSummary{
			ID:           jobs[i].Job.ID,
			Title:        jobs[i].Job.Title,
			Company:      jobs[i].Job.Company,
			Location:     jobs[i].Job.Location,
			Deadline:     jobs[i].Job.Deadline,
			Status:       jobs[i].Job.Status,
			Applications: jobs[i].Applications,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetOwned handles GET /employer/jobs/:id.
func (h *JobsHandler) GetOwned(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	job, err := h.jobs.Get(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// ListApplications handles GET /employer/jobs/:id/applications.
func (h *JobsHandler) ListApplications(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	details, err := h.applications.ListForJob(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationDetailResponses(details)})
}

// ActiveJobCount handles GET /employer/stats/jobs.
func (h *JobsHandler) ActiveJobCount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	count, err := h.stats.ActiveJobCount(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CountResponse{Count: count}})
}

// ApplicationCount handles GET /employer/stats/applications with an optional
// status filter.
func (h *JobsHandler) ApplicationCount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	var status *domain.ApplicationStatus
	if label := c.Query("status"); label != "" {
		parsed, ok := domain.ParseApplicationStatus(label)
		if !ok {
			return apperrors.NewValidationError("invalid status", nil)
		}
		status = &parsed
	}

	count, err := h.stats.ApplicationCount(c.Context(), principal.User.ID, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CountResponse{Count: count}})
}

func parseDeadline(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperrors.NewValidationError("deadline required", nil)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	// Date-only deadlines stay open through the whole day.
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.Add(24*time.Hour - time.Second), nil
	}
	return time.Time{}, apperrors.NewValidationError("deadline must be RFC3339 or YYYY-MM-DD", nil)
}

func parsePagination(c *fiber.Ctx) (limit, offset int) {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	return pageSize, (page - 1) * pageSize
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func jobResponse(job *domain.JobPosting) dto.JobResponse {
	return dto.JobResponse{
		ID:           job.ID,
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		Description:  job.Description,
		Requirements: job.Requirements,
		Deadline:     job.Deadline,
		Status:       job.Status,
		MBTITypes:    job.MBTITypes,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}
