package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/careers-portal/internal/auth"
	"github.com/spec-kit/careers-portal/internal/domain"
	"github.com/spec-kit/careers-portal/internal/events"
	"github.com/spec-kit/careers-portal/internal/repository"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

// JobService coordinates job posting workflows.
type JobService struct {
	jobs       repository.JobRepository
	dispatcher events.Dispatcher
	stats      CountInvalidator
}

// JobDependencies bundles collaborators for the job service.
type JobDependencies struct {
	JobRepo    repository.JobRepository
	Dispatcher events.Dispatcher
	Stats      CountInvalidator
}

// JobCreateInput describes a new posting.
type JobCreateInput struct {
	Title        string
	Company      string
	Location     string
	Description  string
	Requirements string
	Deadline     time.Time
	MBTITypes    *string
}

// JobUpdateInput carries a partial edit. Nil fields are left untouched.
type JobUpdateInput struct {
	Title        *string
	Company      *string
	Location     *string
	Description  *string
	Requirements *string
	Deadline     *time.Time
	MBTITypes    *string
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	return &JobService{
		jobs:       deps.JobRepo,
		dispatcher: deps.Dispatcher,
		stats:      deps.Stats,
	}
}

// Create opens a new posting owned by the caller. Postings start ACTIVE.
func (s *JobService) Create(ctx context.Context, owner *domain.User, input JobCreateInput) (*domain.JobPosting, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Company) == "" ||
		strings.TrimSpace(input.Location) == "" || strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Requirements) == "" {
		return nil, apperrors.NewValidationError("title, company, location, description, requirements required", nil)
	}
	if input.Deadline.IsZero() {
		return nil, apperrors.NewValidationError("deadline required", nil)
	}

	job := &domain.JobPosting{
		Title:        strings.TrimSpace(input.Title),
		Company:      strings.TrimSpace(input.Company),
		Location:     strings.TrimSpace(input.Location),
		Description:  input.Description,
		Requirements: input.Requirements,
		Deadline:     input.Deadline,
		Status:       domain.JobStatusActive,
		MBTITypes:    input.MBTITypes,
		OwnerID:      owner.ID,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.invalidate(ctx, owner.ID)
	s.publish(ctx, events.Event{
		Type:         events.EventJobCreated,
		ActorID:      owner.ID,
		ActorRole:    owner.Role,
		JobPostingID: job.ID,
	})
	return job, nil
}

// Update applies a partial edit after an ownership check.
func (s *JobService) Update(ctx context.Context, actor *domain.User, jobID string, input JobUpdateInput) (*domain.JobPosting, error) {
	job, err := s.getOwned(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Company != nil {
		job.Company = *input.Company
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Requirements != nil {
		job.Requirements = *input.Requirements
	}
	if input.Deadline != nil {
		job.Deadline = *input.Deadline
	}
	if input.MBTITypes != nil {
		job.MBTITypes = input.MBTITypes
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job posting", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return job, nil
}

// SetStatus toggles a posting between ACTIVE and INACTIVE.
func (s *JobService) SetStatus(ctx context.Context, actor *domain.User, jobID, statusLabel string) (*domain.JobPosting, error) {
	status, ok := domain.ParseJobStatus(statusLabel)
	if !ok {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{
			"valid_statuses": []domain.JobStatus{domain.JobStatusActive, domain.JobStatusInactive},
		})
	}

	job, err := s.getOwned(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}

	oldStatus := job.Status
	job.Status = status
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.invalidate(ctx, job.OwnerID)
	s.publish(ctx, events.Event{
		Type:         events.EventJobStatusChanged,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
		JobPostingID: job.ID,
		Payload: events.JobStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return job, nil
}

// Get returns one posting after an ownership check.
func (s *JobService) Get(ctx context.Context, actor *domain.User, jobID string) (*domain.JobPosting, error) {
	return s.getOwned(ctx, actor, jobID)
}

// GetOpen returns one posting for applicants; only open postings are visible.
func (s *JobService) GetOpen(ctx context.Context, jobID string) (*domain.JobPosting, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job posting", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !job.Open(time.Now()) {
		return nil, apperrors.NewNotFound("job posting", nil)
	}
	return job, nil
}

// ListOpen returns postings accepting applications.
func (s *JobService) ListOpen(ctx context.Context, limit, offset int) ([]domain.JobPosting, error) {
	jobs, err := s.jobs.ListOpen(ctx, time.Now(), limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return jobs, nil
}

// ListOwned returns the caller's postings with application tallies.
func (s *JobService) ListOwned(ctx context.Context, actor *domain.User) ([]repository.JobWithApplicationCount, error) {
	jobs, err := s.jobs.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return jobs, nil
}

func (s *JobService) getOwned(ctx context.Context, actor *domain.User, jobID string) (*domain.JobPosting, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job posting", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.Authorize(actor, auth.ActionJobManage, auth.Resource{OwnerID: job.OwnerID}); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) invalidate(ctx context.Context, ownerID string) {
	if s.stats == nil {
		return
	}
	s.stats.InvalidateOwner(ctx, ownerID)
}

func (s *JobService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
