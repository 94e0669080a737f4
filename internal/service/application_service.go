package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/careers-portal/internal/auth"
	"github.com/spec-kit/careers-portal/internal/domain"
	"github.com/spec-kit/careers-portal/internal/events"
	"github.com/spec-kit/careers-portal/internal/repository"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

// ApplicationService owns the application lifecycle: creation preconditions,
// status transitions and cancellation.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	profiles     repository.ProfileRepository
	users        repository.UserRepository
	dispatcher   events.Dispatcher
	stats        CountInvalidator
}

// ApplicationDependencies bundles repositories for the service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	JobRepo         repository.JobRepository
	ProfileRepo     repository.ProfileRepository
	UserRepo        repository.UserRepository
	Dispatcher      events.Dispatcher
	Stats           CountInvalidator
}

// CountInvalidator drops cached dashboard tallies after a mutation.
type CountInvalidator interface {
	InvalidateOwner(ctx context.Context, ownerID string)
}

// ApplicationDetail enriches an application with the records a decision-maker
// needs in view, including the advisory compatibility signal.
type ApplicationDetail struct {
	Application   domain.Application
	Job           *domain.JobPosting
	Applicant     *domain.User
	Profile       *domain.Profile
	Compatibility domain.Compatibility
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		jobs:         deps.JobRepo,
		profiles:     deps.ProfileRepo,
		users:        deps.UserRepo,
		dispatcher:   deps.Dispatcher,
		stats:        deps.Stats,
	}
}

// Apply submits an application. Preconditions are checked in order and the
// first failure wins: required documents, open job, no prior application.
func (s *ApplicationService) Apply(ctx context.Context, applicant *domain.User, jobPostingID string) (*domain.Application, error) {
	if err := auth.Authorize(applicant, auth.ActionApplicationCreate, auth.Resource{UserID: applicant.ID}); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByUserID(ctx, applicant.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("profile", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if missing := profile.MissingDocuments(); len(missing) > 0 {
		return nil, apperrors.NewMissingDocuments(missing)
	}

	job, err := s.jobs.GetByID(ctx, jobPostingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job posting", nil)
		}
		return nil, apperrors.MapError(err)
	}
	// A closed or expired posting is indistinguishable from a missing one.
	if !job.Open(time.Now()) {
		return nil, apperrors.NewNotFound("job posting", nil)
	}

	// Fast-path probe; the unique constraint at insert time stays
	// authoritative under concurrent submissions.
	if _, err := s.applications.GetByUserAndJob(ctx, applicant.ID, jobPostingID); err == nil {
		return nil, apperrors.NewDuplicate("you have already applied for this position")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	app := &domain.Application{
		UserID:       applicant.ID,
		JobPostingID: jobPostingID,
		Status:       domain.ApplicationStatusPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewDuplicate("you have already applied for this position")
		}
		return nil, apperrors.MapError(err)
	}

	s.invalidate(ctx, job.OwnerID)
	s.publish(ctx, events.Event{
		Type:          events.EventApplicationCreated,
		ActorID:       applicant.ID,
		ActorRole:     applicant.Role,
		ApplicationID: app.ID,
		JobPostingID:  job.ID,
		Payload: events.ApplicationCreatedPayload{
			ApplicantID:  applicant.ID,
			JobTitle:     job.Title,
			JobCompany:   job.Company,
			JobOwnerID:   job.OwnerID,
			JobPostingID: job.ID,
		},
	})
	return app, nil
}

// UpdateStatus moves an application to any of the four legal labels. The four
// statuses form a closed set and every label is reachable from every other,
// including resetting ACCEPTED/REJECTED back to PENDING; enforcement is on
// who may call, not on the transition itself. Nil notes leave the stored
// notes untouched.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *domain.User, applicationID, statusLabel string, notes *string) (*domain.Application, error) {
	status, ok := domain.ParseApplicationStatus(statusLabel)
	if !ok {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{
			"valid_statuses": []domain.ApplicationStatus{
				domain.ApplicationStatusPending,
				domain.ApplicationStatusInterviewing,
				domain.ApplicationStatusAccepted,
				domain.ApplicationStatusRejected,
			},
		})
	}

	app, job, err := s.loadWithJob(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(actor, auth.ActionApplicationDecide, auth.Resource{OwnerID: job.OwnerID}); err != nil {
		return nil, err
	}

	// Empty notes mean "not provided", same as absent; only real content
	// overwrites.
	if notes != nil && *notes == "" {
		notes = nil
	}

	oldStatus := app.Status
	updated, err := s.applications.UpdateStatus(ctx, app.ID, status, notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.invalidate(ctx, job.OwnerID)
	s.publish(ctx, events.Event{
		Type:          events.EventApplicationStatusChanged,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		ApplicationID: app.ID,
		JobPostingID:  job.ID,
		Payload: events.ApplicationStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
			Notes:     notes,
		},
	})
	return updated, nil
}

// Cancel deletes an application. Only the applicant may cancel, in any
// status.
func (s *ApplicationService) Cancel(ctx context.Context, actor *domain.User, applicationID string) error {
	app, job, err := s.loadWithJob(ctx, applicationID)
	if err != nil {
		return err
	}
	if err := auth.Authorize(actor, auth.ActionApplicationCancel, auth.Resource{UserID: app.UserID}); err != nil {
		return err
	}

	if err := s.applications.Delete(ctx, app.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("application", nil)
		}
		return apperrors.MapError(err)
	}

	s.invalidate(ctx, job.OwnerID)
	s.publish(ctx, events.Event{
		Type:          events.EventApplicationCancelled,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		ApplicationID: app.ID,
		JobPostingID:  job.ID,
	})
	return nil
}

// Get returns one enriched application, readable by the applicant, the owning
// employer, or an admin.
func (s *ApplicationService) Get(ctx context.Context, actor *domain.User, applicationID string) (*ApplicationDetail, error) {
	app, job, err := s.loadWithJob(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(actor, auth.ActionApplicationView, auth.Resource{OwnerID: job.OwnerID, UserID: app.UserID}); err != nil {
		return nil, err
	}
	detail, err := s.enrich(ctx, *app, job)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ListForUser returns the applicant's own applications with job context.
func (s *ApplicationService) ListForUser(ctx context.Context, actor *domain.User) ([]ApplicationDetail, error) {
	apps, err := s.applications.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.enrichAll(ctx, apps)
}

// ListForJob returns applications for one posting after an ownership check.
func (s *ApplicationService) ListForJob(ctx context.Context, actor *domain.User, jobPostingID string) ([]ApplicationDetail, error) {
	job, err := s.jobs.GetByID(ctx, jobPostingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job posting", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.Authorize(actor, auth.ActionJobManage, auth.Resource{OwnerID: job.OwnerID}); err != nil {
		return nil, err
	}

	apps, err := s.applications.ListByJob(ctx, jobPostingID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	details := make([]ApplicationDetail, 0, len(apps))
	for _, app := range apps {
		detail, err := s.enrich(ctx, app, job)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// ListAll returns every application for the admin dashboard.
func (s *ApplicationService) ListAll(ctx context.Context, actor *domain.User, limit, offset int) ([]ApplicationDetail, error) {
	if err := auth.Authorize(actor, auth.ActionApplicationAdmin, auth.Resource{}); err != nil {
		return nil, err
	}
	apps, err := s.applications.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.enrichAll(ctx, apps)
}

func (s *ApplicationService) loadWithJob(ctx context.Context, applicationID string) (*domain.Application, *domain.JobPosting, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("application", nil)
		}
		return nil, nil, apperrors.MapError(err)
	}
	// Ownership is derived from the referenced posting, never from the
	// application's own fields.
	job, err := s.jobs.GetByID(ctx, app.JobPostingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("job posting", nil)
		}
		return nil, nil, apperrors.MapError(err)
	}
	return app, job, nil
}

func (s *ApplicationService) enrichAll(ctx context.Context, apps []domain.Application) ([]ApplicationDetail, error) {
	details := make([]ApplicationDetail, 0, len(apps))
	for _, app := range apps {
		job, err := s.jobs.GetByID(ctx, app.JobPostingID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		detail, err := s.enrich(ctx, app, job)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *ApplicationService) enrich(ctx context.Context, app domain.Application, job *domain.JobPosting) (*ApplicationDetail, error) {
	detail := &ApplicationDetail{Application: app, Job: job}

	applicant, err := s.users.GetByID(ctx, app.UserID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	detail.Applicant = applicant

	profile, err := s.profiles.GetByUserID(ctx, app.UserID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	detail.Profile = profile

	var applicantMBTI, jobMBTI *string
	if profile != nil {
		applicantMBTI = profile.MBTIType
	}
	if job != nil {
		jobMBTI = job.MBTITypes
	}
	detail.Compatibility = domain.CheckCompatibility(applicantMBTI, jobMBTI)
	return detail, nil
}

func (s *ApplicationService) invalidate(ctx context.Context, ownerID string) {
	if s.stats == nil {
		return
	}
	s.stats.InvalidateOwner(ctx, ownerID)
}

func (s *ApplicationService) publish(ctx context.Context, event events.Event) {
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
