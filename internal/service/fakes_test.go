package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/careers-portal/internal/domain"
	"github.com/spec-kit/careers-portal/internal/repository"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile // keyed by user id
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	profile.ID = uuid.NewString()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *profile
	return &clone, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, userID string, update repository.ProfileUpdate) (*domain.Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if update.FirstName != nil {
		profile.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		profile.LastName = *update.LastName
	}
	if update.Phone != nil {
		profile.Phone = update.Phone
	}
	if update.MBTIType != nil {
		profile.MBTIType = update.MBTIType
	}
	if update.MBTICompleted != nil {
		profile.MBTICompleted = *update.MBTICompleted
	}
	if update.ResumeURL != nil {
		profile.ResumeURL = update.ResumeURL
	}
	if update.CertificateURL != nil {
		profile.CertificateURL = update.CertificateURL
	}
	profile.UpdatedAt = time.Now()
	clone := *profile
	return &clone, nil
}

type fakeJobRepo struct {
	jobs map[string]*domain.JobPosting
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*domain.JobPosting{}}
}

func (r *fakeJobRepo) Create(_ context.Context, job *domain.JobPosting) error {
	job.ID = uuid.NewString()
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *domain.JobPosting) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*domain.JobPosting, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *job
	return &clone, nil
}

func (r *fakeJobRepo) ListOpen(_ context.Context, now time.Time, _, _ int) ([]domain.JobPosting, error) {
	var out []domain.JobPosting
	for _, job := range r.jobs {
		if job.Open(now) {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListByOwner(_ context.Context, ownerID string) ([]repository.JobWithApplicationCount, error) {
	var out []repository.JobWithApplicationCount
	for _, job := range r.jobs {
		if job.OwnerID == ownerID {
			out = append(out, repository.JobWithApplicationCount{Job: *job})
		}
	}
	return out, nil
}

func (r *fakeJobRepo) CountActiveByOwner(_ context.Context, ownerID string) (int, error) {
	count := 0
	for _, job := range r.jobs {
		if job.OwnerID == ownerID && job.Status == domain.JobStatusActive {
			count++
		}
	}
	return count, nil
}

type fakeApplicationRepo struct {
	apps map[string]*domain.Application
	jobs *fakeJobRepo

	// forceDuplicateOnCreate simulates losing the insert race to the unique
	// constraint even when the fast-path probe saw nothing.
	forceDuplicateOnCreate bool
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[string]*domain.Application{}, jobs: jobs}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	if r.forceDuplicateOnCreate {
		return repository.ErrDuplicate
	}
	for _, existing := range r.apps {
		if existing.UserID == app.UserID && existing.JobPostingID == app.JobPostingID {
			return repository.ErrDuplicate
		}
	}
	app.ID = uuid.NewString()
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	clone := *app
	r.apps[app.ID] = &clone
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *app
	return &clone, nil
}

func (r *fakeApplicationRepo) GetByUserAndJob(_ context.Context, userID, jobPostingID string) (*domain.Application, error) {
	for _, app := range r.apps {
		if app.UserID == userID && app.JobPostingID == jobPostingID {
			clone := *app
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeApplicationRepo) ListByJob(_ context.Context, jobPostingID string) ([]domain.Application, error) {
	var out []domain.Application
	for _, app := range r.apps {
		if app.JobPostingID == jobPostingID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByUser(_ context.Context, userID string) ([]domain.Application, error) {
	var out []domain.Application
	for _, app := range r.apps {
		if app.UserID == userID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListAll(_ context.Context, _, _ int) ([]domain.Application, error) {
	out := make([]domain.Application, 0, len(r.apps))
	for _, app := range r.apps {
		out = append(out, *app)
	}
	return out, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus, notes *string) (*domain.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	app.Status = status
	if notes != nil {
		app.Notes = notes
	}
	app.UpdatedAt = time.Now()
	clone := *app
	return &clone, nil
}

func (r *fakeApplicationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.apps[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.apps, id)
	return nil
}

func (r *fakeApplicationRepo) CountByOwnerAndStatus(_ context.Context, ownerID string, status *domain.ApplicationStatus) (int, error) {
	count := 0
	for _, app := range r.apps {
		job, ok := r.jobs.jobs[app.JobPostingID]
		if !ok || job.OwnerID != ownerID {
			continue
		}
		if status != nil && app.Status != *status {
			continue
		}
		count++
	}
	return count, nil
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError with code %s, got %v", code, err)
	require.Equal(t, code, de.Code)
}

func strPtr(s string) *string { return &s }
