package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/careers-portal/internal/domain"
)

func newJobFixture(t *testing.T) (*JobService, *fakeJobRepo, *domain.User, *domain.User) {
	t.Helper()
	ctx := context.Background()

	users := newFakeUserRepo()
	jobs := newFakeJobRepo()

	employer := &domain.User{Email: "employer@example.com", PasswordHash: "x", Role: domain.RoleEmployer}
	require.NoError(t, users.Create(ctx, employer))
	other := &domain.User{Email: "other@example.com", PasswordHash: "x", Role: domain.RoleEmployer}
	require.NoError(t, users.Create(ctx, other))

	svc := NewJobService(JobDependencies{JobRepo: jobs})
	return svc, jobs, employer, other
}

func validJobInput() JobCreateInput {
	return JobCreateInput{
		Title:        "Backend Engineer",
		Company:      "Acme",
		Location:     "Remote",
		Description:  "Build things",
		Requirements: "Go",
		Deadline:     time.Now().Add(30 * 24 * time.Hour),
	}
}

func TestJobCreate(t *testing.T) {
	svc, _, employer, _ := newJobFixture(t)
	ctx := context.Background()

	job, err := svc.Create(ctx, employer, validJobInput())
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusActive, job.Status, "postings start ACTIVE")
	assert.Equal(t, employer.ID, job.OwnerID)
	assert.NotEmpty(t, job.ID)

	input := validJobInput()
	input.Title = "  "
	_, err = svc.Create(ctx, employer, input)
	requireErrCode(t, err, "VALIDATION")

	input = validJobInput()
	input.Deadline = time.Time{}
	_, err = svc.Create(ctx, employer, input)
	requireErrCode(t, err, "VALIDATION")
}

func TestJobUpdateOwnership(t *testing.T) {
	svc, _, employer, other := newJobFixture(t)
	ctx := context.Background()

	job, err := svc.Create(ctx, employer, validJobInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, other, job.ID, JobUpdateInput{Title: strPtr("Stolen")})
	requireErrCode(t, err, "UNAUTHORIZED")

	updated, err := svc.Update(ctx, employer, job.ID, JobUpdateInput{
		Title:     strPtr("Senior Backend Engineer"),
		MBTITypes: strPtr("INTJ,ISTJ"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", updated.Title)
	assert.Equal(t, "Acme", updated.Company, "omitted fields stay")
	require.NotNil(t, updated.MBTITypes)
}

func TestJobSetStatusAndOpenVisibility(t *testing.T) {
	svc, _, employer, _ := newJobFixture(t)
	ctx := context.Background()

	job, err := svc.Create(ctx, employer, validJobInput())
	require.NoError(t, err)

	open, err := svc.ListOpen(ctx, 50, 0)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	_, err = svc.SetStatus(ctx, employer, job.ID, "CLOSED")
	requireErrCode(t, err, "VALIDATION")

	updated, err := svc.SetStatus(ctx, employer, job.ID, "INACTIVE")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusInactive, updated.Status)

	open, err = svc.ListOpen(ctx, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, open)

	// Applicants see an inactive posting as missing.
	_, err = svc.GetOpen(ctx, job.ID)
	requireErrCode(t, err, "NOT_FOUND")

	// The owner still sees it.
	got, err := svc.Get(ctx, employer, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
}

func TestGetOpenExpiredDeadline(t *testing.T) {
	svc, jobs, employer, _ := newJobFixture(t)
	ctx := context.Background()

	job, err := svc.Create(ctx, employer, validJobInput())
	require.NoError(t, err)
	jobs.jobs[job.ID].Deadline = time.Now().Add(-time.Hour)

	_, err = svc.GetOpen(ctx, job.ID)
	requireErrCode(t, err, "NOT_FOUND")
}
