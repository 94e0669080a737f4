package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/careers-portal/internal/domain"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

type applicationFixture struct {
	svc      *ApplicationService
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	jobs     *fakeJobRepo
	apps     *fakeApplicationRepo

	student  *domain.User
	employer *domain.User
	admin    *domain.User
	job      *domain.JobPosting
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	ctx := context.Background()

	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo(jobs)

	student := &domain.User{Email: "student@example.com", PasswordHash: "x", Role: domain.RoleStudent}
	require.NoError(t, users.Create(ctx, student))
	require.NoError(t, profiles.Create(ctx, &domain.Profile{
		UserID:         student.ID,
		FirstName:      "Sam",
		LastName:       "Lee",
		MBTIType:       strPtr("INTJ"),
		ResumeURL:      strPtr("https://cdn/resume.pdf"),
		CertificateURL: strPtr("https://cdn/cert.pdf"),
	}))

	employer := &domain.User{Email: "employer@example.com", PasswordHash: "x", Role: domain.RoleEmployer}
	require.NoError(t, users.Create(ctx, employer))

	admin := &domain.User{Email: "admin@example.com", PasswordHash: "x", Role: domain.RoleAdmin}
	require.NoError(t, users.Create(ctx, admin))

	job := &domain.JobPosting{
		Title:        "Backend Engineer",
		Company:      "Acme",
		Location:     "Remote",
		Description:  "Build things",
		Requirements: "Go",
		Deadline:     time.Now().Add(30 * 24 * time.Hour),
		Status:       domain.JobStatusActive,
		MBTITypes:    strPtr("INTJ,ENTP"),
		OwnerID:      employer.ID,
	}
	require.NoError(t, jobs.Create(ctx, job))

	svc := NewApplicationService(ApplicationDependencies{
		ApplicationRepo: apps,
		JobRepo:         jobs,
		ProfileRepo:     profiles,
		UserRepo:        users,
	})

	return &applicationFixture{
		svc: svc, users: users, profiles: profiles, jobs: jobs, apps: apps,
		student: student, employer: employer, admin: admin, job: job,
	}
}

func TestApplyHappyPath(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	app, err := f.svc.Apply(ctx, f.student, f.job.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	assert.Equal(t, f.student.ID, app.UserID)
	assert.Equal(t, f.job.ID, app.JobPostingID)
	assert.Nil(t, app.Notes)
}

func TestApplyRequiresStudentRole(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), f.employer, f.job.ID)
	requireErrCode(t, err, "UNAUTHORIZED")

	_, err = f.svc.Apply(context.Background(), f.admin, f.job.ID)
	requireErrCode(t, err, "UNAUTHORIZED")
}

func TestApplyMissingDocuments(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		resume      *string
		certificate *string
		wantMissing []string
	}{
		{"no certificate", strPtr("https://cdn/resume.pdf"), strPtr(""), []string{"certificate"}},
		{"no resume", nil, strPtr("https://cdn/cert.pdf"), []string{"resume"}},
		{"neither document", nil, nil, []string{"resume", "certificate"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			profile := f.profiles.profiles[f.student.ID]
			profile.ResumeURL = tc.resume
			profile.CertificateURL = tc.certificate

			_, err := f.svc.Apply(ctx, f.student, f.job.ID)
			requireErrCode(t, err, "MISSING_DOCUMENTS")

			var de *apperrors.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.wantMissing, de.Details["missing_documents"])
		})
	}
}

func TestApplyClosedOrExpiredJobIsNotFound(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	f.jobs.jobs[f.job.ID].Status = domain.JobStatusInactive
	_, err := f.svc.Apply(ctx, f.student, f.job.ID)
	requireErrCode(t, err, "NOT_FOUND")

	f.jobs.jobs[f.job.ID].Status = domain.JobStatusActive
	f.jobs.jobs[f.job.ID].Deadline = time.Now().Add(-time.Hour)
	_, err = f.svc.Apply(ctx, f.student, f.job.ID)
	requireErrCode(t, err, "NOT_FOUND")

	_, err = f.svc.Apply(ctx, f.student, "no-such-job")
	requireErrCode(t, err, "NOT_FOUND")
}

func TestApplyDuplicate(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, f.student, f.job.ID)
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, f.student, f.job.ID)
	requireErrCode(t, err, "DUPLICATE")
}

func TestApplyDuplicateLostInsertRace(t *testing.T) {
	f := newApplicationFixture(t)
	f.apps.forceDuplicateOnCreate = true

	_, err := f.svc.Apply(context.Background(), f.student, f.job.ID)
	requireErrCode(t, err, "DUPLICATE")
}

func TestUpdateStatusByOwner(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	app, err := f.svc.Apply(ctx, f.student, f.job.ID)
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, f.employer, app.ID, "INTERVIEWING", strPtr("phone screen done"))
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusInterviewing, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "phone screen done", *updated.Notes)

	// Nil notes leave the stored notes untouched.
	updated, err = f.svc.UpdateStatus(ctx, f.employer, app.ID, "ACCEPTED", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusAccepted, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "phone screen done", *updated.Notes)

	// Empty notes are treated the same as absent.
	updated, err = f.svc.UpdateStatus(ctx, f.employer, app.ID, "REJECTED", strPtr(""))
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "phone screen done", *updated.Notes)
}

func TestUpdateStatusAnyDirection(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	app, err := f.svc.Apply(ctx, f.student, f.job.ID)
	require.NoError(t, err)

	// Decisions are reversible, including back to PENDING.
	for _, label := range []string{"REJECTED", "PENDING", "ACCEPTED", "INTERVIEWING"} {
		updated, err := f.svc.UpdateStatus(ctx, f.admin, app.ID, label, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatus(label), updated.Status)
	}

	// Setting the current status again is a no-op, not an error.
	updated, err := f.svc.UpdateStatus(ctx, f.admin, app.ID, "INTERVIEWING", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusInterviewing, updated.Status)
}

func TestUpdateStatusValidation(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	app, err := f.svc.Apply(ctx, f.student, f.job.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, f.employer, app.ID, "HIRED", nil)
	requireErrCode(t, err, "VALIDATION")

	_, err = f.svc.UpdateStatus(ctx, f.employer, "no-such-app", "ACCEPTED", nil)
	requireErrCode(t, err, "NOT_FOUND")
}

func TestUpdateStatusOwnershipEnforced(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	app, err := f.svc.Apply(ctx, f.student, f.job.ID)
	require.NoError(t, err)

	other := &domain.User{Email: "other@example.com", PasswordHash: "x", Role: domain.RoleEmployer}
	require.NoError(t, f.users.Create(ctx, other))

	_, err = f.svc.UpdateStatus(ctx, other, app.ID, "ACCEPTED", nil)
	requireErrCode(t, err, "UNAUTHORIZED")

	_, err = f.svc.UpdateStatus(ctx, f.student, app.ID, "ACCEPTED", nil)
	requireErrCode(t, err, "UNAUTHORIZED")
}

func TestCancelOnlyApplicant(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	app, err := f.svc.Apply(ctx, f.student, f.job.ID)
	require.NoError(t, err)

	// Neither the posting owner nor an admin may cancel on the applicant's
	// behalf.
	err = f.svc.Cancel(ctx, f.employer, app.ID)
	requireErrCode(t, err, "UNAUTHORIZED")
	err = f.svc.Cancel(ctx, f.admin, app.ID)
	requireErrCode(t, err, "UNAUTHORIZED")

	require.NoError(t, f.svc.Cancel(ctx, f.student, app.ID))

	err = f.svc.Cancel(ctx, f.student, app.ID)
	requireErrCode(t, err, "NOT_FOUND")
}

func TestGetEnrichesWithCompatibility(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	app, err := f.svc.Apply(ctx, f.student, f.job.ID)
	require.NoError(t, err)

	detail, err := f.svc.Get(ctx, f.employer, app.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Job)
	require.NotNil(t, detail.Applicant)
	require.NotNil(t, detail.Profile)
	assert.True(t, detail.Compatibility.Compatible)
	assert.Equal(t, domain.CompatibilityMatch, detail.Compatibility.Reason)

	// A stranger employer may not read it; the applicant may.
	other := &domain.User{Email: "other2@example.com", PasswordHash: "x", Role: domain.RoleEmployer}
	require.NoError(t, f.users.Create(ctx, other))
	_, err = f.svc.Get(ctx, other, app.ID)
	requireErrCode(t, err, "UNAUTHORIZED")

	detail, err = f.svc.Get(ctx, f.student, app.ID)
	require.NoError(t, err)
	assert.Equal(t, f.student.ID, detail.Application.UserID)
}

func TestListAllIsAdminOnly(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, f.student, f.job.ID)
	require.NoError(t, err)

	_, err = f.svc.ListAll(ctx, f.employer, 50, 0)
	requireErrCode(t, err, "UNAUTHORIZED")

	details, err := f.svc.ListAll(ctx, f.admin, 50, 0)
	require.NoError(t, err)
	assert.Len(t, details, 1)
}
