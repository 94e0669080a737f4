package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/careers-portal/internal/domain"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserRepo, *domain.User, *domain.User) {
	t.Helper()
	ctx := context.Background()

	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo(jobs)

	admin := &domain.User{Email: "admin@example.com", PasswordHash: "x", Role: domain.RoleAdmin}
	require.NoError(t, users.Create(ctx, admin))
	student := &domain.User{Email: "student@example.com", PasswordHash: "x", Role: domain.RoleStudent}
	require.NoError(t, users.Create(ctx, student))
	require.NoError(t, profiles.Create(ctx, &domain.Profile{UserID: student.ID, FirstName: "Sam", LastName: "Lee"}))

	svc := NewUserService(UserDependencies{
		UserRepo:        users,
		ProfileRepo:     profiles,
		ApplicationRepo: apps,
	})
	return svc, users, admin, student
}

func TestUserListAndGetAdminOnly(t *testing.T) {
	svc, _, admin, student := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.List(ctx, student, 50, 0)
	requireErrCode(t, err, "UNAUTHORIZED")

	details, err := svc.List(ctx, admin, 50, 0)
	require.NoError(t, err)
	assert.Len(t, details, 2)

	_, err = svc.Get(ctx, student, admin.ID)
	requireErrCode(t, err, "UNAUTHORIZED")

	detail, err := svc.Get(ctx, admin, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, detail.User.ID)
	require.NotNil(t, detail.Profile)

	_, err = svc.Get(ctx, admin, "no-such-user")
	requireErrCode(t, err, "NOT_FOUND")
}

func TestChangeRole(t *testing.T) {
	svc, _, admin, student := newUserFixture(t)
	ctx := context.Background()

	updated, err := svc.ChangeRole(ctx, admin, student.ID, "EMPLOYER")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployer, updated.Role)

	_, err = svc.ChangeRole(ctx, admin, student.ID, "WIZARD")
	requireErrCode(t, err, "VALIDATION")

	// The self-target guard denies before the role check runs.
	_, err = svc.ChangeRole(ctx, admin, admin.ID, "STUDENT")
	requireErrCode(t, err, "CONFLICT")

	_, err = svc.ChangeRole(ctx, student, admin.ID, "STUDENT")
	requireErrCode(t, err, "UNAUTHORIZED")

	_, err = svc.ChangeRole(ctx, admin, "no-such-user", "STUDENT")
	requireErrCode(t, err, "NOT_FOUND")
}

func TestDeleteUser(t *testing.T) {
	svc, users, admin, student := newUserFixture(t)
	ctx := context.Background()

	err := svc.Delete(ctx, admin, admin.ID)
	requireErrCode(t, err, "CONFLICT")

	err = svc.Delete(ctx, student, admin.ID)
	requireErrCode(t, err, "UNAUTHORIZED")

	require.NoError(t, svc.Delete(ctx, admin, student.ID))
	_, err = users.GetByID(ctx, student.ID)
	assert.Error(t, err)

	err = svc.Delete(ctx, admin, student.ID)
	requireErrCode(t, err, "NOT_FOUND")
}
