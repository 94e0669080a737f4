package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/careers-portal/internal/domain"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

func errCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	return de.Code
}

func TestAuthorize(t *testing.T) {
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	employer := &domain.User{ID: "emp-1", Role: domain.RoleEmployer}
	otherEmployer := &domain.User{ID: "emp-2", Role: domain.RoleEmployer}
	student := &domain.User{ID: "stu-1", Role: domain.RoleStudent}

	tests := []struct {
		name     string
		identity *domain.User
		action   Action
		res      Resource
		wantCode string // empty means allow
	}{
		{"nil identity", nil, ActionApplicationView, Resource{}, "UNAUTHENTICATED"},

		{"admin lists users", admin, ActionUserList, Resource{}, ""},
		{"employer lists users", employer, ActionUserList, Resource{}, "UNAUTHORIZED"},
		{"student inspects user", student, ActionUserInspect, Resource{ID: "x"}, "UNAUTHORIZED"},
		{"admin views all applications", admin, ActionApplicationAdmin, Resource{}, ""},

		{"admin changes other role", admin, ActionUserChangeRole, Resource{ID: "stu-1"}, ""},
		{"admin changes own role", admin, ActionUserChangeRole, Resource{ID: "admin-1"}, "CONFLICT"},
		{"admin deletes own account", admin, ActionUserDelete, Resource{ID: "admin-1"}, "CONFLICT"},
		{"student changes own role", student, ActionUserChangeRole, Resource{ID: "stu-1"}, "CONFLICT"},
		{"student changes other role", student, ActionUserChangeRole, Resource{ID: "x"}, "UNAUTHORIZED"},

		{"owner manages job", employer, ActionJobManage, Resource{OwnerID: "emp-1"}, ""},
		{"non-owner manages job", otherEmployer, ActionJobManage, Resource{OwnerID: "emp-1"}, "UNAUTHORIZED"},
		{"admin manages any job", admin, ActionJobManage, Resource{OwnerID: "emp-1"}, ""},
		{"student manages job", student, ActionJobManage, Resource{OwnerID: "emp-1"}, "UNAUTHORIZED"},

		{"owner decides application", employer, ActionApplicationDecide, Resource{OwnerID: "emp-1"}, ""},
		{"non-owner decides application", otherEmployer, ActionApplicationDecide, Resource{OwnerID: "emp-1"}, "UNAUTHORIZED"},
		{"admin decides any application", admin, ActionApplicationDecide, Resource{OwnerID: "emp-1"}, ""},

		{"student applies as self", student, ActionApplicationCreate, Resource{UserID: "stu-1"}, ""},
		{"employer applies", employer, ActionApplicationCreate, Resource{UserID: "emp-1"}, "UNAUTHORIZED"},
		{"admin applies", admin, ActionApplicationCreate, Resource{UserID: "admin-1"}, "UNAUTHORIZED"},

		{"applicant cancels own", student, ActionApplicationCancel, Resource{UserID: "stu-1"}, ""},
		{"admin cancels someone else's", admin, ActionApplicationCancel, Resource{UserID: "stu-1"}, "UNAUTHORIZED"},
		{"employer cancels applicant's", employer, ActionApplicationCancel, Resource{UserID: "stu-1"}, "UNAUTHORIZED"},

		{"applicant views own", student, ActionApplicationView, Resource{UserID: "stu-1", OwnerID: "emp-1"}, ""},
		{"owner views", employer, ActionApplicationView, Resource{UserID: "stu-1", OwnerID: "emp-1"}, ""},
		{"stranger employer views", otherEmployer, ActionApplicationView, Resource{UserID: "stu-1", OwnerID: "emp-1"}, "UNAUTHORIZED"},
		{"admin views", admin, ActionApplicationView, Resource{UserID: "stu-1", OwnerID: "emp-1"}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.identity, tc.action, tc.res)
			if tc.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, errCode(t, err))
		})
	}
}
