package auth

import (
	"github.com/spec-kit/careers-portal/internal/domain"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

// Action enumerates the authorization decisions the portal makes. Every
// endpoint routes through Authorize with one of these instead of comparing
// roles inline.
type Action string

const (
	// Admin-only surfaces.
	ActionUserList         Action = "user:list"
	ActionUserInspect      Action = "user:inspect"
	ActionApplicationAdmin Action = "application:admin"

	// User mutations guarded against self-targeting.
	ActionUserChangeRole Action = "user:change_role"
	ActionUserDelete     Action = "user:delete"

	// Employer-scoped, resolved through the job posting's owner.
	ActionJobManage         Action = "job:manage"
	ActionApplicationDecide Action = "application:decide"

	// Applicant-scoped.
	ActionApplicationCreate Action = "application:create"
	ActionApplicationCancel Action = "application:cancel"

	// Readable by applicant, owning employer, or admin.
	ActionApplicationView Action = "application:view"
)

// Resource carries the identifying fields of the target record. Only the
// fields relevant to the action need to be set.
type Resource struct {
	ID      string // target entity id (user id for self-target checks)
	OwnerID string // owner of the job posting the target hangs off
	UserID  string // applicant who owns the record
}

// Authorize decides ALLOW (nil) or DENY (a DomainError) for an identity
// acting on a resource. ADMIN bypasses ownership checks everywhere except the
// self-target guard, which denies unconditionally.
func Authorize(identity *domain.User, action Action, res Resource) error {
	if identity == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}

	switch action {
	case ActionUserList, ActionUserInspect, ActionApplicationAdmin:
		if identity.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return nil

	case ActionUserChangeRole, ActionUserDelete:
		// The self-target guard comes first: no role, admin included, may
		// demote or delete its own account.
		if res.ID == identity.ID {
			return apperrors.NewConflict("cannot modify your own account", nil)
		}
		if identity.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return nil

	case ActionJobManage, ActionApplicationDecide:
		if identity.Role == domain.RoleAdmin {
			return nil
		}
		if identity.Role == domain.RoleEmployer && res.OwnerID == identity.ID {
			return nil
		}
		return apperrors.NewForbidden("you do not own this job posting")

	case ActionApplicationCreate:
		if identity.Role == domain.RoleStudent && res.UserID == identity.ID {
			return nil
		}
		return apperrors.NewForbidden("only the applicant may apply")

	case ActionApplicationCancel:
		// Strictly the applicant; there is no admin bypass for cancellation.
		if res.UserID == identity.ID {
			return nil
		}
		return apperrors.NewForbidden("only the applicant may cancel")

	case ActionApplicationView:
		if identity.Role == domain.RoleAdmin {
			return nil
		}
		if identity.Role == domain.RoleEmployer && res.OwnerID == identity.ID {
			return nil
		}
		if res.UserID == identity.ID {
			return nil
		}
		return apperrors.NewForbidden("access denied")
	}

	return apperrors.NewForbidden("unknown action")
}
