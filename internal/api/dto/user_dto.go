package dto

import (
	"time"

	"github.com/spec-kit/careers-portal/internal/domain"
)

// UserRoleRequest payload for admin role changes.
type UserRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse echoes an account without the password hash.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Name      string      `json:"name,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UserDetailResponse adds the profile and applications for the admin view.
type UserDetailResponse struct {
	UserResponse
	Profile      *ProfileResponse      `json:"profile,omitempty"`
	Applications []ApplicationResponse `json:"applications"`
}
