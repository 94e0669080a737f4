package domain

import "time"

// Role enumerates the three account types on the portal.
type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleEmployer Role = "EMPLOYER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole validates a role label.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleStudent, RoleEmployer, RoleAdmin:
		return Role(value), true
	}
	return "", false
}

// User is the domain model for portal accounts.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
