package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/careers-portal/internal/domain"
	"github.com/spec-kit/careers-portal/internal/repository"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for one request. It is
// rebuilt from the verified claim on every call and never cached across
// requests.
type Principal struct {
	User    *domain.User
	Profile *domain.Profile
}

// Role returns the authoritative role from the user record.
func (p *Principal) Role() domain.Role {
	return p.User.Role
}

// AuthMiddleware verifies credentials and loads principals.
type AuthMiddleware struct {
	tokens     *TokenManager
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	cookieName string
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, profiles repository.ProfileRepository, cookieName string) *AuthMiddleware {
	if cookieName == "" {
		cookieName = "token"
	}
	return &AuthMiddleware{tokens: tokens, users: users, profiles: profiles, cookieName: cookieName}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	principal, err := m.Resolve(c)
	if err != nil {
		return err
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// Resolve verifies the request credential and loads the current user record.
// A subject deleted after token issuance resolves to unauthenticated, not an
// internal error.
func (m *AuthMiddleware) Resolve(c *fiber.Ctx) (*Principal, error) {
	claims, ok := m.tokens.Verify(CredentialFromRequest(c, m.cookieName))
	if !ok {
		return nil, apperrors.NewUnauthenticated("not authenticated")
	}

	user, err := m.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthenticated("not authenticated")
		}
		return nil, apperrors.MapError(err)
	}

	principal := &Principal{User: user}
	profile, err := m.profiles.GetByUserID(c.UserContext(), user.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	principal.Profile = profile
	return principal, nil
}

// CredentialFromRequest reads the token cookie, falling back to a bearer
// header for non-browser clients.
func CredentialFromRequest(c *fiber.Ctx, cookieName string) string {
	if token := c.Cookies(cookieName); token != "" {
		return token
	}
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
