package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/careers-portal/internal/api/dto"
	"github.com/spec-kit/careers-portal/internal/auth"
	"github.com/spec-kit/careers-portal/internal/config"
	"github.com/spec-kit/careers-portal/internal/domain"
	"github.com/spec-kit/careers-portal/internal/service"
	apperrors "github.com/spec-kit/careers-portal/pkg/util"
)

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	auth         *service.AuthService
	cookieName   string
	cookieSecure bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		auth:         authService,
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	if !strings.Contains(req.Email, "@") {
		return apperrors.NewValidationError("invalid email", nil)
	}

	user, err := h.auth.Register(c.Context(), req.Email, req.Password, req.FirstName, req.LastName, req.Role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": sessionUser(user, nil)},
	})
}

// Login handles POST /auth/login. The credential is returned in the body and
// set as an HTTP-only cookie for browser clients.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, token, exp)

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": sessionUser(user, nil),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout by expiring the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "logged out"}})
}

// Session handles GET /auth/session. An absent or invalid credential yields a
// null user, never an error.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session, err := h.auth.Session(c.Context(), auth.CredentialFromRequest(c, h.cookieName))
	if err != nil {
		return err
	}
	if session == nil {
		return c.JSON(fiber.Map{"data": fiber.Map{"user": nil}})
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"user": sessionUser(session.User, session.Profile)},
	})
}

// Me handles GET /auth/me for authenticated callers.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"user": sessionUser(principal.User, principal.Profile)},
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func sessionUser(user *domain.User, profile *domain.Profile) dto.SessionUser {
	out := dto.SessionUser{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}
	if profile != nil {
		out.Name = profile.FullName()
	}
	return out
}
