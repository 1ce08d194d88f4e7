package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal/internal/api/dto"
	"github.com/spec-kit/admin-portal/internal/auth"
	"github.com/spec-kit/admin-portal/internal/service"
	apperrors "github.com/spec-kit/admin-portal/pkg/util"
)

// AuthHandler exposes operator login and session endpoints.
type AuthHandler struct {
	service      *service.AuthService
	cookieSecure bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: authService, cookieSecure: cookieSecure}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	res, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return apperrors.NewUnauthorized("invalid email or password")
	case errors.Is(err, service.ErrLoginThrottled):
		return apperrors.NewTooManyRequests("too many failed login attempts; try again later")
	case err != nil:
		return apperrors.NewInternalError(err)
	}

	c.Cookie(auth.SessionCookie(res.Token, res.ExpiresAt, h.cookieSecure))
	return c.JSON(dto.LoginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      res.Principal,
	})
}

// Logout handles POST /auth/logout. Tokens stay valid until expiry; only the cookie is cleared.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(auth.ExpiredSessionCookie(h.cookieSecure))
	return c.SendStatus(fiber.StatusNoContent)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid or missing authentication")
	}
	return c.JSON(principal)
}
