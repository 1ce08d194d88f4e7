package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-portal/internal/domain"
	apperrors "github.com/spec-kit/admin-portal/pkg/util"
)

const (
	// SessionCookieName carries the session token for browser clients.
	SessionCookieName = "session"

	principalKey = "auth_principal"

	unauthenticatedMessage = "invalid or missing authentication"
)

// AuthMiddleware validates session tokens and attaches the principal.
type AuthMiddleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, err := TokenFromRequest(c)
	if err == nil {
		var principal *domain.Principal
		principal, err = m.tokens.Verify(token)
		if err == nil {
			c.Locals(principalKey, principal)
			return c.Next()
		}
	}

	m.logger.Debug("authentication rejected",
		zap.String("path", c.Path()),
		zap.String("reason", rejectionReason(err)))
	return apperrors.NewUnauthorized(unauthenticatedMessage)
}

// TokenFromRequest returns the bearer token, falling back to the session cookie.
// A present Authorization header always wins, even when the cookie is also set.
func TokenFromRequest(c *fiber.Ctx) (string, error) {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", ErrMalformedToken
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return "", ErrMalformedToken
		}
		return token, nil
	}
	if cookie := c.Cookies(SessionCookieName); cookie != "" {
		return cookie, nil
	}
	return "", ErrMissingToken
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}

// SessionCookie carries the token for browser clients.
func SessionCookie(token string, expiresAt time.Time, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// ExpiredSessionCookie instructs the browser to drop the session cookie.
func ExpiredSessionCookie(secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "missing"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrMalformedToken):
		return "malformed"
	default:
		return "unknown"
	}
}
