package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal/internal/domain"
	apperrors "github.com/spec-kit/admin-portal/pkg/util"
)

// RequireRole ensures the principal holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(unauthenticatedMessage)
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// AllRoles lists every portal role.
func AllRoles() []domain.Role {
	return []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleSupport}
}
