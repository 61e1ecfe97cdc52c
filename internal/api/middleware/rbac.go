package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ovl11/club-payment/internal/core/domain"
)

// RBAC lets the request through only when the authenticated user holds one of
// allowedRoles. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return domain.Unauthorized("missing authentication")
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.Forbidden("role not permitted for this action")
			}
			return next(c)
		}
	}
}

// RequireAdmin is RBAC restricted to administrators.
func RequireAdmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}
