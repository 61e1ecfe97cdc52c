package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/core/ports"
)

// UserKey is the echo context key holding the authenticated domain.User.
const UserKey = "user"

// Identity headers read by HeaderAuth.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// Auth resolves "Authorization: Bearer <token>" to an active user and stores
// it under UserKey.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			user, err := auth.AuthenticateToken(token)
			if err != nil {
				return err
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// HeaderAuth trusts X-User-Id and X-User-Role as sent by the client. It
// performs no cryptographic check and exists for local development only.
func HeaderAuth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header
			user, err := auth.AuthenticateHeaders(h.Get(HeaderUserID), h.Get(HeaderUserRole))
			if err != nil {
				return err
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// bearerToken expects exactly two whitespace-separated parts, the first
// being "bearer" in any case.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.Unauthorized("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.Unauthorized("authorization header must be 'Bearer <token>'")
	}
	return parts[1], nil
}

// CurrentUser returns the user stored by Auth or HeaderAuth.
func CurrentUser(c echo.Context) (domain.User, bool) {
	u, ok := c.Get(UserKey).(domain.User)
	return u, ok
}
