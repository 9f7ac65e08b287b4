package handler

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/baravibes/baravibes/internal/domain"
	"github.com/baravibes/baravibes/internal/service"
)

const contextKeyUser = "user"

// RequestLogger logs each HTTP request with structured fields.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			slog.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return err
		}
	}
}

// SessionContext resolves the session cookie to a user record and stores it
// in the echo context. Every resolution failure (missing cookie, malformed or
// expired token, unknown user, unavailable store) leaves the request
// anonymous; this middleware never errors.
func SessionContext(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			user, err := auth.ResolveUser(c.Request().Context(), cookie.Value)
			if err != nil {
				return next(c)
			}

			c.Set(contextKeyUser, user)
			return next(c)
		}
	}
}

// CurrentUser extracts the resolved user from the echo context, or nil for
// anonymous requests.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(contextKeyUser).(*domain.User)
	return user
}

// RequireUser rejects anonymous callers.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				return domain.ErrUnauthorized
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects anonymous callers with 401 and authenticated
// non-admins with 403.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return domain.ErrUnauthorized
			}
			if user.Role != domain.RoleAdmin {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
