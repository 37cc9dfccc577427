package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gameforge/auth-core/internal/api/metrics"
	"github.com/gameforge/auth-core/internal/core/domain"
	"github.com/gameforge/auth-core/internal/core/ports"
)

// ContextKeyUser is where UserAuth stores the resolved *domain.User.
const ContextKeyUser = "user"

// UserAuth resolves the session cookie to a user and attaches it to the
// request context. Runs after ClientAuth and before RequireRole.
func UserAuth(sessions ports.SessionManager, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				metrics.GateDenialsTotal.WithLabelValues("user_auth", "no_cookie").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			user, err := sessions.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					metrics.GateDenialsTotal.WithLabelValues("user_auth", "no_session").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
				}
				// Store failure, not a credential problem: the
				// central handler logs it and answers 500.
				return err
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}
