package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gameforge/auth-core/internal/api/metrics"
	"github.com/gameforge/auth-core/internal/core/domain"
)

// RequireRole gates a route on the authenticated user's role. ADMIN passes
// any gate; every other role must match exactly. This is deliberately a
// two-tier model, not an ordered hierarchy.
//
// Must be chained after UserAuth: a missing user is an ordering bug and is
// rejected as 401, never 403.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextKeyUser).(*domain.User)
			if !ok || user == nil {
				metrics.GateDenialsTotal.WithLabelValues("role", "no_user").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			if user.Role == domain.RoleAdmin || user.Role == role {
				return next(c)
			}

			metrics.GateDenialsTotal.WithLabelValues("role", "forbidden").Inc()
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}
}
