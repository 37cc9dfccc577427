package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gameforge/auth-core/internal/api/middleware"
	"github.com/gameforge/auth-core/internal/core/domain"
)

// currentUser extracts the user attached by the UserAuth gate. A miss means
// the route is wired without the gate; reject with 401 rather than proceed
// with no identity.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextKeyUser).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return user, nil
}
