package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MeHandler serves the authenticated user's own profile.
type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// Profile returns the caller's projected user record.
//
// @Summary      Get the authenticated user
// @Tags         user
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *MeHandler) Profile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
