package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gameforge/auth-core/internal/api/metrics"
	"github.com/gameforge/auth-core/internal/core/domain"
	"github.com/gameforge/auth-core/internal/core/ports"
)

// CookieOptions controls how the session cookie is issued and cleared.
type CookieOptions struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieOptions
}

func NewAuthHandler(authService ports.AuthService, cookie CookieOptions) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "sessionId"
	}
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = 24 * time.Hour
	}
	return &AuthHandler{authService: authService, cookie: cookie}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the projection of a user returned to callers. The password
// hash has no field here at all; exclusion does not rely on a json tag alone.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account credentials"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /user/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates a user and opens a cookie-backed session.
//
// @Summary      Login
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  map[string]string
// @Router       /user/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, sessionID, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	c.SetCookie(h.sessionCookie(sessionID, h.cookie.MaxAge))
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout revokes the caller's session and clears the cookie.
//
// @Summary      Logout
// @Tags         user
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /user/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	cookie, err := c.Cookie(h.cookie.Name)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie("", 0))
	metrics.SessionsRevokedTotal.WithLabelValues("logout").Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "logout successful"})
}

type updateUserRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

// Update changes the target user's email and/or password. Guests may only
// modify themselves; admins may modify anyone.
//
// @Summary      Update a user
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /user/{id} [patch]
func (h *AuthHandler) Update(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if caller.Role != domain.RoleAdmin && caller.ID != id {
		return domain.ErrForbidden
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateUser(c.Request().Context(), id, req.Email, req.Password)
	if err != nil {
		return err
	}
	if req.Password != "" {
		metrics.SessionsRevokedTotal.WithLabelValues("password_change").Inc()
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete removes the target user account and all of its sessions.
//
// @Summary      Delete a user
// @Tags         user
// @Produce      json
// @Param        id  path      string  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user/{id} [delete]
func (h *AuthHandler) Delete(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if caller.Role != domain.RoleAdmin && caller.ID != id {
		return domain.ErrForbidden
	}

	if err := h.authService.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.SessionsRevokedTotal.WithLabelValues("account_deleted").Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

func (h *AuthHandler) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	// MaxAge < 0 instructs the browser to drop the cookie immediately.
	seconds := int(maxAge.Seconds())
	if value == "" {
		seconds = -1
	}
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   seconds,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
