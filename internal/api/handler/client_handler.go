package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gameforge/auth-core/internal/api/metrics"
	"github.com/gameforge/auth-core/internal/core/ports"
)

type ClientHandler struct {
	clientService ports.ClientService
}

func NewClientHandler(clientService ports.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type createClientRequest struct {
	Name string `json:"name" validate:"required"`
}

type createClientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int    `json:"version"`
	Token   string `json:"token"`
}

// Create registers a new API client and returns its bearer token. The token
// is shown exactly once; it can only be replaced by invalidating the client
// and issuing a fresh one.
//
// @Summary      Register an API client
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      createClientRequest  true  "Client name"
// @Success      201   {object}  createClientResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /client/new [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, token, err := h.clientService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createClientResponse{
		ID:      client.ID,
		Name:    client.Name,
		Version: client.Version,
		Token:   token,
	})
}

// Invalidate bumps the client version, revoking every outstanding token.
//
// @Summary      Invalidate an API client's tokens
// @Tags         client
// @Produce      json
// @Param        id  path      string  true  "Client ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /client/invalidate/{id} [post]
func (h *ClientHandler) Invalidate(c echo.Context) error {
	if err := h.clientService.Invalidate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ClientInvalidationsTotal.Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "client invalidated"})
}
