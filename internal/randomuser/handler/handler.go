package handler

import (
	"net/http"

	"randomusers/internal/randomuser/model"
	"randomusers/internal/randomuser/service"

	goversion "github.com/caarlos0/go-version"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Service service.UserService
	Version goversion.Info
}

func NewUserHandler(s service.UserService, version goversion.Info) *UserHandler {
	return &UserHandler{Service: s, Version: version}
}

// HealthCheck handles GET /health
func (h *UserHandler) HealthCheck(c echo.Context) error {
	if err := h.Service.Health(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetVersion handles GET /version
func (h *UserHandler) GetVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Version)
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(c echo.Context) error {
	var req model.ListUsersReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid parameters")
	}
	if err := req.Validate(); err != nil {
		return validationError(c, err)
	}

	page, err := h.Service.ListUsers(c.Request().Context(), req)
	if err != nil {
		code, body := httpError(c, err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, page)
}

// GetUser handles GET /api/v1/users/:id
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.Service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		code, body := httpError(c, err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, user)
}

// GetRandomUser handles GET /api/v1/users/random
func (h *UserHandler) GetRandomUser(c echo.Context) error {
	user, err := h.Service.GetRandomUser(c.Request().Context())
	if err != nil {
		code, body := httpError(c, err)
		if code == http.StatusNotFound {
			body.Error.Message = "No users available"
		}
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, user)
}

// PostLoadUsers handles POST /api/v1/users/load
func (h *UserHandler) PostLoadUsers(c echo.Context) error {
	var req model.LoadUsersReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}
	if err := req.Validate(); err != nil {
		return validationError(c, err)
	}

	result, err := h.Service.LoadUsers(c.Request().Context(), req)
	if err != nil {
		code, body := httpError(c, err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteUsers handles DELETE /api/v1/users
func (h *UserHandler) DeleteUsers(c echo.Context) error {
	n, err := h.Service.DeleteAllUsers(c.Request().Context())
	if err != nil {
		code, body := httpError(c, err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": n})
}
