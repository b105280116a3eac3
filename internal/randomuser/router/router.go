package router

import (
	"randomusers/internal/randomuser/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes wires every route onto e. The bulk delete is only mounted
// when adminToken is set.
func RegisterRoutes(e *echo.Echo, h *handler.UserHandler, adminToken string) error {
	renderer, err := handler.NewTemplateRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer

	e.Use(handler.RequestIDMiddleware)

	e.GET("/health", h.HealthCheck)
	e.GET("/version", h.GetVersion)

	// HTML views
	e.GET("/", h.UsersPage)
	e.POST("/", h.PostUsersPage)
	e.GET("/random", h.RandomUserPage)
	e.GET("/:id", h.UserPage)

	v1 := e.Group("/api/v1")
	v1.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	v1.GET("/users", h.ListUsers)
	v1.GET("/users/random", h.GetRandomUser)
	v1.POST("/users/load", h.PostLoadUsers)
	v1.GET("/users/:id", h.GetUser)

	if adminToken != "" {
		v1.DELETE("/users", h.DeleteUsers, handler.AdminTokenMiddleware(adminToken))
	}

	return nil
}
