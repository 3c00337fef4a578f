package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupRouter creates and configures the echo router with all routes and middleware.
func SetupRouter(handler *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger())

	e.GET("/health", handler.HandleHealth)

	// Queries
	e.GET("/api/nodes", handler.HandleResolve)
	e.GET("/api/nodes/:id", handler.HandleLookup)
	e.GET("/api/children", handler.HandleChildren)
	e.GET("/api/tree", handler.HandleTree)

	// Creation
	e.POST("/api/directories", handler.HandleCreateDirectory)
	e.POST("/api/files", handler.HandleCreateFile)

	return e
}
