package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jadranPTI/todo-list-project/internal/handler"
)

func registerRoutes(e *echo.Echo, h *handler.Handler, jwtSecret []byte) {
	api := e.Group("/api")

	// Public routes
	api.POST("/token", h.Token)
	api.POST("/token/refresh", h.RefreshToken)

	// Everything below requires a valid access token. A missing token is
	// reported the same way as a bad one, always 401.
	protected := api.Group("", middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: jwtSecret,
		ErrorHandler: func(error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or missing token")
		},
	}))

	tasks := protected.Group("/tasks")
	tasks.GET("", h.ListTasks)
	tasks.POST("", h.CreateTask)
	tasks.GET("/admin", h.AdminListTasks, handler.RequireAdmin)
	tasks.GET("/:id", h.GetTask)
	tasks.PATCH("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)

	users := protected.Group("/users", handler.RequireAdmin)
	users.GET("", h.ListUsers)
	users.POST("", h.CreateUser)
	users.PATCH("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
}
