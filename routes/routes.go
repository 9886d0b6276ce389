package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mufid-dev-alt/office-attendance-track-backend/config"
	"github.com/mufid-dev-alt/office-attendance-track-backend/handlers"
	"github.com/mufid-dev-alt/office-attendance-track-backend/middlewares"
	"github.com/mufid-dev-alt/office-attendance-track-backend/store"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, st store.Store, cfg *config.Config) {
	auth := handlers.NewAuthHandler(st, cfg.JWTSecret)
	usr := handlers.NewUserHandler(st)
	att := handlers.NewAttendanceHandler(st)
	todo := handlers.NewTodoHandler(st)
	info := handlers.NewInfoHandler(st)

	// ===== Public =====
	e.GET("/", info.Root)
	e.GET("/health", handlers.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/api/login", auth.Login)
	e.GET("/api/logout", auth.Logout)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Authenticated (user or admin) =====
	api := e.Group("/api", authMW)

	api.GET("/attendance", att.List)
	api.POST("/attendance", att.Create)
	api.GET("/attendance/stats", att.Stats)
	api.GET("/attendance/export", att.Export)

	api.GET("/todos", todo.List)
	api.POST("/todos", todo.Create)
	api.PUT("/todos/:id", todo.Update)
	api.DELETE("/todos/:id", todo.Delete)

	// ===== Admin only =====
	admin := e.Group("/api", authMW, middlewares.RequireRole("admin"))

	admin.GET("/users", usr.List)
	admin.POST("/users", usr.Create)
	admin.GET("/users/deleted", usr.ListDeleted)
	admin.DELETE("/users/:id", usr.SoftDelete)
	admin.POST("/users/:id/undo", usr.Restore)
	admin.POST("/users/:id/permanent-delete", usr.PermanentDelete)

	admin.DELETE("/attendance/:id", att.Delete)
	admin.POST("/attendance/force-sync", att.ForceSync)
}
