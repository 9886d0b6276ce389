package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mufid-dev-alt/office-attendance-track-backend/store"
)

// Health serves the liveness probe.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type InfoHandler struct {
	Store store.Store
}

func NewInfoHandler(st store.Store) *InfoHandler {
	return &InfoHandler{Store: st}
}

// GET /
func (h *InfoHandler) Root(c echo.Context) error {
	users, _ := h.Store.ListUsers()
	attendance, _ := h.Store.ListAttendance(store.AttendanceFilter{})

	return c.JSON(http.StatusOK, map[string]any{
		"message":                  "Office Attendance Management API",
		"version":                  "1.0.0",
		"status":                   "running",
		"store":                    h.Store.Name(),
		"total_users":              len(users),
		"total_attendance_records": len(attendance),
		"endpoints": map[string]string{
			"login":      "/api/login",
			"users":      "/api/users",
			"attendance": "/api/attendance",
			"todos":      "/api/todos",
		},
	})
}
