package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mufid-dev-alt/office-attendance-track-backend/models"
	"github.com/mufid-dev-alt/office-attendance-track-backend/store"
)

type AttendanceHandler struct {
	Store store.Store
}

func NewAttendanceHandler(st store.Store) *AttendanceHandler {
	return &AttendanceHandler{Store: st}
}

// attendanceRow is a record enriched with the owner's name and email,
// the shape the frontend exports from.
type attendanceRow struct {
	ID        uint    `json:"id"`
	UserID    uint    `json:"user_id"`
	Status    string  `json:"status"`
	Date      string  `json:"date"`
	Notes     *string `json:"notes,omitempty"`
	UserName  string  `json:"user_name,omitempty"`
	UserEmail string  `json:"user_email,omitempty"`
}

// filterFromQuery reads user_id/month/year query params. Non-admin
// callers are always pinned to their own records.
func (h *AttendanceHandler) filterFromQuery(c echo.Context) store.AttendanceFilter {
	var f store.AttendanceFilter

	if v := strings.TrimSpace(c.QueryParam("user_id")); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			id := uint(n)
			f.UserID = &id
		}
	}
	if !isAdmin(c) {
		own := currentUserID(c)
		f.UserID = &own
	}
	if m := atoiOr(strings.TrimSpace(c.QueryParam("month")), 0); m >= 1 && m <= 12 {
		f.Month = &m
	}
	if y := atoiOr(strings.TrimSpace(c.QueryParam("year")), 0); y > 0 {
		f.Year = &y
	}
	return f
}

func (h *AttendanceHandler) enrich(records []models.Attendance) ([]attendanceRow, error) {
	users, err := h.Store.ListUsers()
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	rows := make([]attendanceRow, 0, len(records))
	for _, r := range records {
		row := attendanceRow{
			ID:     r.ID,
			UserID: r.UserID,
			Status: r.Status,
			Date:   r.Date,
			Notes:  r.Notes,
		}
		if u, ok := byID[r.UserID]; ok {
			row.UserName = u.FullName
			row.UserEmail = u.Email
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// GET /api/attendance?user_id=&month=&year=
func (h *AttendanceHandler) List(c echo.Context) error {
	records, err := h.Store.ListAttendance(h.filterFromQuery(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	rows, err := h.enrich(records)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, rows)
}

type createAttendanceReq struct {
	UserID uint    `json:"user_id"`
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
	Status string  `json:"status" validate:"required,oneof=present absent"`
	Notes  *string `json:"notes"`
}

// POST /api/attendance
// Re-marking an already recorded (user, date) is rejected with 409; an
// admin deletes the record and re-creates it to correct a mistake.
func (h *AttendanceHandler) Create(c echo.Context) error {
	var req createAttendanceReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.UserID == 0 {
		req.UserID = currentUserID(c)
	}
	if !isAdmin(c) && req.UserID != currentUserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	rec := models.Attendance{
		UserID: req.UserID,
		Date:   req.Date,
		Status: req.Status,
		Notes:  req.Notes,
	}
	if err := h.Store.CreateAttendance(&rec); err != nil {
		if errors.Is(err, store.ErrDuplicateAttendance) {
			return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "ATTENDANCE_EXISTS"})
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// DELETE /api/attendance/:id  (admin only, wired in routes)
func (h *AttendanceHandler) Delete(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Store.DeleteAttendance(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Attendance record deleted"})
}

// GET /api/attendance/stats?user_id=&month=&year=
// Weekend-dated rows are excluded from both sides of the rate so the
// denominator counts working days only.
func (h *AttendanceHandler) Stats(c echo.Context) error {
	records, err := h.Store.ListAttendance(h.filterFromQuery(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}

	var total, present int
	for _, r := range records {
		if !isWorkingDay(r.Date) {
			continue
		}
		total++
		if r.Status == models.StatusPresent {
			present++
		}
	}

	rate := 0.0
	if total > 0 {
		rate = float64(present) / float64(total) * 100
	}
	return c.JSON(http.StatusOK, map[string]any{
		"total_days":      total,
		"present_days":    present,
		"absent_days":     total - present,
		"attendance_rate": rate,
	})
}

// GET /api/attendance/export?user_id=&month=&year=
func (h *AttendanceHandler) Export(c echo.Context) error {
	records, err := h.Store.ListAttendance(h.filterFromQuery(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	rows, err := h.enrich(records)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "user_id", "user_name", "user_email", "date", "status"})
	for _, r := range rows {
		_ = w.Write([]string{
			strconv.FormatUint(uint64(r.ID), 10),
			strconv.FormatUint(uint64(r.UserID), 10),
			r.UserName,
			r.UserEmail,
			r.Date,
			r.Status,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}

	filename := fmt.Sprintf("attendance_%s.csv", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// POST /api/attendance/force-sync  (admin only, wired in routes)
// Re-runs the idempotent seed so a store that came up empty (or the
// memory fallback after a restart) gets the demo dataset back.
func (h *AttendanceHandler) ForceSync(c echo.Context) error {
	users, attendance, err := h.Store.Seed()
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":            "Store synchronized",
		"store":              h.Store.Name(),
		"total_users":        users,
		"attendance_records": attendance,
	})
}

func isWorkingDay(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
