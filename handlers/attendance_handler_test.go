package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mufid-dev-alt/office-attendance-track-backend/models"
	"github.com/mufid-dev-alt/office-attendance-track-backend/store"
)

// twentyWorkingDays marks June 2025's first 20 working days for the
// user, with the given number of present days.
func twentyWorkingDays(t *testing.T, st store.Store, userID uint, present int) {
	t.Helper()
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC) // a Monday
	marked := 0
	for marked < 20 {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			status := models.StatusPresent
			if marked >= present {
				status = models.StatusAbsent
			}
			err := st.CreateAttendance(&models.Attendance{
				UserID: userID,
				Date:   day.Format("2006-01-02"),
				Status: status,
			})
			if err != nil {
				t.Fatalf("mark %s: %v", day.Format("2006-01-02"), err)
			}
			marked++
		}
		day = day.AddDate(0, 0, 1)
	}
}

func TestStatsSeventeenOfTwenty(t *testing.T) {
	e := newEcho()
	st := store.NewMemory()
	if err := st.CreateUser(&models.User{Email: "u@company.com", Password: "x", Role: models.RoleUser}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	twentyWorkingDays(t, st, 1, 17)

	h := NewAttendanceHandler(st)
	c, rec := newContext(e, http.MethodGet, "/api/attendance/stats", "")
	actAs(c, 1, models.RoleUser)
	if err := h.Stats(c); err != nil {
		t.Fatalf("stats: %v", err)
	}

	var resp struct {
		TotalDays      int     `json:"total_days"`
		PresentDays    int     `json:"present_days"`
		AbsentDays     int     `json:"absent_days"`
		AttendanceRate float64 `json:"attendance_rate"`
	}
	decodeBody(t, rec, &resp)
	if resp.TotalDays != 20 || resp.PresentDays != 17 || resp.AbsentDays != 3 {
		t.Fatalf("unexpected counts: %+v", resp)
	}
	if math.Abs(resp.AttendanceRate-85.0) > 0.01 {
		t.Fatalf("expected rate ~85, got %f", resp.AttendanceRate)
	}
}

func TestStatsExcludesWeekendRows(t *testing.T) {
	e := newEcho()
	st := store.NewMemory()
	twentyWorkingDays(t, st, 1, 20)
	// A stray Saturday row must not inflate the denominator.
	err := st.CreateAttendance(&models.Attendance{
		UserID: 1, Date: "2025-06-07", Status: models.StatusAbsent,
	})
	if err != nil {
		t.Fatalf("weekend mark: %v", err)
	}

	h := NewAttendanceHandler(st)
	c, rec := newContext(e, http.MethodGet, "/api/attendance/stats", "")
	actAs(c, 1, models.RoleUser)
	if err := h.Stats(c); err != nil {
		t.Fatalf("stats: %v", err)
	}

	var resp struct {
		TotalDays      int     `json:"total_days"`
		AttendanceRate float64 `json:"attendance_rate"`
	}
	decodeBody(t, rec, &resp)
	if resp.TotalDays != 20 {
		t.Fatalf("weekend row counted: total_days=%d", resp.TotalDays)
	}
	if math.Abs(resp.AttendanceRate-100.0) > 0.01 {
		t.Fatalf("expected rate 100, got %f", resp.AttendanceRate)
	}
}

func TestCreateAttendanceConflictResponse(t *testing.T) {
	e := newEcho()
	st := store.NewMemory()
	h := NewAttendanceHandler(st)

	body := `{"user_id":1,"date":"2025-06-02","status":"present"}`
	c, rec := newContext(e, http.MethodPost, "/api/attendance", body)
	actAs(c, 1, models.RoleUser)
	if err := h.Create(c); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	c, _ = newContext(e, http.MethodPost, "/api/attendance", `{"user_id":1,"date":"2025-06-02","status":"absent"}`)
	actAs(c, 1, models.RoleUser)
	err := h.Create(c)
	if err == nil {
		t.Fatal("expected conflict on re-mark")
	}
	if code := httpStatus(t, err); code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}
}

func TestCreateAttendanceForOtherUserForbidden(t *testing.T) {
	e := newEcho()
	h := NewAttendanceHandler(store.NewMemory())

	c, _ := newContext(e, http.MethodPost, "/api/attendance", `{"user_id":9,"date":"2025-06-02","status":"present"}`)
	actAs(c, 1, models.RoleUser)
	err := h.Create(c)
	if err == nil {
		t.Fatal("expected forbidden")
	}
	if code := httpStatus(t, err); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestCreateAttendanceRejectsBadStatus(t *testing.T) {
	e := newEcho()
	h := NewAttendanceHandler(store.NewMemory())

	c, _ := newContext(e, http.MethodPost, "/api/attendance", `{"user_id":1,"date":"2025-06-02","status":"late"}`)
	actAs(c, 1, models.RoleUser)
	err := h.Create(c)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if code := httpStatus(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestListScopesNonAdminToOwnRecords(t *testing.T) {
	e := newEcho()
	st := seededStore(t)
	h := NewAttendanceHandler(st)

	// user 2 asking for user 3's records still only sees their own
	c, rec := newContext(e, http.MethodGet, "/api/attendance?user_id=3", "")
	actAs(c, 2, models.RoleUser)
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}

	var rows []attendanceRow
	decodeBody(t, rec, &rows)
	if len(rows) == 0 {
		t.Fatal("expected seeded rows for user 2")
	}
	for _, r := range rows {
		if r.UserID != 2 {
			t.Fatalf("leaked record for user %d", r.UserID)
		}
	}
	if rows[0].UserEmail != "user1@company.com" {
		t.Fatalf("expected enrichment with owner email, got %q", rows[0].UserEmail)
	}
}

func TestDeleteAttendanceNotFound(t *testing.T) {
	e := newEcho()
	h := NewAttendanceHandler(store.NewMemory())

	c, _ := newContext(e, http.MethodDelete, "/api/attendance/123", "")
	c.SetPath("/api/attendance/:id")
	c.SetParamNames("id")
	c.SetParamValues("123")
	actAs(c, 1, models.RoleAdmin)
	err := h.Delete(c)
	if err == nil {
		t.Fatal("expected not found")
	}
	if code := httpStatus(t, err); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestExportCSV(t *testing.T) {
	e := newEcho()
	st := store.NewMemory()
	if err := st.CreateUser(&models.User{Email: "u1@company.com", Password: "x", FullName: "User One", Role: models.RoleUser}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	for i, date := range []string{"2025-06-02", "2025-06-03"} {
		status := models.StatusPresent
		if i == 1 {
			status = models.StatusAbsent
		}
		if err := st.CreateAttendance(&models.Attendance{UserID: 1, Date: date, Status: status}); err != nil {
			t.Fatalf("mark %s: %v", date, err)
		}
	}

	h := NewAttendanceHandler(st)
	c, rec := newContext(e, http.MethodGet, "/api/attendance/export", "")
	actAs(c, 1, models.RoleUser)
	if err := h.Export(c); err != nil {
		t.Fatalf("export: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("expected attachment disposition, got %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "id,user_id,user_name,user_email,date,status" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "User One") || !strings.Contains(lines[1], "u1@company.com") {
		t.Fatalf("expected enriched row, got %q", lines[1])
	}
}

func TestForceSyncReportsTotals(t *testing.T) {
	e := newEcho()
	st := store.NewMemory()
	h := NewAttendanceHandler(st)

	c, rec := newContext(e, http.MethodPost, "/api/attendance/force-sync", "")
	actAs(c, 1, models.RoleAdmin)
	if err := h.ForceSync(c); err != nil {
		t.Fatalf("force-sync: %v", err)
	}

	var resp struct {
		Store             string `json:"store"`
		TotalUsers        int64  `json:"total_users"`
		AttendanceRecords int64  `json:"attendance_records"`
	}
	decodeBody(t, rec, &resp)
	if resp.Store != "memory" {
		t.Fatalf("expected memory store, got %q", resp.Store)
	}
	if resp.TotalUsers != 6 || resp.AttendanceRecords == 0 {
		t.Fatalf("unexpected totals: %+v", resp)
	}
}

func TestMonthYearQueryFilter(t *testing.T) {
	e := newEcho()
	st := store.NewMemory()
	for _, d := range []string{"2025-04-01", "2025-05-01", "2025-05-02"} {
		if err := st.CreateAttendance(&models.Attendance{UserID: 1, Date: d, Status: models.StatusPresent}); err != nil {
			t.Fatalf("mark %s: %v", d, err)
		}
	}

	h := NewAttendanceHandler(st)
	c, rec := newContext(e, http.MethodGet, fmt.Sprintf("/api/attendance?month=%d&year=%d", 5, 2025), "")
	actAs(c, 1, models.RoleUser)
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}

	var rows []attendanceRow
	decodeBody(t, rec, &rows)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for May 2025, got %d", len(rows))
	}
}
