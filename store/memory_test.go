package store

import (
	"errors"
	"testing"
	"time"

	"github.com/mufid-dev-alt/office-attendance-track-backend/models"
)

func seeded(t *testing.T) *Memory {
	t.Helper()
	m := NewMemory()
	if _, _, err := m.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return m
}

func TestSeedUsers(t *testing.T) {
	m := seeded(t)

	users, err := m.ListUsers()
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 6 {
		t.Fatalf("expected 6 seeded users, got %d", len(users))
	}

	admin, err := m.GetUserByEmail("admin@company.com")
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Fatalf("expected admin role, got %q", admin.Role)
	}
}

func TestSeedSkipsWeekends(t *testing.T) {
	m := seeded(t)

	records, err := m.ListAttendance(AttendanceFilter{})
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected seeded attendance records")
	}
	for _, r := range records {
		d, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			t.Fatalf("bad date %q: %v", r.Date, err)
		}
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("seeded record on a weekend: %s", r.Date)
		}
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	m := seeded(t)

	before, _, err := m.Seed()
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if before != 6 {
		t.Fatalf("second seed changed user count: %d", before)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	m := seeded(t)

	err := m.CreateUser(&models.User{Email: "Admin@Company.com", Password: "x", Role: models.RoleUser})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	m := seeded(t)

	orig, err := m.GetUserByID(2)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if err := m.CreateTodo(&models.Todo{UserID: 2, Notes: "hand over badge"}); err != nil {
		t.Fatalf("create todo: %v", err)
	}

	if _, err := m.SoftDeleteUser(2); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if _, err := m.GetUserByID(2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("user still live after soft delete: %v", err)
	}
	uid := uint(2)
	if rows, _ := m.ListAttendance(AttendanceFilter{UserID: &uid}); len(rows) != 0 {
		t.Fatalf("attendance still live after soft delete: %d rows", len(rows))
	}

	restored, err := m.RestoreUser(2)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.ID != orig.ID || restored.Email != orig.Email ||
		restored.Password != orig.Password || restored.FullName != orig.FullName ||
		restored.Role != orig.Role {
		t.Fatalf("restored user differs from original: %+v vs %+v", restored, orig)
	}

	todos, _ := m.ListTodos(&uid)
	if len(todos) != 1 {
		t.Fatalf("expected todo restored with user, got %d", len(todos))
	}
	if rows, _ := m.ListAttendance(AttendanceFilter{UserID: &uid}); len(rows) == 0 {
		t.Fatal("expected attendance restored with user")
	}
}

func TestPermanentDeleteBlocksRestore(t *testing.T) {
	m := seeded(t)

	if _, err := m.SoftDeleteUser(3); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if err := m.PermanentDeleteUser(3); err != nil {
		t.Fatalf("permanent delete: %v", err)
	}
	if _, err := m.RestoreUser(3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after permanent delete, got %v", err)
	}
}

func TestCreateAttendanceConflict(t *testing.T) {
	m := NewMemory()
	if err := m.CreateUser(&models.User{Email: "a@b.com", Password: "x", Role: models.RoleUser}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	rec := models.Attendance{UserID: 1, Date: "2025-06-02", Status: models.StatusPresent}
	if err := m.CreateAttendance(&rec); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	dup := models.Attendance{UserID: 1, Date: "2025-06-02", Status: models.StatusAbsent}
	if err := m.CreateAttendance(&dup); !errors.Is(err, ErrDuplicateAttendance) {
		t.Fatalf("expected ErrDuplicateAttendance, got %v", err)
	}
	// Same date for another user is fine.
	other := models.Attendance{UserID: 2, Date: "2025-06-02", Status: models.StatusPresent}
	if err := m.CreateAttendance(&other); err != nil {
		t.Fatalf("other user same date: %v", err)
	}
}

func TestAttendanceMonthYearFilter(t *testing.T) {
	m := NewMemory()
	dates := []string{"2025-05-30", "2025-06-02", "2025-06-03", "2024-06-03"}
	for _, d := range dates {
		if err := m.CreateAttendance(&models.Attendance{UserID: 1, Date: d, Status: models.StatusPresent}); err != nil {
			t.Fatalf("create %s: %v", d, err)
		}
	}

	month, year := 6, 2025
	rows, err := m.ListAttendance(AttendanceFilter{Month: &month, Year: &year})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for 2025-06, got %d", len(rows))
	}

	rows, _ = m.ListAttendance(AttendanceFilter{Month: &month})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows for June of any year, got %d", len(rows))
	}

	rows, _ = m.ListAttendance(AttendanceFilter{Year: &year})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows for 2025, got %d", len(rows))
	}
}

func TestTodoLifecycle(t *testing.T) {
	m := NewMemory()

	todo := models.Todo{UserID: 4, Notes: "book meeting room"}
	if err := m.CreateTodo(&todo); err != nil {
		t.Fatalf("create: %v", err)
	}
	if todo.ID == 0 || todo.DateCreated == "" {
		t.Fatalf("expected id and date_created to be set: %+v", todo)
	}

	todo.Completed = true
	if err := m.UpdateTodo(&todo); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := m.GetTodo(todo.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Completed {
		t.Fatal("expected todo marked completed")
	}

	if err := m.DeleteTodo(todo.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	uid := uint(4)
	left, _ := m.ListTodos(&uid)
	if len(left) != 0 {
		t.Fatalf("expected empty todo list after delete, got %d", len(left))
	}
}
