package store

import (
	"errors"

	"github.com/mufid-dev-alt/office-attendance-track-backend/models"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrDuplicateAttendance = errors.New("attendance already recorded for this date")
)

// AttendanceFilter narrows attendance queries. Nil fields are ignored.
type AttendanceFilter struct {
	UserID *uint
	Month  *int // 1..12
	Year   *int
}

// Store is the persistence boundary. Two implementations exist: a GORM
// backed one and an in-memory one used for demo mode and as a fallback
// when the database is unreachable.
type Store interface {
	// Users
	ListUsers() ([]models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(u *models.User) error
	SoftDeleteUser(id uint) (*models.DeletedUser, error)
	RestoreUser(id uint) (*models.User, error)
	PermanentDeleteUser(id uint) error
	ListDeletedUsers() ([]models.DeletedUser, error)

	// Attendance
	ListAttendance(f AttendanceFilter) ([]models.Attendance, error)
	CreateAttendance(a *models.Attendance) error
	DeleteAttendance(id uint) error

	// Todos
	ListTodos(userID *uint) ([]models.Todo, error)
	GetTodo(id uint) (*models.Todo, error)
	CreateTodo(t *models.Todo) error
	UpdateTodo(t *models.Todo) error
	DeleteTodo(id uint) error

	// Seed inserts the demo dataset when the user table is empty and
	// reports resulting totals. Safe to call repeatedly.
	Seed() (users int64, attendance int64, err error)
	Ping() error
	Name() string
}
