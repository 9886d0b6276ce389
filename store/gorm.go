package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mufid-dev-alt/office-attendance-track-backend/models"
)

// Gorm persists through a relational database (Postgres in production,
// SQLite for local runs).
type Gorm struct {
	db     *gorm.DB
	driver string
}

func NewGorm(db *gorm.DB, driver string) *Gorm {
	return &Gorm{db: db, driver: driver}
}

func (g *Gorm) Name() string { return g.driver }

func (g *Gorm) Ping() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

/* ===== Users ===== */

func (g *Gorm) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := g.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (g *Gorm) GetUserByID(id uint) (*models.User, error) {
	var u models.User
	if err := g.db.First(&u, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &u, nil
}

func (g *Gorm) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	email = strings.ToLower(strings.TrimSpace(email))
	if err := g.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &u, nil
}

func (g *Gorm) CreateUser(u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	var dup models.User
	if err := g.db.Where("email = ?", u.Email).First(&dup).Error; err == nil {
		return ErrDuplicateEmail
	}
	return g.db.Create(u).Error
}

func (g *Gorm) SoftDeleteUser(id uint) (*models.DeletedUser, error) {
	var du models.DeletedUser
	err := g.db.Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, id).Error; err != nil {
			return notFoundOr(err)
		}

		archive := models.UserArchive{User: u}
		if err := tx.Where("user_id = ?", id).Find(&archive.Attendance).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Find(&archive.Todos).Error; err != nil {
			return err
		}
		snapshot, err := json.Marshal(archive)
		if err != nil {
			return err
		}

		du = models.DeletedUser{
			UserID:    id,
			Email:     u.Email,
			Snapshot:  snapshot,
			DeletedAt: time.Now(),
		}
		if err := tx.Create(&du).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", id).Delete(&models.Todo{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &du, nil
}

func (g *Gorm) RestoreUser(id uint) (*models.User, error) {
	var restored models.User
	err := g.db.Transaction(func(tx *gorm.DB) error {
		var du models.DeletedUser
		if err := tx.Where("user_id = ?", id).First(&du).Error; err != nil {
			return notFoundOr(err)
		}
		var archive models.UserArchive
		if err := json.Unmarshal(du.Snapshot, &archive); err != nil {
			return err
		}

		if err := tx.Create(&archive.User).Error; err != nil {
			return err
		}
		if len(archive.Attendance) > 0 {
			if err := tx.Create(&archive.Attendance).Error; err != nil {
				return err
			}
		}
		if len(archive.Todos) > 0 {
			if err := tx.Create(&archive.Todos).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.DeletedUser{}, du.ID).Error; err != nil {
			return err
		}
		restored = archive.User
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &restored, nil
}

func (g *Gorm) PermanentDeleteUser(id uint) error {
	res := g.db.Where("user_id = ?", id).Delete(&models.DeletedUser{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Gorm) ListDeletedUsers() ([]models.DeletedUser, error) {
	var out []models.DeletedUser
	if err := g.db.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

/* ===== Attendance ===== */

func (g *Gorm) ListAttendance(f AttendanceFilter) ([]models.Attendance, error) {
	tx := g.db.Model(&models.Attendance{})
	if f.UserID != nil {
		tx = tx.Where("user_id = ?", *f.UserID)
	}
	// Dates are stored as YYYY-MM-DD, so month/year filters work as
	// prefix/segment matches on both Postgres and SQLite.
	switch {
	case f.Year != nil && f.Month != nil:
		tx = tx.Where("date LIKE ?", fmt.Sprintf("%04d-%02d-%%", *f.Year, *f.Month))
	case f.Year != nil:
		tx = tx.Where("date LIKE ?", fmt.Sprintf("%04d-%%", *f.Year))
	case f.Month != nil:
		tx = tx.Where("date LIKE ?", fmt.Sprintf("%%-%02d-%%", *f.Month))
	}

	var rows []models.Attendance
	if err := tx.Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (g *Gorm) CreateAttendance(a *models.Attendance) error {
	var dup models.Attendance
	err := g.db.Where("user_id = ? AND date = ?", a.UserID, a.Date).First(&dup).Error
	if err == nil {
		return ErrDuplicateAttendance
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return g.db.Create(a).Error
}

func (g *Gorm) DeleteAttendance(id uint) error {
	res := g.db.Delete(&models.Attendance{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

/* ===== Todos ===== */

func (g *Gorm) ListTodos(userID *uint) ([]models.Todo, error) {
	tx := g.db.Model(&models.Todo{})
	if userID != nil {
		tx = tx.Where("user_id = ?", *userID)
	}
	var todos []models.Todo
	if err := tx.Order("id ASC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (g *Gorm) GetTodo(id uint) (*models.Todo, error) {
	var t models.Todo
	if err := g.db.First(&t, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &t, nil
}

func (g *Gorm) CreateTodo(t *models.Todo) error {
	if t.DateCreated == "" {
		t.DateCreated = time.Now().Format("2006-01-02")
	}
	return g.db.Create(t).Error
}

func (g *Gorm) UpdateTodo(t *models.Todo) error {
	res := g.db.Model(&models.Todo{}).Where("id = ?", t.ID).
		Updates(map[string]any{"notes": t.Notes, "completed": t.Completed})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Gorm) DeleteTodo(id uint) error {
	res := g.db.Delete(&models.Todo{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

/* ===== Seed ===== */

func (g *Gorm) Seed() (int64, int64, error) {
	var userCount int64
	if err := g.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return 0, 0, err
	}
	if userCount == 0 {
		users := DefaultUsers()
		if err := g.db.Create(&users).Error; err != nil {
			return 0, 0, err
		}
		records := DefaultAttendance(users)
		if err := g.db.CreateInBatches(&records, 500).Error; err != nil {
			return 0, 0, err
		}
	}

	var attendanceCount int64
	if err := g.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return 0, 0, err
	}
	if err := g.db.Model(&models.Attendance{}).Count(&attendanceCount).Error; err != nil {
		return 0, 0, err
	}
	return userCount, attendanceCount, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
