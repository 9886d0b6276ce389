package store

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mufid-dev-alt/office-attendance-track-backend/models"
)

// Memory is the in-process store. It backs demo deployments and the
// degrade path when the database cannot be reached. All data is lost on
// process exit, which is acceptable for those uses.
type Memory struct {
	mu         sync.RWMutex
	users      map[uint]models.User
	attendance map[uint]models.Attendance
	todos      map[uint]models.Todo
	deleted    map[uint]models.DeletedUser // keyed by original user ID
	archiveSeq uint
}

func NewMemory() *Memory {
	return &Memory{
		users:      map[uint]models.User{},
		attendance: map[uint]models.Attendance{},
		todos:      map[uint]models.Todo{},
		deleted:    map[uint]models.DeletedUser{},
	}
}

func (m *Memory) Name() string { return "memory" }
func (m *Memory) Ping() error  { return nil }

/* ===== Users ===== */

func (m *Memory) ListUsers() ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetUserByID(id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if strings.ToLower(u.Email) == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range m.users {
		if strings.ToLower(existing.Email) == email {
			return ErrDuplicateEmail
		}
	}
	if u.ID == 0 {
		u.ID = m.maxUserID() + 1
	}
	u.Email = email
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) SoftDeleteUser(id uint) (*models.DeletedUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	archive := models.UserArchive{User: u}
	for _, a := range m.attendance {
		if a.UserID == id {
			archive.Attendance = append(archive.Attendance, a)
		}
	}
	for _, t := range m.todos {
		if t.UserID == id {
			archive.Todos = append(archive.Todos, t)
		}
	}
	snapshot, err := json.Marshal(archive)
	if err != nil {
		return nil, err
	}

	m.archiveSeq++
	du := models.DeletedUser{
		ID:        m.archiveSeq,
		UserID:    id,
		Email:     u.Email,
		Snapshot:  snapshot,
		DeletedAt: time.Now(),
	}
	m.deleted[id] = du

	delete(m.users, id)
	for aid, a := range m.attendance {
		if a.UserID == id {
			delete(m.attendance, aid)
		}
	}
	for tid, t := range m.todos {
		if t.UserID == id {
			delete(m.todos, tid)
		}
	}
	return &du, nil
}

func (m *Memory) RestoreUser(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	du, ok := m.deleted[id]
	if !ok {
		return nil, ErrNotFound
	}
	var archive models.UserArchive
	if err := json.Unmarshal(du.Snapshot, &archive); err != nil {
		return nil, err
	}

	m.users[archive.User.ID] = archive.User
	for _, a := range archive.Attendance {
		m.attendance[a.ID] = a
	}
	for _, t := range archive.Todos {
		m.todos[t.ID] = t
	}
	delete(m.deleted, id)

	u := archive.User
	return &u, nil
}

func (m *Memory) PermanentDeleteUser(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.deleted[id]; !ok {
		return ErrNotFound
	}
	delete(m.deleted, id)
	return nil
}

func (m *Memory) ListDeletedUsers() ([]models.DeletedUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.DeletedUser, 0, len(m.deleted))
	for _, du := range m.deleted {
		out = append(out, du)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

/* ===== Attendance ===== */

func (m *Memory) ListAttendance(f AttendanceFilter) ([]models.Attendance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Attendance
	for _, a := range m.attendance {
		if matchAttendance(a, f) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) CreateAttendance(a *models.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.attendance {
		if existing.UserID == a.UserID && existing.Date == a.Date {
			return ErrDuplicateAttendance
		}
	}
	if a.ID == 0 {
		a.ID = m.maxAttendanceID() + 1
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.attendance[a.ID] = *a
	return nil
}

func (m *Memory) DeleteAttendance(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.attendance[id]; !ok {
		return ErrNotFound
	}
	delete(m.attendance, id)
	return nil
}

/* ===== Todos ===== */

func (m *Memory) ListTodos(userID *uint) ([]models.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Todo
	for _, t := range m.todos {
		if userID != nil && t.UserID != *userID {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetTodo(id uint) (*models.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *Memory) CreateTodo(t *models.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == 0 {
		t.ID = m.maxTodoID() + 1
	}
	if t.DateCreated == "" {
		t.DateCreated = time.Now().Format("2006-01-02")
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	m.todos[t.ID] = *t
	return nil
}

func (m *Memory) UpdateTodo(t *models.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.todos[t.ID]; !ok {
		return ErrNotFound
	}
	m.todos[t.ID] = *t
	return nil
}

func (m *Memory) DeleteTodo(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.todos[id]; !ok {
		return ErrNotFound
	}
	delete(m.todos, id)
	return nil
}

/* ===== Seed ===== */

func (m *Memory) Seed() (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.users) == 0 {
		users := DefaultUsers()
		for i := range users {
			users[i].ID = uint(i + 1)
			m.users[users[i].ID] = users[i]
		}
		for i, a := range DefaultAttendance(users) {
			a.ID = uint(i + 1)
			m.attendance[a.ID] = a
		}
	}
	return int64(len(m.users)), int64(len(m.attendance)), nil
}

/* ===== helpers ===== */

func (m *Memory) maxUserID() uint {
	var max uint
	for id := range m.users {
		if id > max {
			max = id
		}
	}
	for id := range m.deleted {
		if id > max {
			max = id
		}
	}
	return max
}

func (m *Memory) maxAttendanceID() uint {
	var max uint
	for id := range m.attendance {
		if id > max {
			max = id
		}
	}
	return max
}

func (m *Memory) maxTodoID() uint {
	var max uint
	for id := range m.todos {
		if id > max {
			max = id
		}
	}
	return max
}

func matchAttendance(a models.Attendance, f AttendanceFilter) bool {
	if f.UserID != nil && a.UserID != *f.UserID {
		return false
	}
	if f.Month != nil || f.Year != nil {
		d, err := time.Parse("2006-01-02", a.Date)
		if err != nil {
			return false
		}
		if f.Year != nil && d.Year() != *f.Year {
			return false
		}
		if f.Month != nil && int(d.Month()) != *f.Month {
			return false
		}
	}
	return true
}
