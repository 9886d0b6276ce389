package store

import (
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mufid-dev-alt/office-attendance-track-backend/models"
)

// Demo window for seeded attendance, matching the data the frontend
// demos against.
var (
	seedStart = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	seedEnd   = time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC)
)

// DefaultUsers returns the demo accounts with zero IDs so each store
// allocates its own. Passwords are bcrypt hashes of admin123 / user123.
func DefaultUsers() []models.User {
	type acct struct {
		email, name, role, pass string
	}
	accts := []acct{
		{"admin@company.com", "Admin User", models.RoleAdmin, "admin123"},
		{"user1@company.com", "User One", models.RoleUser, "user123"},
		{"user2@company.com", "User Two", models.RoleUser, "user123"},
		{"user3@company.com", "User Three", models.RoleUser, "user123"},
		{"user4@company.com", "User Four", models.RoleUser, "user123"},
		{"user5@company.com", "User Five", models.RoleUser, "user123"},
	}

	users := make([]models.User, 0, len(accts))
	for _, a := range accts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.pass), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("seed: hash password: %v", err)
		}
		users = append(users, models.User{
			Email:     a.email,
			Password:  string(hash),
			FullName:  a.name,
			Role:      a.role,
			CreatedAt: time.Now(),
		})
	}
	return users
}

// DefaultAttendance generates weekday-only records for the given users
// (admin excluded) across the demo window, ~85% present. Callers must
// pass users whose IDs are already allocated.
func DefaultAttendance(users []models.User) []models.Attendance {
	rng := rand.New(rand.NewSource(seedStart.Unix()))

	var records []models.Attendance
	for _, u := range users {
		if u.Role != models.RoleUser {
			continue
		}
		for d := seedStart; !d.After(seedEnd); d = d.AddDate(0, 0, 1) {
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
			status := models.StatusPresent
			if rng.Float64() >= 0.85 {
				status = models.StatusAbsent
			}
			records = append(records, models.Attendance{
				UserID: u.ID,
				Date:   d.Format("2006-01-02"),
				Status: status,
			})
		}
	}
	return records
}
