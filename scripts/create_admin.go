// scripts/create_admin.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/mufid-dev-alt/office-attendance-track-backend/config"
	"github.com/mufid-dev-alt/office-attendance-track-backend/database"
	"github.com/mufid-dev-alt/office-attendance-track-backend/models"
	"github.com/mufid-dev-alt/office-attendance-track-backend/store"
)

// Creates an extra admin account against the configured store. Override
// the defaults with ADMIN_EMAIL / ADMIN_PASSWORD.
func main() {
	cfg := config.Load()
	st := database.Connect(cfg)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@company.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u := models.User{
		Email:    email,
		Password: string(hashed),
		FullName: "Admin User",
		Role:     models.RoleAdmin,
	}
	if err := st.CreateUser(&u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			fmt.Println("admin user already exists:", email)
			os.Exit(0)
		}
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created")
	fmt.Println("  email:", email)
	fmt.Println("  password:", password, "(change it after first login)")
}
