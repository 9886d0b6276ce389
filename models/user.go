package models

import "time"

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash
	FullName  string    `json:"full_name" gorm:"size:120"`
	Role      string    `json:"role" gorm:"size:20;not null"` // "admin" | "user"
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
