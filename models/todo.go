package models

import "time"

type Todo struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	Notes       string `json:"notes" gorm:"type:text;not null"`
	Completed   bool   `json:"completed"`
	DateCreated string `json:"date_created" gorm:"size:10"` // YYYY-MM-DD

	CreatedAt time.Time `json:"created_at"`
}
