package models

import "time"

// One row per user per working day.
type Attendance struct {
	ID     uint    `json:"id" gorm:"primaryKey"`
	UserID uint    `json:"user_id" gorm:"uniqueIndex:idx_attendance_user_date;not null"`
	Date   string  `json:"date" gorm:"size:10;uniqueIndex:idx_attendance_user_date;not null"` // YYYY-MM-DD
	Status string  `json:"status" gorm:"size:20;not null"`                                    // present | absent
	Notes  *string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)
