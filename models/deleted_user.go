package models

import (
	"time"

	"gorm.io/datatypes"
)

// DeletedUser keeps everything needed to undo a soft delete. The user's
// attendance and todos are snapshotted as JSON so restore brings the
// account back exactly as it was.
type DeletedUser struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	Email     string         `json:"email" gorm:"size:120"`
	Snapshot  datatypes.JSON `json:"snapshot" gorm:"not null"`
	DeletedAt time.Time      `json:"deleted_at"`
}

// UserArchive is the payload serialized into DeletedUser.Snapshot.
type UserArchive struct {
	User       User         `json:"user"`
	Attendance []Attendance `json:"attendance"`
	Todos      []Todo       `json:"todos"`
}
