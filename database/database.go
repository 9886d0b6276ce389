package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mufid-dev-alt/office-attendance-track-backend/config"
	"github.com/mufid-dev-alt/office-attendance-track-backend/models"
	"github.com/mufid-dev-alt/office-attendance-track-backend/store"
)

// Connect opens the configured store and seeds the demo dataset once.
// When the database is unreachable the service degrades to the
// in-memory store instead of refusing to start.
func Connect(cfg *config.Config) store.Store {
	st := open(cfg)

	users, attendance, err := st.Seed()
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("store %q ready: %d users, %d attendance records", st.Name(), users, attendance)
	return st
}

func open(cfg *config.Config) store.Store {
	if cfg.DBDriver == "memory" {
		return store.NewMemory()
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Printf("[store] %s unreachable (%v), falling back to in-memory store", cfg.DBDriver, err)
		return store.NewMemory()
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Attendance{},
		&models.Todo{},
		&models.DeletedUser{},
	); err != nil {
		log.Printf("[store] auto migrate failed (%v), falling back to in-memory store", err)
		return store.NewMemory()
	}

	return store.NewGorm(db, cfg.DBDriver)
}
