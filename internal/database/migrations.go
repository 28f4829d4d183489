package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/akshay-h-dev/milestack/internal/models"
)

// AutoMigrate creates or updates the schema for every collection.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Milestone{},
		&models.ChatThread{},
		&models.Invite{},
		&models.Activity{},
	)
}

// Prepare is the start-up helper that opens nothing itself but brings an
// already-open handle to a usable state.
func Prepare(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil database handle")
	}

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
