package database

import (
	"github.com/minilms/backend/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Module{},
		&model.Enrollment{},
		&model.Feedback{},
		&model.Notification{},
		&model.PasswordReset{},
	)
}
