package database

import (
	"github.com/Payphone-Digital/carrental/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.PhoneVerification{},
		&model.Car{},
	)
}
