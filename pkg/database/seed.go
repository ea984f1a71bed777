package database

import (
	"errors"
	"strings"

	"github.com/Payphone-Digital/carrental/config"
	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates initial data for the database
func Seed(db *gorm.DB, cfg config.SeedConfig) error {
	return SeedAdmin(db, cfg)
}

// SeedAdmin creates the configured admin account if it does not exist yet.
// Nothing is seeded when no admin mobile number is configured.
func SeedAdmin(db *gorm.DB, cfg config.SeedConfig) error {
	if cfg.AdminMobileNumber == "" {
		return nil
	}
	if cfg.AdminPassword == "" {
		return errors.New("SEED_ADMIN_PASSWORD must be set when SEED_ADMIN_MOBILE_NUMBER is set")
	}

	var existingUser model.User
	result := db.Where("mobile_number = ?", cfg.AdminMobileNumber).First(&existingUser)

	if result.Error == nil {
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		Name:          cfg.AdminName,
		Email:         strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		MobileNumber:  cfg.AdminMobileNumber,
		Address:       "-",
		Password:      string(hashedPassword),
		LicenseNumber: cfg.AdminLicenseNumber,
		Role:          constants.RoleAdmin,
	}

	return db.Create(&user).Error
}
