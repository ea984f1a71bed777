package model

import (
	"time"

	"gorm.io/datatypes"
)

// LicenseImages holds the stored file names of both sides of a driver's license.
type LicenseImages struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type User struct {
	ID             uint                              `gorm:"primaryKey"`
	Name           string                            `gorm:"column:name;not null"`
	Email          string                            `gorm:"column:email;uniqueIndex:idx_users_email;not null"`
	MobileNumber   string                            `gorm:"column:mobile_number;uniqueIndex:idx_users_mobile_number;not null"`
	Address        string                            `gorm:"column:address;not null"`
	Password       string                            `gorm:"column:password;not null" json:"-"`
	LicenseNumber  string                            `gorm:"column:license_number;uniqueIndex:idx_users_license_number;not null"`
	DriversLicense datatypes.JSONType[LicenseImages] `gorm:"column:drivers_license_url"`
	Role           string                            `gorm:"column:role;type:varchar(16);default:'user';not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (User) TableName() string {
	return "users"
}

// Unique index names, used to identify the colliding field of a unique violation.
const (
	UserEmailIndex   = "idx_users_email"
	UserMobileIndex  = "idx_users_mobile_number"
	UserLicenseIndex = "idx_users_license_number"
)
