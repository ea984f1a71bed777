package model

import "time"

// PhoneVerification is one issued one-time code. Rows are never deleted;
// Used flips from false to true at most once.
type PhoneVerification struct {
	ID               uint      `gorm:"primaryKey"`
	MobileNumber     string    `gorm:"column:mobile_number;type:varchar(20);index:idx_phone_verifications_mobile;not null"`
	VerificationCode string    `gorm:"column:verification_code;type:varchar(10);not null"`
	ExpiresAt        time.Time `gorm:"column:expires_at;not null"`
	Used             bool      `gorm:"column:used;default:false;not null"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (PhoneVerification) TableName() string {
	return "phone_verifications"
}
