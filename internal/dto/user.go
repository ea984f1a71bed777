package dto

import (
	"mime/multipart"

	"github.com/Payphone-Digital/carrental/internal/model"
)

// RegisterRequest is bound from the multipart registration form. The license
// images travel next to it as file parts.
type RegisterRequest struct {
	Name          string `form:"name" binding:"required,max=100"`
	Email         string `form:"email" binding:"required,email,max=255"`
	MobileNumber  string `form:"mobileNumber" binding:"required,ph_mobile"`
	Address       string `form:"address" binding:"required"`
	Password      string `form:"password" binding:"required,min=6,max=100"`
	LicenseNumber string `form:"licenseNumber"`
}

// LicenseUpload carries the two uploaded sides of the license.
type LicenseUpload struct {
	Front *multipart.FileHeader
	Back  *multipart.FileHeader
}

type LoginRequest struct {
	MobileNumber string `json:"mobileNumber" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

type SendVerificationRequest struct {
	MobileNumber string `json:"mobileNumber" binding:"required"`
}

// VerifyPhoneRequest has no binding rules; missing fields are reported with
// a single combined message by the verification service.
type VerifyPhoneRequest struct {
	Token            string `json:"token"`
	VerificationCode string `json:"verificationCode"`
}

type UpdateProfileRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Email        string `json:"email" binding:"required,email,max=255"`
	MobileNumber string `json:"mobileNumber" binding:"required,ph_mobile"`
	Address      string `json:"address" binding:"required"`
}

type UserResponse struct {
	ID                uint                `json:"id"`
	Name              string              `json:"name"`
	Email             string              `json:"email"`
	MobileNumber      string              `json:"mobileNumber"`
	Address           string              `json:"address"`
	DriversLicenseURL model.LicenseImages `json:"driversLicenseUrl"`
	LicenseNumber     string              `json:"licenseNumber"`
	Role              string              `json:"role"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		MobileNumber:      u.MobileNumber,
		Address:           u.Address,
		DriversLicenseURL: u.DriversLicense.Data(),
		LicenseNumber:     u.LicenseNumber,
		Role:              u.Role,
	}
}
