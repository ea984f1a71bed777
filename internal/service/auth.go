package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/internal/dto"
	apperrors "github.com/Payphone-Digital/carrental/internal/errors"
	"github.com/Payphone-Digital/carrental/internal/model"
	"github.com/Payphone-Digital/carrental/internal/repository"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/Payphone-Digital/carrental/pkg/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuthService struct {
	users  UserStore
	files  FileStore
	hasher PasswordHasher
	tokens *JWTService
}

func NewAuthService(users UserStore, files FileStore, hasher PasswordHasher, tokens *JWTService) *AuthService {
	return &AuthService{
		users:  users,
		files:  files,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a user from the registration form and both license
// images, then signs the user in.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest, license dto.LicenseUpload) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Register")

	logger.InfoWithContext(ctx, "Registering user").
		Mobile("mobile_number", req.MobileNumber).
		Log()

	if license.Front == nil || license.Back == nil {
		return nil, apperrors.ErrMissingAttachment
	}
	for _, fh := range []*multipartFile{{"front", license.Front}, {"back", license.Back}} {
		if err := s.files.Validate(fh.header); err != nil {
			logger.WarnWithContext(ctx, "License image rejected").
				String("side", fh.side).
				Err(err).
				Log()
			return nil, mapStorageError(err)
		}
	}

	if !validation.IsValidLicense(req.LicenseNumber) {
		return nil, apperrors.ErrInvalidLicenseFormat
	}

	email := normalizeEmail(req.Email)

	if err := s.checkConflicts(ctx, req.MobileNumber, req.LicenseNumber, email); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	front, err := s.files.Save(constants.UploadSubdirLicenses, license.Front)
	if err != nil {
		return nil, mapStorageError(err)
	}
	back, err := s.files.Save(constants.UploadSubdirLicenses, license.Back)
	if err != nil {
		s.removeFiles(ctx, front)
		return nil, mapStorageError(err)
	}

	user := &model.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          email,
		MobileNumber:   req.MobileNumber,
		Address:        strings.TrimSpace(req.Address),
		Password:       digest,
		LicenseNumber:  req.LicenseNumber,
		DriversLicense: datatypes.NewJSONType(model.LicenseImages{Front: front, Back: back}),
		Role:           constants.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.removeFiles(ctx, front, back)
		if repository.IsDuplicateKey(err) {
			return nil, s.duplicateError(ctx, req.MobileNumber, req.LicenseNumber, email, err)
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	created, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	token, err := s.tokens.IssueSessionToken(created.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User registered").
		Uint("user_id", created.ID).
		Log()

	return &dto.AuthResponse{User: dto.ToUserResponse(created), Token: token}, nil
}

// Login exchanges a mobile number and password for a session token. An
// unknown number and a wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Login")

	user, err := s.users.GetByMobile(ctx, req.MobileNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Login failed").
				Mobile("mobile_number", req.MobileNumber).
				Log()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.hasher.Compare(user.Password, req.Password) {
		logger.InfoWithContext(ctx, "Login failed").
			Mobile("mobile_number", req.MobileNumber).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSessionToken(user.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User logged in").
		Uint("user_id", user.ID).
		Log()

	return &dto.AuthResponse{User: dto.ToUserResponse(user), Token: token}, nil
}

// checkConflicts reports the first colliding field in the order mobile,
// license, email.
func (s *AuthService) checkConflicts(ctx context.Context, mobile, license, email string) error {
	conflicts, err := s.users.FindConflicts(ctx, mobile, license, email)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if dup := conflictError(conflicts, mobile, license, email); dup != nil {
		logger.InfoWithContext(ctx, "Registration conflicts with existing user").
			String("reason", dup.Message).
			Log()
		return dup
	}
	return nil
}

// duplicateError names the field behind a unique violation raised by the
// insert itself.
func (s *AuthService) duplicateError(ctx context.Context, mobile, license, email string, cause error) error {
	if conflicts, err := s.users.FindConflicts(ctx, mobile, license, email); err == nil {
		if dup := conflictError(conflicts, mobile, license, email); dup != nil {
			return apperrors.WrapError(dup, cause)
		}
	}

	var keyErr *repository.DuplicateKeyError
	if errors.As(cause, &keyErr) {
		switch keyErr.Field() {
		case "mobile_number":
			return apperrors.WrapError(apperrors.ErrDuplicateMobile, cause)
		case "license_number":
			return apperrors.WrapError(apperrors.ErrDuplicateLicense, cause)
		case "email":
			return apperrors.WrapError(apperrors.ErrDuplicateEmail, cause)
		}
	}

	return apperrors.WrapError(apperrors.ErrDuplicateUser, cause)
}

func (s *AuthService) removeFiles(ctx context.Context, names ...string) {
	for _, name := range names {
		if err := s.files.Remove(constants.UploadSubdirLicenses, name); err != nil {
			logger.WarnWithContext(ctx, "Failed to remove stored license image").
				String("file", name).
				Err(err).
				Log()
		}
	}
}

func conflictError(users []model.User, mobile, license, email string) *apperrors.DomainError {
	var mobileHit, licenseHit, emailHit bool
	for _, u := range users {
		mobileHit = mobileHit || u.MobileNumber == mobile
		licenseHit = licenseHit || u.LicenseNumber == license
		emailHit = emailHit || u.Email == email
	}
	switch {
	case mobileHit:
		return apperrors.ErrDuplicateMobile
	case licenseHit:
		return apperrors.ErrDuplicateLicense
	case emailHit:
		return apperrors.ErrDuplicateEmail
	}
	return nil
}

type multipartFile struct {
	side   string
	header *multipart.FileHeader
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
