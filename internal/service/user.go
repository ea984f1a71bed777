package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Payphone-Digital/carrental/internal/dto"
	apperrors "github.com/Payphone-Digital/carrental/internal/errors"
	"github.com/Payphone-Digital/carrental/internal/model"
	"github.com/Payphone-Digital/carrental/internal/repository"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"gorm.io/gorm"
)

type UserService struct {
	repoUser   UserStore
	cache      *CacheService
	profileTTL time.Duration
}

func NewUserService(repo UserStore, cache *CacheService, profileTTL time.Duration) *UserService {
	return &UserService{
		repoUser:   repo,
		cache:      cache,
		profileTTL: profileTTL,
	}
}

// GetByID loads the user record, bypassing the cache. It is used for role
// checks, which must see the current role.
func (s *UserService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetByID")

	user, err := s.repoUser.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to get user by ID").
			Uint("user_id", id).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return user, nil
}

// GetProfile returns the public profile of id, served from cache when
// possible.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetProfile")

	key := UserKey(id)
	var cached dto.UserResponse
	if s.cache != nil && s.cache.GetJSON(ctx, key, &cached) {
		logger.DebugWithContext(ctx, "Profile served from cache").
			Uint("user_id", id).
			Log()
		return &cached, nil
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := dto.ToUserResponse(user)
	if s.cache != nil {
		s.cache.SetJSON(ctx, key, response, s.profileTTL)
	}

	return &response, nil
}

// UpdateProfile overwrites the editable fields of id. Mobile number and
// email must stay unique across users.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdateProfile")

	update := repository.ProfileUpdate{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		MobileNumber: req.MobileNumber,
		Address:      strings.TrimSpace(req.Address),
	}

	if err := s.checkOwnership(ctx, id, update); err != nil {
		return nil, err
	}

	if err := s.repoUser.UpdateProfile(ctx, id, update); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperrors.ErrUserNotFound
		case repository.IsDuplicateKey(err):
			return nil, s.updateDuplicateError(ctx, id, update, err)
		default:
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	if s.cache != nil {
		s.cache.Delete(ctx, UserKey(id))
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "Profile updated").
		Uint("user_id", id).
		Log()

	response := dto.ToUserResponse(user)
	return &response, nil
}

// InvalidateProfile drops the cached profile of id.
func (s *UserService) InvalidateProfile(ctx context.Context, id uint) {
	if s.cache != nil {
		s.cache.Delete(ctx, UserKey(id))
	}
}

func (s *UserService) checkOwnership(ctx context.Context, id uint, update repository.ProfileUpdate) error {
	others, err := s.repoUser.FindOthersByMobileOrEmail(ctx, id, update.MobileNumber, update.Email)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if dup := profileConflict(others, update); dup != nil {
		logger.InfoWithContext(ctx, "Profile update conflicts with another user").
			Uint("user_id", id).
			String("reason", dup.Message).
			Log()
		return dup
	}
	return nil
}

func (s *UserService) updateDuplicateError(ctx context.Context, id uint, update repository.ProfileUpdate, cause error) error {
	if others, err := s.repoUser.FindOthersByMobileOrEmail(ctx, id, update.MobileNumber, update.Email); err == nil {
		if dup := profileConflict(others, update); dup != nil {
			return apperrors.WrapError(dup, cause)
		}
	}

	var keyErr *repository.DuplicateKeyError
	if errors.As(cause, &keyErr) {
		switch keyErr.Field() {
		case "mobile_number":
			return apperrors.WrapError(apperrors.ErrMobileTaken, cause)
		case "email":
			return apperrors.WrapError(apperrors.ErrDuplicateEmail, cause)
		}
	}

	return apperrors.WrapError(apperrors.ErrDuplicateUser, cause)
}

func profileConflict(others []model.User, update repository.ProfileUpdate) *apperrors.DomainError {
	var mobileHit, emailHit bool
	for _, u := range others {
		mobileHit = mobileHit || u.MobileNumber == update.MobileNumber
		emailHit = emailHit || u.Email == update.Email
	}
	switch {
	case mobileHit:
		return apperrors.ErrMobileTaken
	case emailHit:
		return apperrors.ErrDuplicateEmail
	}
	return nil
}
