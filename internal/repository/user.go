package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/carrental/internal/model"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ProfileUpdate holds the user-editable profile fields.
type ProfileUpdate struct {
	Name         string
	Email        string
	MobileNumber string
	Address      string
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "CreateUser")

	start := time.Now()
	err := translateError(r.db.WithContext(ctx).Create(user).Error)
	duration := time.Since(start)

	if err != nil {
		if IsDuplicateKey(err) {
			logger.WarnWithContext(ctx, "User insert hit unique constraint").
				Mobile("mobile_number", user.MobileNumber).
				Duration(duration).
				Err(err).
				Log()
		} else {
			logger.ErrorWithContext(ctx, "Failed to create user").
				Mobile("mobile_number", user.MobileNumber).
				Duration(duration).
				Err(err).
				Log()
		}
		return err
	}

	logger.InfoWithContext(ctx, "User created").
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetUserByID")

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, err
	}

	start := time.Now()
	var user model.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "User lookup by ID failed").
			Uint("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved successfully").
		Uint("user_id", id).
		Duration(duration).
		Log()

	return &user, nil
}

// GetByMobile finds user by mobile number
func (r *UserRepository) GetByMobile(ctx context.Context, mobile string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetUserByMobile")

	var user model.User
	if err := r.db.WithContext(ctx).Where("mobile_number = ?", mobile).First(&user).Error; err != nil {
		logger.DebugWithContext(ctx, "User lookup by mobile failed").
			Mobile("mobile_number", mobile).
			Err(err).
			Log()
		return nil, err
	}

	return &user, nil
}

// FindConflicts returns every user sharing the mobile number, license
// number or email.
func (r *UserRepository) FindConflicts(ctx context.Context, mobile, license, email string) ([]model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "FindConflicts")

	var users []model.User
	err := r.db.WithContext(ctx).
		Where("mobile_number = ? OR license_number = ? OR email = ?", mobile, license, email).
		Find(&users).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to look up conflicting users").
			Err(err).
			Log()
		return nil, err
	}

	return users, nil
}

// FindOthersByMobileOrEmail returns users other than excludeID holding
// the given mobile number or email.
func (r *UserRepository) FindOthersByMobileOrEmail(ctx context.Context, excludeID uint, mobile, email string) ([]model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "FindOthersByMobileOrEmail")

	var users []model.User
	err := r.db.WithContext(ctx).
		Where("id <> ? AND (mobile_number = ? OR email = ?)", excludeID, mobile, email).
		Find(&users).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to look up users by mobile or email").
			Uint("exclude_id", excludeID).
			Err(err).
			Log()
		return nil, err
	}

	return users, nil
}

// UpdateProfile overwrites the profile fields of user id.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateProfile")

	start := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":          update.Name,
			"email":         update.Email,
			"mobile_number": update.MobileNumber,
			"address":       update.Address,
		})
	duration := time.Since(start)

	if err := translateError(result.Error); err != nil {
		logger.WarnWithContext(ctx, "Failed to update profile").
			Uint("user_id", id).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Profile updated").
		Uint("user_id", id).
		Duration(duration).
		Log()

	return nil
}
