package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/carrental/internal/model"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"gorm.io/gorm"
)

// PhoneVerificationRepository is the ledger of issued one-time codes.
type PhoneVerificationRepository struct {
	db *gorm.DB
}

func NewPhoneVerificationRepository(db *gorm.DB) *PhoneVerificationRepository {
	return &PhoneVerificationRepository{db: db}
}

func (r *PhoneVerificationRepository) Create(ctx context.Context, v *model.PhoneVerification) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "CreateVerification")

	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to record verification code").
			Mobile("mobile_number", v.MobileNumber).
			Err(err).
			Log()
		return err
	}

	logger.DebugWithContext(ctx, "Verification code recorded").
		Uint("verification_id", v.ID).
		Mobile("mobile_number", v.MobileNumber).
		Log()

	return nil
}

// FindLatestValid returns the newest unused, unexpired row matching mobile
// and code. It returns gorm.ErrRecordNotFound when there is none.
func (r *PhoneVerificationRepository) FindLatestValid(ctx context.Context, mobile, code string, now time.Time) (*model.PhoneVerification, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "FindLatestValid")

	var v model.PhoneVerification
	err := r.db.WithContext(ctx).
		Where("mobile_number = ? AND verification_code = ? AND used = ? AND expires_at > ?", mobile, code, false, now.UTC()).
		Order("created_at DESC").
		Order("id DESC").
		First(&v).Error
	if err != nil {
		logger.DebugWithContext(ctx, "No outstanding verification code").
			Mobile("mobile_number", mobile).
			Err(err).
			Log()
		return nil, err
	}

	return &v, nil
}

// MarkUsed consumes row id. It reports false when the row was already
// used, so concurrent consumers of the same code see exactly one success.
func (r *PhoneVerificationRepository) MarkUsed(ctx context.Context, id uint) (bool, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "MarkUsed")

	result := r.db.WithContext(ctx).
		Model(&model.PhoneVerification{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to mark verification code used").
			Uint("verification_id", id).
			Err(result.Error).
			Log()
		return false, result.Error
	}

	consumed := result.RowsAffected == 1
	logger.DebugWithContext(ctx, "Verification code consume attempt").
		Uint("verification_id", id).
		Bool("consumed", consumed).
		Log()

	return consumed, nil
}
