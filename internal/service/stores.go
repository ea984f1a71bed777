package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/Payphone-Digital/carrental/internal/model"
	"github.com/Payphone-Digital/carrental/internal/repository"
)

// UserStore is the credential store used by the auth and profile services.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByMobile(ctx context.Context, mobile string) (*model.User, error)
	FindConflicts(ctx context.Context, mobile, license, email string) ([]model.User, error)
	FindOthersByMobileOrEmail(ctx context.Context, excludeID uint, mobile, email string) ([]model.User, error)
	UpdateProfile(ctx context.Context, id uint, update repository.ProfileUpdate) error
}

// VerificationStore is the ledger of issued one-time codes.
type VerificationStore interface {
	Create(ctx context.Context, v *model.PhoneVerification) error
	FindLatestValid(ctx context.Context, mobile, code string, now time.Time) (*model.PhoneVerification, error)
	MarkUsed(ctx context.Context, id uint) (bool, error)
}

type CarStore interface {
	Create(ctx context.Context, car *model.Car) error
	GetByID(ctx context.Context, id uint) (*model.Car, error)
	ListByOwner(ctx context.Context, userID uint) ([]model.Car, error)
	Update(ctx context.Context, car *model.Car) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, q repository.CarSearch) ([]model.Car, int64, error)
}

// FileStore persists uploaded images.
type FileStore interface {
	Validate(fh *multipart.FileHeader) error
	Save(subdir string, fh *multipart.FileHeader) (string, error)
	Remove(subdir, name string) error
}

var (
	_ UserStore         = (*repository.UserRepository)(nil)
	_ VerificationStore = (*repository.PhoneVerificationRepository)(nil)
	_ CarStore          = (*repository.CarRepository)(nil)
)
