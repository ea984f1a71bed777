package service

import (
	"errors"

	apperrors "github.com/Payphone-Digital/carrental/internal/errors"
	"github.com/Payphone-Digital/carrental/pkg/storage"
)

// mapStorageError converts file store failures into domain errors.
func mapStorageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrTooLarge):
		return apperrors.WrapError(apperrors.ErrAttachmentTooLarge, err)
	case errors.Is(err, storage.ErrNotImage):
		return apperrors.WrapError(apperrors.ErrInvalidAttachmentType, err)
	default:
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
}
