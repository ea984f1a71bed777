package service

import (
	"context"
	"mime/multipart"
	"path"

	"github.com/Payphone-Digital/carrental/internal/constants"
	apperrors "github.com/Payphone-Digital/carrental/internal/errors"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
)

type UploadService struct {
	files FileStore
}

func NewUploadService(files FileStore) *UploadService {
	return &UploadService{files: files}
}

// SaveCarImage stores an uploaded car photo and returns its public URL.
func (s *UploadService) SaveCarImage(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "SaveCarImage")

	if fh == nil {
		return "", apperrors.ErrNoFileUploaded
	}
	if err := s.files.Validate(fh); err != nil {
		logger.WarnWithContext(ctx, "Upload rejected").
			String("filename", fh.Filename).
			Err(err).
			Log()
		return "", mapStorageError(err)
	}

	name, err := s.files.Save(constants.UploadSubdirCars, fh)
	if err != nil {
		return "", mapStorageError(err)
	}

	url := path.Join(constants.UploadURLPrefix, constants.UploadSubdirCars, name)
	logger.InfoWithContext(ctx, "Car image stored").
		String("url", url).
		Log()

	return url, nil
}
