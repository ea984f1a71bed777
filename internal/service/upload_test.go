package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	apperrors "github.com/Payphone-Digital/carrental/internal/errors"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/Payphone-Digital/carrental/pkg/storage"
	"go.uber.org/zap"
)

func TestUploadService_SaveCarImage(t *testing.T) {
	logger.SetLogger(zap.NewNop())

	tests := []struct {
		name    string
		file    *multipart.FileHeader
		setup   func(f *fakeFileStore)
		wantErr error
	}{
		{"no file", nil, nil, apperrors.ErrNoFileUploaded},
		{"valid image", &multipart.FileHeader{Filename: "car.jpg", Size: 10}, nil, nil},
		{
			name:    "not an image",
			file:    &multipart.FileHeader{Filename: "notes.txt", Size: 10},
			setup:   func(f *fakeFileStore) { f.validateErr["notes.txt"] = storage.ErrNotImage },
			wantErr: apperrors.ErrInvalidAttachmentType,
		},
		{
			name:    "too large",
			file:    &multipart.FileHeader{Filename: "huge.png", Size: 10},
			setup:   func(f *fakeFileStore) { f.validateErr["huge.png"] = storage.ErrTooLarge },
			wantErr: apperrors.ErrAttachmentTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := newFakeFileStore()
			if tt.setup != nil {
				tt.setup(files)
			}
			svc := NewUploadService(files)

			url, err := svc.SaveCarImage(context.Background(), tt.file)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SaveCarImage() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !strings.HasPrefix(url, "/uploads/cars/") {
				t.Errorf("Expected /uploads/cars/ URL, got %q", url)
			}
		})
	}
}
