// Package storage keeps uploaded images on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrTooLarge = errors.New("file exceeds maximum size")
	ErrNotImage = errors.New("file is not an image")
	ErrBadName  = errors.New("invalid file name")
)

// LocalStore writes files below a root directory, one subdirectory per kind.
type LocalStore struct {
	root    string
	maxSize int64
}

func NewLocalStore(root string, maxSize int64) *LocalStore {
	return &LocalStore{root: root, maxSize: maxSize}
}

func (s *LocalStore) Root() string {
	return s.root
}

// Validate checks the declared size and sniffs the content type of fh.
func (s *LocalStore) Validate(fh *multipart.FileHeader) error {
	_, err := s.detect(fh)
	return err
}

// detect returns the sniffed image type of fh. The client's file name and
// content type are never consulted.
func (s *LocalStore) detect(fh *multipart.FileHeader) (*mimetype.MIME, error) {
	if fh.Size > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, fh.Size)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	if !strings.HasPrefix(mime.String(), "image/") || mime.Extension() == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, mime.String())
	}

	return mime, nil
}

// Save validates fh and copies it into subdir under a random name whose
// extension follows the detected type. It returns the stored file name.
func (s *LocalStore) Save(subdir string, fh *multipart.FileHeader) (string, error) {
	mime, err := s.detect(fh)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + mime.Extension()

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1)); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("close file: %w", err)
	}

	return name, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *LocalStore) Remove(subdir, name string) error {
	if name == "" || name != filepath.Base(name) {
		return ErrBadName
	}
	err := os.Remove(filepath.Join(s.root, subdir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
