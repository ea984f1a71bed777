package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = req.MultipartForm.RemoveAll() })

	return req.MultipartForm.File["image"][0]
}

func TestLocalStore_Validate(t *testing.T) {
	store := NewLocalStore(t.TempDir(), 1024)

	tests := []struct {
		name    string
		file    string
		content []byte
		wantErr error
	}{
		{"png accepted", "front.png", pngHeader, nil},
		{"text rejected", "front.png", []byte("hello, not an image"), ErrNotImage},
		{"too large", "big.png", append(append([]byte{}, pngHeader...), make([]byte, 2048)...), ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Validate(fileHeader(t, tt.file, tt.content))
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() unexpected error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLocalStore_SaveAndRemove(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, 1024)

	name, err := store.Save("licenses", fileHeader(t, "Front.PNG", pngHeader))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Ext(name) != ".png" {
		t.Errorf("stored name %q should carry the detected extension", name)
	}

	stored, err := os.ReadFile(filepath.Join(root, "licenses", name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(stored, pngHeader) {
		t.Error("stored content differs from upload")
	}

	if err := store.Remove("licenses", name); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "licenses", name)); !os.IsNotExist(err) {
		t.Error("Expected file to be removed")
	}
	if err := store.Remove("licenses", name); err != nil {
		t.Errorf("Remove() of missing file error = %v", err)
	}
}

func TestLocalStore_RemoveRejectsTraversal(t *testing.T) {
	store := NewLocalStore(t.TempDir(), 1024)
	if err := store.Remove("licenses", "../secret"); !errors.Is(err, ErrBadName) {
		t.Errorf("Remove() error = %v, want ErrBadName", err)
	}
}

func TestLocalStore_SaveNamesByDetectedType(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, 1024)

	tests := []struct {
		name    string
		file    string
		content []byte
		wantExt string
	}{
		{"html name with png content", "evil.html", append(append([]byte{}, pngHeader...), []byte("<script>alert(1)</script>")...), ".png"},
		{"no extension", "front", pngHeader, ".png"},
		{"jpeg named png", "front.png", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := store.Save("cars", fileHeader(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if got := filepath.Ext(name); got != tt.wantExt {
				t.Errorf("stored name %q has extension %q, want %q", name, got, tt.wantExt)
			}
		})
	}
}
