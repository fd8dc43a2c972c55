package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore keeps document files on the local filesystem. Keys are opaque
// uuid-based names; callers persist them on the document record.
type LocalStore struct {
	documentsDir string
}

func NewLocalStore(uploadDir string) (*LocalStore, error) {
	documentsDir := filepath.Join(uploadDir, "documents")
	if err := os.MkdirAll(documentsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}
	return &LocalStore{documentsDir: documentsDir}, nil
}

func (s *LocalStore) Put(ctx context.Context, reader io.Reader, contentType string) (string, error) {
	key := uuid.New().String() + extensionFor(contentType)
	path := filepath.Join(s.documentsDir, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return key, nil
}

func (s *LocalStore) Read(ctx context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.documentsDir, filepath.Base(key)))
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if key == "" || key == PendingUploadKey {
		return nil
	}
	err := os.Remove(filepath.Join(s.documentsDir, filepath.Base(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStore) Exists(ctx context.Context, key string) (bool, int64, error) {
	info, err := os.Stat(filepath.Join(s.documentsDir, filepath.Base(key)))
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, info.Size(), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "application/pdf":
		return ".pdf"
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	return ""
}
