package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"docanalytics-backend/internal/shared/storage/object"
	"docanalytics-backend/internal/shared/util"
)

// Store implements ObjectStore using the local filesystem. Used in dev and
// tests; signed URLs are plain file URLs with no real expiry.
type Store struct {
	baseDir string
}

// New creates a new local object store rooted at baseDir.
func New(baseDir string) object.ObjectStore {
	return &Store{baseDir: baseDir}
}

// Save writes the reader to disk under the user's namespace, overwriting any
// existing object with the same name.
func (s *Store) Save(ctx context.Context, userID string, objectName string, r io.Reader) (string, int64, error) {
	sanitized, err := util.SanitizeFileName(objectName)
	if err != nil {
		return "", 0, fmt.Errorf("sanitize object name: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	userKey := util.HashUserKey(userID)
	dirPath := filepath.Join(s.baseDir, userKey)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", 0, fmt.Errorf("mkdir: %w", err)
	}

	fullPath := filepath.Join(dirPath, sanitized)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		return "", 0, fmt.Errorf("write body: %w", err)
	}

	return filepath.Join(userKey, sanitized), size, nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return nil, err
	}
	return os.Open(fullPath)
}

// Delete removes a stored object. Missing objects are not an error.
func (s *Store) Delete(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

// SignedURL returns a file URL for the object. Local storage has no real
// signing; downloadName is ignored.
func (s *Store) SignedURL(ctx context.Context, storageKey string, downloadName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_ = downloadName

	fullPath, err := s.resolve(storageKey)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(fullPath)
	if err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(abs), nil
}

func (s *Store) resolve(storageKey string) (string, error) {
	clean := filepath.Clean(storageKey)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key")
	}
	return filepath.Join(s.baseDir, clean), nil
}

var _ object.ObjectStore = (*Store)(nil)
