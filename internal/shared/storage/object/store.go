package object

import (
	"context"
	"io"
	"time"
)

// SignedURLTTL is the nominal lifetime of generated download URLs. Backends
// with a shorter provider limit clamp it.
const SignedURLTTL = 180 * 24 * time.Hour // ~6 months

// ObjectStore defines the contract for saving and retrieving binary objects.
// Save overwrites any existing object with the same name.
type ObjectStore interface {
	Save(ctx context.Context, userID string, objectName string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
	// SignedURL returns a time-limited URL for downloading the object with a
	// forced-download disposition carrying downloadName.
	SignedURL(ctx context.Context, storageKey string, downloadName string) (string, error)
}
