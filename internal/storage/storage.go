package storage

import (
	"context"
	"io"
)

// PendingUploadKey is the placeholder locator written for a document slot
// that was declared at submission but has no file yet.
const PendingUploadKey = "pending-upload"

// BlobStore is the interface for document file backends. The local
// filesystem implementation is used in development; a cloud bucket can be
// swapped in without touching callers.
type BlobStore interface {
	// Put stores the content and returns the generated storage key.
	Put(ctx context.Context, reader io.Reader, contentType string) (string, error)

	// Read opens the stored content for reading.
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the stored content. Deleting the pending-upload
	// sentinel or an already-missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists checks if content is present and returns its size.
	Exists(ctx context.Context, key string) (bool, int64, error)
}
