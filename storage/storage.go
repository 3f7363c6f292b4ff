// Package storage holds the blob backends. Keys are opaque slash-separated
// paths owned by the file service; backends never interpret them.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrObjectNotFound is returned by Get when no object exists under the key.
	ErrObjectNotFound = errors.New("object not found")
	// ErrNotSupported is returned for operations a backend cannot provide.
	ErrNotSupported = errors.New("operation not supported by this backend")
)

// BlobStore reads and writes opaque byte buffers under a namespaced key.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// PresignURL returns a time-limited download URL, or ErrNotSupported.
	PresignURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}
