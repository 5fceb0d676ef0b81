package storage

import (
	"context"
	"io"
)

// Storage is the minimal object-store surface the receipt flow needs:
// put a file, fetch it back, delete it, resolve its public URL.
type Storage interface {
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	GetURL(key string) string
}
