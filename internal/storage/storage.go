package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Fetch when the object does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStore reads and writes whole objects in named buckets.
type ObjectStore interface {
	// Fetch returns the object's bytes, or an error wrapping ErrNotFound.
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
	// Put stores data under key. Writing a key that already exists is not
	// an error.
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
}
