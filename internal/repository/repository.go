package repository

import (
	"context"
)

// Repository is a key-value store for session snapshots. A value is always
// replaced as a whole; there are no partial updates.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
