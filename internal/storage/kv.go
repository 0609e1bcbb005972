package storage

import "context"

// KVStore is the local key-value persistence collaborator used for comment
// forests, sort preferences and collapsed-comment tracking.
type KVStore interface {
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string) error
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
