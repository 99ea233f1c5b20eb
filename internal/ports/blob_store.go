package ports

import "context"

// BlobStore is a string key-value store. Get returns domain.ErrKeyNotFound
// (possibly wrapped) when the key has never been written.
type BlobStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
