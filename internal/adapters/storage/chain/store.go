// Package chain reads and writes blobs through a primary store, falling back
// to a secondary one when the primary fails. The two stores may file the same
// blob under different keys.
package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/saveslots/internal/domain"
	"github.com/bnema/saveslots/internal/ports"
)

type Store struct {
	primary  ports.BlobStore
	fallback ports.BlobStore
	keys     map[string]string
}

var _ ports.BlobStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary blob store is nil")
	errNilFallbackStore = errors.New("fallback blob store is nil")
)

// KeyMap maps a primary key to the key the fallback store uses for the same
// blob. Keys absent from the map are used unchanged.
type KeyMap map[string]string

func NewStore(primary ports.BlobStore, fallback ports.BlobStore, keys KeyMap) *Store {
	store, err := NewStoreChecked(primary, fallback, keys)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.BlobStore, fallback ports.BlobStore, keys KeyMap) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	mapped := make(map[string]string, len(keys))
	for from, to := range keys {
		mapped[from] = to
	}

	return &Store{primary: primary, fallback: fallback, keys: mapped}, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, s.fallbackKey(key), value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

// Get only falls back when the primary fails to answer. A primary that has no
// blob for key is authoritative, so ErrKeyNotFound is returned unchanged.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) || errors.Is(err, domain.ErrKeyNotFound) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, s.fallbackKey(key))
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, s.fallbackKey(key))
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
}

func (s *Store) fallbackKey(key string) string {
	if mapped, ok := s.keys[key]; ok {
		return mapped
	}
	return key
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
