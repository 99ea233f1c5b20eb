// Package file stores blobs as files under a root directory. It backs the
// host's local persistence target.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/saveslots/internal/domain"
	"github.com/bnema/saveslots/internal/ports"
	"github.com/gofrs/flock"
)

const (
	storeDirMode    = 0o700
	blobFileMode    = 0o600
	lockFileName    = ".saveslots.lock"
	tempFilePattern = ".blob-*.tmp"
	lockRetryDelay  = 20 * time.Millisecond
)

// Store keeps one file per key. Writers in other processes are excluded with
// an advisory lock file in the root.
type Store struct {
	root string
	mu   sync.RWMutex
	lock *flock.Flock
}

var _ ports.BlobStore = (*Store)(nil)

func NewStore(root string) *Store {
	root = filepath.Clean(root)
	return &Store{root: root, lock: flock.New(filepath.Join(root, lockFileName))}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create blob directory: %w", err)
	}

	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	return writeAtomic(path, []byte(value))
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("blob %q: %w", key, domain.ErrKeyNotFound)
		}
		return "", fmt.Errorf("read blob %q: %w", key, err)
	}

	return string(data), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.root); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}

	return nil
}

func (s *Store) acquire(ctx context.Context) (func(), error) {
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("lock blob store: %w", err)
	}
	if !locked {
		return nil, errors.New("lock blob store: not acquired")
	}

	return func() { _ = s.lock.Unlock() }, nil
}

func (s *Store) pathForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("blob key is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") || cleaned == "." || cleaned == lockFileName {
		return "", fmt.Errorf("invalid blob key %q", key)
	}

	return filepath.Join(s.root, cleaned), nil
}

func writeAtomic(path string, data []byte) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp blob file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp blob file: %w", err)
	}

	if err := tempFile.Chmod(blobFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp blob file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp blob file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace blob file: %w", err)
	}
	cleanup = false

	return nil
}
