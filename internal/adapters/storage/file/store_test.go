package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bnema/saveslots/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "blob key is empty"},
		{name: "whitespace", key: "   ", wantErr: "blob key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid blob key"},
		{name: "traversal", key: "../escape", wantErr: "invalid blob key"},
		{name: "lock file", key: lockFileName, wantErr: "invalid blob key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "local")
	store := NewStore(root)
	want := `{"abc":{"Session":{"GameSessionID":"abc"},"Timestamp":"2026-03-01T10:00:00Z"}}`

	require.NoError(t, store.Put(context.Background(), "PRESERVED_SESSIONS", want))

	got, err := store.Get(context.Background(), "PRESERVED_SESSIONS")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(filepath.Join(root, "PRESERVED_SESSIONS"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(blobFileMode), info.Mode().Perm())

	require.NoError(t, store.Put(context.Background(), "PRESERVED_SESSIONS", "{}"))
	got, err = store.Get(context.Background(), "PRESERVED_SESSIONS")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)

	leftovers, err := filepath.Glob(filepath.Join(root, ".blob-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestStoreGetMissingKeyReportsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "PRESERVED_SESSIONS")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	require.NoError(t, store.Put(context.Background(), "PRESERVED_SESSIONS", "{}"))

	require.NoError(t, store.Delete(context.Background(), "PRESERVED_SESSIONS"))
	require.NoError(t, store.Delete(context.Background(), "PRESERVED_SESSIONS"))
	require.NoError(t, NewStore(filepath.Join(root, "missing")).Delete(context.Background(), "PRESERVED_SESSIONS"))

	_, err := store.Get(context.Background(), "PRESERVED_SESSIONS")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewStore(t.TempDir())

	require.ErrorIs(t, store.Put(ctx, "k", "v"), context.Canceled)
	_, err := store.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}

func TestStoreSharedRootAcrossInstances(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	first := NewStore(root)
	second := NewStore(root)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, first.Put(context.Background(), "PRESERVED_SESSIONS", `{"from":"first"}`))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, second.Put(context.Background(), "PRESERVED_SESSIONS", `{"from":"second"}`))
		}()
	}
	wg.Wait()

	got, err := first.Get(context.Background(), "PRESERVED_SESSIONS")
	require.NoError(t, err)
	assert.Contains(t, []string{`{"from":"first"}`, `{"from":"second"}`}, got)
}
