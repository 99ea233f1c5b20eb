package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/saveslots/internal/domain"
	portmocks "github.com/bnema/saveslots/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var sessionKeys = KeyMap{"PreservedSessions": "PRESERVED_SESSIONS"}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockBlobStore(t)
	fallback := portmocks.NewMockBlobStore(t)
	store := NewStore(primary, fallback, sessionKeys)

	primary.EXPECT().Get(mock.Anything, "PreservedSessions").Return(`{"from":"cloud"}`, nil).Once()

	value, err := store.Get(context.Background(), "PreservedSessions")
	require.NoError(t, err)
	assert.Equal(t, `{"from":"cloud"}`, value)
}

func TestStoreGetFallsBackUnderMappedKey(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockBlobStore(t)
	fallback := portmocks.NewMockBlobStore(t)
	store := NewStore(primary, fallback, sessionKeys)

	primary.EXPECT().Get(mock.Anything, "PreservedSessions").Return("", errors.New("cloud unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, "PRESERVED_SESSIONS").Return(`{"from":"disk"}`, nil).Once()

	value, err := store.Get(context.Background(), "PreservedSessions")
	require.NoError(t, err)
	assert.Equal(t, `{"from":"disk"}`, value)
}

func TestStoreGetDoesNotFallbackWhenPrimaryHasNoBlob(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockBlobStore(t)
	fallback := portmocks.NewMockBlobStore(t)
	store := NewStore(primary, fallback, sessionKeys)

	primary.EXPECT().Get(mock.Anything, "PreservedSessions").
		Return("", fmt.Errorf("blob: %w", domain.ErrKeyNotFound)).Once()

	_, err := store.Get(context.Background(), "PreservedSessions")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
	fallback.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockBlobStore(t)
	fallback := portmocks.NewMockBlobStore(t)
	store := NewStore(primary, fallback, nil)

	primary.EXPECT().Get(mock.Anything, "other").Return("", errors.New("cloud failed")).Once()
	fallback.EXPECT().Get(mock.Anything, "other").Return("", errors.New("disk failed")).Once()

	_, err := store.Get(context.Background(), "other")
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "cloud failed")
	assert.ErrorContains(t, err, "disk failed")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockBlobStore(t)
	fallback := portmocks.NewMockBlobStore(t)
	store := NewStore(primary, fallback, sessionKeys)

	primary.EXPECT().Put(mock.Anything, "PreservedSessions", "{}").Return(errors.New("cloud failed")).Once()
	fallback.EXPECT().Put(mock.Anything, "PRESERVED_SESSIONS", "{}").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), "PreservedSessions", "{}"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockBlobStore(t)
	fallback := portmocks.NewMockBlobStore(t)
	store := NewStore(primary, fallback, sessionKeys)

	primary.EXPECT().Put(mock.Anything, "PreservedSessions", "{}").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), "PreservedSessions", "{}"))
}

func TestStoreDeleteFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockBlobStore(t)
	fallback := portmocks.NewMockBlobStore(t)
	store := NewStore(primary, fallback, sessionKeys)

	primary.EXPECT().Delete(mock.Anything, "PreservedSessions").Return(errors.New("cloud failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, "PRESERVED_SESSIONS").Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), "PreservedSessions"))
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockBlobStore(t)
	fallback := portmocks.NewMockBlobStore(t)
	store := NewStore(primary, fallback, sessionKeys)

	primary.EXPECT().Get(mock.Anything, "PreservedSessions").Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), "PreservedSessions")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewStoreCheckedRejectsNilStores(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockBlobStore(t), nil)
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockBlobStore(t), nil, nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}

func TestNewStoreCopiesKeyMap(t *testing.T) {
	t.Parallel()

	keys := KeyMap{"a": "b"}
	store := NewStore(portmocks.NewMockBlobStore(t), portmocks.NewMockBlobStore(t), keys)
	keys["a"] = "changed"

	assert.Equal(t, "b", store.fallbackKey("a"))
	assert.Equal(t, "unmapped", store.fallbackKey("unmapped"))
}
