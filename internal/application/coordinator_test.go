package application

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/saveslots/internal/adapters/storage/chain"
	"github.com/bnema/saveslots/internal/domain"
	"github.com/bnema/saveslots/internal/ports/mocks"
	"github.com/bnema/saveslots/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const existingBlob = `{"a":{"Session":{"GameSessionID":"a","Ship":"ship-a","Mutators":null},"Timestamp":"2026-03-01T10:00:00Z"},` +
	`"b":{"Session":{"GameSessionID":"b","Ship":"ship-b","Mutators":null},"Timestamp":"2026-03-01T11:00:00Z"}}`

func newCoordinatorFixture(blobs map[string]string, session *domain.Session) (*SyncCoordinator, *registry.Registry, *inMemoryProfile) {
	reg := registry.New(fixedClock{now: baseTime})
	profile := &inMemoryProfile{session: session}
	return NewSyncCoordinator(reg, profile, newInMemoryBlobStore(blobs)), reg, profile
}

func TestCoordinatorBootstrapsFromProfileWhenRemoteIsEmpty(t *testing.T) {
	t.Parallel()

	coordinator, reg, _ := newCoordinatorFixture(map[string]string{RemoteSessionsKey: ""}, &domain.Session{GameSessionID: "abc"})

	require.NoError(t, coordinator.RemoteLoadDone(context.Background()))
	assert.Equal(t, StateUninitialized, coordinator.State())
	coordinator.LocalProfileReady(context.Background())

	result, err := coordinator.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, InitResult{Source: SourceBootstrap, Slots: 1}, result)
	assert.Equal(t, StateInitialized, coordinator.State())

	record, ok := reg.Get("abc")
	require.True(t, ok)
	assert.Equal(t, baseTime, record.SavedAt)
}

func TestCoordinatorTreatsMissingKeyAsEmpty(t *testing.T) {
	t.Parallel()

	coordinator, reg, _ := newCoordinatorFixture(nil, nil)

	coordinator.LocalProfileReady(context.Background())
	require.NoError(t, coordinator.RemoteLoadDone(context.Background()))

	result, err := coordinator.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, InitResult{Source: SourceEmpty, Slots: 0}, result)
	assert.Equal(t, 0, reg.Len())
}

func TestCoordinatorLoadsRemoteAndRepairsMissingProfileSession(t *testing.T) {
	t.Parallel()

	coordinator, reg, _ := newCoordinatorFixture(map[string]string{RemoteSessionsKey: existingBlob}, &domain.Session{GameSessionID: "c"})

	coordinator.LocalProfileReady(context.Background())
	require.NoError(t, coordinator.RemoteLoadDone(context.Background()))

	result, err := coordinator.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, InitResult{Source: SourceRepair, Slots: 3}, result)
	for _, id := range []string{"a", "b", "c"} {
		assert.True(t, reg.Contains(id), id)
	}
}

func TestCoordinatorLoadsRemoteWithoutTouchingKnownProfileSession(t *testing.T) {
	t.Parallel()

	coordinator, reg, _ := newCoordinatorFixture(map[string]string{RemoteSessionsKey: existingBlob}, &domain.Session{GameSessionID: "a", Ship: "newer"})

	require.NoError(t, coordinator.RemoteLoadDone(context.Background()))
	coordinator.LocalProfileReady(context.Background())

	result, err := coordinator.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, result.Source)
	record, ok := reg.Get("a")
	require.True(t, ok)
	assert.Equal(t, "ship-a", record.Session.Ship)
}

func TestCoordinatorMalformedBlobFallsBackToBootstrap(t *testing.T) {
	t.Parallel()

	coordinator, reg, _ := newCoordinatorFixture(map[string]string{RemoteSessionsKey: "{not json"}, &domain.Session{GameSessionID: "abc"})

	require.NoError(t, coordinator.RemoteLoadDone(context.Background()))
	coordinator.LocalProfileReady(context.Background())

	result, err := coordinator.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, InitResult{Source: SourceBootstrap, Slots: 1}, result)
	assert.True(t, reg.Contains("abc"))
}

func TestCoordinatorReadFailureIsTreatedAsEmpty(t *testing.T) {
	t.Parallel()

	blobs := mocks.NewMockBlobStore(t)
	blobs.EXPECT().Get(mock.Anything, RemoteSessionsKey).Return("", errors.New("connection reset"))
	reg := registry.New(fixedClock{now: baseTime})
	coordinator := NewSyncCoordinator(reg, &inMemoryProfile{session: &domain.Session{GameSessionID: "abc"}}, blobs)

	require.NoError(t, coordinator.RemoteLoadDone(context.Background()))
	coordinator.LocalProfileReady(context.Background())

	result, err := coordinator.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceBootstrap, result.Source)
}

func TestCoordinatorMissingRemoteIgnoresLocalMirror(t *testing.T) {
	t.Parallel()

	remote := newInMemoryBlobStore(nil)
	local := newInMemoryBlobStore(map[string]string{
		LocalSessionsKey: `{"stale":{"Session":{"GameSessionID":"stale","Ship":"","Mutators":null},"Timestamp":"2026-02-01T10:00:00Z"}}`,
	})
	source := chain.NewStore(remote, local, chain.KeyMap{RemoteSessionsKey: LocalSessionsKey})
	reg := registry.New(fixedClock{now: baseTime})
	coordinator := NewSyncCoordinator(reg, &inMemoryProfile{session: &domain.Session{GameSessionID: "abc"}}, source)

	require.NoError(t, coordinator.RemoteLoadDone(context.Background()))
	coordinator.LocalProfileReady(context.Background())

	result, err := coordinator.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, InitResult{Source: SourceBootstrap, Slots: 1}, result)
	assert.True(t, reg.Contains("abc"))
	assert.False(t, reg.Contains("stale"))
}

func TestCoordinatorCancelledReadDoesNotSignal(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	blobs := mocks.NewMockBlobStore(t)
	blobs.EXPECT().Get(mock.Anything, RemoteSessionsKey).RunAndReturn(func(ctx context.Context, _ string) (string, error) {
		cancel()
		return "", ctx.Err()
	})
	coordinator := NewSyncCoordinator(registry.New(nil), &inMemoryProfile{}, blobs)

	coordinator.LocalProfileReady(context.Background())
	err := coordinator.RemoteLoadDone(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateUninitialized, coordinator.State())

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer waitCancel()
	_, err = coordinator.Wait(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCoordinatorIgnoresRepeatedSignals(t *testing.T) {
	t.Parallel()

	coordinator, reg, _ := newCoordinatorFixture(map[string]string{RemoteSessionsKey: existingBlob}, nil)
	var runs atomic.Int32
	coordinator.OnInitialized(func(InitResult) { runs.Add(1) })

	coordinator.RemoteLoaded(context.Background(), existingBlob)
	coordinator.RemoteLoaded(context.Background(), "")
	coordinator.LocalProfileReady(context.Background())
	coordinator.LocalProfileReady(context.Background())
	coordinator.RemoteLoaded(context.Background(), "{not json")

	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, 2, reg.Len())
}

func TestCoordinatorObserversRunInRegistrationOrder(t *testing.T) {
	t.Parallel()

	coordinator, _, _ := newCoordinatorFixture(nil, &domain.Session{GameSessionID: "abc"})
	var order []string
	coordinator.OnInitialized(func(InitResult) { order = append(order, "first") })
	coordinator.OnInitialized(func(InitResult) { order = append(order, "second") })

	coordinator.LocalProfileReady(context.Background())
	require.NoError(t, coordinator.RemoteLoadDone(context.Background()))
	coordinator.OnInitialized(func(result InitResult) {
		order = append(order, "late:"+result.Source)
	})

	assert.Equal(t, []string{"first", "second", "late:" + SourceBootstrap}, order)
}

func TestCoordinatorInitializesExactlyOnceUnderConcurrentSignals(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		coordinator, reg, _ := newCoordinatorFixture(map[string]string{RemoteSessionsKey: existingBlob}, &domain.Session{GameSessionID: "c"})
		var runs atomic.Int32
		coordinator.OnInitialized(func(InitResult) { runs.Add(1) })

		start := make(chan struct{})
		var g errgroup.Group
		g.Go(func() error {
			<-start
			return coordinator.RemoteLoadDone(context.Background())
		})
		g.Go(func() error {
			<-start
			coordinator.LocalProfileReady(context.Background())
			return nil
		})
		close(start)
		require.NoError(t, g.Wait())

		_, err := coordinator.Wait(context.Background())
		require.NoError(t, err)
		require.Equal(t, int32(1), runs.Load(), "iteration %d", i)
		require.Equal(t, 3, reg.Len(), "iteration %d", i)
	}
}

func TestInitStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "initialized", StateInitialized.String())
}
