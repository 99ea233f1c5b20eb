package application

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/saveslots/internal/domain"
	"github.com/bnema/saveslots/internal/ports"
	"github.com/bnema/saveslots/internal/registry"
	"github.com/bnema/saveslots/internal/telemetry"
	"go.uber.org/zap"
)

type InitState int

const (
	StateUninitialized InitState = iota
	StateInitialized
)

func (s InitState) String() string {
	if s == StateInitialized {
		return "initialized"
	}
	return "uninitialized"
}

// Initialization sources.
const (
	SourceEmpty     = "empty"
	SourceRemote    = "remote"
	SourceBootstrap = "bootstrap"
	SourceRepair    = "repair"
)

type InitResult struct {
	Source string
	Slots  int
}

// SyncCoordinator seeds the registry once both the remote blob load and the
// host profile load have completed, in whichever order they finish.
//
// Each signal takes the mutex, records itself, and claims initialization only
// if the other signal is already recorded. The claim and the flags change
// under the same lock, so exactly one caller runs the procedure.
type SyncCoordinator struct {
	registry *registry.Registry
	profile  ports.Profile
	blobs    ports.BlobStore
	logger   *zap.Logger
	metrics  *telemetry.Metrics

	mu           sync.Mutex
	remoteDone   bool
	profileReady bool
	claimed      bool
	blob         string
	result       InitResult
	observers    []func(InitResult)
	done         chan struct{}
}

// NewSyncCoordinator builds a coordinator reading the registry blob from
// blobs under RemoteSessionsKey. A fresh coordinator is needed per profile
// login.
func NewSyncCoordinator(reg *registry.Registry, profile ports.Profile, blobs ports.BlobStore, opts ...Option) *SyncCoordinator {
	o := applyOptions(opts)

	return &SyncCoordinator{
		registry: reg,
		profile:  profile,
		blobs:    blobs,
		logger:   o.logger,
		metrics:  o.metrics,
		done:     make(chan struct{}),
	}
}

// RemoteLoadDone fetches the persisted registry and signals its completion.
// A missing key is an empty blob. Any other read failure is logged and also
// treated as empty. The only error returned is the context's, in which case
// no signal is recorded.
//
// The read has no deadline of its own: if it never returns, initialization
// never happens.
func (c *SyncCoordinator) RemoteLoadDone(ctx context.Context) error {
	blob, err := c.blobs.Get(ctx, RemoteSessionsKey)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !errors.Is(err, domain.ErrKeyNotFound) {
			c.logger.Warn("could not read preserved sessions; continuing without them", zap.Error(err))
		}
		blob = ""
	}

	c.RemoteLoaded(ctx, blob)
	return nil
}

// RemoteLoaded records an already fetched blob. Hosts that perform the fetch
// themselves call this instead of RemoteLoadDone.
func (c *SyncCoordinator) RemoteLoaded(ctx context.Context, blob string) {
	c.mu.Lock()
	if c.remoteDone {
		c.mu.Unlock()
		return
	}
	c.remoteDone = true
	c.blob = blob
	run := c.claimLocked()
	c.mu.Unlock()

	if run {
		c.logger.Info("preserved sessions were loaded after the rest of the profile")
		c.initialize(ctx, blob)
	}
}

// LocalProfileReady signals that the host profile has been validated and the
// preserved session field can be read.
func (c *SyncCoordinator) LocalProfileReady(ctx context.Context) {
	c.mu.Lock()
	if c.profileReady {
		c.mu.Unlock()
		return
	}
	c.profileReady = true
	blob := c.blob
	run := c.claimLocked()
	c.mu.Unlock()

	if run {
		c.logger.Info("profile was loaded after preserved sessions")
		c.initialize(ctx, blob)
	}
}

func (c *SyncCoordinator) claimLocked() bool {
	if c.claimed || !c.remoteDone || !c.profileReady {
		return false
	}
	c.claimed = true
	return true
}

func (c *SyncCoordinator) State() InitState {
	select {
	case <-c.done:
		return StateInitialized
	default:
		return StateUninitialized
	}
}

// Wait blocks until initialization has completed or ctx is done.
func (c *SyncCoordinator) Wait(ctx context.Context) (InitResult, error) {
	select {
	case <-c.done:
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.result, nil
	case <-ctx.Done():
		return InitResult{}, ctx.Err()
	}
}

// OnInitialized registers fn to run after initialization, in registration
// order. If initialization already happened fn runs immediately.
func (c *SyncCoordinator) OnInitialized(fn func(InitResult)) {
	c.mu.Lock()
	select {
	case <-c.done:
		result := c.result
		c.mu.Unlock()
		fn(result)
		return
	default:
	}
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

func (c *SyncCoordinator) initialize(ctx context.Context, blob string) {
	session, err := c.profile.PreservedSession(ctx)
	if err != nil {
		c.logger.Warn("could not read profile preserved session", zap.Error(err))
		session = nil
	}

	source := SourceEmpty
	if blob == "" {
		c.logger.Info("no preserved sessions found")
	} else if err := c.registry.LoadFrom([]byte(blob)); err != nil {
		c.logger.Error("discarding unreadable preserved sessions", zap.Error(err))
		blob = ""
	} else {
		source = SourceRemote
		c.logger.Info("loaded preserved sessions", zap.Int("count", c.registry.Len()))
	}

	if session.Valid() && !c.registry.Contains(session.GameSessionID) {
		if _, err := c.registry.Set(*session); err != nil {
			c.logger.Error("could not add profile preserved session", zap.Error(err))
		} else if blob == "" {
			source = SourceBootstrap
			c.logger.Info("populating preserved sessions from preserved session",
				zap.String("session_id", session.GameSessionID))
		} else {
			source = SourceRepair
			c.logger.Info("preserved session missing from preserved sessions; adding it",
				zap.String("session_id", session.GameSessionID))
		}
	}

	result := InitResult{Source: source, Slots: c.registry.Len()}
	c.metrics.ObserveInitialization(source)
	c.metrics.SetSlots(result.Slots)

	c.mu.Lock()
	c.result = result
	observers := c.observers
	c.observers = nil
	close(c.done)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(result)
	}
}
