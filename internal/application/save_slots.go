package application

import (
	"context"
	"time"

	"github.com/bnema/saveslots/internal/ports"
	"github.com/bnema/saveslots/internal/registry"
	"golang.org/x/sync/errgroup"
)

// Dependencies are the host collaborators one profile session needs.
type Dependencies struct {
	Profile   ports.Profile
	Remote    ports.BlobStore
	Local     ports.BlobStore
	Loadouts  ports.LoadoutLookup
	Refresher ports.DisplayRefresher
	Clock     ports.Clock
	Location  *time.Location

	// Source is read by the coordinator at login. Defaults to Remote.
	Source ports.BlobStore
}

// SaveSlots groups the components sharing one registry. Build a new one for
// every profile login; nothing is kept across logins.
type SaveSlots struct {
	Registry    *registry.Registry
	Saver       *SessionSaver
	Coordinator *SyncCoordinator
	Projector   *SelectionProjector
}

// NewSaveSlots wires a registry to its coordinator, saver and projector.
func NewSaveSlots(deps Dependencies, opts ...Option) *SaveSlots {
	reg := registry.New(deps.Clock)
	source := deps.Source
	if source == nil {
		source = deps.Remote
	}

	return &SaveSlots{
		Registry:    reg,
		Saver:       NewSessionSaver(reg, deps.Profile, deps.Remote, deps.Local, opts...),
		Coordinator: NewSyncCoordinator(reg, deps.Profile, source, opts...),
		Projector:   NewSelectionProjector(reg, deps.Profile, NewLabeler(deps.Loadouts, deps.Location), deps.Refresher, opts...),
	}
}

// Open fires both initialization signals concurrently, as a host does on
// login, and waits for the registry to be seeded.
func (s *SaveSlots) Open(ctx context.Context) (InitResult, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Coordinator.RemoteLoadDone(gctx)
	})
	g.Go(func() error {
		s.Coordinator.LocalProfileReady(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return InitResult{}, err
	}

	return s.Coordinator.Wait(ctx)
}
