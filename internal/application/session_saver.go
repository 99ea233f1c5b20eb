package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/saveslots/internal/domain"
	"github.com/bnema/saveslots/internal/ports"
	"github.com/bnema/saveslots/internal/registry"
	"github.com/bnema/saveslots/internal/telemetry"
	"go.uber.org/zap"
)

// SessionSaver mirrors the host's store and clear operations into the
// registry and writes the registry back to both persistence targets.
type SessionSaver struct {
	registry *registry.Registry
	profile  ports.Profile
	remote   ports.BlobStore
	local    ports.BlobStore
	logger   *zap.Logger
	metrics  *telemetry.Metrics
}

// NewSessionSaver builds a saver. Either store may be nil, in which case that
// target is skipped.
func NewSessionSaver(reg *registry.Registry, profile ports.Profile, remote, local ports.BlobStore, opts ...Option) *SessionSaver {
	o := applyOptions(opts)

	return &SessionSaver{
		registry: reg,
		profile:  profile,
		remote:   remote,
		local:    local,
		logger:   o.logger,
		metrics:  o.metrics,
	}
}

// BeforeStore runs ahead of the host storing session into its single slot.
func (s *SessionSaver) BeforeStore(session *domain.Session) {
	if !session.Valid() {
		return
	}

	record, err := s.registry.Set(*session)
	if err != nil {
		s.logger.Error("could not record preserved session", zap.Error(err))
		return
	}
	s.logger.Info("saving session",
		zap.String("session_id", record.ID()),
		zap.Time("saved_at", record.SavedAt))
}

// AfterStore runs once the host has written its own copy.
func (s *SessionSaver) AfterStore(ctx context.Context) {
	if err := s.WriteBack(ctx); err != nil {
		s.logger.Warn("write-back after store failed", zap.Error(err))
	}
}

// BeforeClear drops the slot the host is about to clear.
func (s *SessionSaver) BeforeClear(ctx context.Context) {
	session, err := s.profile.PreservedSession(ctx)
	if err != nil {
		s.logger.Warn("could not read preserved session before clear", zap.Error(err))
		return
	}
	if !session.Valid() {
		return
	}

	s.logger.Info("removing session", zap.String("session_id", session.GameSessionID))
	s.registry.Remove(session.GameSessionID)
}

func (s *SessionSaver) AfterClear(ctx context.Context) {
	if err := s.WriteBack(ctx); err != nil {
		s.logger.Warn("write-back after clear failed", zap.Error(err))
	}
}

// Store records session and writes the registry back in one step.
func (s *SessionSaver) Store(ctx context.Context, session *domain.Session) error {
	if !session.Valid() {
		return fmt.Errorf("store preserved session: %w: %w", domain.ErrIntegrity, domain.ErrEmptySessionID)
	}
	s.BeforeStore(session)
	return s.WriteBack(ctx)
}

// Forget removes the slot for id and writes the registry back. The slot the
// profile currently preserves is refused: it would be repaired back on the
// next initialization, so it has to go through clear instead.
func (s *SessionSaver) Forget(ctx context.Context, id string) error {
	if !s.registry.Contains(id) {
		return nil
	}

	current, err := s.profile.PreservedSession(ctx)
	if err != nil {
		return fmt.Errorf("forget slot %q: load profile preserved session: %w", id, err)
	}
	if current.Valid() && current.GameSessionID == id {
		return fmt.Errorf("forget slot %q: it is the profile's preserved session, use clear: %w", id, domain.ErrIntegrity)
	}

	if !s.registry.Remove(id) {
		return nil
	}
	s.logger.Info("removing session", zap.String("session_id", id))
	return s.WriteBack(ctx)
}

// WriteBack persists the whole registry to the remote and local targets. Both
// targets are attempted even if the first one fails.
func (s *SessionSaver) WriteBack(ctx context.Context) error {
	data, err := s.registry.SerializeAll()
	if err != nil {
		return err
	}
	payload := string(data)
	count := s.registry.Len()

	var writeErr error
	if s.remote != nil {
		err := s.remote.Put(ctx, RemoteSessionsKey, payload)
		s.metrics.ObserveWrite(telemetry.TargetRemote, err)
		if err != nil {
			writeErr = errors.Join(writeErr, fmt.Errorf("write remote preserved sessions: %w", err))
		}
	}
	if s.local != nil {
		err := s.local.Put(ctx, LocalSessionsKey, payload)
		s.metrics.ObserveWrite(telemetry.TargetLocal, err)
		if err != nil {
			writeErr = errors.Join(writeErr, fmt.Errorf("write local preserved sessions: %w", err))
		}
	}
	s.metrics.SetSlots(count)

	if writeErr != nil {
		return writeErr
	}

	s.logger.Info("wrote preserved sessions", zap.Int("count", count))
	return nil
}
