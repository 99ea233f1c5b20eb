package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/saveslots/internal/domain"
)

var baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// scriptedClock returns the queued instants in order, then repeats the last.
type scriptedClock struct {
	mu    sync.Mutex
	times []time.Time
}

func (c *scriptedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.times[0]
	if len(c.times) > 1 {
		c.times = c.times[1:]
	}
	return now
}

type inMemoryProfile struct {
	mu      sync.Mutex
	session *domain.Session
	sets    int
}

func (p *inMemoryProfile) PreservedSession(_ context.Context) (*domain.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.session.Clone(), nil
}

func (p *inMemoryProfile) SetPreservedSession(_ context.Context, session *domain.Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.session = session.Clone()
	p.sets++
	return nil
}

func (p *inMemoryProfile) currentID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return ""
	}
	return p.session.GameSessionID
}

type inMemoryBlobStore struct {
	mu     sync.Mutex
	values map[string]string
	puts   int
}

func newInMemoryBlobStore(values map[string]string) *inMemoryBlobStore {
	if values == nil {
		values = map[string]string{}
	}
	return &inMemoryBlobStore{values: values}
}

func (s *inMemoryBlobStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("blob %q: %w", key, domain.ErrKeyNotFound)
	}
	return value, nil
}

func (s *inMemoryBlobStore) Put(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	s.puts++
	return nil
}

func (s *inMemoryBlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

type staticLoadouts map[string]domain.Loadout

func (l staticLoadouts) LoadoutByGUID(_ context.Context, guid string) (domain.Loadout, error) {
	loadout, ok := l[guid]
	if !ok {
		return domain.Loadout{}, fmt.Errorf("loadout %q: %w", guid, domain.ErrLoadoutNotFound)
	}
	return loadout, nil
}
