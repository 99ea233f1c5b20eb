// Package registry indexes preserved sessions by identifier and save time.
//
// A Registry is the multi-slot counterpart of the host's single preserved
// session field. It is safe for concurrent use; callers persist it themselves
// through SerializeAll after each mutation.
package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bnema/saveslots/internal/domain"
	"github.com/bnema/saveslots/internal/ports"
)

type Registry struct {
	mu      sync.RWMutex
	records map[string]domain.PreservedSessionRecord
	clock   ports.Clock
}

func New(clock ports.Clock) *Registry {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Registry{
		records: map[string]domain.PreservedSessionRecord{},
		clock:   clock,
	}
}

// Set inserts or overwrites the slot for session, stamping it with the
// current UTC time. Overwriting an existing slot is normal use.
func (r *Registry) Set(session domain.Session) (domain.PreservedSessionRecord, error) {
	if !session.Valid() {
		return domain.PreservedSessionRecord{}, fmt.Errorf("set preserved session: %w: %w", domain.ErrIntegrity, domain.ErrEmptySessionID)
	}

	record := domain.NewPreservedSessionRecord(session, r.clock.Now())

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.ID()] = record
	return record, nil
}

// Remove drops the slot for id. Unknown ids are ignored.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return false
	}
	delete(r.records, id)
	return true
}

func (r *Registry) Get(id string) (domain.PreservedSessionRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return domain.PreservedSessionRecord{}, false
	}
	return cloneRecord(record), true
}

func (r *Registry) Contains(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[id]
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.records)
}

// Latest returns the most recently saved slot. Slots saved at the same
// instant resolve to the lexicographically smallest identifier.
func (r *Registry) Latest() (domain.PreservedSessionRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		latest domain.PreservedSessionRecord
		found  bool
	)
	for _, record := range r.records {
		if !found || record.NewerThan(latest) {
			latest = record
			found = true
		}
	}
	if !found {
		return domain.PreservedSessionRecord{}, false
	}

	return cloneRecord(latest), true
}

// Records returns a copy of every slot ordered by identifier.
func (r *Registry) Records() []domain.PreservedSessionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]domain.PreservedSessionRecord, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, cloneRecord(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID() < records[j].ID()
	})

	return records
}

// LoadFrom replaces every slot with the decoded content of data. On any
// decoding error the registry keeps its previous content.
func (r *Registry) LoadFrom(data []byte) error {
	records, err := decode(data)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = records
	return nil
}

// SerializeAll encodes every slot in the persisted form. Keys are sorted, so
// equal registries produce equal bytes.
func (r *Registry) SerializeAll() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := json.Marshal(r.records)
	if err != nil {
		return nil, fmt.Errorf("encode preserved sessions: %w", err)
	}

	return data, nil
}

func decode(data []byte) (map[string]domain.PreservedSessionRecord, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("%w: empty input", domain.ErrDeserialization)
	}

	var decoded map[string]domain.PreservedSessionRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDeserialization, err)
	}

	records := make(map[string]domain.PreservedSessionRecord, len(decoded))
	for key, record := range decoded {
		if !record.Session.Valid() {
			return nil, fmt.Errorf("%w: slot %q: %w", domain.ErrDeserialization, key, domain.ErrEmptySessionID)
		}
		if key != record.ID() {
			return nil, fmt.Errorf("%w: slot %q holds session %q", domain.ErrDeserialization, key, record.ID())
		}
		record.SavedAt = record.SavedAt.UTC()
		records[key] = record
	}

	return records, nil
}

func cloneRecord(record domain.PreservedSessionRecord) domain.PreservedSessionRecord {
	record.Session = *record.Session.Clone()
	return record
}
