package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bnema/saveslots/internal/domain"
	"github.com/bnema/saveslots/internal/ports"
	"github.com/bnema/saveslots/internal/registry"
	"go.uber.org/zap"
)

// Slot is one selectable entry of the save list.
type Slot struct {
	ID       string
	Label    string
	SavedAt  time.Time
	Selected bool
}

// SelectionObserver is notified after the user picks a different slot.
type SelectionObserver func(ctx context.Context, slot Slot)

// SelectionProjector keeps the save list consistent with the host's single
// preserved session field. While the registry is non-empty exactly one slot
// is selected, and it is the slot the host field refers to.
type SelectionProjector struct {
	registry  *registry.Registry
	profile   ports.Profile
	labeler   *Labeler
	refresher ports.DisplayRefresher
	logger    *zap.Logger

	mu            sync.Mutex
	slots         []Slot
	index         map[string]int
	dropdownLabel string
	savedLabel    string
	observers     []SelectionObserver
}

// NewSelectionProjector builds a projector. refresher may be nil when no
// dependent host UI exists.
func NewSelectionProjector(reg *registry.Registry, profile ports.Profile, labeler *Labeler, refresher ports.DisplayRefresher, opts ...Option) *SelectionProjector {
	o := applyOptions(opts)
	if labeler == nil {
		labeler = NewLabeler(nil, nil)
	}

	return &SelectionProjector{
		registry:  reg,
		profile:   profile,
		labeler:   labeler,
		refresher: refresher,
		logger:    o.logger,
		index:     map[string]int{},
	}
}

// OnSelectionChanged appends fn to the observers run after each successful
// selection change, in registration order.
func (p *SelectionProjector) OnSelectionChanged(fn SelectionObserver) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.observers = append(p.observers, fn)
}

// EnsureDefault points the host field at the most recent slot when it holds
// no valid session. A valid host session is left untouched.
func (p *SelectionProjector) EnsureDefault(ctx context.Context) error {
	current, err := p.profile.PreservedSession(ctx)
	if err != nil {
		return fmt.Errorf("read profile preserved session: %w", err)
	}
	if current.Valid() {
		return nil
	}

	latest, ok := p.registry.Latest()
	if !ok {
		return nil
	}

	p.logger.Info("using latest saved session", zap.String("session_id", latest.ID()))
	if err := p.profile.SetPreservedSession(ctx, latest.Session.Clone()); err != nil {
		return fmt.Errorf("set profile preserved session: %w", err)
	}
	return nil
}

// Rebuild applies the default selection rule and then replaces the save list
// with one slot per registry record, newest first.
func (p *SelectionProjector) Rebuild(ctx context.Context) error {
	if err := p.EnsureDefault(ctx); err != nil {
		return err
	}

	current, err := p.profile.PreservedSession(ctx)
	if err != nil {
		return fmt.Errorf("read profile preserved session: %w", err)
	}

	records := p.registry.Records()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].NewerThan(records[j])
	})

	slots := make([]Slot, 0, len(records))
	index := make(map[string]int, len(records))
	selectedLabel := ""
	for i, record := range records {
		slot := Slot{
			ID:       record.ID(),
			Label:    p.labeler.Label(ctx, record),
			SavedAt:  record.SavedAt,
			Selected: current != nil && current.GameSessionID == record.ID(),
		}
		if slot.Selected {
			selectedLabel = slot.Label
		}
		slots = append(slots, slot)
		index[slot.ID] = i
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.slots = slots
	p.index = index
	if selectedLabel != "" {
		p.dropdownLabel = selectedLabel
	}
	return nil
}

// Toggle is the value-changed entry point of a slot's widget.
func (p *SelectionProjector) Toggle(ctx context.Context, id string, selected bool) error {
	if selected {
		return p.Select(ctx, id)
	}
	return p.Deselect(ctx, id)
}

// Select makes id the only selected slot and the host's preserved session.
// A slot the registry no longer holds stays unselected and the call fails
// with domain.ErrIntegrity.
func (p *SelectionProjector) Select(ctx context.Context, id string) error {
	p.mu.Lock()
	idx, listed := p.index[id]
	if listed && p.slots[idx].Selected {
		p.mu.Unlock()
		return nil
	}

	record, stored := p.registry.Get(id)
	if !listed || !stored || !record.Session.Valid() {
		if listed {
			p.slots[idx].Selected = false
		}
		p.mu.Unlock()
		p.logger.Error("tried to select session not in saves", zap.String("session_id", id))
		return fmt.Errorf("select slot %q: %w", id, domain.ErrIntegrity)
	}

	previous := p.selectionLocked()
	for i := range p.slots {
		p.slots[i].Selected = i == idx
	}
	if err := p.profile.SetPreservedSession(ctx, record.Session.Clone()); err != nil {
		p.restoreSelectionLocked(previous)
		p.mu.Unlock()
		return fmt.Errorf("set profile preserved session: %w", err)
	}
	slot := p.slots[idx]
	p.dropdownLabel = slot.Label
	observers := append([]SelectionObserver(nil), p.observers...)
	p.mu.Unlock()

	p.logger.Info("setting profile preserved session", zap.String("session_id", id))
	p.propagate(ctx, slot, &record.Session, observers)
	return nil
}

// Deselect handles the user unticking id. The last selected slot cannot be
// deselected. When another slot is still selected and id was the host's
// session, the host field moves to that other slot.
func (p *SelectionProjector) Deselect(ctx context.Context, id string) error {
	p.mu.Lock()
	idx, listed := p.index[id]
	if !listed || !p.slots[idx].Selected {
		p.mu.Unlock()
		return nil
	}

	other := -1
	for i, slot := range p.slots {
		if i != idx && slot.Selected {
			other = i
			break
		}
	}
	if other < 0 {
		p.mu.Unlock()
		p.logger.Info("tried to deselect the last session", zap.String("session_id", id))
		return nil
	}

	p.slots[idx].Selected = false
	current, err := p.profile.PreservedSession(ctx)
	if err != nil {
		p.logger.Warn("could not read profile preserved session", zap.Error(err))
		current = nil
	}
	if current != nil && current.GameSessionID != id {
		p.mu.Unlock()
		return nil
	}

	next := p.slots[other]
	record, stored := p.registry.Get(next.ID)
	if !stored || !record.Session.Valid() {
		p.slots[idx].Selected = true
		p.mu.Unlock()
		return fmt.Errorf("deselect slot %q: remaining slot %q: %w", id, next.ID, domain.ErrIntegrity)
	}
	if err := p.profile.SetPreservedSession(ctx, record.Session.Clone()); err != nil {
		p.slots[idx].Selected = true
		p.mu.Unlock()
		return fmt.Errorf("set profile preserved session: %w", err)
	}
	p.dropdownLabel = next.Label
	observers := append([]SelectionObserver(nil), p.observers...)
	p.mu.Unlock()

	p.logger.Info("deselected session; moving profile preserved session",
		zap.String("session_id", id),
		zap.String("next_session_id", next.ID))
	p.propagate(ctx, next, &record.Session, observers)
	return nil
}

// MarkSelected changes a slot's state without running any selection rule,
// the way a host widget can be set silently. It reports whether id is listed.
func (p *SelectionProjector) MarkSelected(id string, selected bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx, ok := p.index[id]
	if !ok {
		return false
	}
	p.slots[idx].Selected = selected
	return true
}

func (p *SelectionProjector) Slots() []Slot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]Slot(nil), p.slots...)
}

// Selected returns the first selected slot in list order.
func (p *SelectionProjector) Selected() (Slot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, slot := range p.slots {
		if slot.Selected {
			return slot, true
		}
	}
	return Slot{}, false
}

func (p *SelectionProjector) DropdownLabel() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.dropdownLabel
}

func (p *SelectionProjector) propagate(ctx context.Context, slot Slot, session *domain.Session, observers []SelectionObserver) {
	if p.refresher != nil {
		err := p.refresher.RefreshPreservedSession(ctx, session)
		switch {
		case errors.Is(err, domain.ErrStaleReference):
			p.logger.Debug("preserved session display not built yet; skipping refresh")
		case err != nil:
			p.logger.Warn("could not refresh preserved session display", zap.Error(err))
		}
	}

	for _, fn := range observers {
		fn(ctx, slot)
	}
}

func (p *SelectionProjector) selectionLocked() []bool {
	selection := make([]bool, len(p.slots))
	for i, slot := range p.slots {
		selection[i] = slot.Selected
	}
	return selection
}

func (p *SelectionProjector) restoreSelectionLocked(selection []bool) {
	for i := range p.slots {
		p.slots[i].Selected = selection[i]
	}
}
