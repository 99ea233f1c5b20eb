package application

import "context"

type MenuMode int

const (
	// MenuModeQuest shows the host's mutator list for a regular quest.
	MenuModeQuest MenuMode = iota
	// MenuModePreserved shows the save list in place of the mutators.
	MenuModePreserved
)

// MenuView describes how the shared mutators/saves panel should be drawn.
type MenuView struct {
	Mode                    MenuMode
	MutatorsVisible         bool
	SlotsVisible            bool
	SelectedMutatorsVisible bool
	UnseenCounterVisible    bool
	SelectedCountVisible    bool
	DropdownLabel           string
}

// ShowQuest returns the panel for a regular quest. The dropdown gets back
// the text it had before the save list replaced it. The unseen counter is
// shown by default; the host may hide it when nothing is unseen.
func (p *SelectionProjector) ShowQuest(currentLabel string) MenuView {
	p.mu.Lock()
	defer p.mu.Unlock()

	label := currentLabel
	if p.savedLabel != "" {
		label = p.savedLabel
		p.savedLabel = ""
	}

	return MenuView{
		Mode:                    MenuModeQuest,
		MutatorsVisible:         true,
		SelectedMutatorsVisible: true,
		UnseenCounterVisible:    true,
		SelectedCountVisible:    true,
		DropdownLabel:           label,
	}
}

// ShowPreserved returns the panel for the preserved-session mode. The
// dropdown shows the selected slot, and currentLabel is kept for ShowQuest.
func (p *SelectionProjector) ShowPreserved(ctx context.Context, currentLabel string) MenuView {
	label := genericSlotHeader
	if current, err := p.profile.PreservedSession(ctx); err == nil && current.Valid() {
		if record, ok := p.registry.Get(current.GameSessionID); ok {
			label = p.labeler.Label(ctx, record)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.savedLabel == "" {
		p.savedLabel = currentLabel
	}
	p.dropdownLabel = label

	return MenuView{
		Mode:          MenuModePreserved,
		SlotsVisible:  true,
		DropdownLabel: label,
	}
}
