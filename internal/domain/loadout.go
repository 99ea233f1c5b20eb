package domain

// Loadout is the read-only asset metadata used to label a slot.
type Loadout struct {
	GUID          string
	ShipHeader    string
	ContextHeader string
}

func (l Loadout) HasContext() bool {
	return l.ShipHeader != "" && l.ContextHeader != ""
}
