package application

import (
	"context"
	"strings"
	"time"

	"github.com/bnema/saveslots/internal/domain"
	"github.com/bnema/saveslots/internal/ports"
)

const (
	genericSlotHeader = "SAVED SESSION"
	labelDateLayout   = "1/2/2006"
	labelTimeLayout   = "3:04 PM"
	redundantPrefix   = "METEM "
)

// Labeler derives the human readable name of a slot from its save time and
// ship loadout.
type Labeler struct {
	loadouts ports.LoadoutLookup
	location *time.Location
}

// NewLabeler returns a Labeler rendering times in location (time.Local when
// nil). loadouts may be nil, in which case every slot gets the generic header.
func NewLabeler(loadouts ports.LoadoutLookup, location *time.Location) *Labeler {
	if location == nil {
		location = time.Local
	}

	return &Labeler{loadouts: loadouts, location: location}
}

func (l *Labeler) Label(ctx context.Context, record domain.PreservedSessionRecord) string {
	saved := record.SavedAt.In(l.location)
	timeText := saved.Format(labelDateLayout) + " " + saved.Format(labelTimeLayout)

	loadout, ok := l.lookup(ctx, record.Session.Ship)
	if !ok {
		return strings.ToUpper(genericSlotHeader + " " + timeText)
	}

	header := genericSlotHeader
	if loadout.HasContext() {
		header = loadout.ShipHeader + ": " + loadout.ContextHeader
	}
	label := strings.ToUpper(header + " " + timeText)
	return strings.TrimPrefix(label, redundantPrefix)
}

func (l *Labeler) lookup(ctx context.Context, guid string) (domain.Loadout, bool) {
	if l.loadouts == nil || strings.TrimSpace(guid) == "" {
		return domain.Loadout{}, false
	}

	loadout, err := l.loadouts.LoadoutByGUID(ctx, guid)
	if err != nil {
		return domain.Loadout{}, false
	}
	return loadout, true
}
