package ports

import (
	"context"

	"github.com/bnema/saveslots/internal/domain"
)

// LoadoutLookup resolves a ship loadout GUID to its asset metadata.
type LoadoutLookup interface {
	LoadoutByGUID(ctx context.Context, guid string) (domain.Loadout, error)
}

// DisplayRefresher redraws host UI that depends on the selected session.
// Implementations return domain.ErrStaleReference while that UI does not exist.
type DisplayRefresher interface {
	RefreshPreservedSession(ctx context.Context, session *domain.Session) error
}
