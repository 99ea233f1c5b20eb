package ports

import (
	"context"

	"github.com/bnema/saveslots/internal/domain"
)

// Profile exposes the host's single preserved-session field. A nil session
// means the host currently holds none.
type Profile interface {
	PreservedSession(ctx context.Context) (*domain.Session, error)
	SetPreservedSession(ctx context.Context, session *domain.Session) error
}
