package toml

import (
	"context"
	"sync"

	"github.com/bnema/saveslots/internal/domain"
	"github.com/bnema/saveslots/internal/ports"
	"github.com/spf13/viper"
)

const (
	profilePathKey  = "profile.path"
	profileFileName = "profile.toml"
)

// ProfileRepository is the host's single preserved-session field, stored in a
// TOML file.
type ProfileRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.Profile = (*ProfileRepository)(nil)

func NewProfileRepository(cfg *viper.Viper) (*ProfileRepository, error) {
	path, err := resolvePath(cfg, profilePathKey, profileFileName)
	if err != nil {
		return nil, err
	}

	return &ProfileRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *ProfileRepository) Path() string {
	return r.path
}

// PreservedSession returns the stored session, or nil when none is stored.
func (r *ProfileRepository) PreservedSession(ctx context.Context) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	return fromSessionSchema(file.PreservedSession)
}

// SetPreservedSession replaces the stored session. A nil session clears it.
func (r *ProfileRepository) SetPreservedSession(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encoded, err := toSessionSchema(session)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.PreservedSession = encoded

	if err := ctx.Err(); err != nil {
		return err
	}

	file.applyDefaults()
	return writeFile(r.path, "profile", file)
}

func (r *ProfileRepository) readSchema() (profileFileSchema, error) {
	var file profileFileSchema
	if _, err := readFile(r.path, "profile", &file); err != nil {
		return profileFileSchema{}, err
	}
	if err := file.validateVersion(); err != nil {
		return profileFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}
