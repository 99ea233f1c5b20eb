package toml

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/saveslots/internal/domain"
	"github.com/bnema/saveslots/internal/ports"
	"github.com/spf13/viper"
)

const (
	loadoutsPathKey  = "loadouts.path"
	loadoutsFileName = "loadouts.toml"
)

// LoadoutCatalog resolves loadout GUIDs against a read-only TOML catalog.
// The file is read once, on first lookup.
type LoadoutCatalog struct {
	path string

	once     sync.Once
	loadouts map[string]domain.Loadout
	err      error
}

var _ ports.LoadoutLookup = (*LoadoutCatalog)(nil)

func NewLoadoutCatalog(cfg *viper.Viper) (*LoadoutCatalog, error) {
	path, err := resolvePath(cfg, loadoutsPathKey, loadoutsFileName)
	if err != nil {
		return nil, err
	}

	return &LoadoutCatalog{path: path}, nil
}

func (c *LoadoutCatalog) LoadoutByGUID(ctx context.Context, guid string) (domain.Loadout, error) {
	if err := ctx.Err(); err != nil {
		return domain.Loadout{}, err
	}

	c.once.Do(c.load)
	if c.err != nil {
		return domain.Loadout{}, c.err
	}

	loadout, ok := c.loadouts[guid]
	if !ok {
		return domain.Loadout{}, fmt.Errorf("loadout %q: %w", guid, domain.ErrLoadoutNotFound)
	}

	return loadout, nil
}

func (c *LoadoutCatalog) load() {
	var file loadoutsFileSchema
	if _, err := readFile(c.path, "loadouts", &file); err != nil {
		c.err = err
		return
	}
	if err := file.validateVersion(); err != nil {
		c.err = err
		return
	}

	c.loadouts = make(map[string]domain.Loadout, len(file.Loadouts))
	for _, entry := range file.Loadouts {
		if entry.GUID == "" {
			continue
		}
		c.loadouts[entry.GUID] = fromLoadoutSchema(entry)
	}
}
