package toml

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/saveslots/internal/domain"
)

const (
	currentProfileSchemaVersion  = 1
	currentLoadoutsSchemaVersion = 1
)

type profileFileSchema struct {
	Version          int            `toml:"version"`
	PreservedSession *sessionSchema `toml:"preserved_session,omitempty"`
}

func (s *profileFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentProfileSchemaVersion
	}
}

func (s profileFileSchema) validateVersion() error {
	if s.Version > currentProfileSchemaVersion {
		return fmt.Errorf("unsupported profile schema version %d (current %d)", s.Version, currentProfileSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	GameSessionID string   `toml:"game_session_id"`
	Ship          string   `toml:"ship,omitempty"`
	Mutators      []string `toml:"mutators,omitempty"`
	// Host fields this tool does not model, kept as a JSON object.
	Extra string `toml:"extra,omitempty"`
}

type loadoutsFileSchema struct {
	Version  int             `toml:"version"`
	Loadouts []loadoutSchema `toml:"loadouts"`
}

func (s *loadoutsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentLoadoutsSchemaVersion
	}
}

func (s loadoutsFileSchema) validateVersion() error {
	if s.Version > currentLoadoutsSchemaVersion {
		return fmt.Errorf("unsupported loadouts schema version %d (current %d)", s.Version, currentLoadoutsSchemaVersion)
	}

	return nil
}

type loadoutSchema struct {
	GUID          string `toml:"guid"`
	ShipHeader    string `toml:"ship_header"`
	ContextHeader string `toml:"context_header,omitempty"`
}

func toSessionSchema(session *domain.Session) (*sessionSchema, error) {
	if session == nil {
		return nil, nil
	}

	encoded := &sessionSchema{
		GameSessionID: session.GameSessionID,
		Ship:          session.Ship,
		Mutators:      append([]string(nil), session.Mutators...),
	}
	if len(session.Extra) > 0 {
		extra, err := json.Marshal(session.Extra)
		if err != nil {
			return nil, fmt.Errorf("encode session extra fields: %w", err)
		}
		encoded.Extra = string(extra)
	}

	return encoded, nil
}

func fromSessionSchema(session *sessionSchema) (*domain.Session, error) {
	if session == nil {
		return nil, nil
	}

	decoded := &domain.Session{
		GameSessionID: session.GameSessionID,
		Ship:          session.Ship,
		Mutators:      append([]string(nil), session.Mutators...),
	}
	if session.Extra != "" {
		if err := json.Unmarshal([]byte(session.Extra), &decoded.Extra); err != nil {
			return nil, fmt.Errorf("decode session extra fields: %w", err)
		}
	}

	return decoded, nil
}

func fromLoadoutSchema(loadout loadoutSchema) domain.Loadout {
	return domain.Loadout{
		GUID:          loadout.GUID,
		ShipHeader:    loadout.ShipHeader,
		ContextHeader: loadout.ContextHeader,
	}
}
