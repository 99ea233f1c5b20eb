package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	fieldGameSessionID = "GameSessionID"
	fieldShip          = "Ship"
	fieldMutators      = "Mutators"
)

// Session is the host's preserved game session. Only the identifier, the ship
// loadout and the mutator list are interpreted; every other host field is kept
// verbatim in Extra so a session survives a round trip through the registry.
type Session struct {
	GameSessionID string
	Ship          string
	Mutators      []string
	Extra         map[string]json.RawMessage
}

func (s *Session) Valid() bool {
	return s != nil && s.GameSessionID != ""
}

// SameAs reports whether both sessions carry the same identifier.
func (s *Session) SameAs(other *Session) bool {
	if s == nil || other == nil {
		return false
	}
	return s.GameSessionID == other.GameSessionID
}

func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	clone := *s
	if s.Mutators != nil {
		clone.Mutators = append([]string{}, s.Mutators...)
	}
	if s.Extra != nil {
		clone.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for key, value := range s.Extra {
			clone.Extra[key] = append(json.RawMessage(nil), value...)
		}
	}

	return &clone
}

func (s Session) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(s.Extra)+3)
	for key, value := range s.Extra {
		fields[key] = value
	}

	known := map[string]any{
		fieldGameSessionID: s.GameSessionID,
		fieldShip:          s.Ship,
		fieldMutators:      s.Mutators,
	}
	for key, value := range known {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode session field %s: %w", key, err)
		}
		fields[key] = encoded
	}

	return json.Marshal(fields)
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	decoded := Session{}
	targets := map[string]any{
		fieldGameSessionID: &decoded.GameSessionID,
		fieldShip:          &decoded.Ship,
		fieldMutators:      &decoded.Mutators,
	}
	for key, target := range targets {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		delete(fields, key)
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("decode session field %s: %w", key, err)
		}
	}
	if len(fields) > 0 {
		decoded.Extra = fields
	}

	*s = decoded
	return nil
}

// PreservedSessionRecord is one slot: a session and the UTC instant it was
// last written into the registry.
type PreservedSessionRecord struct {
	Session Session   `json:"Session"`
	SavedAt time.Time `json:"Timestamp"`
}

func NewPreservedSessionRecord(session Session, savedAt time.Time) PreservedSessionRecord {
	return PreservedSessionRecord{Session: *session.Clone(), SavedAt: savedAt.UTC()}
}

func (r PreservedSessionRecord) ID() string {
	return r.Session.GameSessionID
}

// NewerThan orders records by save time, breaking ties with the smaller id.
func (r PreservedSessionRecord) NewerThan(other PreservedSessionRecord) bool {
	if !r.SavedAt.Equal(other.SavedAt) {
		return r.SavedAt.After(other.SavedAt)
	}
	return r.ID() < other.ID()
}
