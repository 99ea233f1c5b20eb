package domain

import "errors"

var (
	// ErrDeserialization marks a persisted registry blob that could not be decoded.
	ErrDeserialization = errors.New("malformed preserved sessions")
	// ErrIntegrity marks a reference to a slot the registry does not hold.
	ErrIntegrity = errors.New("preserved session integrity")
	// ErrStaleReference is returned by host adapters whose UI handle is not built yet.
	ErrStaleReference = errors.New("host reference unavailable")

	ErrEmptySessionID  = errors.New("session id is empty")
	ErrKeyNotFound     = errors.New("key not found")
	ErrLoadoutNotFound = errors.New("loadout not found")
)
