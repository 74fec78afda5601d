package ids

import (
	"github.com/google/uuid"

	"github.com/mcoot/sportfinder/internal/model"
)

// Generator mints identifiers that can be mocked for testing
type Generator interface {
	// SessionKey returns a fresh, unguessable session slot id
	SessionKey() model.SessionKey
}

// UUIDGenerator implements Generator with random (v4) UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// SessionKey returns a new v4 UUID as a session key
func (g *UUIDGenerator) SessionKey() model.SessionKey {
	return model.SessionKey(uuid.NewString())
}

// ValidSessionKey reports whether s has the shape of a key minted by UUIDGenerator
func ValidSessionKey(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
