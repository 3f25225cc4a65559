package idgen

import (
	"github.com/google/uuid"

	"github.com/mcoot/golfhandicap/internal/model"
)

// Generator issues identifiers for newly created entities. Stores call it
// when a caller saves an entity without an ID.
type Generator interface {
	PlayerID() model.PlayerID
	ScoreID() model.ScoreID
}

// UUIDGenerator issues random version 4 UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// PlayerID returns a fresh player identifier
func (g *UUIDGenerator) PlayerID() model.PlayerID {
	return model.PlayerID(uuid.NewString())
}

// ScoreID returns a fresh score identifier
func (g *UUIDGenerator) ScoreID() model.ScoreID {
	return model.ScoreID(uuid.NewString())
}
