package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/golfhandicap/internal/dependencies/idgen"
	"github.com/mcoot/golfhandicap/internal/model"
)

// SequentialIDs issues predictable identifiers ("player-1", "score-1", ...)
type SequentialIDs struct {
	mu      sync.Mutex
	players int
	scores  int
}

// Ensure SequentialIDs implements Generator
var _ idgen.Generator = (*SequentialIDs)(nil)

// NewSequentialIDs creates a generator starting at 1
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{}
}

// PlayerID returns the next player identifier
func (g *SequentialIDs) PlayerID() model.PlayerID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.players++
	return model.PlayerID(fmt.Sprintf("player-%d", g.players))
}

// ScoreID returns the next score identifier
func (g *SequentialIDs) ScoreID() model.ScoreID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scores++
	return model.ScoreID(fmt.Sprintf("score-%d", g.scores))
}
