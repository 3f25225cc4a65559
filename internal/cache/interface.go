package cache

import (
	"context"
	"errors"

	"github.com/mcoot/golfhandicap/internal/model"
)

// ErrMiss is returned by Get when no entry is cached for the player
var ErrMiss = errors.New("cache miss")

// PlayerCache holds the last known state of players, keyed by ID. It is a
// read-side optimisation only; writers never consult it.
type PlayerCache interface {
	Get(ctx context.Context, id model.PlayerID) (*model.Player, error)
	Put(ctx context.Context, player *model.Player) error
	Evict(ctx context.Context, id model.PlayerID) error
	Close() error
}
