package storage

import (
	"context"

	"github.com/mcoot/golfhandicap/internal/model"
)

// PlayerStore persists players
type PlayerStore interface {
	// SavePlayer inserts a new player. An empty ID is replaced with a fresh one.
	SavePlayer(ctx context.Context, player *model.Player) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	// UpdatePlayer overwrites an existing player and returns model.ErrPlayerNotFound if absent
	UpdatePlayer(ctx context.Context, player *model.Player) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
}

// ScoreStore persists score entries
type ScoreStore interface {
	GetScore(ctx context.Context, id model.ScoreID) (*model.ScoreEntry, error)
	// ListScoresByPlayer returns a non-nil slice in insertion order
	ListScoresByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.ScoreEntry, error)
	// SaveScore inserts a new entry. An empty ID is replaced with a fresh one.
	SaveScore(ctx context.Context, entry *model.ScoreEntry) (*model.ScoreEntry, error)
	// UpdateScore overwrites an existing entry matched by ID. The owner is
	// never changed. Returns model.ErrScoreNotFound if absent.
	UpdateScore(ctx context.Context, entry *model.ScoreEntry) (*model.ScoreEntry, error)
	DeleteScoresByPlayer(ctx context.Context, playerID model.PlayerID) error
}

// Storage defines the interface for data persistence
type Storage interface {
	PlayerStore
	ScoreStore

	// DeletePlayerCascade removes a player and all of its scores atomically
	DeletePlayerCascade(ctx context.Context, id model.PlayerID) error

	Close() error
}
