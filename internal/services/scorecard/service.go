package scorecard

import (
	"context"

	"github.com/mcoot/golfhandicap/internal/model"
	"github.com/mcoot/golfhandicap/internal/services/handicap"
	"github.com/mcoot/golfhandicap/internal/storage"
)

// Aggregator gathers the full, current score set for a player. It always
// reads the store directly.
type Aggregator interface {
	FetchScoresForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.ScoreEntry, error)
	FetchRoundsForPlayer(ctx context.Context, playerID model.PlayerID) ([]handicap.Round, error)
}

// Service is the score aggregator
type Service struct {
	scores storage.ScoreStore
}

// New creates a new score aggregator
func New(scores storage.ScoreStore) *Service {
	return &Service{
		scores: scores,
	}
}

var _ Aggregator = (*Service)(nil)

// FetchScoresForPlayer returns every score the player owns. The result is
// never nil.
func (s *Service) FetchScoresForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.ScoreEntry, error) {
	entries, err := s.scores.ListScoresByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*model.ScoreEntry{}
	}
	return entries, nil
}

// FetchRoundsForPlayer returns the player's scores as calculator input
func (s *Service) FetchRoundsForPlayer(ctx context.Context, playerID model.PlayerID) ([]handicap.Round, error) {
	entries, err := s.FetchScoresForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return handicap.RoundsFromEntries(entries), nil
}
