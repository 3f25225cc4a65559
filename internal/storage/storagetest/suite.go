// Package storagetest holds the behavioural suite every storage.Storage
// implementation must pass.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/golfhandicap/internal/dependencies/mocks"
	"github.com/mcoot/golfhandicap/internal/model"
	"github.com/mcoot/golfhandicap/internal/storage"
)

// Factory builds a fresh, empty Storage configured with opts
type Factory func(opts ...storage.Option) (storage.Storage, error)

// Suite exercises a storage.Storage implementation
type Suite struct {
	suite.Suite
	NewStorage Factory

	storage storage.Storage
	clock   *mocks.MockClock
	ctx     context.Context
}

var epoch = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func (s *Suite) SetupTest() {
	s.clock = mocks.NewMockClock(epoch)
	st, err := s.NewStorage(
		storage.WithClock(s.clock),
		storage.WithIDGenerator(mocks.NewSequentialIDs()),
	)
	s.Require().NoError(err)
	s.storage = st
	s.ctx = context.Background()
}

func (s *Suite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *Suite) savePlayer(name string) *model.Player {
	p, err := s.storage.SavePlayer(s.ctx, &model.Player{DisplayName: name})
	s.Require().NoError(err)
	return p
}

func (s *Suite) saveScore(playerID model.PlayerID, strokes int) *model.ScoreEntry {
	e, err := s.storage.SaveScore(s.ctx, &model.ScoreEntry{
		PlayerID: playerID,
		Strokes:  strokes,
		Par:      72,
		Slope:    113,
	})
	s.Require().NoError(err)
	return e
}

// Player tests

func (s *Suite) TestSaveAndGetPlayer() {
	saved := s.savePlayer("Alice")
	s.Equal(model.PlayerID("player-1"), saved.ID)
	s.True(saved.CreatedAt.Equal(epoch))

	retrieved, err := s.storage.GetPlayer(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("Alice", retrieved.DisplayName)
	s.Equal(0.0, retrieved.Handicap)
}

func (s *Suite) TestSavePlayerKeepsExplicitID() {
	saved, err := s.storage.SavePlayer(s.ctx, &model.Player{ID: "custom", DisplayName: "Bob"})
	s.Require().NoError(err)
	s.Equal(model.PlayerID("custom"), saved.ID)
}

func (s *Suite) TestSavePlayerDuplicateID() {
	_, err := s.storage.SavePlayer(s.ctx, &model.Player{ID: "dup", DisplayName: "Bob"})
	s.Require().NoError(err)

	_, err = s.storage.SavePlayer(s.ctx, &model.Player{ID: "dup", DisplayName: "Bobby"})
	s.ErrorIs(err, model.ErrConflict)
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *Suite) TestListPlayersInInsertionOrder() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.NotNil(players)
	s.Empty(players)

	s.savePlayer("Alice")
	s.savePlayer("Bob")
	s.savePlayer("Carol")

	players, err = s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("Alice", players[0].DisplayName)
	s.Equal("Carol", players[2].DisplayName)
}

func (s *Suite) TestUpdatePlayer() {
	saved := s.savePlayer("Alice")
	s.clock.Advance(time.Hour)

	saved.Handicap = 12.5
	saved.DisplayName = "Alicia"
	updated, err := s.storage.UpdatePlayer(s.ctx, saved)
	s.Require().NoError(err)
	s.Equal(12.5, updated.Handicap)
	s.True(updated.CreatedAt.Equal(epoch))
	s.True(updated.UpdatedAt.Equal(epoch.Add(time.Hour)))

	retrieved, err := s.storage.GetPlayer(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("Alicia", retrieved.DisplayName)
	s.Equal(12.5, retrieved.Handicap)
}

func (s *Suite) TestUpdatePlayerNotFound() {
	_, err := s.storage.UpdatePlayer(s.ctx, &model.Player{ID: "ghost", DisplayName: "x"})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestDeletePlayer() {
	saved := s.savePlayer("Alice")

	s.Require().NoError(s.storage.DeletePlayer(s.ctx, saved.ID))

	_, err := s.storage.GetPlayer(s.ctx, saved.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestDeletePlayerMissingIsNoop() {
	s.NoError(s.storage.DeletePlayer(s.ctx, "ghost"))
}

// Score tests

func (s *Suite) TestSaveAndGetScore() {
	p := s.savePlayer("Alice")
	saved := s.saveScore(p.ID, 85)
	s.Equal(model.ScoreID("score-1"), saved.ID)

	retrieved, err := s.storage.GetScore(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(p.ID, retrieved.PlayerID)
	s.Equal(85, retrieved.Strokes)
	s.Equal(72, retrieved.Par)
	s.Equal(113, retrieved.Slope)
}

func (s *Suite) TestGetScoreNotFound() {
	_, err := s.storage.GetScore(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrScoreNotFound)
}

func (s *Suite) TestListScoresByPlayer() {
	alice := s.savePlayer("Alice")
	bob := s.savePlayer("Bob")

	empty, err := s.storage.ListScoresByPlayer(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)

	s.saveScore(alice.ID, 85)
	s.saveScore(bob.ID, 100)
	s.saveScore(alice.ID, 90)

	scores, err := s.storage.ListScoresByPlayer(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(scores, 2)
	s.Equal(85, scores[0].Strokes)
	s.Equal(90, scores[1].Strokes)
}

func (s *Suite) TestUpdateScoreKeepsOwner() {
	alice := s.savePlayer("Alice")
	bob := s.savePlayer("Bob")
	saved := s.saveScore(alice.ID, 85)

	updated, err := s.storage.UpdateScore(s.ctx, &model.ScoreEntry{
		ID:       saved.ID,
		PlayerID: bob.ID,
		Strokes:  80,
		Par:      71,
		Slope:    130,
	})
	s.Require().NoError(err)
	s.Equal(alice.ID, updated.PlayerID)
	s.Equal(80, updated.Strokes)

	retrieved, err := s.storage.GetScore(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(alice.ID, retrieved.PlayerID)
	s.Equal(71, retrieved.Par)
	s.Equal(130, retrieved.Slope)
}

func (s *Suite) TestUpdateScoreNotFound() {
	_, err := s.storage.UpdateScore(s.ctx, &model.ScoreEntry{ID: "ghost", Strokes: 1, Par: 1})
	s.ErrorIs(err, model.ErrScoreNotFound)
}

func (s *Suite) TestDeleteScoresByPlayer() {
	alice := s.savePlayer("Alice")
	bob := s.savePlayer("Bob")
	s.saveScore(alice.ID, 85)
	s.saveScore(alice.ID, 86)
	kept := s.saveScore(bob.ID, 99)

	s.Require().NoError(s.storage.DeleteScoresByPlayer(s.ctx, alice.ID))

	scores, err := s.storage.ListScoresByPlayer(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Empty(scores)

	_, err = s.storage.GetScore(s.ctx, kept.ID)
	s.NoError(err)

	// the player itself survives a bulk score delete
	_, err = s.storage.GetPlayer(s.ctx, alice.ID)
	s.NoError(err)
}

func (s *Suite) TestDeletePlayerCascade() {
	alice := s.savePlayer("Alice")
	bob := s.savePlayer("Bob")
	doomed := s.saveScore(alice.ID, 85)
	s.saveScore(bob.ID, 99)

	s.Require().NoError(s.storage.DeletePlayerCascade(s.ctx, alice.ID))

	_, err := s.storage.GetPlayer(s.ctx, alice.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
	_, err = s.storage.GetScore(s.ctx, doomed.ID)
	s.ErrorIs(err, model.ErrScoreNotFound)

	scores, err := s.storage.ListScoresByPlayer(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Empty(scores)

	bobScores, err := s.storage.ListScoresByPlayer(s.ctx, bob.ID)
	s.Require().NoError(err)
	s.Len(bobScores, 1)
}

func (s *Suite) TestReturnedValuesAreCopies() {
	saved := s.savePlayer("Alice")
	saved.DisplayName = "mutated"

	retrieved, err := s.storage.GetPlayer(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("Alice", retrieved.DisplayName)
}
