package factory

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/golfhandicap/internal/cache"
	rediscache "github.com/mcoot/golfhandicap/internal/cache/redis"
	"github.com/mcoot/golfhandicap/internal/config"
	"github.com/mcoot/golfhandicap/internal/model"
	"github.com/mcoot/golfhandicap/internal/storage/sqldb"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) addScore(id model.PlayerID, strokes, par, slope int) *model.ScoreEntry {
	e, err := s.app.PlayerService.AddScore(s.ctx, id, &model.ScoreEntry{Strokes: strokes, Par: par, Slope: slope})
	s.Require().NoError(err)
	return e
}

// Test: a season of rounds from first tee to account removal
func (s *IntegrationSuite) TestPlayerLifecycle() {
	p, err := s.app.PlayerService.CreatePlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), p.ID)
	s.Equal(TestEpoch, p.CreatedAt)

	// Step 1: two rounds at baseline slope
	s.addScore(p.ID, 85, 72, 0)
	second := s.addScore(p.ID, 90, 72, 0)
	s.Equal(model.ScoreID("score-2"), second.ID)

	idx, err := s.app.PlayerService.GetPlayerHandicap(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(15.5, idx)

	// Step 2: correct the second round on a harder course
	s.app.MockClock.Advance(time.Hour)
	updated, err := s.app.PlayerService.UpdateScore(s.ctx, p.ID, second.ID, &model.ScoreEntry{Strokes: 90, Par: 72, Slope: 135})
	s.Require().NoError(err)
	s.Equal(TestEpoch.Add(time.Hour), updated.UpdatedAt)
	s.Equal(TestEpoch, updated.CreatedAt)

	idx, err = s.app.PlayerService.GetPlayerHandicap(s.ctx, p.ID)
	s.Require().NoError(err)
	// (13 + 18*113/135) / 2 = 14.033...
	s.Equal(14.03, idx)

	// Step 3: the cached player agrees with the store
	cached, err := s.app.Cache.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	stored, err := s.app.Storage.GetPlayer(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(stored.Handicap, cached.Handicap)

	// Step 4: clearing scores resets the handicap
	cleared, err := s.app.PlayerService.ClearScores(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(0.0, cleared.Handicap)

	// Step 5: deleting removes every trace
	s.Require().NoError(s.app.PlayerService.DeletePlayer(s.ctx, p.ID))
	_, err = s.app.Cache.Get(s.ctx, p.ID)
	s.ErrorIs(err, cache.ErrMiss)
	_, err = s.app.PlayerService.GetPlayer(s.ctx, p.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Test: one player's rounds never move another's handicap
func (s *IntegrationSuite) TestPlayersAreIndependent() {
	alice, err := s.app.PlayerService.CreatePlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	bob, err := s.app.PlayerService.CreatePlayer(s.ctx, "Bob")
	s.Require().NoError(err)

	s.addScore(alice.ID, 80, 72, 113)
	s.addScore(bob.ID, 100, 72, 113)

	a, err := s.app.PlayerService.GetPlayer(s.ctx, alice.ID)
	s.Require().NoError(err)
	b, err := s.app.PlayerService.GetPlayer(s.ctx, bob.ID)
	s.Require().NoError(err)

	s.Equal(8.0, a.Handicap)
	s.Equal(28.0, b.Handicap)
}

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	defer app.Close()

	p, err := app.PlayerService.CreatePlayer(context.Background(), "Carol")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
}

func TestNewWithSQLiteAndRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	sqlCfg := sqldb.DefaultConfig()
	redisCfg := rediscache.DefaultConfig()
	redisCfg.URL = "redis://" + mr.Addr()

	app, err := New(Config{
		StorageType: StorageTypeSQL,
		SQLConfig:   &sqlCfg,
		CacheType:   CacheTypeRedis,
		RedisConfig: &redisCfg,
	})
	require.NoError(t, err)
	defer app.Close()

	ctx := context.Background()
	p, err := app.PlayerService.CreatePlayer(ctx, "Dana")
	require.NoError(t, err)

	_, err = app.PlayerService.AddScore(ctx, p.ID, &model.ScoreEntry{Strokes: 74, Par: 72, Slope: 113})
	require.NoError(t, err)

	cached, err := app.Cache.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cached.Handicap)

	stored, err := app.Storage.GetPlayer(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, stored.Handicap)
}

func TestNewRejectsMissingBackendConfig(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeSQL})
	assert.ErrorContains(t, err, "SQLConfig")

	_, err = New(Config{CacheType: CacheTypeRedis})
	assert.ErrorContains(t, err, "RedisConfig")

	_, err = New(Config{StorageType: "mongo"})
	assert.Error(t, err)
}

func TestConfigFrom(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	fc := ConfigFrom(cfg, nil)
	assert.Equal(t, StorageTypeMemory, fc.StorageType)
	assert.Equal(t, CacheTypeMemory, fc.CacheType)
	assert.Equal(t, cfg.Retry.MaxAttempts, fc.PlayerConfig.Retry.MaxAttempts)
	require.NotNil(t, fc.SQLConfig)
	assert.Equal(t, sqldb.DriverSQLite, fc.SQLConfig.Driver)
}
