package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/golfhandicap/internal/cache"
	"github.com/mcoot/golfhandicap/internal/model"
)

type CacheSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	cache *Cache
	ctx   context.Context
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.PlayerTTL = time.Hour

	s.cache = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *CacheSuite) TearDownTest() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *CacheSuite) TestPutAndGet() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		Handicap:    14.84,
		CreatedAt:   time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.cache.Put(s.ctx, player))

	retrieved, err := s.cache.Get(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
	s.Equal(14.84, retrieved.Handicap)
	s.True(player.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *CacheSuite) TestGetMiss() {
	_, err := s.cache.Get(s.ctx, "nonexistent")
	s.ErrorIs(err, cache.ErrMiss)
}

func (s *CacheSuite) TestEvict() {
	s.Require().NoError(s.cache.Put(s.ctx, &model.Player{ID: "player-1"}))

	s.Require().NoError(s.cache.Evict(s.ctx, "player-1"))

	_, err := s.cache.Get(s.ctx, "player-1")
	s.ErrorIs(err, cache.ErrMiss)
	s.False(s.mini.Exists(playerKey("player-1")))
}

func (s *CacheSuite) TestPutSetsTTL() {
	s.Require().NoError(s.cache.Put(s.ctx, &model.Player{ID: "player-1"}))

	s.Equal(time.Hour, s.mini.TTL(playerKey("player-1")))

	s.mini.FastForward(2 * time.Hour)
	_, err := s.cache.Get(s.ctx, "player-1")
	s.ErrorIs(err, cache.ErrMiss)
}

func (s *CacheSuite) TestKeyFormat() {
	s.Require().NoError(s.cache.Put(s.ctx, &model.Player{ID: "abc"}))
	s.True(s.mini.Exists("golfhcp:player:abc"))
}

func (s *CacheSuite) TestCorruptEntryIsMiss() {
	s.Require().NoError(s.mini.Set(playerKey("player-1"), "{not json"))

	_, err := s.cache.Get(s.ctx, "player-1")
	s.ErrorIs(err, cache.ErrMiss)
	s.False(s.mini.Exists(playerKey("player-1")))
}

func (s *CacheSuite) TestServerDownIsError() {
	s.mini.Close()

	_, err := s.cache.Get(s.ctx, "player-1")
	s.Error(err)
	s.NotErrorIs(err, cache.ErrMiss)
	s.mini = nil
}

func TestNewRejectsBadURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URL = "not-a-url://"
	_, err := New(cfg)
	if err == nil {
		t.Fatal("expected error for bad url")
	}
}
