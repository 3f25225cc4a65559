package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/golfhandicap/internal/cache"
	"github.com/mcoot/golfhandicap/internal/model"
)

// Cache is a Redis-backed PlayerCache. Players are stored as JSON blobs.
type Cache struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis cache and verifies the connection
func New(cfg Config) (*Cache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Cache{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis cache with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Cache {
	return &Cache{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ensure Cache implements the interface
var _ cache.PlayerCache = (*Cache)(nil)

func (c *Cache) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := c.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrMiss
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		// A corrupt entry is as good as missing; drop it so the next read repopulates
		_ = c.client.Del(ctx, playerKey(id)).Err()
		return nil, cache.ErrMiss
	}
	return &player, nil
}

func (c *Cache) Put(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, playerKey(player.ID), data, c.cfg.PlayerTTL).Err()
}

func (c *Cache) Evict(ctx context.Context, id model.PlayerID) error {
	return c.client.Del(ctx, playerKey(id)).Err()
}
