package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/golfhandicap/internal/cache"
	"github.com/mcoot/golfhandicap/internal/dependencies/clock"
	"github.com/mcoot/golfhandicap/internal/model"
)

type entry struct {
	player    *model.Player
	expiresAt time.Time // zero means no expiry
}

// Cache is an in-process PlayerCache with optional expiry
type Cache struct {
	mu      sync.RWMutex
	entries map[model.PlayerID]entry
	ttl     time.Duration
	clock   clock.Clock
}

// Option configures a Cache
type Option func(*Cache)

// WithTTL expires entries after ttl. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithClock overrides the clock used for expiry
func WithClock(clk clock.Clock) Option {
	return func(c *Cache) {
		c.clock = clk
	}
}

// New creates an empty cache
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[model.PlayerID]entry),
		clock:   clock.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ cache.PlayerCache = (*Cache)(nil)

func (c *Cache) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return nil, cache.ErrMiss
	}
	if !e.expiresAt.IsZero() && !c.clock.Now().Before(e.expiresAt) {
		c.mu.Lock()
		// only drop it if nobody replaced it in the meantime
		if cur, ok := c.entries[id]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, id)
		}
		c.mu.Unlock()
		return nil, cache.ErrMiss
	}
	return e.player.Clone(), nil
}

func (c *Cache) Put(ctx context.Context, player *model.Player) error {
	e := entry{player: player.Clone()}
	if c.ttl > 0 {
		e.expiresAt = c.clock.Now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[player.ID] = e
	c.mu.Unlock()
	return nil
}

func (c *Cache) Evict(ctx context.Context, id model.PlayerID) error {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
	return nil
}

// Len reports the number of cached entries, including expired ones not yet dropped
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) Close() error {
	return nil
}
