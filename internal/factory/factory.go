package factory

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mcoot/golfhandicap/internal/cache"
	cachememory "github.com/mcoot/golfhandicap/internal/cache/memory"
	rediscache "github.com/mcoot/golfhandicap/internal/cache/redis"
	"github.com/mcoot/golfhandicap/internal/config"
	"github.com/mcoot/golfhandicap/internal/dependencies/clock"
	"github.com/mcoot/golfhandicap/internal/dependencies/idgen"
	"github.com/mcoot/golfhandicap/internal/services/handicap"
	"github.com/mcoot/golfhandicap/internal/services/player"
	"github.com/mcoot/golfhandicap/internal/services/scorecard"
	"github.com/mcoot/golfhandicap/internal/storage"
	"github.com/mcoot/golfhandicap/internal/storage/memory"
	"github.com/mcoot/golfhandicap/internal/storage/sqldb"
)

// Backend type constants
const (
	StorageTypeMemory = config.StorageMemory
	StorageTypeSQL    = config.StorageSQL

	CacheTypeMemory = config.CacheMemory
	CacheTypeRedis  = config.CacheRedis
)

// App contains all wired application components
type App struct {
	// Backends
	Storage storage.Storage
	Cache   cache.PlayerCache

	// External dependencies
	Clock clock.Clock
	IDs   idgen.Generator

	// Services
	Calculator    *handicap.Service
	Aggregator    *scorecard.Service
	PlayerService *player.Service

	Logger *zap.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *zap.Logger

	// StorageType selects the store ("memory" or "sql")
	// If empty, defaults to "memory"
	StorageType string
	// SQLConfig is required if StorageType is "sql"
	SQLConfig *sqldb.Config

	// CacheType selects the player cache ("memory" or "redis")
	// If empty, defaults to "memory"
	CacheType string
	// CacheTTL applies to the in-memory cache; Redis takes its TTL from RedisConfig
	CacheTTL time.Duration
	// RedisConfig is required if CacheType is "redis"
	RedisConfig *rediscache.Config

	// PlayerConfig holds the retry policy for store calls
	// If zero value, defaults to player.DefaultConfig()
	PlayerConfig player.Config
}

// ConfigFrom builds a factory Config from loaded application configuration
func ConfigFrom(cfg *config.AppConfig, logger *zap.Logger) Config {
	sqlCfg := cfg.SQL()
	redisCfg := cfg.Redis()
	return Config{
		Logger:       logger,
		StorageType:  cfg.Storage.Type,
		SQLConfig:    &sqlCfg,
		CacheType:    cfg.Cache.Type,
		CacheTTL:     cfg.Cache.TTL,
		RedisConfig:  &redisCfg,
		PlayerConfig: cfg.Player(),
	}
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clk := clock.New()
	ids := idgen.New()

	store, err := newStorage(cfg, logger, clk, ids)
	if err != nil {
		return nil, err
	}

	playerCache, err := newCache(cfg, clk)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	playerCfg := cfg.PlayerConfig
	if playerCfg.Retry.MaxAttempts == 0 {
		playerCfg = player.DefaultConfig()
	}

	logger.Info("application wired",
		zap.String("storage", storageTypeOrDefault(cfg.StorageType)),
		zap.String("cache", cacheTypeOrDefault(cfg.CacheType)),
	)

	return newWithDependencies(store, playerCache, clk, ids, playerCfg, logger), nil
}

func storageTypeOrDefault(t string) string {
	if t == "" {
		return StorageTypeMemory
	}
	return t
}

func cacheTypeOrDefault(t string) string {
	if t == "" {
		return CacheTypeMemory
	}
	return t
}

func newStorage(cfg Config, logger *zap.Logger, clk clock.Clock, ids idgen.Generator) (storage.Storage, error) {
	opts := []storage.Option{storage.WithClock(clk), storage.WithIDGenerator(ids)}

	switch storageTypeOrDefault(cfg.StorageType) {
	case StorageTypeMemory:
		return memory.New(opts...), nil
	case StorageTypeSQL:
		if cfg.SQLConfig == nil {
			return nil, errors.New("SQLConfig required when StorageType is sql")
		}
		s, err := sqldb.Open(*cfg.SQLConfig, logger.Named("sql"), opts...)
		if err != nil {
			return nil, fmt.Errorf("opening sql storage: %w", err)
		}
		return s, nil
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'sql'")
	}
}

func newCache(cfg Config, clk clock.Clock) (cache.PlayerCache, error) {
	switch cacheTypeOrDefault(cfg.CacheType) {
	case CacheTypeMemory:
		return cachememory.New(cachememory.WithTTL(cfg.CacheTTL), cachememory.WithClock(clk)), nil
	case CacheTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when CacheType is redis")
		}
		c, err := rediscache.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis cache: %w", err)
		}
		return c, nil
	default:
		return nil, errors.New("invalid CacheType: must be 'memory' or 'redis'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, playerCache cache.PlayerCache, clk clock.Clock, ids idgen.Generator, playerCfg player.Config, logger *zap.Logger) *App {
	calculator := handicap.New()
	aggregator := scorecard.New(store)
	playerService := player.New(store, playerCache, playerCfg, logger,
		player.WithIDGenerator(ids),
		player.WithCalculator(calculator),
		player.WithAggregator(aggregator),
	)

	return &App{
		Storage:       store,
		Cache:         playerCache,
		Clock:         clk,
		IDs:           ids,
		Calculator:    calculator,
		Aggregator:    aggregator,
		PlayerService: playerService,
		Logger:        logger,
	}
}

// Close releases the cache and storage connections
func (a *App) Close() error {
	return errors.Join(a.Cache.Close(), a.Storage.Close())
}
