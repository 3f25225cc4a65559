package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mcoot/golfhandicap/internal/cache/redis"
	"github.com/mcoot/golfhandicap/internal/logger"
	"github.com/mcoot/golfhandicap/internal/retry"
	"github.com/mcoot/golfhandicap/internal/services/player"
	"github.com/mcoot/golfhandicap/internal/storage/sqldb"
)

// Storage and cache backends
const (
	StorageMemory = "memory"
	StorageSQL    = "sql"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "HANDICAP"

// AppConfig holds the complete configuration for the server
type AppConfig struct {
	Environment string        `mapstructure:"environment"`
	LogLevel    string        `mapstructure:"log_level"`
	ServiceName string        `mapstructure:"service_name"`
	Server      ServerConfig  `mapstructure:"server"`
	Storage     StorageConfig `mapstructure:"storage"`
	Cache       CacheConfig   `mapstructure:"cache"`
	Retry       RetryConfig   `mapstructure:"retry"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr is the listen address
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type StorageConfig struct {
	Type         string `mapstructure:"type"`
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type CacheConfig struct {
	Type  string           `mapstructure:"type"`
	TTL   time.Duration    `mapstructure:"ttl"`
	Redis RedisCacheConfig `mapstructure:"redis"`
}

type RedisCacheConfig struct {
	URL          string `mapstructure:"url"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

type RetryConfig struct {
	MaxAttempts     int           `mapstructure:"max_attempts"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	Multiplier      float64       `mapstructure:"multiplier"`
}

func setDefaults(v *viper.Viper) {
	sql := sqldb.DefaultConfig()
	rc := redis.DefaultConfig()
	rt := retry.DefaultConfig()

	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("service_name", "golfhandicap")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("storage.type", StorageMemory)
	v.SetDefault("storage.driver", sql.Driver)
	v.SetDefault("storage.dsn", sql.DSN)
	v.SetDefault("storage.max_open_conns", sql.MaxOpenConns)
	v.SetDefault("storage.max_idle_conns", sql.MaxIdleConns)

	v.SetDefault("cache.type", CacheMemory)
	v.SetDefault("cache.ttl", rc.PlayerTTL)
	v.SetDefault("cache.redis.url", rc.URL)
	v.SetDefault("cache.redis.pool_size", rc.PoolSize)
	v.SetDefault("cache.redis.min_idle_conns", rc.MinIdleConns)

	v.SetDefault("retry.max_attempts", rt.MaxAttempts)
	v.SetDefault("retry.initial_interval", rt.InitialInterval)
	v.SetDefault("retry.max_interval", rt.MaxInterval)
	v.SetDefault("retry.multiplier", rt.Multiplier)
}

// Load reads defaults, then the optional config file at path, then
// HANDICAP_* environment variables, and validates the result.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	// every key has a default, so AutomaticEnv covers them all on Unmarshal
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *AppConfig) Validate() error {
	if c.ServiceName == "" {
		return errors.New("service_name is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}

	switch c.Storage.Type {
	case StorageMemory:
	case StorageSQL:
		if c.Storage.Driver != sqldb.DriverSQLite && c.Storage.Driver != sqldb.DriverPostgres {
			return fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver)
		}
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for sql storage")
		}
	default:
		return fmt.Errorf("storage.type %q is not supported", c.Storage.Type)
	}

	switch c.Cache.Type {
	case CacheMemory:
	case CacheRedis:
		if c.Cache.Redis.URL == "" {
			return errors.New("cache.redis.url is required for redis cache")
		}
	default:
		return fmt.Errorf("cache.type %q is not supported", c.Cache.Type)
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl must not be negative")
	}

	if c.Retry.MaxAttempts < 1 {
		return errors.New("retry.max_attempts must be at least 1")
	}
	if c.Retry.Multiplier < 1 {
		return errors.New("retry.multiplier must be at least 1")
	}
	return nil
}

// Logger converts to the logger package config
func (c *AppConfig) Logger() logger.Config {
	return logger.Config{
		Level:       c.LogLevel,
		Environment: c.Environment,
		ServiceName: c.ServiceName,
	}
}

// SQL converts to the sqldb package config
func (c *AppConfig) SQL() sqldb.Config {
	cfg := sqldb.DefaultConfig()
	cfg.Driver = c.Storage.Driver
	cfg.DSN = c.Storage.DSN
	cfg.MaxOpenConns = c.Storage.MaxOpenConns
	cfg.MaxIdleConns = c.Storage.MaxIdleConns
	cfg.LogLevel = c.LogLevel
	return cfg
}

// Redis converts to the redis cache package config
func (c *AppConfig) Redis() redis.Config {
	return redis.Config{
		URL:          c.Cache.Redis.URL,
		PoolSize:     c.Cache.Redis.PoolSize,
		MinIdleConns: c.Cache.Redis.MinIdleConns,
		PlayerTTL:    c.Cache.TTL,
	}
}

// Player converts to the player service config
func (c *AppConfig) Player() player.Config {
	return player.Config{
		Retry: retry.Config{
			MaxAttempts:     c.Retry.MaxAttempts,
			InitialInterval: c.Retry.InitialInterval,
			MaxInterval:     c.Retry.MaxInterval,
			Multiplier:      c.Retry.Multiplier,
		},
	}
}
