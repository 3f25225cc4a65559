package player

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mcoot/golfhandicap/internal/cache"
	"github.com/mcoot/golfhandicap/internal/dependencies/idgen"
	"github.com/mcoot/golfhandicap/internal/metrics"
	"github.com/mcoot/golfhandicap/internal/model"
	"github.com/mcoot/golfhandicap/internal/retry"
	"github.com/mcoot/golfhandicap/internal/services/handicap"
	"github.com/mcoot/golfhandicap/internal/services/scorecard"
	"github.com/mcoot/golfhandicap/internal/storage"
)

// ServiceInterface defines the player and score operations exposed to transports
type ServiceInterface interface {
	CreatePlayer(ctx context.Context, displayName string) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	UpdatePlayer(ctx context.Context, id model.PlayerID, displayName string) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	GetPlayerHandicap(ctx context.Context, id model.PlayerID) (float64, error)
	GetPlayerScores(ctx context.Context, id model.PlayerID) ([]*model.ScoreEntry, error)

	AddScore(ctx context.Context, id model.PlayerID, entry *model.ScoreEntry) (*model.ScoreEntry, error)
	UpdateScore(ctx context.Context, id model.PlayerID, scoreID model.ScoreID, entry *model.ScoreEntry) (*model.ScoreEntry, error)
	ClearScores(ctx context.Context, id model.PlayerID) (*model.Player, error)
	Reconcile(ctx context.Context, id model.PlayerID) (*model.Player, error)
}

// Config holds configuration for the player service
type Config struct {
	Retry retry.Config
}

// DefaultConfig returns default player service configuration
func DefaultConfig() Config {
	return Config{
		Retry: retry.DefaultConfig(),
	}
}

// Option overrides a collaborator of the service
type Option func(*Service)

// WithIDGenerator sets the generator for new player and score IDs
func WithIDGenerator(g idgen.Generator) Option {
	return func(s *Service) { s.ids = g }
}

// WithCalculator replaces the handicap calculator
func WithCalculator(c handicap.Calculator) Option {
	return func(s *Service) { s.calculator = c }
}

// WithAggregator replaces the score aggregator
func WithAggregator(a scorecard.Aggregator) Option {
	return func(s *Service) { s.aggregator = a }
}

// Service keeps each player's stored and cached handicap consistent with
// their scores. Every mutation touching a player runs under that player's
// lock and ends by recomputing the handicap from a fresh read of the store.
type Service struct {
	storage    storage.Storage
	cache      cache.PlayerCache
	aggregator scorecard.Aggregator
	calculator handicap.Calculator
	ids        idgen.Generator
	locks      *keyedLocks
	cfg        Config
	logger     *zap.Logger
}

// New creates a new player service
func New(store storage.Storage, playerCache cache.PlayerCache, cfg Config, logger *zap.Logger, opts ...Option) *Service {
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		storage:    store,
		cache:      playerCache,
		aggregator: scorecard.New(store),
		calculator: handicap.New(),
		ids:        idgen.New(),
		locks:      newKeyedLocks(),
		cfg:        cfg,
		logger:     logger.Named("player"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ServiceInterface = (*Service)(nil)

// Player operations

// CreatePlayer stores a new player with a zero handicap
func (s *Service) CreatePlayer(ctx context.Context, displayName string) (*model.Player, error) {
	name, err := normalizeName(displayName)
	if err != nil {
		return nil, err
	}

	id := s.ids.PlayerID()
	unlock := s.locks.Lock(id)
	defer unlock()

	var created *model.Player
	err = s.do(ctx, "save player", func() error {
		var err error
		created, err = s.storage.SavePlayer(ctx, &model.Player{ID: id, DisplayName: name})
		if errors.Is(err, model.ErrDuplicateID) {
			// an earlier attempt committed before failing
			created, err = s.storage.GetPlayer(ctx, id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("player created", zap.String("player_id", string(created.ID)))
	if err := s.do(ctx, "refresh cache", func() error { return s.refreshCache(ctx, created) }); err != nil {
		return nil, err
	}
	return created, nil
}

// GetPlayer reads through the cache. A miss populates the cache only if the
// player's lock is free, so a read racing a mutation can never install a
// value older than what the mutation wrote.
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	cached, err := s.cache.Get(ctx, id)
	switch {
	case err == nil:
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	case errors.Is(err, cache.ErrMiss):
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("cache read failed", zap.String("player_id", string(id)), zap.Error(err))
	}

	unlock, locked := s.locks.TryLock(id)
	if locked {
		defer unlock()
	}

	p, err := s.fetchPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if locked {
		if err := s.cache.Put(ctx, p); err != nil {
			s.logger.Warn("cache populate failed", zap.String("player_id", string(id)), zap.Error(err))
		}
	}
	return p, nil
}

// ListPlayers returns every player from the store
func (s *Service) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	var players []*model.Player
	err := s.do(ctx, "list players", func() error {
		var err error
		players, err = s.storage.ListPlayers(ctx)
		return err
	})
	return players, err
}

// UpdatePlayer renames a player. The handicap is never caller-settable.
func (s *Service) UpdatePlayer(ctx context.Context, id model.PlayerID, displayName string) (*model.Player, error) {
	name, err := normalizeName(displayName)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	p, err := s.fetchPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	p.DisplayName = name

	var updated *model.Player
	err = s.do(ctx, "update player", func() error {
		var err error
		updated, err = s.storage.UpdatePlayer(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.do(ctx, "refresh cache", func() error { return s.refreshCache(ctx, updated) }); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeletePlayer removes the player and all of its scores, then evicts the
// cached entry
func (s *Service) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.fetchPlayer(ctx, id); err != nil {
		return err
	}

	err := s.do(ctx, "delete player", func() error {
		return s.storage.DeletePlayerCascade(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.ScoreMutationsTotal.WithLabelValues("delete_player").Inc()

	if err := s.do(ctx, "evict cache", func() error { return s.cache.Evict(ctx, id) }); err != nil {
		// The delete has committed, so make one last attempt that outlives
		// the caller. A surviving entry is bounded by the cache TTL.
		if evictErr := s.cache.Evict(context.WithoutCancel(ctx), id); evictErr != nil {
			s.logger.Error("player deleted but cache entry survived",
				zap.String("player_id", string(id)), zap.Error(evictErr))
			return err
		}
	}

	s.logger.Info("player deleted", zap.String("player_id", string(id)))
	return nil
}

// GetPlayerHandicap returns the player's current handicap index
func (s *Service) GetPlayerHandicap(ctx context.Context, id model.PlayerID) (float64, error) {
	p, err := s.GetPlayer(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.Handicap, nil
}

// GetPlayerScores returns the player's recorded rounds
func (s *Service) GetPlayerScores(ctx context.Context, id model.PlayerID) ([]*model.ScoreEntry, error) {
	if _, err := s.GetPlayer(ctx, id); err != nil {
		return nil, err
	}

	var entries []*model.ScoreEntry
	err := s.do(ctx, "list scores", func() error {
		var err error
		entries, err = s.aggregator.FetchScoresForPlayer(ctx, id)
		return err
	})
	return entries, err
}

// Score operations

// AddScore records a new round for the player and recomputes their handicap.
// The entry's ID and owner are assigned here; caller-supplied values are ignored.
func (s *Service) AddScore(ctx context.Context, id model.PlayerID, in *model.ScoreEntry) (*model.ScoreEntry, error) {
	if in == nil {
		return nil, model.ErrInvalidScore
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.fetchPlayer(ctx, id); err != nil {
		return nil, err
	}

	entry := in.Clone()
	entry.ID = s.ids.ScoreID()
	entry.PlayerID = id
	entry.Normalize()

	var saved *model.ScoreEntry
	err := s.do(ctx, "save score", func() error {
		var err error
		saved, err = s.storage.SaveScore(ctx, entry)
		if errors.Is(err, model.ErrDuplicateID) {
			// an earlier attempt committed before failing
			saved, err = s.storage.GetScore(ctx, entry.ID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.ScoreMutationsTotal.WithLabelValues("add").Inc()

	if _, err := s.recompute(ctx, id); err != nil {
		return nil, err
	}
	return saved, nil
}

// UpdateScore overwrites an existing round and recomputes the handicap.
// The entry must belong to the player.
func (s *Service) UpdateScore(ctx context.Context, id model.PlayerID, scoreID model.ScoreID, in *model.ScoreEntry) (*model.ScoreEntry, error) {
	if in == nil {
		return nil, model.ErrInvalidScore
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.fetchPlayer(ctx, id); err != nil {
		return nil, err
	}

	var existing *model.ScoreEntry
	err := s.do(ctx, "get score", func() error {
		var err error
		existing, err = s.storage.GetScore(ctx, scoreID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if existing.PlayerID != id {
		return nil, model.ErrScoreOwnerMismatch
	}

	entry := in.Clone()
	entry.ID = scoreID
	entry.PlayerID = id
	entry.Normalize()

	var updated *model.ScoreEntry
	err = s.do(ctx, "update score", func() error {
		var err error
		updated, err = s.storage.UpdateScore(ctx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.ScoreMutationsTotal.WithLabelValues("update").Inc()

	if _, err := s.recompute(ctx, id); err != nil {
		return nil, err
	}
	return updated, nil
}

// ClearScores deletes every round the player owns and resets the handicap
func (s *Service) ClearScores(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.fetchPlayer(ctx, id); err != nil {
		return nil, err
	}

	err := s.do(ctx, "clear scores", func() error {
		return s.storage.DeleteScoresByPlayer(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	metrics.ScoreMutationsTotal.WithLabelValues("clear").Inc()

	return s.recompute(ctx, id)
}

// Reconcile recomputes the handicap from the stored scores. It repairs a
// player left stale by a mutation that reported ErrUnavailable.
func (s *Service) Reconcile(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	return s.recompute(ctx, id)
}

// recompute re-reads the player's scores, recomputes the index, persists it
// and refreshes the cache. The caller must hold the player's lock. The steps
// are retried together; if they never succeed the cache entry is evicted so
// readers fall back to the store.
func (s *Service) recompute(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	start := time.Now()
	var updated *model.Player

	err := s.do(ctx, "recompute handicap", func() error {
		rounds, err := s.aggregator.FetchRoundsForPlayer(ctx, id)
		if err != nil {
			return err
		}
		index, ok := s.calculator.ComputeIndex(rounds)
		if !ok {
			index = 0
		}

		p, err := s.storage.GetPlayer(ctx, id)
		if err != nil {
			return err
		}
		p.Handicap = index

		updated, err = s.storage.UpdatePlayer(ctx, p)
		if err != nil {
			return err
		}
		return s.refreshCache(ctx, updated)
	})
	if err != nil {
		metrics.HandicapRecomputeFailuresTotal.Inc()
		if evictErr := s.cache.Evict(context.WithoutCancel(ctx), id); evictErr != nil {
			s.logger.Error("cache eviction failed after recompute failure",
				zap.String("player_id", string(id)), zap.Error(evictErr))
		}
		s.logger.Error("handicap recompute failed",
			zap.String("player_id", string(id)), zap.Error(err))
		return nil, err
	}

	metrics.HandicapRecomputesTotal.Inc()
	metrics.HandicapRecomputeLatency.Observe(time.Since(start).Seconds())
	s.logger.Debug("handicap recomputed",
		zap.String("player_id", string(id)), zap.Float64("handicap", updated.Handicap))
	return updated, nil
}

// refreshCache overwrites the cached player, falling back to eviction
func (s *Service) refreshCache(ctx context.Context, p *model.Player) error {
	err := s.cache.Put(ctx, p)
	if err == nil {
		return nil
	}
	s.logger.Warn("cache put failed, evicting", zap.String("player_id", string(p.ID)), zap.Error(err))
	return s.cache.Evict(ctx, p.ID)
}

// fetchPlayer reads the player from the store, bypassing the cache
func (s *Service) fetchPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var p *model.Player
	err := s.do(ctx, "get player", func() error {
		var err error
		p, err = s.storage.GetPlayer(ctx, id)
		return err
	})
	return p, err
}

// do runs fn under the retry policy. Transient failures that outlive the
// budget are reported as model.ErrUnavailable.
func (s *Service) do(ctx context.Context, op string, fn func() error) error {
	err := retry.Do(ctx, s.cfg.Retry, model.IsTransient, fn, func(err error, wait time.Duration) {
		metrics.StoreRetriesTotal.WithLabelValues(op).Inc()
		s.logger.Warn("retrying",
			zap.String("op", op), zap.Duration("wait", wait), zap.Error(err))
	})
	if err != nil && model.IsTransient(err) && !errors.Is(err, model.ErrUnavailable) {
		return fmt.Errorf("%w: %s: %w", model.ErrUnavailable, op, err)
	}
	return err
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", model.ErrInvalidName
	}
	return name, nil
}
