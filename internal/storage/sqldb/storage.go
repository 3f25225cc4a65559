package sqldb

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mcoot/golfhandicap/internal/logger"
	"github.com/mcoot/golfhandicap/internal/model"
	"github.com/mcoot/golfhandicap/internal/storage"
)

// Storage is a SQL-backed implementation of the storage interface built on GORM
type Storage struct {
	db   *gorm.DB
	opts storage.Options
}

// Open connects to the configured database and migrates the schema
func Open(cfg Config, log *zap.Logger, opts ...storage.Option) (*Storage, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	if log == nil {
		log = zap.NewNop()
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.NewGormLogger(log, logger.GormLevel(cfg.LogLevel)),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// sqlite has a single writer, and an in-memory database lives only as
		// long as its connection
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := NewWithDB(db, opts...)
	if err := s.Migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing GORM handle (for testing). The schema is not migrated.
func NewWithDB(db *gorm.DB, opts ...storage.Option) *Storage {
	return &Storage{
		db:   db,
		opts: storage.ApplyOptions(opts...),
	}
}

// Migrate creates or updates the players and scores tables
func (s *Storage) Migrate() error {
	if err := s.db.AutoMigrate(&playerRow{}, &scoreRow{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// translate maps driver errors onto domain errors
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", model.ErrDuplicateID, err)
	}
	return err
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	id := player.ID
	if id == "" {
		id = s.opts.IDs.PlayerID()
	}
	now := s.opts.Clock.Now()
	row := playerRow{
		ID:          string(id),
		DisplayName: player.DisplayName,
		Handicap:    player.Handicap,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate(err, model.ErrPlayerNotFound)
	}
	return row.toModel(), nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var row playerRow
	if err := s.db.WithContext(ctx).Where("id = ?", string(id)).First(&row).Error; err != nil {
		return nil, translate(err, model.ErrPlayerNotFound)
	}
	return row.toModel(), nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	var rows []playerRow
	if err := s.db.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, err
	}
	players := make([]*model.Player, 0, len(rows))
	for i := range rows {
		players = append(players, rows[i].toModel())
	}
	return players, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) (*model.Player, error) {
	res := s.db.WithContext(ctx).
		Model(&playerRow{}).
		Where("id = ?", string(player.ID)).
		Updates(map[string]any{
			"display_name": player.DisplayName,
			"handicap":     player.Handicap,
			"updated_at":   s.opts.Clock.Now(),
		})
	if res.Error != nil {
		return nil, translate(res.Error, model.ErrPlayerNotFound)
	}
	if res.RowsAffected == 0 {
		return nil, model.ErrPlayerNotFound
	}
	return s.GetPlayer(ctx, player.ID)
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.db.WithContext(ctx).Where("id = ?", string(id)).Delete(&playerRow{}).Error
}

// DeletePlayerCascade removes the player and its scores in one transaction
func (s *Storage) DeletePlayerCascade(ctx context.Context, id model.PlayerID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("player_id = ?", string(id)).Delete(&scoreRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", string(id)).Delete(&playerRow{}).Error
	})
}

// Score operations

func (s *Storage) GetScore(ctx context.Context, id model.ScoreID) (*model.ScoreEntry, error) {
	var row scoreRow
	if err := s.db.WithContext(ctx).Where("id = ?", string(id)).First(&row).Error; err != nil {
		return nil, translate(err, model.ErrScoreNotFound)
	}
	return row.toModel(), nil
}

func (s *Storage) ListScoresByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.ScoreEntry, error) {
	var rows []scoreRow
	err := s.db.WithContext(ctx).
		Where("player_id = ?", string(playerID)).
		Order("seq").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	entries := make([]*model.ScoreEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].toModel())
	}
	return entries, nil
}

func (s *Storage) SaveScore(ctx context.Context, entry *model.ScoreEntry) (*model.ScoreEntry, error) {
	id := entry.ID
	if id == "" {
		id = s.opts.IDs.ScoreID()
	}
	now := s.opts.Clock.Now()
	row := scoreRow{
		ID:        string(id),
		PlayerID:  string(entry.PlayerID),
		Strokes:   entry.Strokes,
		Par:       entry.Par,
		Slope:     entry.Slope,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate(err, model.ErrScoreNotFound)
	}
	return row.toModel(), nil
}

func (s *Storage) UpdateScore(ctx context.Context, entry *model.ScoreEntry) (*model.ScoreEntry, error) {
	res := s.db.WithContext(ctx).
		Model(&scoreRow{}).
		Where("id = ?", string(entry.ID)).
		Updates(map[string]any{
			"strokes":    entry.Strokes,
			"par":        entry.Par,
			"slope":      entry.Slope,
			"updated_at": s.opts.Clock.Now(),
		})
	if res.Error != nil {
		return nil, translate(res.Error, model.ErrScoreNotFound)
	}
	if res.RowsAffected == 0 {
		return nil, model.ErrScoreNotFound
	}
	return s.GetScore(ctx, entry.ID)
}

func (s *Storage) DeleteScoresByPlayer(ctx context.Context, playerID model.PlayerID) error {
	return s.db.WithContext(ctx).Where("player_id = ?", string(playerID)).Delete(&scoreRow{}).Error
}
