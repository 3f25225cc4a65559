package sqldb

import (
	"time"

	"github.com/mcoot/golfhandicap/internal/model"
)

// playerRow is the players table. Seq is a surrogate key that gives list
// queries a stable insertion order on every driver.
type playerRow struct {
	Seq         uint64    `gorm:"primaryKey;autoIncrement"`
	ID          string    `gorm:"size:64;uniqueIndex;not null"`
	DisplayName string    `gorm:"size:255;not null"`
	Handicap    float64   `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (playerRow) TableName() string { return "players" }

func (r *playerRow) toModel() *model.Player {
	return &model.Player{
		ID:          model.PlayerID(r.ID),
		DisplayName: r.DisplayName,
		Handicap:    r.Handicap,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type scoreRow struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement"`
	ID        string    `gorm:"size:64;uniqueIndex;not null"`
	PlayerID  string    `gorm:"size:64;index;not null"`
	Strokes   int       `gorm:"not null"`
	Par       int       `gorm:"not null"`
	Slope     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (scoreRow) TableName() string { return "scores" }

func (r *scoreRow) toModel() *model.ScoreEntry {
	return &model.ScoreEntry{
		ID:        model.ScoreID(r.ID),
		PlayerID:  model.PlayerID(r.PlayerID),
		Strokes:   r.Strokes,
		Par:       r.Par,
		Slope:     r.Slope,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}
