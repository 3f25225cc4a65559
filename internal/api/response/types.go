package response

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcoot/golfhandicap/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Handicap    float64   `json:"handicap"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		Handicap:    p.Handicap,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PlayerList is the response for listing players
type PlayerList struct {
	Players []Player `json:"players"`
}

// PlayerListFromModel converts a slice of players
func PlayerListFromModel(players []*model.Player) PlayerList {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return PlayerList{Players: out}
}

// Score represents a recorded round. Differential is the round's
// slope-adjusted differential to two places, encoded as a string.
type Score struct {
	ID           string          `json:"id"`
	PlayerID     string          `json:"player_id"`
	Strokes      int             `json:"strokes"`
	Par          int             `json:"par"`
	Slope        int             `json:"slope"`
	Differential decimal.Decimal `json:"differential"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DifferentialFunc computes the differential shown for a stored round
type DifferentialFunc func(e *model.ScoreEntry) decimal.Decimal

// ScoreFromModel converts model.ScoreEntry
func ScoreFromModel(e *model.ScoreEntry, differential DifferentialFunc) Score {
	return Score{
		ID:           string(e.ID),
		PlayerID:     string(e.PlayerID),
		Strokes:      e.Strokes,
		Par:          e.Par,
		Slope:        e.Slope,
		Differential: differential(e),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// ScoreList is the response for listing a player's scores
type ScoreList struct {
	PlayerID string  `json:"player_id"`
	Scores   []Score `json:"scores"`
}

// ScoreListFromModel converts a player's scores
func ScoreListFromModel(id model.PlayerID, entries []*model.ScoreEntry, differential DifferentialFunc) ScoreList {
	out := make([]Score, len(entries))
	for i, e := range entries {
		out[i] = ScoreFromModel(e, differential)
	}
	return ScoreList{PlayerID: string(id), Scores: out}
}

// Handicap is a player's current handicap index
type Handicap struct {
	PlayerID string  `json:"player_id"`
	Handicap float64 `json:"handicap"`
}

// Calculation is the result of an ad-hoc handicap calculation. Handicap is
// null when there were no rounds to average.
type Calculation struct {
	Handicap *float64 `json:"handicap"`
	Rounds   int      `json:"rounds"`
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
