package model

import "time"

// ScoreID uniquely identifies a recorded round
type ScoreID string

// Slope rating bounds. Ratings outside [MinSlope, MaxSlope] are treated as
// missing and replaced by BaselineSlope.
const (
	MinSlope      = 55
	MaxSlope      = 155
	BaselineSlope = 113
)

// ScoreEntry is one recorded round for a player
type ScoreEntry struct {
	ID        ScoreID   `json:"id"`
	PlayerID  PlayerID  `json:"player_id"`
	Strokes   int       `json:"strokes"`
	Par       int       `json:"par"`
	Slope     int       `json:"slope"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveSlope returns slope when it is a valid rating and the baseline otherwise
func EffectiveSlope(slope int) int {
	if slope < MinSlope || slope > MaxSlope {
		return BaselineSlope
	}
	return slope
}

// Validate checks the fields a caller is allowed to supply
func (e *ScoreEntry) Validate() error {
	if e.Strokes <= 0 || e.Par <= 0 {
		return ErrInvalidScore
	}
	return nil
}

// Normalize replaces an out-of-range slope with the baseline
func (e *ScoreEntry) Normalize() {
	e.Slope = EffectiveSlope(e.Slope)
}

// Clone returns a copy of the entry
func (e *ScoreEntry) Clone() *ScoreEntry {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}
