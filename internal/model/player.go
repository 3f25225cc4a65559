package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a golfer. Handicap is derived from the player's score
// history and is never set directly by callers.
type Player struct {
	ID          PlayerID  `json:"id"`
	DisplayName string    `json:"display_name"`
	Handicap    float64   `json:"handicap"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a copy of the player so stores and caches never share
// mutable state with their callers.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
