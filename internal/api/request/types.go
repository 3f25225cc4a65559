package request

import "github.com/mcoot/golfhandicap/internal/model"

// CreatePlayerRequest is the request body for creating a player
type CreatePlayerRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

// UpdatePlayerRequest is the request body for renaming a player
type UpdatePlayerRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

// ScoreRequest is the request body for recording or correcting a round.
// A slope of zero, or any rating outside the accepted range, is replaced
// by the baseline slope.
type ScoreRequest struct {
	Strokes int `json:"strokes" validate:"gt=0"`
	Par     int `json:"par" validate:"gt=0"`
	Slope   int `json:"slope"`
}

// ToModel converts the request into a score entry
func (r ScoreRequest) ToModel() *model.ScoreEntry {
	return &model.ScoreEntry{
		Strokes: r.Strokes,
		Par:     r.Par,
		Slope:   r.Slope,
	}
}

// CalculateRequest carries parallel per-round series. Slopes may be omitted.
type CalculateRequest struct {
	Strokes []int `json:"strokes"`
	Pars    []int `json:"pars"`
	Slopes  []int `json:"slopes,omitempty"`
}
