package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/mcoot/golfhandicap/internal/api/apierr"
	"github.com/mcoot/golfhandicap/internal/api/request"
	"github.com/mcoot/golfhandicap/internal/api/response"
	"github.com/mcoot/golfhandicap/internal/model"
	"github.com/mcoot/golfhandicap/internal/services/handicap"
	"github.com/mcoot/golfhandicap/internal/services/player"
)

// ScoreHandler handles a player's recorded rounds
type ScoreHandler struct {
	players    player.ServiceInterface
	calculator handicap.Calculator
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(players player.ServiceInterface, calculator handicap.Calculator) *ScoreHandler {
	return &ScoreHandler{
		players:    players,
		calculator: calculator,
	}
}

func (h *ScoreHandler) differential(e *model.ScoreEntry) decimal.Decimal {
	return h.calculator.Differential(handicap.Round{Strokes: e.Strokes, Par: e.Par, Slope: e.Slope})
}

// List handles GET /api/v1/players/{id}/scores
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	id := playerID(r)
	scores, err := h.players.GetPlayerScores(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreListFromModel(id, scores, h.differential))
}

// Add handles POST /api/v1/players/{id}/scores
func (h *ScoreHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.ScoreRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	saved, err := h.players.AddScore(r.Context(), playerID(r), req.ToModel())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ScoreFromModel(saved, h.differential))
}

// Update handles PUT /api/v1/players/{id}/scores/{score_id}
func (h *ScoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.ScoreRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	scoreID := model.ScoreID(mux.Vars(r)["score_id"])
	saved, err := h.players.UpdateScore(r.Context(), playerID(r), scoreID, req.ToModel())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreFromModel(saved, h.differential))
}

// Clear handles DELETE /api/v1/players/{id}/scores
func (h *ScoreHandler) Clear(w http.ResponseWriter, r *http.Request) {
	p, err := h.players.ClearScores(r.Context(), playerID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}
