package handler

import (
	"net/http"

	"github.com/mcoot/golfhandicap/internal/api/apierr"
	"github.com/mcoot/golfhandicap/internal/api/request"
	"github.com/mcoot/golfhandicap/internal/api/response"
	"github.com/mcoot/golfhandicap/internal/services/handicap"
)

// HandicapHandler serves stateless handicap calculations
type HandicapHandler struct {
	calculator handicap.Calculator
}

// NewHandicapHandler creates a new handicap handler
func NewHandicapHandler(calculator handicap.Calculator) *HandicapHandler {
	return &HandicapHandler{
		calculator: calculator,
	}
}

// Calculate handles POST /api/v1/handicap/calculate
func (h *HandicapHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req request.CalculateRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	idx, ok, err := h.calculator.ComputeIndexFromSeries(req.Strokes, req.Pars, req.Slopes)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var resp response.Calculation
	if ok {
		resp.Handicap = &idx
		resp.Rounds = len(req.Strokes)
	}
	response.JSON(w, http.StatusOK, resp)
}
