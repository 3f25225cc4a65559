package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/golfhandicap/internal/api/apierr"
	"github.com/mcoot/golfhandicap/internal/api/request"
	"github.com/mcoot/golfhandicap/internal/api/response"
	"github.com/mcoot/golfhandicap/internal/model"
	"github.com/mcoot/golfhandicap/internal/services/player"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	players player.ServiceInterface
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players player.ServiceInterface) *PlayerHandler {
	return &PlayerHandler{
		players: players,
	}
}

func playerID(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	p, err := h.players.CreatePlayer(r.Context(), req.DisplayName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(p))
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.ListPlayers(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerListFromModel(players))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.players.GetPlayer(r.Context(), playerID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Update handles PATCH /api/v1/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePlayerRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	p, err := h.players.UpdatePlayer(r.Context(), playerID(r), req.DisplayName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.players.DeletePlayer(r.Context(), playerID(r)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// GetHandicap handles GET /api/v1/players/{id}/handicap
func (h *PlayerHandler) GetHandicap(w http.ResponseWriter, r *http.Request) {
	id := playerID(r)
	idx, err := h.players.GetPlayerHandicap(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Handicap{PlayerID: string(id), Handicap: idx})
}

// Recompute handles POST /api/v1/players/{id}/handicap/recompute
func (h *PlayerHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	p, err := h.players.Reconcile(r.Context(), playerID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}
