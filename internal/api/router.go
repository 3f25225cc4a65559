package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mcoot/golfhandicap/internal/api/handler"
	"github.com/mcoot/golfhandicap/internal/api/middleware"
	"github.com/mcoot/golfhandicap/internal/api/response"
	sharedmw "github.com/mcoot/golfhandicap/internal/middleware"
	"github.com/mcoot/golfhandicap/internal/services/handicap"
	"github.com/mcoot/golfhandicap/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *zap.Logger
	PlayerService player.ServiceInterface
	Calculator    handicap.Calculator
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")

	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	scoreHandler := handler.NewScoreHandler(cfg.PlayerService, cfg.Calculator)
	handicapHandler := handler.NewHandicapHandler(cfg.Calculator)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(logger))
	api.Use(sharedmw.Logging(logger))
	api.Use(middleware.Metrics)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Players
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Update).Methods(http.MethodPatch)
	api.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/players/{id}/handicap", playerHandler.GetHandicap).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}/handicap/recompute", playerHandler.Recompute).Methods(http.MethodPost)

	// Scores
	api.HandleFunc("/players/{id}/scores", scoreHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}/scores", scoreHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}/scores", scoreHandler.Clear).Methods(http.MethodDelete)
	api.HandleFunc("/players/{id}/scores/{score_id}", scoreHandler.Update).Methods(http.MethodPut)

	// Stateless calculation
	api.HandleFunc("/handicap/calculate", handicapHandler.Calculate).Methods(http.MethodPost)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
