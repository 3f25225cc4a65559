package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mcoot/golfhandicap/internal/api/apierr"
	"github.com/mcoot/golfhandicap/internal/middleware"
)

// Recovery creates panic recovery middleware for the API
// Returns JSON error responses on panic
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
