package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/notebook/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	ping        func(ctx context.Context) error
	startupTime time.Time
}

func newHealthHandler(ping func(ctx context.Context) error, startupTime time.Time, notify errorNotifier) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger).withNotifier(notify),
		logger:      logger,
		ping:        ping,
		startupTime: startupTime,
	}
}

// health reports liveness and, when a database is attached, reachability
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse "Service Unavailable - Database unreachable"
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := h.ping(ctx); err != nil {
				h.logger.Warn().Err(err).Msg("database ping failed")
				h.responder.WriteJSONStatus(w, http.StatusServiceUnavailable, ErrorResponse{
					Error:  errs.ErrDatabaseConnection.Error(),
					Status: "error",
				})
				return
			}
		}

		h.responder.WriteJSON(w, HealthResponse{
			Status: "ok",
			Uptime: time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
