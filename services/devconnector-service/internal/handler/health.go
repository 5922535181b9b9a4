package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/devconnector-api/shared/response"
)

const healthTimeout = 2 * time.Second

// Pinger checks that a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type healthResponse struct {
	Status string `json:"status"`
}

// Health reports whether the service can reach its database.
// GET /healthz
func Health(pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("health check failed")
			response.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}

		response.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
