package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether the account store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db  Pinger
	log zerolog.Logger
}

func NewHealthController(db Pinger, log zerolog.Logger) *HealthController {
	return &HealthController{db: db, log: log}
}

func (h *HealthController) Status(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.log.Error().Err(err).Msg("health check: database ping failed")
			respondError(c, http.StatusServiceUnavailable, MessageDBUnavailable)
			return
		}
	}

	respondSuccess(c, "Server is running")
}
