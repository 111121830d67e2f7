package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ticketcheckin/internal/delivery/http/helpers"
)

// Pinger reports whether a dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	Logger *slog.Logger
	DB     Pinger
}

func NewHealthController(logger *slog.Logger, db Pinger) *HealthController {
	return &HealthController{Logger: logger, DB: db}
}

// Health godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 503 {object} helpers.APIResponse "code: storage_unavailable"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if c.DB != nil {
		if err := c.DB.PingContext(ctx); err != nil {
			c.Logger.ErrorContext(ctx, "health check failed", "err", err)
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, "storage_unavailable", "database unreachable")
			return
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}
