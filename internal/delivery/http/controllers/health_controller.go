package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	h "eventcatalog/internal/delivery/http/helpers"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of a healthy GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

type HealthController struct {
	Logger  *slog.Logger
	Storage Pinger
	Backend string
}

func NewHealthController(logger *slog.Logger, storage Pinger, backend string) *HealthController {
	return &HealthController{Logger: logger, Storage: storage, Backend: backend}
}

// Health godoc
// @Summary Health check
// @Description Reports whether the storage backend is reachable.
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /healthz [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	if err := c.Storage.Ping(ctx); err != nil {
		c.Logger.WarnContext(ctx, "health check failed", "storage", c.Backend, "err", err)
		h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeUnavailable, "storage unavailable")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok", Storage: c.Backend})
}
