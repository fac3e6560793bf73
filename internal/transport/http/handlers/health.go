package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/scoutlens/tracking-service/internal/metrics"
	"github.com/scoutlens/tracking-service/internal/transport/http/response"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler { return &HealthHandler{db: db} }

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		healthy := h.db.PingContext(ctx) == nil
		metrics.SetDependencyHealth("postgres", healthy)
		if !healthy {
			status = "degraded"
		}
	}
	response.OK(w, "ok", map[string]string{"status": status})
}
