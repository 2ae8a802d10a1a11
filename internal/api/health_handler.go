package api

import (
	"context"
	"net/http"
	"time"

	"github.com/nickgarreis/salesurance/internal/pkg/httputil"
)

// HandleHealth reports process liveness and store reachability.
//
//	GET /health
//
// Always returns 200; the "database" field conveys store health so webhook
// delivery is never blocked by a transient DB hiccup at the LB.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	dbStatus := "not_configured"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	httputil.OK(w, map[string]string{
		"status":   "ok",
		"database": dbStatus,
		"uptime":   time.Since(h.startTime).Round(time.Second).String(),
	})
}
