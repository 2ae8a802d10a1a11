package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nickgarreis/salesurance/internal/pkg/httputil"
)

// SetupRoutes configures the ingestion router. Webhook endpoints are POST
// only; other methods on known paths get a 405 with the JSON error envelope.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.MethodNotAllowed(w)
	})

	// Providers call these endpoints server-to-server; CORS only matters for
	// dashboard probes of /health.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "resend-signature", "signature"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HandleHealth)

	r.Route("/webhooks", func(r chi.Router) {
		r.Post("/resend", h.HandleResendWebhook)
		r.Post("/inbound-email", h.HandleInboundEmail)
	})

	return r
}
