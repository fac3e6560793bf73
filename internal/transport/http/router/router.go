package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/scoutlens/tracking-service/internal/config"
	"github.com/scoutlens/tracking-service/internal/metrics"
	"github.com/scoutlens/tracking-service/internal/transport/http/handlers"
	appmw "github.com/scoutlens/tracking-service/internal/transport/http/middleware"
)

// New builds the operation surface: one route per operation, each bound to a
// typed handler method.
func New(
	sessions *handlers.SessionsHandler,
	feedback *handlers.FeedbackHandler,
	interactions *handlers.InteractionsHandler,
	health *handlers.HealthHandler,
	limiter appmw.RequestLimiter,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(appmw.RequestID)
	r.Use(appmw.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(appmw.AccessLog)
	r.Use(appmw.Metrics())

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", appmw.HeaderXRequestID},
		MaxAge:         300,
	}))

	if cfg.RLEnabled {
		if limiter == nil {
			r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
		} else {
			r.Use(appmw.RateLimit(limiter, cfg.RLLimit, cfg.RLWindow))
		}
	}

	r.Get("/healthz", health.Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.MetricsHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessions.Create)
			r.Get("/", sessions.List)
			r.Get("/active/count", sessions.ActiveCount)
			r.Get("/token/{sessionToken}", sessions.GetByToken)
			r.Get("/{sessionId}", sessions.Get)
			r.Patch("/{sessionId}", sessions.Update)
			r.Post("/{sessionId}/end", sessions.End)
			r.Post("/{sessionId}/interactions/increment", sessions.IncrementInteractions)
		})

		r.Route("/feedback", func(r chi.Router) {
			r.Post("/", feedback.Create)
			r.Get("/", feedback.List)
			r.Get("/{feedbackId}", feedback.Get)
			r.Patch("/{feedbackId}", feedback.Update)
			r.Delete("/{feedbackId}", feedback.Delete)
		})

		r.Route("/interactions", func(r chi.Router) {
			r.Post("/", interactions.Create)
			r.Get("/", interactions.ListBySession)
			r.Get("/summary", interactions.Summary)
			r.Get("/{interactionId}", interactions.Get)
		})
	})

	return r
}
