package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/jw6ventures/calboard/internal/auth"
	"github.com/jw6ventures/calboard/internal/config"
	"github.com/jw6ventures/calboard/internal/http/ratelimit"
	"github.com/jw6ventures/calboard/internal/metrics"
	"github.com/jw6ventures/calboard/internal/store"
	"github.com/jw6ventures/calboard/internal/ui"
)

// NewRouter wires all HTTP routes for the calendar API.
func NewRouter(cfg *config.Config, st *store.Store, sessions *auth.SessionManager) http.Handler {
	r := chi.NewRouter()

	// Auth endpoints: 5 requests per second, burst of 10
	authRateLimiter := ratelimit.NewIPRateLimiter(rate.Limit(5), 10, 5*time.Minute, cfg.TrustedProxies)
	// API endpoints: 20 requests per second, burst of 50 (gestures arrive in bursts)
	apiRateLimiter := ratelimit.NewIPRateLimiter(rate.Limit(20), 50, 5*time.Minute, cfg.TrustedProxies)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := st.HealthCheck(ctx); err != nil {
			http.Error(w, "unready", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.PrometheusEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			metrics.Handler().ServeHTTP(w, r)
		})
	}

	uiHandler := ui.NewHandler(cfg, st, sessions)

	r.Route("/auth", func(r chi.Router) {
		r.Use(authRateLimiter.Middleware())
		r.Post("/login", uiHandler.Login)
		r.Post("/logout", uiHandler.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(apiRateLimiter.Middleware())
		r.Use(sessions.RequireSession)

		r.Get("/window", uiHandler.Window)
		r.Get("/categories", uiHandler.Categories)

		r.Get("/events/{id}", uiHandler.GetEvent)
		r.Put("/events/{id}", uiHandler.UpdateEvent)
		r.Delete("/events/{id}", uiHandler.DeleteEvent)
		r.Post("/events/{id}/duplicate", uiHandler.DuplicateEvent)
		r.Post("/events/move", uiHandler.MoveEvent)
		r.Post("/events/resize", uiHandler.ResizeEvent)
		r.Post("/slots", uiHandler.CreateSlot)

		r.Get("/export.ics", uiHandler.ExportICS)
		r.Post("/import.ics", uiHandler.ImportICS)
	})

	return r
}
