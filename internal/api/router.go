// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulsolabs/pulso/internal/auth"
	"github.com/pulsolabs/pulso/internal/config"
	"github.com/pulsolabs/pulso/internal/middleware"
)

// NewRouter assembles the chi router: global middleware, health and
// Prometheus endpoints, then the authenticated API surface.
func NewRouter(cfg *config.Config, h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.CORS(&cfg.Server))

	r.Get("/health/live", h.handleLive)
	r.Get("/health/ready", h.handleReady)
	r.Get("/health", h.handleLive)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)

		r.Get("/health", h.handleLive)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.Server.RateLimitAuth))
			r.Post("/auth/login", h.handleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.Server.RateLimit))
			if h.authmgr != nil {
				r.Use(h.authmgr.Middleware)
			} else {
				r.Use(auth.OpenModeMiddleware(cfg.Demo.UserID))
			}

			r.Get("/analytics/predictive", h.handlePredictive)
			r.Patch("/analytics/alerts/{id}", h.handleAlertPatch)
			r.Post("/analytics/recommendations/{id}/apply", h.handleRecommendationApply)
			r.Post("/metrics/daily", h.handleIngest)
		})
	})

	return r
}
