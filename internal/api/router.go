// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package api

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/config"
	"github.com/taskforge/taskforge/internal/middleware"
)

//go:embed openapi.yaml
var openAPISpec []byte

// NewRouter wires the middleware stack and all routes.
//
// Route map:
//
//	POST   /api/auth/signup
//	POST   /api/auth/login
//	POST   /api/auth/refresh
//	POST   /api/tasks                       (auth)
//	GET    /api/tasks                       (auth)
//	GET    /api/tasks/analytics/dashboard   (auth)
//	GET    /api/tasks/{id}                  (auth)
//	PUT    /api/tasks/{id}                  (auth)
//	DELETE /api/tasks/{id}                  (auth)
//	GET    /api/v1/health/live
//	GET    /api/v1/health/ready
//	GET    /metrics
//	GET    /docs/openapi.yaml
func NewRouter(h *Handler, authMW *auth.Middleware, cfg *config.Config) chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(middleware.PrometheusMetrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !cfg.Security.RateLimitDisabled {
		r.Use(httprate.LimitByIP(cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow))
	}

	r.Route("/api/auth", func(r chi.Router) {
		// Credential endpoints get a much tighter budget than the rest of
		// the API to slow down brute forcing.
		if !cfg.Security.RateLimitDisabled {
			r.Use(httprate.LimitByIP(cfg.Security.RateLimitAuthReqs, cfg.Security.RateLimitWindow))
		}
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(authMW.Authenticate)
		r.Post("/", h.CreateTask)
		r.Get("/", h.ListTasks)
		// The analytics route must register before /{id} so "analytics"
		// is never captured as a task ID.
		r.Get("/analytics/dashboard", h.Dashboard)
		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/docs/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		//nolint:errcheck // static payload
		w.Write(openAPISpec)
	})

	return r
}
