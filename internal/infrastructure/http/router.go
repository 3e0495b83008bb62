package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/s4084228/toc-backend/internal/infrastructure/http/handlers"
	"github.com/s4084228/toc-backend/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler          *handlers.AuthHandler
	HealthHandler        *handlers.HealthHandler
	ProjectsHandler      *handlers.ProjectsHandler
	UsersHandler         *handlers.UsersHandler
	SubscriptionsHandler *handlers.SubscriptionsHandler
	RequireJWT           func(http.Handler) http.Handler // JWT auth for /projects, /users/me etc.
	Log                  zerolog.Logger
	Secure               func(http.Handler) http.Handler
	CORS                 func(http.Handler) http.Handler
	IPRateLimit          func(http.Handler) http.Handler
	UserRateLimit        func(http.Handler) http.Handler
	APIVersion           string // X-API-Version header; empty disables
	Metrics              bool   // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.APIVersion != "" {
		r.Use(middleware.APIVersion(cfg.APIVersion))
	}
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))
	r.Use(chimid.SetHeader("Content-Type", "application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/refresh", cfg.AuthHandler.Refresh)
		r.Post("/logout", cfg.AuthHandler.Logout)
		r.Post("/forgot-password", cfg.AuthHandler.ForgotPassword)
		r.Post("/reset-password", cfg.AuthHandler.ResetPassword)
	})

	if cfg.RequireJWT != nil {
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			if cfg.UserRateLimit != nil {
				r.Use(cfg.UserRateLimit)
			}

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", cfg.ProjectsHandler.List)
				r.Post("/", cfg.ProjectsHandler.Create)
				r.Get("/{projectID}", cfg.ProjectsHandler.Get)
				r.Put("/{projectID}", cfg.ProjectsHandler.Update)
				r.Delete("/{projectID}", cfg.ProjectsHandler.Delete)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", cfg.UsersHandler.Me)
				r.Put("/me", cfg.UsersHandler.UpdateMe)
			})

			if cfg.SubscriptionsHandler != nil {
				r.Route("/subscriptions", func(r chi.Router) {
					r.Post("/", cfg.SubscriptionsHandler.Subscribe)
					r.Get("/", cfg.SubscriptionsHandler.Get)
					r.Delete("/", cfg.SubscriptionsHandler.Cancel)
				})
			}
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
