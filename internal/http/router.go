// Package http wires the authd HTTP routes.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sahjnr/authd/internal/config"
	"github.com/sahjnr/authd/internal/http/features/accounts"
	"github.com/sahjnr/authd/internal/http/middleware"
	"github.com/sahjnr/authd/internal/httputil"
	"github.com/sahjnr/authd/pkg/auth"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger          *slog.Logger
	Auth            auth.Authenticator
	RateLimit       config.RateLimitConfig
	SecurityHeaders config.SecurityHeadersConfig
	MaxBody         int64
}

// NewRouter creates a new HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecurityHeaders(cfg.SecurityHeaders))
	r.Use(middleware.RequestSizeLimit(cfg.MaxBody))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	handler := accounts.NewHandler(cfg.Logger, cfg.Auth)

	// Signup and login are the abuse-prone endpoints; rate limit them by IP.
	authLimiter := middleware.NoRateLimit()
	if cfg.RateLimit.Enabled {
		authLimiter = middleware.RateLimit(middleware.RateLimitConfig{
			Requests: cfg.RateLimit.AuthRequestsPerWindow,
			Window:   time.Duration(cfg.RateLimit.AuthWindowMinutes) * time.Minute,
			Logger:   cfg.Logger,
		})
	}
	r.Group(func(r chi.Router) {
		r.Use(authLimiter)
		r.Post("/api/signup", handler.Signup)
		r.Post("/api/login", handler.Login)
	})

	r.Get("/api/profile", handler.Profile)
	r.Post("/api/logout", handler.Logout)

	return r
}
