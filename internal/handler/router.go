package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/natsalete/Password-Generator/internal/middleware"
)

// RouterConfig collects everything NewRouter mounts. Accounts and
// Preferences may be nil, in which case their routes are not registered.
type RouterConfig struct {
	Generator   *GeneratorHandler
	Accounts    *AccountHandler
	Preferences *PreferencesHandler
	Metrics     http.Handler

	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the API router.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	limit := middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r.Group(func(r chi.Router) {
		r.Use(limit)
		r.Post("/api/v1/generate", cfg.Generator.HandleGenerate)
		r.Post("/api/v1/strength", cfg.Generator.HandleStrength)

		if cfg.Accounts != nil {
			r.Post("/api/v1/auth/register", cfg.Accounts.HandleRegister)
			r.Post("/api/v1/auth/login", cfg.Accounts.HandleLogin)
		}
	})

	if cfg.Accounts == nil {
		return r
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/api/v1/auth/me", cfg.Accounts.HandleMe)

		if cfg.Preferences != nil {
			r.Get("/api/v1/preferences", cfg.Preferences.HandleGet)
			r.Put("/api/v1/preferences", cfg.Preferences.HandlePut)
			r.Post("/api/v1/preferences/generate", cfg.Preferences.HandleGenerate)
		}
	})

	return r
}
