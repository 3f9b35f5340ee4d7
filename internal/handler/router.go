package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaultpass/toolbox/internal/middleware"
)

// RouterConfig carries what NewRouter needs beyond the handlers.
type RouterConfig struct {
	JWTSecret      string
	RequireAuth    bool
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires the API routes. ctx bounds background work such as rate
// limiter eviction.
func NewRouter(ctx context.Context, cfg RouterConfig, gen *GeneratorHandler, lookup *LookupHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))

		r.Post("/api/v1/generate", gen.HandleGenerate)

		r.Group(func(r chi.Router) {
			if cfg.RequireAuth {
				r.Use(middleware.JWTAuth(cfg.JWTSecret))
			}
			r.Get("/api/v1/cep/{cep}", lookup.HandleCEP)
			r.Get("/api/v1/quote/{code}", lookup.HandleQuote)
			r.Get("/api/v1/profile", lookup.HandleProfile)
		})
	})

	return r
}
