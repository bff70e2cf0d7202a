// Package server assembles nibbled's HTTP surface.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/abelbrown/nibble/internal/api/handlers"
	"github.com/abelbrown/nibble/internal/api/middleware"
)

// MaxBodyBytes caps request bodies. A suggest request is a few dozen bytes.
const MaxBodyBytes int64 = 1 << 20

type RouterConfig struct {
	SuggestHandler *handlers.SuggestHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.MaxBodyBytes(MaxBodyBytes))

	r.Post("/suggest", cfg.SuggestHandler.Suggest)
	r.Get("/health", cfg.SuggestHandler.Health)
	r.Get("/test-ai", cfg.SuggestHandler.TestAI)

	return r
}
