// ABOUTME: HTTP server assembly: routes, CORS, logging and rate limiting
// ABOUTME: Wires handlers into a net/http mux behind the middleware chain

package api

import (
	"net/http"
	"time"

	"github.com/rs/cors"

	"kindle-press-api/api/handlers"
	"kindle-press-api/api/middleware"
	"kindle-press-api/core/interfaces"
)

// Config holds server-level settings.
type Config struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window; 0 disables limiting
	RateWindow time.Duration // rate limit window
}

// NewHandler assembles the full HTTP handler: routes wrapped in CORS,
// request logging and per-IP rate limiting.
func NewHandler(cfg Config, articles interfaces.ArticleService, delivery handlers.DeliveryService) http.Handler {
	mux := http.NewServeMux()

	articleHandler := handlers.NewArticleHandler(articles, delivery, cfg.Logger)
	articleHandler.RegisterRoutes(mux)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	var handler http.Handler = mux

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		handler = middleware.RateLimitMiddleware(limiter)(handler)
	}

	if cfg.Logger != nil {
		handler = middleware.RequestLoggingMiddleware(cfg.Logger)(handler)
	}

	// CORS wraps everything so preflight requests short-circuit before
	// logging and limiting.
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	return c.Handler(handler)
}
