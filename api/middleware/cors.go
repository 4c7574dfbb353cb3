package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/stockyard-hq/stockyard-backend/pkg/config"
)

// CORS permits browser clients from the configured frontends.
func CORS(cfg config.AppConfig) func(http.Handler) http.Handler {
	allowed := []string{
		"https://app.stockyard.dev",
		"https://staging.stockyard.dev",
	}
	if cfg.IsDev() {
		allowed = append(allowed, "http://localhost:3000", "http://localhost:5173")
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-Id",
		},
		ExposedHeaders:   []string{"X-Request-Id", "X-SY-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
