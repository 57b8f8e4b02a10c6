package router

import (
	"net/http"

	"catalog-sync/internal/handler"
	"catalog-sync/internal/metrics"
	"catalog-sync/internal/middleware"

	"github.com/rs/zerolog"
)

// Options configures the middleware chain.
type Options struct {
	// APIKey enables X-API-Key authentication when non-empty.
	APIKey string

	// AllowedOrigins lists the CORS origins; "*" allows any.
	AllowedOrigins []string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(productHandler *handler.ProductHandler, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("/products", productHandler.List)
	mux.HandleFunc("/products/sync", productHandler.Sync)
	mux.HandleFunc("/products/clear", productHandler.Clear)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(opts.APIKey, logger)(handler)
	handler = middleware.CORS(opts.AllowedOrigins)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
