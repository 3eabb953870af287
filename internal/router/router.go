package router

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"nagabalm/internal/handler"
	"nagabalm/internal/middleware"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	authHandler *handler.AuthHandler,
	uploadHandler *handler.UploadHandler,
	contentHandler *handler.ContentHandler,
	jwtSecret string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product routes
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r.URL.Path, "/api/products")
		switch {
		case id == "" && r.Method == http.MethodGet:
			productHandler.List(w, r)
		case id == "" && r.Method == http.MethodPost:
			productHandler.Create(w, r)
		case id != "" && r.Method == http.MethodGet:
			productHandler.GetByID(w, r, id)
		case id != "" && r.Method == http.MethodPut:
			productHandler.Update(w, r, id)
		case id != "" && r.Method == http.MethodDelete:
			productHandler.Delete(w, r, id)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Category routes
	categoryRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r.URL.Path, "/api/categories")
		switch {
		case id == "" && r.Method == http.MethodGet:
			categoryHandler.List(w, r)
		case id == "" && r.Method == http.MethodPost:
			categoryHandler.Create(w, r)
		case id != "" && r.Method == http.MethodPut:
			categoryHandler.Update(w, r, id)
		case id != "" && r.Method == http.MethodDelete:
			categoryHandler.Delete(w, r, id)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/categories", categoryRouteHandler)
	mux.HandleFunc("/api/categories/", categoryRouteHandler)

	// Auth routes
	mux.HandleFunc("/api/auth/login", methodOnly(http.MethodPost, authHandler.Login))
	mux.HandleFunc("/api/auth/refresh", methodOnly(http.MethodPost, authHandler.Refresh))

	// Admin user management
	mux.HandleFunc("/api/users", methodOnly(http.MethodPost, authHandler.CreateUser))

	// Image upload
	mux.HandleFunc("/api/upload", methodOnly(http.MethodPost, uploadHandler.Upload))

	// Static marketing content
	mux.HandleFunc("/api/content/faq", methodOnly(http.MethodGet, contentHandler.FAQ))
	mux.HandleFunc("/api/content/locations", methodOnly(http.MethodGet, contentHandler.Locations))

	// Apply middleware in order: Recovery -> Logging -> CORS -> BearerAuth
	var h http.Handler = mux
	h = middleware.BearerAuth(jwtSecret, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}

// pathID extracts the trailing resource ID from a collection path.
// Returns "" for the bare collection path, with or without a trailing
// slash.
func pathID(path, prefix string) string {
	id := strings.TrimPrefix(path, prefix)
	return strings.Trim(id, "/")
}

// methodOnly rejects requests whose method does not match.
func methodOnly(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
