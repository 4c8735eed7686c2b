package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Options configures the stand-in API router.
type Options struct {
	JWTSecret string
	PublicURL string
	Metrics   *Metrics
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, opts Options) http.Handler {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	authHandler := &AuthHandler{DB: db, JWTSecret: opts.JWTSecret}
	itemsHandler := &ItemsHandler{DB: db}
	uploadsHandler := &UploadsHandler{DB: db, PublicURL: opts.PublicURL}
	reportsHandler := &ReportsHandler{DB: db, Metrics: metrics}

	r := chi.NewRouter()
	r.Use(metrics.Middleware)

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public.
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/forgot-password", authHandler.ForgotPassword)
		r.Get("/uploads/{id}", uploadsHandler.Get)

		// Authenticated.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(opts.JWTSecret))

			r.Get("/items", itemsHandler.List)
			r.Post("/items", itemsHandler.Create)
			r.Get("/items/report", reportsHandler.Report)
			r.Post("/items/export-report", reportsHandler.Export)
			r.Put("/items/{id}", itemsHandler.Update)
			r.Delete("/items/{id}", itemsHandler.Delete)

			r.Post("/upload", uploadsHandler.Upload)
		})
	})

	return r
}
