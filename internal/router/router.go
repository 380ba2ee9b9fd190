package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"btn-backend/internal/handlers"
	"btn-backend/internal/middleware"
)

func New(trackHandler *handlers.TrackHandler, frontendURL string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Generation is the expensive route (10 req/min per IP)
	generateLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/styles", trackHandler.Styles)
		r.Get("/status", trackHandler.Status)

		r.Group(func(r chi.Router) {
			r.Use(generateLimiter.Middleware)
			r.Post("/tracks/generate", trackHandler.Generate)
		})
	})

	return r
}
