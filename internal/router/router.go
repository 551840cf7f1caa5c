package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"podsum-backend/internal/handlers"
	"podsum-backend/internal/middleware"
	"podsum-backend/web"
)

func New(
	summarizeHandler *handlers.SummarizeHandler,
	chatHandler *handlers.ChatHandler,
	frontendURL string,
	apiRequestsPerMin int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(frontendURL))

	apiLimiter := middleware.NewRateLimiter(apiRequestsPerMin, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"healthy"}`))
		})

		r.Group(func(r chi.Router) {
			r.Use(apiLimiter.Middleware)
			r.Post("/summarize", summarizeHandler.Summarize)
			r.Post("/chat", chatHandler.Chat)
		})
	})

	// Static web interface
	r.Handle("/*", web.StaticHandler())

	return r
}
