package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rishiv/portfolio-api/internal/pkg/httputil"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Misses and bad verbs get the JSON error envelope too; the frontend
	// parses error bodies unconditionally.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.NotFound(w, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/contact", h.SubmitContact)

		r.Route("/site", func(r chi.Router) {
			r.Get("/config", h.GetSiteConfig)
			r.Get("/projects", h.GetProjects)
			r.Get("/socials", h.GetSocials)
			r.Get("/services", h.GetServices)
			r.Get("/resume", h.GetResume)
		})

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.Get("/{id}", h.GetPost)
		})

		r.Route("/assistant", func(r chi.Router) {
			r.Get("/status", h.AssistantStatus)
			r.Post("/ask", h.AskAssistant)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Get("/contacts", h.ListContacts)
			r.Put("/contacts", h.UpdateContactStatus)
			r.Post("/blog/sync", h.SyncBlog)
		})
	})

	return r
}
