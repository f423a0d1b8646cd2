package api

import (
	"context"
	"net/http"
	"time"
)

// Server wraps the HTTP server and its wired dependencies.
type Server struct {
	handler http.Handler
	server  *http.Server
}

// NewServer creates the API server from fully constructed handlers.
func NewServer(h *Handlers, allowedOrigins []string) *Server {
	return &Server{handler: SetupRoutes(h, allowedOrigins)}
}

// ListenAndServe starts the HTTP server. Timeouts are tight: every
// request body here is a small JSON document.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.handler
}
