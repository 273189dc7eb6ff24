// Package server provides the HTTP server for the ARMagic stroke recognition
// system.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/nileshs31/Project-ARMagic/internal/app"
	"github.com/nileshs31/Project-ARMagic/internal/server/api"
	"github.com/nileshs31/Project-ARMagic/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App
}

// Server represents the HTTP server for the ARMagic application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register template API handlers if Store and App are configured
	if s.config.Store != nil && s.config.App != nil {
		templateHandler := api.NewTemplateHandler(s.config.Store, s.config.App)
		samplesHandler := api.NewSamplesHandler(s.config.Store)

		// Use a wrapper to route between templates and samples handlers
		templateRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Check if this is a samples request: /api/templates/{id}/samples
			if strings.HasSuffix(r.URL.Path, "/samples") {
				samplesHandler.ServeHTTP(w, r)
				return
			}
			templateHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/templates", templateRouter)
		s.mux.Handle("/api/templates/", templateRouter)
	}

	// Register classification endpoints if App is configured
	if s.config.App != nil {
		s.mux.Handle("/api/classify", api.NewClassifyHandler(s.config.App))
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.App))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
