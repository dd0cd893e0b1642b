// Package web provides the HTTP front end for converting vendor order
// workbooks: an index page with a source selector, an htmx form partial for
// the selected source's user-supplied fields, and the upload endpoint that
// streams back the generated archive.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/excel2erp/excel2erp"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates
var templateFiles embed.FS

// DefaultMaxUploadSize caps the request body of workbook uploads (16MB).
const DefaultMaxUploadSize = 16 << 20

// Options adjust a Server beyond its configuration document.
type Options struct {
	AssetsDir     string // directory whose files are served under /assets
	MaxUploadSize int64  // body cap for POST /load; DefaultMaxUploadSize when zero
	OnShutdown    func() // invoked once after POST /shutdown is accepted
}

// Server is the HTTP front end over one loaded configuration.
type Server struct {
	cfg    *excel2erp.Config
	opts   Options
	tmpl   *template.Template
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new Server instance for the given configuration.
func NewServer(cfg *excel2erp.Config, opts Options) *Server {
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = DefaultMaxUploadSize
	}
	s := &Server{
		cfg:    cfg,
		opts:   opts,
		tmpl:   template.Must(template.ParseFS(templateFiles, "templates/*.tmpl")),
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/forms", s.handleForms)
	s.router.Post("/load", s.handleLoad)
	s.router.Get("/assets/{name}", s.handleAsset)
	s.router.Post("/shutdown", s.handleShutdown)
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
