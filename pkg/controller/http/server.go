package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/preflight/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr          string
	sessionSecret string
	clientTimeout time.Duration
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithSessionSecret sets the secret used to sign anonymous session cookies.
// Empty disables the session middleware.
func WithSessionSecret(secret string) Option {
	return func(c *config) {
		c.sessionSecret = secret
	}
}

// WithClientTimeout sets the browser-side fetch timeout injected into the
// results page. Zero means unbounded.
func WithClientTimeout(d time.Duration) Option {
	return func(c *config) {
		c.clientTimeout = d
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server hosting the web front end and the
// analyze API endpoint
func NewServer(
	ctx context.Context,
	analyzeUC interfaces.AnalyzeUseCase,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr: "localhost:8080",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	if cfg.sessionSecret != "" {
		router.Use(SessionMiddleware(cfg.sessionSecret))
	}

	// Health check
	router.Get("/health", handleHealth)

	// Web front end
	pages, err := NewPageHandler(cfg.clientTimeout)
	if err != nil {
		return nil, err
	}
	router.Get("/", pages.Index)
	router.Post("/", pages.Submit)
	router.Get("/analyze", pages.Analysis)

	// Analyze API endpoint
	analyzeHandler := NewAnalyzeHandler(analyzeUC)
	router.Post("/api/analyze", analyzeHandler.Handle)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
