// Package api provides the HTTP API server and handlers for the habits server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	domainerrors "github.com/listenupapp/habits-server/internal/errors"
	"github.com/listenupapp/habits-server/internal/http/response"
	"github.com/listenupapp/habits-server/internal/ratelimit"
	"github.com/listenupapp/habits-server/internal/store"
)

// Options tunes the HTTP surface.
type Options struct {
	CORSAllowedOrigins []string
	RateLimitRPS       float64 // Zero disables rate limiting
	RateLimitBurst     int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       store.Store
	services    *Services
	router      *chi.Mux
	api         huma.API
	rateLimiter *ratelimit.KeyedRateLimiter
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		store:    st,
		services: services,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	if opts.RateLimitRPS > 0 {
		s.rateLimiter = ratelimit.New(opts.RateLimitRPS, opts.RateLimitBurst)
	}

	s.setupMiddleware(opts)

	humaConfig := huma.DefaultConfig("Habits API", "1.0.0")
	humaConfig.Info.Description = "Define habits, check off today's, and review completion over time."
	// Responses are plain JSON documents without a $schema link.
	humaConfig.CreateHooks = nil

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler(logger)

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(recoverer(s.logger))

	if len(opts.CORSAllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id", "Retry-After"},
			MaxAge:         300,
		}))
	}

	if s.rateLimiter != nil {
		s.router.Use(RateLimitMiddleware(s.rateLimiter, s.logger))
	}

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, domainerrors.CodeNotFound, "route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, domainerrors.CodeValidation, "method not allowed", s.logger)
	})
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerHabitRoutes()
	s.registerDayRoutes()
	s.registerSummaryRoutes()
}
