// Copyright (c) 2026 MovieFlix. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Every route declares its full pipeline inline: authenticate (global) →
authorize (group) → validate and execute (handler). Reading the route table
below is reading the access policy.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/movieflix/api/internal/catalog"
	"github.com/movieflix/api/internal/platform/config"
	"github.com/movieflix/api/internal/platform/constants"
	"github.com/movieflix/api/internal/platform/middleware"
	"github.com/movieflix/api/internal/platform/respond"
	"github.com/movieflix/api/internal/users/account"
	"github.com/movieflix/api/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles identity entry points (login, register, password recovery).
	Auth *auth.Handler

	// Account handles profile and favorites routes under /users/{username}.
	Account *account.Handler

	// Catalog handles the movie, genre, director, and actor read surface.
	Catalog *catalog.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, resolver middleware.IdentityResolver, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, resolver))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated welcome banner and health probes.
	r.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		respond.Text(writer, http.StatusOK, "Welcome to MovieFlix")
	})
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Public Identity Endpoints
	r.Post("/login", h.Auth.Login)
	r.Post("/users", h.Auth.Register)
	r.Post("/forgot-password", h.Auth.ForgotPassword)
	r.Post("/reset-password", h.Auth.ResetPassword)

	// # Catalog (authenticated, shared)
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/movies", h.Catalog.ListMovies)
		protected.Get("/movies/{title}", h.Catalog.GetMovie)
		protected.Get("/genres", h.Catalog.ListGenres)
		protected.Get("/genres/{name}", h.Catalog.GetGenre)
		protected.Get("/directors", h.Catalog.ListDirectors)
		protected.Get("/directors/{name}", h.Catalog.GetDirector)
		protected.Get("/actors", h.Catalog.ListActors)
		protected.Get("/actors/{name}", h.Catalog.GetActor)
	})

	// # Account Administration (authenticated, privileged only)
	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth)
		admin.Use(middleware.RequireAdmin(cfg.AdminUsername))

		admin.Get("/users", h.Account.List)
	})

	// # Account Ownership (authenticated, self only)
	r.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)
		owner.Use(middleware.RequireSelf(account.ParamUsername))

		owner.Get("/users/{username}", h.Account.Get)
		owner.Put("/users/{username}", h.Account.Update)
		owner.Delete("/users/{username}", h.Account.Delete)
		owner.Put("/users/{username}/favorites/{movieID}", h.Account.AddFavorite)
		owner.Delete("/users/{username}/favorites/{movieID}", h.Account.RemoveFavorite)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
