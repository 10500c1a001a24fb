package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/filmdesk/internal/auth"
	"github.com/hongminglow/filmdesk/internal/config"
	"github.com/hongminglow/filmdesk/internal/http/handlers"
	"github.com/hongminglow/filmdesk/internal/http/respond"
	"github.com/hongminglow/filmdesk/internal/middleware"
	"github.com/hongminglow/filmdesk/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, log *zap.SugaredLogger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewHandler(cfg, store, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewHandler builds the routed and middleware-wrapped API handler.
func NewHandler(cfg config.Config, store storage.Store, log *zap.SugaredLogger) http.Handler {
	respond.SetLogger(log)

	mux := http.NewServeMux()
	health := handlers.NewHealthHandler(time.Now(), store, log)
	health.Register(mux)

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authHandler := handlers.NewAuthHandler(store, tokenManager, &cfg, log)
	authHandler.Register(mux)

	films := handlers.NewFilmHandler(store, middleware.RequireAuth(tokenManager, cfg.SessionCookie), log)
	films.Register(mux)

	return middleware.RequestID(middleware.CORS(cfg.CORSOrigins, middleware.Logging(log, mux)))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
