package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ndelvaux/flickd/internal/api/handlers"
	"github.com/ndelvaux/flickd/internal/api/middleware"
	"github.com/ndelvaux/flickd/internal/config"
	"github.com/ndelvaux/flickd/internal/controllers"
	"github.com/ndelvaux/flickd/internal/services/backend"
	"github.com/ndelvaux/flickd/internal/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server   *http.Server
	sessions *session.Manager
	logger   *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, sessions *session.Manager, home *controllers.Home, backendClient *backend.Client, logger *logrus.Logger) (*Server, error) {
	s := &Server{
		sessions: sessions,
		logger:   logger,
	}

	renderer, err := handlers.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build renderer: %w", err)
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux, renderer, home, backendClient)

	handler := middleware.WithSession(mux, sessions)
	handler = middleware.Metrics(handler)
	handler = middleware.Logging(handler, logger)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux, renderer *handlers.Renderer, home *controllers.Home, backendClient *backend.Client) {
	homeHandler := handlers.NewHomeHandler(home, backendClient, renderer, s.logger)
	bannerHandler := handlers.NewBannerHandler(home)
	searchHandler := handlers.NewSearchHandler(renderer, s.logger)
	movieHandler := handlers.NewMovieHandler(backendClient, renderer, s.logger)
	watchlistHandler := handlers.NewWatchlistHandler(renderer, s.logger)
	reviewsHandler := handlers.NewReviewsHandler(renderer, s.logger)
	authHandler := handlers.NewAuthHandler(s.sessions, renderer, s.logger)
	toastHandler := handlers.NewToastHandler()
	healthHandler := handlers.NewHealthHandler(s.logger)

	mux.HandleFunc("GET /{$}", homeHandler.ServeHTTP)
	mux.HandleFunc("POST /banner/next", bannerHandler.Next)
	mux.HandleFunc("POST /banner/prev", bannerHandler.Prev)

	mux.HandleFunc("GET /search", searchHandler.Page)
	mux.HandleFunc("GET /api/search", searchHandler.API)
	mux.HandleFunc("GET /api/toast", toastHandler.ServeHTTP)

	mux.HandleFunc("GET /movie/{id}", movieHandler.Detail)
	mux.HandleFunc("POST /movie/{id}/rate", movieHandler.Rate)
	mux.HandleFunc("POST /movie/{id}/unrate", movieHandler.Unrate)
	mux.HandleFunc("POST /movie/{id}/watched", movieHandler.Watched)

	mux.HandleFunc("POST /watchlist/add", watchlistHandler.Add)
	mux.HandleFunc("POST /watchlist/remove", watchlistHandler.Remove)

	// The watchlist and my-reviews views are the only protected routes
	mux.Handle("GET /watchlist", middleware.RequireUser(http.HandlerFunc(watchlistHandler.Page)))
	mux.Handle("GET /my-reviews", middleware.RequireUser(reviewsHandler))

	mux.HandleFunc("GET /sign-in", authHandler.SignInPage)
	mux.HandleFunc("POST /sign-in", authHandler.SignIn)
	mux.HandleFunc("POST /sign-out", authHandler.SignOut)

	mux.Handle("GET /health", healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
