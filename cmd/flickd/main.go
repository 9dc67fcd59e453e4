package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ndelvaux/flickd/internal/api"
	"github.com/ndelvaux/flickd/internal/config"
	"github.com/ndelvaux/flickd/internal/controllers"
	"github.com/ndelvaux/flickd/internal/models"
	"github.com/ndelvaux/flickd/internal/query"
	"github.com/ndelvaux/flickd/internal/scheduler"
	"github.com/ndelvaux/flickd/internal/services/backend"
	"github.com/ndelvaux/flickd/internal/services/identity"
	"github.com/ndelvaux/flickd/internal/session"
	"github.com/ndelvaux/flickd/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting flickd")
	logger.WithField("api_base_url", cfg.APIBaseURL).Info("Configuration loaded")

	// 3. Initialize session store
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer db.Close()
	logger.Info("Session store initialized")

	// 4. Initialize services
	backendClient, err := backend.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize backend client: %w", err)
	}
	logger.Info("Backend client initialized")

	identityClient, err := identity.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize identity client: %w", err)
	}
	logger.Info("Identity client initialized")

	// 5. Initialize controllers and sessions
	clock := query.RealClock()
	homeCtrl := controllers.NewHome(backendClient, logger)
	sessions := session.NewManager(cfg, db, backendClient, identityClient, clock, logger)
	logger.Info("Controllers initialized")

	// 6. Initialize scheduler
	sched := scheduler.NewScheduler(homeCtrl, sessions, db, cfg, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 7. Initialize HTTP server
	server, err := api.NewServer(cfg, sessions, homeCtrl, backendClient, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 8. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("flickd is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	homeCtrl.Close()
	logger.Info("flickd stopped")
	return nil
}
