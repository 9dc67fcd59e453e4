package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/ndelvaux/flickd/internal/config"
	"github.com/ndelvaux/flickd/internal/controllers"
	"github.com/ndelvaux/flickd/internal/models"
	"github.com/ndelvaux/flickd/internal/session"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// sessionMaxIdle is how long a persisted session survives without a visit
const sessionMaxIdle = 30 * 24 * time.Hour

// stateMaxIdle is how long an in-memory visitor state survives without a
// request. Shorter than sessionMaxIdle: signed-in visitors are restored
// from their persisted record, anonymous ones just get a fresh state.
const stateMaxIdle = 2 * time.Hour

// Scheduler manages the recurring jobs: banner rotation, the periodic
// refresh of the shared landing-page rows and session cleanup
type Scheduler struct {
	cron     *cron.Cron
	home     *controllers.Home
	sessions *session.Manager
	db       *models.Database
	cfg      *config.Config
	logger   *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(home *controllers.Home, sessions *session.Manager, db *models.Database, cfg *config.Config, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		home:     home,
		sessions: sessions,
		db:       db,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start starts the scheduler and triggers the initial row load
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	_, err := s.cron.AddFunc(every(s.cfg.BannerRotate), func() {
		s.home.RotateBanner()
	})
	if err != nil {
		return fmt.Errorf("failed to add banner rotation job: %w", err)
	}

	_, err = s.cron.AddFunc(every(s.cfg.TrendingRefresh), func() {
		s.runRefresh()
	})
	if err != nil {
		return fmt.Errorf("failed to add trending refresh job: %w", err)
	}

	_, err = s.cron.AddFunc("@every 1h", func() {
		s.sessions.EvictIdle(stateMaxIdle)
		if err := s.db.DeleteExpiredSessions(sessionMaxIdle); err != nil {
			s.logger.WithError(err).Warn("Session cleanup failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add session cleanup job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	// Load the rows immediately so the first page view has data
	go s.runRefresh()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runRefresh() {
	s.logger.Debug("Running scheduled row refresh")
	s.home.Refresh(context.Background())
}

func every(d time.Duration) string {
	return fmt.Sprintf("@every %s", d)
}
