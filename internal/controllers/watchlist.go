package controllers

import (
	"context"
	"fmt"
	"sync"

	"github.com/ndelvaux/flickd/internal/models"
	"github.com/ndelvaux/flickd/internal/query"
	"github.com/sirupsen/logrus"
)

// WatchlistService is the remote side of watchlist mutations
type WatchlistService interface {
	AddToWatchlist(ctx context.Context, userID string, movieID int) error
	RemoveFromWatchlist(ctx context.Context, userID string, movieID int) error
	Watchlist(ctx context.Context, userID string) ([]models.WatchlistEntry, error)
}

// Watchlist mirrors the user's remote watchlist as a membership set and
// applies mutations optimistically. Membership is presence/absence only;
// no ordering is relied on.
type Watchlist struct {
	mu       sync.Mutex
	service  WatchlistService
	notifier *query.Notifier
	logger   *logrus.Logger
	members  map[ratingKey]bool
}

// NewWatchlist creates a watchlist controller
func NewWatchlist(service WatchlistService, notifier *query.Notifier, logger *logrus.Logger) *Watchlist {
	return &Watchlist{
		service:  service,
		notifier: notifier,
		logger:   logger,
		members:  make(map[ratingKey]bool),
	}
}

// Add puts the movie in the local set synchronously, then adds it remotely.
// Without a signed-in user this short-circuits with a sign-in prompt and no
// network call.
func (c *Watchlist) Add(userID string, movieID int) {
	if userID == "" {
		c.notifier.Show("Please sign in to use your watchlist")
		return
	}

	c.mu.Lock()
	c.members[ratingKey{userID, movieID}] = true
	c.mu.Unlock()

	go func() {
		if err := c.service.AddToWatchlist(context.Background(), userID, movieID); err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"user_id":  userID,
				"movie_id": movieID,
			}).Warn("Watchlist add failed")
			c.notifier.Show("Failed to add to watchlist")
			return
		}
		c.notifier.Show("Added to watchlist")
	}()
}

// Remove drops the movie from the local set synchronously, then removes it
// remotely
func (c *Watchlist) Remove(userID string, movieID int) {
	if userID == "" {
		c.notifier.Show("Please sign in to use your watchlist")
		return
	}

	c.mu.Lock()
	delete(c.members, ratingKey{userID, movieID})
	c.mu.Unlock()

	go func() {
		if err := c.service.RemoveFromWatchlist(context.Background(), userID, movieID); err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"user_id":  userID,
				"movie_id": movieID,
			}).Warn("Watchlist remove failed")
			c.notifier.Show("Failed to remove from watchlist")
			return
		}
		c.notifier.Show("Removed from watchlist")
	}()
}

// Contains reports local watchlist membership for (user, movie)
func (c *Watchlist) Contains(userID string, movieID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.members[ratingKey{userID, movieID}]
}

// Refresh replaces the user's local membership set with what the backend
// holds and returns the entries for rendering
func (c *Watchlist) Refresh(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	entries, err := c.service.Watchlist(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watchlist: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.members {
		if key.userID == userID {
			delete(c.members, key)
		}
	}
	for _, e := range entries {
		c.members[ratingKey{userID, e.MovieID}] = true
	}
	return entries, nil
}
