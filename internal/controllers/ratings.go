package controllers

import (
	"context"
	"fmt"
	"sync"

	"github.com/ndelvaux/flickd/internal/models"
	"github.com/ndelvaux/flickd/internal/query"
	"github.com/sirupsen/logrus"
)

// RatingService is the remote side of rating mutations
type RatingService interface {
	SubmitRating(ctx context.Context, userID string, movieID int, rating float64) error
	DeleteRating(ctx context.Context, userID string, movieID int) error
	UserRatings(ctx context.Context, userID string) ([]models.UserRating, error)
}

type ratingKey struct {
	userID  string
	movieID int
}

// Ratings applies rating mutations optimistically: the local state changes
// synchronously, the remote call runs in the background, and a notification
// reports the outcome. Local state is deliberately not rolled back on
// failure; the next Refresh re-derives it from the backend. Ratings are
// keyed by (user, movie), matching the backend's uniqueness guarantee.
type Ratings struct {
	mu       sync.Mutex
	service  RatingService
	notifier *query.Notifier
	logger   *logrus.Logger
	ratings  map[ratingKey]float64
	watched  map[ratingKey]bool
}

// NewRatings creates a ratings controller
func NewRatings(service RatingService, notifier *query.Notifier, logger *logrus.Logger) *Ratings {
	return &Ratings{
		service:  service,
		notifier: notifier,
		logger:   logger,
		ratings:  make(map[ratingKey]float64),
		watched:  make(map[ratingKey]bool),
	}
}

// Rate sets the local rating synchronously, then submits it remotely.
// Rating a movie also marks it watched.
func (c *Ratings) Rate(userID string, movieID int, value float64) {
	if userID == "" {
		c.notifier.Show("Please sign in to rate movies")
		return
	}
	if !models.ValidRating(value) {
		c.notifier.Show(fmt.Sprintf("Ratings go from %g to %g stars", models.RatingMin, models.RatingMax))
		return
	}

	key := ratingKey{userID, movieID}
	c.mu.Lock()
	c.ratings[key] = value
	c.watched[key] = true
	c.mu.Unlock()

	go func() {
		if err := c.service.SubmitRating(context.Background(), userID, movieID, value); err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"user_id":  userID,
				"movie_id": movieID,
			}).Warn("Rating submission failed")
			c.notifier.Show("Failed to save rating")
			return
		}
		c.notifier.Show("Rating saved")
	}()
}

// Unrate removes the local rating synchronously, then deletes it remotely
func (c *Ratings) Unrate(userID string, movieID int) {
	if userID == "" {
		c.notifier.Show("Please sign in to rate movies")
		return
	}

	key := ratingKey{userID, movieID}
	c.mu.Lock()
	delete(c.ratings, key)
	c.mu.Unlock()

	go func() {
		if err := c.service.DeleteRating(context.Background(), userID, movieID); err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"user_id":  userID,
				"movie_id": movieID,
			}).Warn("Rating deletion failed")
			c.notifier.Show("Failed to remove rating")
			return
		}
		c.notifier.Show("Rating removed")
	}()
}

// Rating returns the local rating for (user, movie)
func (c *Ratings) Rating(userID string, movieID int) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.ratings[ratingKey{userID, movieID}]
	return v, ok
}

// Watched reports the local watched flag for (user, movie)
func (c *Ratings) Watched(userID string, movieID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.watched[ratingKey{userID, movieID}]
}

// ToggleWatched flips the watched flag independently of rating state
func (c *Ratings) ToggleWatched(userID string, movieID int) bool {
	if userID == "" {
		c.notifier.Show("Please sign in first")
		return false
	}
	key := ratingKey{userID, movieID}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watched[key] = !c.watched[key]
	return c.watched[key]
}

// Refresh replaces the user's local rating state with what the backend
// holds and returns the list for rendering
func (c *Ratings) Refresh(ctx context.Context, userID string) ([]models.UserRating, error) {
	ratings, err := c.service.UserRatings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user ratings: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.ratings {
		if key.userID == userID {
			delete(c.ratings, key)
		}
	}
	for _, r := range ratings {
		key := ratingKey{userID, r.MovieID}
		c.ratings[key] = r.Rating
		c.watched[key] = true
	}
	return ratings, nil
}
