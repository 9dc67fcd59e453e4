package controllers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ndelvaux/flickd/internal/models"
	"github.com/ndelvaux/flickd/internal/query"
)

type fakeRatingService struct {
	mu          sync.Mutex
	submitted   []float64
	deleted     []int
	submitErr   error
	deleteErr   error
	userRatings []models.UserRating
	release     chan struct{} // when set, SubmitRating blocks until closed
}

func (f *fakeRatingService) SubmitRating(ctx context.Context, userID string, movieID int, rating float64) error {
	f.mu.Lock()
	release := f.release
	f.mu.Unlock()
	if release != nil {
		<-release
	}
	f.mu.Lock()
	f.submitted = append(f.submitted, rating)
	f.mu.Unlock()
	return f.submitErr
}

func (f *fakeRatingService) DeleteRating(ctx context.Context, userID string, movieID int) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, movieID)
	f.mu.Unlock()
	return f.deleteErr
}

func (f *fakeRatingService) UserRatings(ctx context.Context, userID string) ([]models.UserRating, error) {
	return f.userRatings, nil
}

func (f *fakeRatingService) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted)
}

// waitFor polls until cond holds or the deadline passes
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}

func TestRateAppliesBeforeRemoteResolves(t *testing.T) {
	release := make(chan struct{})
	service := &fakeRatingService{release: release}
	notifier := query.NewNotifier(query.DefaultNotifyDuration, query.NewManualClock())
	c := NewRatings(service, notifier, testLogger())

	c.Rate("user-1", 42, 4.5)

	// Local state is visible while the remote call is still pending
	if v, ok := c.Rating("user-1", 42); !ok || v != 4.5 {
		t.Fatalf("Rating not applied optimistically: %v %v", v, ok)
	}
	if !c.Watched("user-1", 42) {
		t.Error("Rating a movie should mark it watched")
	}
	if _, visible := notifier.Current(); visible {
		t.Error("Notification shown before the remote call resolved")
	}

	close(release)
	waitFor(t, "rating submission", func() bool { return service.submitCount() == 1 })
	waitFor(t, "saved notification", func() bool {
		msg, visible := notifier.Current()
		return visible && msg == "Rating saved"
	})
}

func TestRateKeepsLocalValueOnFailure(t *testing.T) {
	service := &fakeRatingService{submitErr: errors.New("backend down")}
	notifier := query.NewNotifier(query.DefaultNotifyDuration, query.NewManualClock())
	c := NewRatings(service, notifier, testLogger())

	c.Rate("user-1", 42, 3.0)

	waitFor(t, "failure notification", func() bool {
		msg, visible := notifier.Current()
		return visible && msg == "Failed to save rating"
	})
	// No rollback: the optimistic value stays until the next refresh
	if v, ok := c.Rating("user-1", 42); !ok || v != 3.0 {
		t.Errorf("Local rating rolled back on failure: %v %v", v, ok)
	}
}

func TestRateRequiresSignIn(t *testing.T) {
	service := &fakeRatingService{}
	notifier := query.NewNotifier(query.DefaultNotifyDuration, query.NewManualClock())
	c := NewRatings(service, notifier, testLogger())

	c.Rate("", 42, 4.0)

	msg, visible := notifier.Current()
	if !visible || msg != "Please sign in to rate movies" {
		t.Errorf("Expected sign-in prompt, got %q (visible=%v)", msg, visible)
	}
	time.Sleep(20 * time.Millisecond)
	if service.submitCount() != 0 {
		t.Error("Anonymous rating reached the backend")
	}
}

func TestRateRejectsInvalidValues(t *testing.T) {
	service := &fakeRatingService{}
	notifier := query.NewNotifier(query.DefaultNotifyDuration, query.NewManualClock())
	c := NewRatings(service, notifier, testLogger())

	for _, v := range []float64{0, 0.3, 5.5, 4.25, -1} {
		c.Rate("user-1", 42, v)
		if _, ok := c.Rating("user-1", 42); ok {
			t.Errorf("Invalid rating %v was applied", v)
		}
	}
	time.Sleep(20 * time.Millisecond)
	if service.submitCount() != 0 {
		t.Error("Invalid ratings reached the backend")
	}
}

func TestUnrateRemovesLocalRating(t *testing.T) {
	// Keep the submit pending so only the delete's notification can land
	service := &fakeRatingService{release: make(chan struct{})}
	notifier := query.NewNotifier(query.DefaultNotifyDuration, query.NewManualClock())
	c := NewRatings(service, notifier, testLogger())

	c.Rate("user-1", 42, 4.0)
	c.Unrate("user-1", 42)

	if _, ok := c.Rating("user-1", 42); ok {
		t.Error("Rating still present after Unrate")
	}
	waitFor(t, "removed notification", func() bool {
		msg, visible := notifier.Current()
		return visible && msg == "Rating removed"
	})
}

func TestRatingsAreKeyedPerUser(t *testing.T) {
	service := &fakeRatingService{}
	notifier := query.NewNotifier(query.DefaultNotifyDuration, query.NewManualClock())
	c := NewRatings(service, notifier, testLogger())

	c.Rate("user-1", 42, 4.0)
	c.Rate("user-2", 42, 2.0)

	if v, _ := c.Rating("user-1", 42); v != 4.0 {
		t.Errorf("user-1 rating = %v, want 4.0", v)
	}
	if v, _ := c.Rating("user-2", 42); v != 2.0 {
		t.Errorf("user-2 rating = %v, want 2.0", v)
	}
}

func TestRefreshReplacesLocalState(t *testing.T) {
	service := &fakeRatingService{
		userRatings: []models.UserRating{
			{MovieID: 7, Rating: 5.0},
			{MovieID: 9, Rating: 2.5},
		},
	}
	notifier := query.NewNotifier(query.DefaultNotifyDuration, query.NewManualClock())
	c := NewRatings(service, notifier, testLogger())

	// A local value the backend no longer holds
	c.Rate("user-1", 42, 1.0)

	ratings, err := c.Refresh(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("Expected 2 ratings, got %d", len(ratings))
	}
	if _, ok := c.Rating("user-1", 42); ok {
		t.Error("Stale local rating survived Refresh")
	}
	if v, _ := c.Rating("user-1", 7); v != 5.0 {
		t.Errorf("Backend rating not loaded: %v", v)
	}
}

func TestToggleWatched(t *testing.T) {
	service := &fakeRatingService{}
	notifier := query.NewNotifier(query.DefaultNotifyDuration, query.NewManualClock())
	c := NewRatings(service, notifier, testLogger())

	if !c.ToggleWatched("user-1", 42) {
		t.Error("First toggle should mark watched")
	}
	if c.ToggleWatched("user-1", 42) {
		t.Error("Second toggle should clear watched")
	}
	if c.ToggleWatched("", 42) {
		t.Error("Anonymous toggle should be refused")
	}
}
