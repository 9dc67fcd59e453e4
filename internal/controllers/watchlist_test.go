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

type fakeWatchlistService struct {
	mu        sync.Mutex
	added     []int
	removed   []int
	addErr    error
	removeErr error
	entries   []models.WatchlistEntry
}

func (f *fakeWatchlistService) AddToWatchlist(ctx context.Context, userID string, movieID int) error {
	f.mu.Lock()
	f.added = append(f.added, movieID)
	f.mu.Unlock()
	return f.addErr
}

func (f *fakeWatchlistService) RemoveFromWatchlist(ctx context.Context, userID string, movieID int) error {
	f.mu.Lock()
	f.removed = append(f.removed, movieID)
	f.mu.Unlock()
	return f.removeErr
}

func (f *fakeWatchlistService) Watchlist(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	return f.entries, nil
}

func (f *fakeWatchlistService) addCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.added)
}

func TestWatchlistAddAppliesOptimistically(t *testing.T) {
	service := &fakeWatchlistService{}
	notifier := query.NewNotifier(query.DefaultNotifyDuration, query.NewManualClock())
	c := NewWatchlist(service, notifier, testLogger())

	c.Add("user-1", 42)

	if !c.Contains("user-1", 42) {
		t.Fatal("Membership not applied optimistically")
	}
	waitFor(t, "added notification", func() bool {
		msg, visible := notifier.Current()
		return visible && msg == "Added to watchlist"
	})
}

func TestWatchlistAnonymousAddShortCircuits(t *testing.T) {
	service := &fakeWatchlistService{}
	notifier := query.NewNotifier(query.DefaultNotifyDuration, query.NewManualClock())
	c := NewWatchlist(service, notifier, testLogger())

	c.Add("", 42)

	msg, visible := notifier.Current()
	if !visible || msg != "Please sign in to use your watchlist" {
		t.Errorf("Expected sign-in prompt, got %q (visible=%v)", msg, visible)
	}
	if c.Contains("", 42) {
		t.Error("Anonymous add changed local state")
	}
	time.Sleep(20 * time.Millisecond)
	if service.addCount() != 0 {
		t.Error("Anonymous add reached the backend")
	}
}

func TestWatchlistRemoveKeepsStateOnFailure(t *testing.T) {
	service := &fakeWatchlistService{removeErr: errors.New("backend down")}
	notifier := query.NewNotifier(query.DefaultNotifyDuration, query.NewManualClock())
	c := NewWatchlist(service, notifier, testLogger())

	c.Add("user-1", 42)
	waitFor(t, "add to resolve", func() bool { return service.addCount() == 1 })
	c.Remove("user-1", 42)

	waitFor(t, "failure notification", func() bool {
		msg, visible := notifier.Current()
		return visible && msg == "Failed to remove from watchlist"
	})
	// No rollback: the movie stays removed locally until the next refresh
	if c.Contains("user-1", 42) {
		t.Error("Local removal rolled back on failure")
	}
}

func TestWatchlistRefreshReplacesLocalState(t *testing.T) {
	service := &fakeWatchlistService{
		entries: []models.WatchlistEntry{
			{MovieID: 7, MovieTitle: "Heat"},
		},
	}
	notifier := query.NewNotifier(query.DefaultNotifyDuration, query.NewManualClock())
	c := NewWatchlist(service, notifier, testLogger())

	c.Add("user-1", 42)

	entries, err := c.Refresh(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if c.Contains("user-1", 42) {
		t.Error("Stale local membership survived Refresh")
	}
	if !c.Contains("user-1", 7) {
		t.Error("Backend membership not loaded")
	}
}
