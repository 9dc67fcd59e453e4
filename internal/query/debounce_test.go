package query

import (
	"context"
	"sync"
	"testing"
	"time"
)

const testDelay = 500 * time.Millisecond

func TestDebounceCoalescesRapidUpdates(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer(testDelay, clock)

	var mu sync.Mutex
	var calls []string

	for _, q := range []string{"I", "In", "Inc", "Ince", "Incep", "Incept", "Incepti", "Inceptio", "Inception"} {
		q := q
		d.Update(func(ctx context.Context) {
			mu.Lock()
			calls = append(calls, q)
			mu.Unlock()
		})
		clock.Advance(50 * time.Millisecond)
	}
	clock.Advance(600 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("Expected exactly 1 call, got %d: %v", len(calls), calls)
	}
	if calls[0] != "Inception" {
		t.Errorf("Expected final query value, got %q", calls[0])
	}
}

func TestDebounceRestartsWindowOnEveryUpdate(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer(testDelay, clock)

	var mu sync.Mutex
	count := 0
	run := func(ctx context.Context) {
		mu.Lock()
		count++
		mu.Unlock()
	}

	d.Update(run)
	clock.Advance(400 * time.Millisecond)
	d.Update(run)
	clock.Advance(400 * time.Millisecond)

	mu.Lock()
	if count != 0 {
		mu.Unlock()
		t.Fatalf("Call fired before the window elapsed, count=%d", count)
	}
	mu.Unlock()

	clock.Advance(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Fatalf("Expected 1 call after full window, got %d", count)
	}
}

func TestDebounceCancelsSupersededInFlightCall(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer(testDelay, clock)

	started := make(chan context.Context, 1)
	release := make(chan struct{})

	d.Update(func(ctx context.Context) {
		started <- ctx
		<-release
	})

	advanced := make(chan struct{})
	go func() {
		clock.Advance(testDelay)
		close(advanced)
	}()

	ctx1 := <-started

	// A new keystroke arrives while the first call is in flight
	d.Update(func(ctx context.Context) {})

	select {
	case <-ctx1.Done():
	default:
		t.Fatal("Superseded in-flight call was not cancelled")
	}

	close(release)
	<-advanced
}

func TestDebounceCancelDropsPendingWindow(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer(testDelay, clock)

	var mu sync.Mutex
	count := 0
	d.Update(func(ctx context.Context) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	d.Cancel()
	clock.Advance(time.Second)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Fatalf("Cancelled window still fired %d time(s)", count)
	}
}
